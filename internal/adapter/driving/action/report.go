package action

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ericfisherdev/verifyversion/internal/domain/model"
)

// Output names written to GITHUB_OUTPUT.
const (
	OutputResult         = "result"
	OutputPackageVersion = "package-version"
	OutputTitleVersion   = "title-version"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
	failurePrefix = "Verify package version failed!"
)

// Reporter writes the run's terminal status where the runner picks it up.
type Reporter struct {
	stdout     io.Writer
	outputPath string
}

// NewReporter creates a Reporter writing workflow commands to stdout and step
// outputs to outputPath. An empty outputPath disables step outputs.
func NewReporter(stdout io.Writer, outputPath string) *Reporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Reporter{stdout: stdout, outputPath: strings.TrimSpace(outputPath)}
}

// Fail emits an error workflow command carrying message. The caller is
// responsible for exiting non-zero.
func (r *Reporter) Fail(message string) error {
	_, err := fmt.Fprintf(r.stdout, "::error::%s\n", escapeData(message))
	return err
}

// FailureMessage is the run failure message for a failed outcome.
func FailureMessage(outcome model.Outcome) string {
	return failurePrefix + " " + outcome.Message
}

// WriteOutcome records outcome as step outputs. A nil outcome (nothing was
// verified) writes nothing.
func (r *Reporter) WriteOutcome(outcome *model.Outcome) error {
	if outcome == nil {
		return nil
	}

	result := resultSuccess
	if !outcome.Passed {
		result = resultFailure
	}
	return r.WriteOutputs(map[string]string{
		OutputResult:         result,
		OutputPackageVersion: outcome.ManifestVersion,
		OutputTitleVersion:   outcome.TitleVersionToken,
	})
}

// WriteOutputs appends key=value lines to the GITHUB_OUTPUT file when available.
func (r *Reporter) WriteOutputs(values map[string]string) error {
	if r.outputPath == "" || len(values) == 0 {
		return nil
	}

	f, err := os.OpenFile(r.outputPath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("opening step outputs: %w", err)
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, sanitize(values[key])); err != nil {
			return fmt.Errorf("writing step output %s: %w", key, err)
		}
	}
	return nil
}

// escapeData escapes a workflow command message.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

func sanitize(value string) string {
	value = strings.ReplaceAll(value, "\r", "%0D")
	value = strings.ReplaceAll(value, "\n", "%0A")
	return value
}
