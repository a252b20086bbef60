// Package cli defines the command-line entrypoint that runs the verification
// inside an Actions runner or locally against an event file.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	githubadapter "github.com/ericfisherdev/verifyversion/internal/adapter/driven/github"
	"github.com/ericfisherdev/verifyversion/internal/adapter/driven/manifest"
	"github.com/ericfisherdev/verifyversion/internal/adapter/driving/action"
	"github.com/ericfisherdev/verifyversion/internal/application"
	"github.com/ericfisherdev/verifyversion/internal/config"
	"github.com/ericfisherdev/verifyversion/internal/domain/model"
	"github.com/ericfisherdev/verifyversion/internal/logging"
)

// ErrRunFailed is returned once a failure has been reported to the runner.
var ErrRunFailed = errors.New("verify package version failed")

// Options stores the command-line flags.
type Options struct {
	EnvFile  string
	LogLevel string
	DryRun   bool
	NoColor  bool
}

// Execute builds the root command, runs it with args, and returns ErrRunFailed
// when the run reported a failure.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCommand(&Options{}, stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func newRootCommand(opts *Options, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "verifyversion",
		Short:         "Verify that a pull request title carries the package version",
		Long:          "verifyversion checks a pull request title against the version field of package.json and optionally keeps a status comment on the pull request up to date.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, stdout, stderr)
		},
	}

	cmd.Flags().StringVar(&opts.EnvFile, "env-file", "", "Load INPUT_* and GITHUB_* variables from a .env file (local runs)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error); RUNNER_DEBUG=1 forces debug")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Compute the comment but do not create or update it")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable coloured log output")

	return cmd
}

func run(ctx context.Context, opts *Options, stdout, stderr io.Writer) error {
	reporter := action.NewReporter(stdout, "")

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return fail(reporter, slog.Default(), fmt.Errorf("loading env file %s: %w", opts.EnvFile, err))
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fail(reporter, slog.Default(), err)
	}

	level := logging.ParseLevel(opts.LogLevel)
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := logging.NewLogger(stderr, level, !opts.NoColor)
	slog.SetDefault(logger)

	reporter = action.NewReporter(stdout, cfg.OutputPath)

	outcome, err := verify(ctx, cfg, opts.DryRun, logger)
	if err != nil {
		return fail(reporter, logger, err)
	}

	if err := reporter.WriteOutcome(outcome); err != nil {
		return fail(reporter, logger, err)
	}

	if outcome != nil && !outcome.Passed {
		return fail(reporter, logger, errors.New(action.FailureMessage(*outcome)))
	}
	return nil
}

// verify wires the adapters for cfg and runs a single verification.
func verify(ctx context.Context, cfg *config.Config, dryRun bool, logger *slog.Logger) (*model.Outcome, error) {
	owner, repo := cfg.RepoOwnerAndName()
	trigger, err := action.LoadTrigger(cfg.EventName, cfg.EventPath, owner, repo)
	if err != nil {
		return nil, err
	}

	ghClient, err := githubadapter.NewClient(cfg.Token, cfg.APIURL)
	if err != nil {
		return nil, err
	}

	verifier := application.NewVerifier(
		manifest.NewLocalSource(cfg.Workspace, cfg.ManifestPath),
		manifest.NewRemoteSource(cfg.RawURL, cfg.ManifestPath),
		logger,
	)
	comments := application.NewCommentService(ghClient, dryRun, logger)
	runner := application.NewRunner(verifier, comments, logger)

	logger.Debug("run starting",
		"event", trigger.EventName,
		"repo", trigger.RepoFullName(),
		"dry_run", dryRun,
	)

	return runner.Run(ctx, trigger, cfg.Flags())
}

// fail reports err to the runner and returns ErrRunFailed.
func fail(reporter *action.Reporter, logger *slog.Logger, err error) error {
	logger.Error("run failed", "error", err)
	if reportErr := reporter.Fail(err.Error()); reportErr != nil {
		return errors.Join(ErrRunFailed, err, reportErr)
	}
	return ErrRunFailed
}
