// Package config loads action inputs and runner context from environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/ericfisherdev/verifyversion/internal/domain/model"
)

// enabledValue is the only input value that switches a boolean input on.
const enabledValue = "true"

// Config holds the run configuration. Action inputs arrive as INPUT_<NAME>
// with the input name upper-cased and hyphens kept; the rest is set by the
// runner.
type Config struct {
	Token               string `env:"INPUT_TOKEN"`
	TitleIncludeContent string `env:"INPUT_TITLE-INCLUDE-CONTENT"`
	TitleIncludeVersion string `env:"INPUT_TITLE-INCLUDE-VERSION"`
	OpenComment         string `env:"INPUT_OPEN-COMMENT"`
	ManifestPath        string `env:"INPUT_MANIFEST-PATH" envDefault:"package.json"`
	RawURL              string `env:"INPUT_RAW-URL" envDefault:"https://raw.githubusercontent.com"`

	EventName  string `env:"GITHUB_EVENT_NAME"`
	EventPath  string `env:"GITHUB_EVENT_PATH"`
	Repository string `env:"GITHUB_REPOSITORY"`
	Workspace  string `env:"GITHUB_WORKSPACE" envDefault:"."`
	APIURL     string `env:"GITHUB_API_URL" envDefault:"https://api.github.com/"`
	OutputPath string `env:"GITHUB_OUTPUT"`
	Debug      bool   `env:"RUNNER_DEBUG"`
}

// Load reads configuration from environment variables and returns a validated Config.
// Inputs are whitespace-trimmed the way the runner's own input reader does.
// Boolean-like inputs are kept as raw strings: only the literal "true" enables
// them, any other value disables them, and an empty title-include-version
// means the version check stays on.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	cfg.Token = strings.TrimSpace(cfg.Token)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	if c.Flags().PostComment && strings.TrimSpace(c.Token) == "" {
		return errors.New("INPUT_TOKEN is required when open-comment is true")
	}
	return nil
}

// Flags projects the inputs into the domain switches for a run.
func (c *Config) Flags() model.Flags {
	includeVersion := strings.TrimSpace(c.TitleIncludeVersion)
	if includeVersion == "" {
		includeVersion = enabledValue
	}

	return model.Flags{
		RequiredTitleSubstring: strings.TrimSpace(c.TitleIncludeContent),
		EnforceVersionMatch:    includeVersion == enabledValue,
		PostComment:            strings.TrimSpace(c.OpenComment) == enabledValue,
	}
}

// RepoOwnerAndName splits GITHUB_REPOSITORY into owner and name. Both are
// empty when the variable is unset or malformed.
func (c *Config) RepoOwnerAndName() (string, string) {
	owner, name, ok := strings.Cut(c.Repository, "/")
	if !ok || owner == "" || name == "" {
		return "", ""
	}
	return owner, name
}
