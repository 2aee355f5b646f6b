package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// DefaultFile is the file read when no path is given.
const DefaultFile = ".prh.yaml"

// Config holds every tunable of a run.
type Config struct {
	// Remote is the git remote pushed to and parsed
	// for owner/repository.
	Remote string `yaml:"remote"`
	// TokenEnv names the environment variable holding
	// the forge credential.
	TokenEnv string `yaml:"token_env"`
	// FallbackBase is the pull request base used when
	// the default branch cannot be looked up.
	FallbackBase string       `yaml:"fallback_base"`
	GitHub       GitHubConfig `yaml:"github"`
	PR           PRConfig     `yaml:"pr"`
	Log          LogConfig    `yaml:"log"`
}

// GitHubConfig selects the GitHub API endpoint.
type GitHubConfig struct {
	APIURL         string `yaml:"api_url"`
	EnterpriseHost string `yaml:"enterprise_host"`
}

// PRConfig holds the templates used when the user
// leaves the title or body empty. Templates expand
// {branch}, {base}, {owner} and {repo}.
type PRConfig struct {
	TitleTemplate string `yaml:"title_template"`
	BodyTemplate  string `yaml:"body_template"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
	// File is an optional rotating log file.
	File string `yaml:"file"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()

	return cfg
}

// Load reads the file at path. When path is empty
// DefaultFile is tried and its absence yields the
// defaults; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	const errCtx = "loading config"

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %s: %w", errCtx, path, err,
		)
	}

	return cfg, nil
}

// Parse decodes YAML data, applies defaults and
// validates the result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	const errCtx = "parsing config"

	var cfg Config

	if err := yaml.UnmarshalWithOptions(
		data, &cfg, yaml.DisallowUnknownField(),
	); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Remote == "" {
		c.Remote = "origin"
	}

	if c.TokenEnv == "" {
		c.TokenEnv = "GITHUB_TOKEN"
	}

	if c.FallbackBase == "" {
		c.FallbackBase = "main"
	}

	if c.PR.TitleTemplate == "" {
		c.PR.TitleTemplate = "{branch}"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	const errCtx = "validating config"

	switch {
	case c.Remote == "":
		return fmt.Errorf("%s: remote must be set", errCtx)
	case c.TokenEnv == "":
		return fmt.Errorf(
			"%s: token_env must be set", errCtx,
		)
	case c.FallbackBase == "":
		return fmt.Errorf(
			"%s: fallback_base must be set", errCtx,
		)
	case c.GitHub.APIURL != "" &&
		c.GitHub.EnterpriseHost != "":
		return fmt.Errorf(
			"%s: github.api_url and "+
				"github.enterprise_host are mutually "+
				"exclusive",
			errCtx,
		)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf(
			"%s: unknown log level %q",
			errCtx, c.Log.Level,
		)
	}

	return nil
}
