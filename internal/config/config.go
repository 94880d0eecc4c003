package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Change source names accepted by Changes.Source.
const (
	SourceGit     = "git"
	SourceGitExec = "git-exec"
	SourcePatch   = "patch"
	SourceList    = "list"
)

// Config represents the application configuration structure.
// Every value can be set in the YAML file or through the environment, which
// makes the tool usable in CI with no config file at all.
type Config struct {
	// Environment selects the logger preset (development or production).
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	Log struct {
		// Level is the minimum log level: debug, info, warn or error.
		Level string `env:"LOG_LEVEL" env-default:"info" yaml:"level"`
	} `yaml:"log"`

	Repository struct {
		// Root is the repository root. Manifest and release config paths are relative to it.
		Root string `env:"REPOSITORY_ROOT" env-default:"." yaml:"root"`
	} `yaml:"repository"`

	Manifest struct {
		// Path is the project manifest listing every package and its directory.
		Path string `env:"MANIFEST_PATH" env-default:"packages.yml" yaml:"path"`
	} `yaml:"manifest"`

	ReleaseConfigs struct {
		// Pattern is a doublestar glob selecting release config files.
		Pattern string `env:"RELEASE_CONFIG_PATTERN" env-default:".github/release-configs/*.{yml,yaml}" yaml:"pattern"`
	} `yaml:"releaseConfigs"`

	Changes struct {
		// Source is where changed files come from: git, git-exec, patch or list.
		Source string `env:"CHANGES_SOURCE" env-default:"git" yaml:"source"`
		// Base is the revision the change set starts from.
		Base string `env:"BASE_REF" env-default:"origin/main" yaml:"base"`
		// Head is the revision the change set ends at.
		Head string `env:"HEAD_REF" env-default:"HEAD" yaml:"head"`
		// MergeBase compares head against the merge base of base and head.
		MergeBase bool `env:"USE_MERGE_BASE" env-default:"true" yaml:"mergeBase"`
		// File is the diff or file list read by the patch and list sources; "-" is stdin.
		File string `env:"CHANGES_FILE" env-default:"-" yaml:"file"`
		// Timeout bounds collecting the changed files.
		Timeout time.Duration `env:"CHANGES_TIMEOUT" env-default:"1m" yaml:"timeout"`
	} `yaml:"changes"`

	Output struct {
		// GitHubOutput is the step output file; outputs go to stdout when empty.
		GitHubOutput string `env:"GITHUB_OUTPUT" yaml:"githubOutput"`
	} `yaml:"output"`

	Metrics struct {
		// Textfile is an optional path receiving the run metrics in Prometheus text format.
		Textfile string `env:"METRICS_TEXTFILE" yaml:"textfile"`
	} `yaml:"metrics"`
}

// Validate checks values cleanenv cannot express.
func (c *Config) Validate() error {
	switch c.Changes.Source {
	case SourceGit, SourceGitExec, SourcePatch, SourceList:
	default:
		return fmt.Errorf("unknown changes source %q", c.Changes.Source)
	}

	if c.Changes.Timeout <= 0 {
		return fmt.Errorf("changes timeout must be positive, got %s", c.Changes.Timeout)
	}

	return nil
}

// Load receives the path for yaml config file and returns a filled Config
// struct. A missing file is not an error: the configuration is then read from
// the environment and defaults alone.
func Load(configPath string) (*Config, error) {
	var cfg Config

	_, err := os.Stat(configPath)
	switch {
	case err == nil:
		err = cleanenv.ReadConfig(configPath, &cfg)
	case errors.Is(err, fs.ErrNotExist):
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
