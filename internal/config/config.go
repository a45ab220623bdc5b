// Package config loads the notesite tool configuration: where the site and
// its documents live, where generator inputs are written, and how the
// preview server and logging behave.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/notesite/internal/errors"
)

// DefaultFile is the configuration file name looked up when none is given.
const DefaultFile = "notesite.yaml"

// Version is the only configuration schema version understood.
const Version = "1"

// Config represents the application configuration.
type Config struct {
	Version string        `yaml:"version"`
	Site    SiteConfig    `yaml:"site"`
	Output  OutputConfig  `yaml:"output"`
	Deploy  DeployConfig  `yaml:"deploy"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`

	// baseDir is the directory relative paths are resolved against.
	baseDir string
}

// SiteConfig locates the site and optional declaration overrides.
type SiteConfig struct {
	Dir     string `yaml:"dir"`
	DocsDir string `yaml:"docs_dir"`
	// ConfigFile and SidebarsFile, when set, replace the built-in declarations
	// with JSON (comments allowed) files.
	ConfigFile   string `yaml:"config_file,omitempty"`
	SidebarsFile string `yaml:"sidebars_file,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Format    string `yaml:"format"` // sidebars file encoding: json or yaml
}

// DeployConfig names the git remote compared against the site identity.
type DeployConfig struct {
	Remote string `yaml:"remote"`
}

// PreviewConfig configures watch mode.
type PreviewConfig struct {
	Addr     string        `yaml:"addr"`
	Debounce time.Duration `yaml:"debounce"`
	Metrics  bool          `yaml:"metrics"`
}

// LoggingConfig selects the log level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Load reads the configuration file at path. .env files next to it are
// loaded first and ${VAR} references are expanded before decoding.
func Load(path string) (*Config, error) {
	baseDir := filepath.Dir(path)
	loadEnvFiles(baseDir)

	// #nosec G304 -- path is chosen by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				WithContext("path", path).Fatal().Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", path).Fatal().Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	cfg.baseDir = baseDir
	return cfg, nil
}

// Parse decodes YAML configuration, expanding environment references and
// applying defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	cfg.baseDir = "."
	return cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	_ = applyDefaults(cfg)
	cfg.baseDir = "."
	return cfg
}

// WithBaseDir returns c resolving relative paths against dir.
func (c *Config) WithBaseDir(dir string) *Config {
	c.baseDir = dir
	return c
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// SitePath is the site root (custom CSS and static assets resolve here).
func (c *Config) SitePath() string { return c.resolve(c.Site.Dir) }

// DocsPath is the document corpus directory.
func (c *Config) DocsPath() string {
	if filepath.IsAbs(c.Site.DocsDir) {
		return c.Site.DocsDir
	}
	return filepath.Join(c.SitePath(), c.Site.DocsDir)
}

// OutputPath is where generator inputs are written.
func (c *Config) OutputPath() string { return c.resolve(c.Output.Directory) }

// SiteConfigPath returns the override file for the site declaration, or "".
func (c *Config) SiteConfigPath() string {
	if c.Site.ConfigFile == "" {
		return ""
	}
	return c.resolve(c.Site.ConfigFile)
}

// SidebarsPath returns the override file for the sidebar declaration, or "".
func (c *Config) SidebarsPath() string {
	if c.Site.SidebarsFile == "" {
		return ""
	}
	return c.resolve(c.Site.SidebarsFile)
}
