package config

import (
	"time"

	"git.home.luguber.info/inful/notesite/internal/emit"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier handles site location defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Version == "" {
		cfg.Version = Version
	}
	if cfg.Site.Dir == "" {
		cfg.Site.Dir = "."
	}
	if cfg.Site.DocsDir == "" {
		cfg.Site.DocsDir = "docs"
	}
	return nil
}

// OutputDefaultApplier handles output defaults. Generator inputs go to the
// site root unless told otherwise, since that is where the generator looks.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = cfg.Site.Dir
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = string(emit.FormatJSON)
	}
	return nil
}

// DeployDefaultApplier handles deploy defaults.
type DeployDefaultApplier struct{}

func (DeployDefaultApplier) Domain() string { return "deploy" }

func (DeployDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Deploy.Remote == "" {
		cfg.Deploy.Remote = "origin"
	}
	return nil
}

// PreviewDefaultApplier handles preview defaults.
type PreviewDefaultApplier struct{}

func (PreviewDefaultApplier) Domain() string { return "preview" }

func (PreviewDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Preview.Addr == "" {
		cfg.Preview.Addr = "127.0.0.1:3030"
	}
	if cfg.Preview.Debounce == 0 {
		cfg.Preview.Debounce = 300 * time.Millisecond
	}
	return nil
}

// LoggingDefaultApplier normalizes logging settings.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	return nil
}

// defaultAppliers run in order; output defaults depend on site defaults.
var defaultAppliers = []DefaultApplier{
	SiteDefaultApplier{},
	OutputDefaultApplier{},
	DeployDefaultApplier{},
	PreviewDefaultApplier{},
	LoggingDefaultApplier{},
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
