package config

import (
	"net"

	"git.home.luguber.info/inful/notesite/internal/emit"
	"git.home.luguber.info/inful/notesite/internal/errors"
)

// Validate checks a defaulted configuration and returns the first problem.
func Validate(cfg *Config) error {
	if cfg.Version != Version {
		return errors.ConfigError("unsupported configuration version").
			WithContext("version", cfg.Version).
			WithContext("supported", Version).Build()
	}
	if _, err := emit.ParseFormat(cfg.Output.Format); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid output format").
			WithContext("format", cfg.Output.Format).Build()
	}
	if _, _, err := net.SplitHostPort(cfg.Preview.Addr); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid preview address").
			WithContext("addr", cfg.Preview.Addr).Build()
	}
	if cfg.Preview.Debounce < 0 {
		return errors.ConfigError("preview debounce must not be negative").
			WithContext("debounce", cfg.Preview.Debounce.String()).Build()
	}
	return nil
}
