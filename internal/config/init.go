package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/notesite/internal/errors"
)

const initHeader = `# notesite configuration.
# Values may reference environment variables as ${VAR}; .env and .env.local
# next to this file are loaded first.
`

// Init writes a configuration file populated with the defaults.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	// #nosec G306 -- configuration is not secret
	if err := os.WriteFile(path, append([]byte(initHeader), data...), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).Build()
	}
	return nil
}
