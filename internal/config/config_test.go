package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, Version, cfg.Version)
	assert.Equal(t, ".", cfg.Site.Dir)
	assert.Equal(t, "docs", cfg.Site.DocsDir)
	assert.Equal(t, ".", cfg.Output.Directory)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "origin", cfg.Deploy.Remote)
	assert.Equal(t, "127.0.0.1:3030", cfg.Preview.Addr)
	assert.Equal(t, 300*time.Millisecond, cfg.Preview.Debounce)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, "docs", cfg.DocsPath())
	assert.NoError(t, Validate(cfg))
}

func TestLoad_ResolvesRelativeToConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
site:
  dir: website
  docs_dir: content
  sidebars_file: overrides/sidebars.jsonc
output:
  directory: /tmp/out
  format: YAML
preview:
  debounce: 1s
logging:
  level: DEBUG
  format: json
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "website"), cfg.SitePath())
	assert.Equal(t, filepath.Join(dir, "website", "content"), cfg.DocsPath())
	assert.Equal(t, "/tmp/out", cfg.OutputPath())
	assert.Equal(t, filepath.Join(dir, "overrides", "sidebars.jsonc"), cfg.SidebarsPath())
	assert.Empty(t, cfg.SiteConfigPath())
	assert.Equal(t, time.Second, cfg.Preview.Debounce)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, slog.LevelDebug, cfg.Logging.Level.SlogLevel())
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
}

func TestLoad_ExpandsEnvAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NOTESITE_TEST_REMOTE=upstream\nNOTESITE_TEST_ADDR=from-dotenv:1\n"), 0o600))
	t.Setenv("NOTESITE_TEST_ADDR", "127.0.0.1:9999")
	t.Cleanup(func() { _ = os.Unsetenv("NOTESITE_TEST_REMOTE") })

	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("deploy:\n  remote: ${NOTESITE_TEST_REMOTE}\npreview:\n  addr: ${NOTESITE_TEST_ADDR}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "upstream", cfg.Deploy.Remote)
	// The process environment wins over .env.
	assert.Equal(t, "127.0.0.1:9999", cfg.Preview.Addr)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "sites:\n  dir: x\n"},
		{"bad version", "version: \"2\"\n"},
		{"bad format", "output:\n  format: toml\n"},
		{"bad addr", "preview:\n  addr: nocolon\n"},
		{"negative debounce", "preview:\n  debounce: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Site, cfg.Site)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Preview, cfg.Preview)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	require.NoError(t, Init(path, true))
}

func TestNormalizeLogging(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warning "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat(""))
	assert.Equal(t, slog.LevelError, LogLevelError.SlogLevel())
}
