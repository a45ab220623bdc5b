// Package commands implements the notesite command line.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/logfields"
)

// Global carries process-wide dependencies bound into every command.
type Global struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: ${default_config} if present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check       CheckCmd       `cmd:"" help:"Check the site declaration, sidebars and documents"`
	Generate    GenerateCmd    `cmd:"" help:"Write generator inputs (site config, sidebars, index pages)"`
	Index       IndexCmd       `cmd:"" help:"Print the generated category index pages"`
	Docs        DocsCmd        `cmd:"" help:"List documents and where the sidebars place them"`
	DeployCheck DeployCheckCmd `cmd:"" name:"deploy-check" help:"Compare the publishing identity with the git remote"`
	Preview     PreviewCmd     `cmd:"" help:"Rebuild on change and serve health, report and metrics endpoints"`
	Init        InitCmd        `cmd:"" help:"Initialize a new configuration file"`
	VersionCmd  VersionCmd     `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(newLogger(g.Stderr, level, config.LogFormatText))
	return nil
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig reads the configuration file. Without --config a missing
// default file yields the built-in defaults rooted at the working directory.
// Logging is reconfigured from the file unless --verbose was given.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	path := c.Config
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); os.IsNotExist(err) {
			slog.Debug("No configuration file; using defaults", logfields.File(config.DefaultFile))
			return config.Default(), nil
		}
		path = config.DefaultFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if !c.Verbose {
		slog.SetDefault(newLogger(g.Stderr, cfg.Logging.Level.SlogLevel(), cfg.Logging.Format))
	}
	slog.Debug("Loaded configuration", logfields.Path(path))
	return cfg, nil
}

// absPath resolves a path flag against the working directory.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
