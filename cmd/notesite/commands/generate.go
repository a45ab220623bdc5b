package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/notesite/internal/build"
	"git.home.luguber.info/inful/notesite/internal/check"
	"git.home.luguber.info/inful/notesite/internal/logfields"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Output    string `short:"o" help:"Output directory (default: output.directory from the configuration)"`
	Format    string `help:"Sidebars file format, json or yaml (default: output.format from the configuration)"`
	IfChanged bool   `name:"if-changed" help:"Skip writing when inputs and documents match the previous manifest"`
}

// Run checks the site and writes the generator inputs.
func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if c.Output != "" {
		cfg.Output.Directory = absPath(c.Output)
	}
	if c.Format != "" {
		cfg.Output.Format = c.Format
	}

	res, err := build.NewBuildService().Run(g.Ctx, build.BuildRequest{
		Config:  cfg,
		Options: build.BuildOptions{SkipIfUnchanged: c.IfChanged},
	})
	if res != nil && res.Check != nil && (err != nil || res.Check.HasWarnings()) {
		_ = check.NewTextFormatter().Format(g.Stderr, res.Check, cfg.SitePath())
	}
	if err != nil {
		return err
	}

	if res.Status == build.BuildStatusSkipped {
		_, _ = fmt.Fprintf(g.Stdout, "Up to date: %s\n", res.SkipReason)
		return nil
	}
	slog.Info("Generator inputs written", logfields.BuildID(res.Manifest.BuildID), logfields.Path(res.OutputPath))
	for _, f := range res.Manifest.Files {
		_, _ = fmt.Fprintf(g.Stdout, "wrote %s\n", f)
	}
	_, _ = fmt.Fprintf(g.Stdout, "%d document(s), %d sidebar(s), %d index page(s) in %s\n",
		len(res.Manifest.Documents), len(res.Manifest.Sidebars), res.Manifest.Indexes, res.OutputPath)
	return nil
}
