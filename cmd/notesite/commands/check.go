package commands

import (
	"fmt"

	"git.home.luguber.info/inful/notesite/internal/build"
	"git.home.luguber.info/inful/notesite/internal/check"
	"git.home.luguber.info/inful/notesite/internal/errors"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Strict bool   `help:"Treat warnings as errors"`
}

// Run checks everything the generator would reject without writing output.
func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	res, err := build.NewBuildService().Run(g.Ctx, build.BuildRequest{
		Config:  cfg,
		Options: build.BuildOptions{DryRun: true},
	})
	if res != nil && res.Check != nil {
		if ferr := check.NewFormatter(c.Format).Format(g.Stdout, res.Check, cfg.SitePath()); ferr != nil {
			return fmt.Errorf("formatting output: %w", ferr)
		}
	}
	if err != nil {
		return err
	}
	if c.Strict && res.Check.HasWarnings() {
		return errors.ValidationError(fmt.Sprintf("%d warning(s) in strict mode", res.Check.WarningCount())).Build()
	}
	return nil
}
