package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"git.home.luguber.info/inful/notesite/internal/build"
	"git.home.luguber.info/inful/notesite/internal/errors"
	"git.home.luguber.info/inful/notesite/internal/sidebar"
)

// IndexCmd implements the 'index' command.
type IndexCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Slug   string `arg:"" optional:"" help:"Only print the index page with this slug"`
}

// Run prints the generated index pages in declaration order.
func (c *IndexCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	_, sidebars, err := build.Declarations(cfg, time.Now())
	if err != nil {
		return err
	}
	pages := sidebars.GeneratedIndexes()
	if c.Slug != "" {
		pages = filterPages(pages, c.Slug)
		if len(pages) == 0 {
			return errors.NewError(errors.CategoryNotFound, "no generated index page with this slug").
				WithContext("slug", c.Slug).Build()
		}
	}

	if c.Format == "json" {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pages)
	}
	for i, page := range pages {
		if i > 0 {
			_, _ = fmt.Fprintln(g.Stdout)
		}
		_, _ = fmt.Fprintf(g.Stdout, "%s  %s\n", page.Slug, page.Title)
		if page.Description != "" {
			_, _ = fmt.Fprintf(g.Stdout, "  %s\n", page.Description)
		}
		for _, e := range page.Entries {
			target := "doc " + e.DocID
			if e.Slug != "" {
				target = "index " + e.Slug
			}
			_, _ = fmt.Fprintf(g.Stdout, "  - %s (%s)\n", e.Label, target)
		}
	}
	return nil
}

func filterPages(pages []sidebar.IndexPage, slug string) []sidebar.IndexPage {
	for _, p := range pages {
		if p.Slug == slug {
			return []sidebar.IndexPage{p}
		}
	}
	return nil
}
