package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/notesite/internal/build"
	"git.home.luguber.info/inful/notesite/internal/corpus"
)

// DocsCmd implements the 'docs' command.
type DocsCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

// docEntry is one listed document.
type docEntry struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Sidebar  string `json:"sidebar,omitempty"`
	Category string `json:"category,omitempty"`
	Draft    bool   `json:"draft,omitempty"`
	Unlisted bool   `json:"unlisted,omitempty"`
}

// Run lists the corpus and where each document sits in the sidebars.
func (c *DocsCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	_, sidebars, err := build.Declarations(cfg, time.Now())
	if err != nil {
		return err
	}
	docs, err := corpus.Discover(cfg.DocsPath())
	if err != nil {
		return err
	}

	entries := make([]docEntry, 0, docs.Len())
	for _, doc := range docs.Documents() {
		e := docEntry{
			ID:       doc.ID,
			Path:     doc.Path,
			Slug:     doc.Slug,
			Title:    doc.Title,
			Draft:    doc.Draft,
			Unlisted: doc.Fields.Unlisted,
		}
		if ref, ok := sidebars.Lookup(doc.ID); ok {
			e.Sidebar = ref.Sidebar
			e.Category = strings.Join(ref.Trail, " > ")
		}
		entries = append(entries, e)
	}

	if c.Format == "json" {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSLUG\tSIDEBAR\tCATEGORY\tFLAGS")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Slug, dash(e.Sidebar), dash(e.Category), flags(e))
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func flags(e docEntry) string {
	var out []string
	if e.Draft {
		out = append(out, "draft")
	}
	if e.Unlisted {
		out = append(out, "unlisted")
	}
	return dash(strings.Join(out, ","))
}
