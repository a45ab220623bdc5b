package commands

import (
	"git.home.luguber.info/inful/notesite/internal/preview"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Addr    string `help:"Listen address (default: preview.addr from the configuration)"`
	Metrics bool   `help:"Serve Prometheus metrics on /metrics"`
}

// Run watches the site until interrupted.
func (p *PreviewCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if p.Addr != "" {
		cfg.Preview.Addr = p.Addr
	}
	if p.Metrics {
		cfg.Preview.Metrics = true
	}
	return preview.New(cfg).Run(g.Ctx)
}
