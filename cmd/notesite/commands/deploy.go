package commands

import (
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/notesite/internal/build"
	"git.home.luguber.info/inful/notesite/internal/deploy"
	"git.home.luguber.info/inful/notesite/internal/errors"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/site"
)

// DeployCheckCmd implements the 'deploy-check' command.
type DeployCheckCmd struct {
	Remote  string `help:"Git remote to compare against (default: deploy.remote from the configuration)"`
	Offline bool   `help:"Skip the git remote and only check the declaration's own consistency"`
}

// Run compares url, baseUrl, organizationName and projectName with the remote.
func (d *DeployCheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	siteCfg, _, err := build.Declarations(cfg, time.Now())
	if err != nil {
		return err
	}

	var remote *deploy.Remote
	if !d.Offline {
		name := cfg.Deploy.Remote
		if d.Remote != "" {
			name = d.Remote
		}
		remote, err = deploy.ReadRemote(cfg.SitePath(), name)
		if err != nil {
			return err
		}
		slog.Debug("Read git remote", logfields.Remote(remote.Name), slog.String("url", remote.URL))
		_, _ = fmt.Fprintf(g.Stdout, "Remote %s: %s/%s on %s\n", remote.Name, remote.Owner, remote.Repo, remote.Host)
	}

	problems := deploy.Check(siteCfg, remote)
	for _, p := range problems {
		if ce, ok := errors.AsClassified(p); ok {
			key, _ := ce.Context().GetString(site.KeyContext)
			_, _ = fmt.Fprintf(g.Stdout, "✗ %s: %s\n", key, ce.Message())
			continue
		}
		_, _ = fmt.Fprintf(g.Stdout, "✗ %v\n", p)
	}
	if len(problems) > 0 {
		return errors.ValidationError(fmt.Sprintf("%d deployment problem(s)", len(problems))).Build()
	}
	_, _ = fmt.Fprintf(g.Stdout, "✓ url %s with baseUrl %s is consistent with %s/%s\n",
		siteCfg.URL, siteCfg.BaseURL, siteCfg.OrganizationName, siteCfg.ProjectName)
	return nil
}
