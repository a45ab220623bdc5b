package deploy

import (
	"fmt"
	"net/url"
	"strings"

	"git.home.luguber.info/inful/notesite/internal/errors"
	"git.home.luguber.info/inful/notesite/internal/site"
)

const pagesDomain = "github.io"

func problem(key, format string, args ...any) error {
	return errors.ValidationError(fmt.Sprintf(format, args...)).
		WithContext(site.KeyContext, key).
		Build()
}

// UserSite reports whether project is the owner's user or organization site,
// which GitHub Pages serves from the domain root.
func UserSite(org, project string) bool {
	return strings.EqualFold(project, org+"."+pagesDomain)
}

// Check compares cfg's publishing identity with remote. A nil remote checks
// only the GitHub Pages URL conventions.
func Check(cfg *site.SiteConfig, remote *Remote) []error {
	var errs []error
	if remote != nil {
		// GitHub owner and repository names are case-insensitive.
		if !strings.EqualFold(cfg.OrganizationName, remote.Owner) {
			errs = append(errs, problem("organizationName", "organization %q does not match remote owner %q", cfg.OrganizationName, remote.Owner))
		}
		if !strings.EqualFold(cfg.ProjectName, remote.Repo) {
			errs = append(errs, problem("projectName", "project %q does not match remote repository %q", cfg.ProjectName, remote.Repo))
		}
	}

	u, err := url.Parse(cfg.URL)
	if err != nil || u.Host == "" {
		return append(errs, problem("url", "url %q is not an absolute URL", cfg.URL))
	}
	host := strings.ToLower(u.Hostname())
	if !strings.HasSuffix(host, "."+pagesDomain) {
		// Custom domain: the path conventions below do not apply.
		return errs
	}

	wantHost := strings.ToLower(cfg.OrganizationName) + "." + pagesDomain
	if host != wantHost {
		errs = append(errs, problem("url", "GitHub Pages host %q should be %q", host, wantHost))
	}
	if u.Scheme != "https" {
		errs = append(errs, problem("url", "GitHub Pages serves over https, got %q", u.Scheme))
	}

	wantBase := "/" + cfg.ProjectName + "/"
	if UserSite(cfg.OrganizationName, cfg.ProjectName) {
		wantBase = "/"
	}
	if cfg.BaseURL != wantBase {
		errs = append(errs, problem("baseUrl", "baseUrl %q should be %q for project %q", cfg.BaseURL, wantBase, cfg.ProjectName))
	}
	return errs
}
