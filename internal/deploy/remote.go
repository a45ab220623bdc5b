// Package deploy compares the site's publishing identity with the git
// repository it is published from.
package deploy

import (
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/notesite/internal/errors"
)

// Remote describes one git remote of the site repository.
type Remote struct {
	Name  string
	URL   string
	Host  string
	Owner string
	Repo  string
	// Branch and Head describe the checked-out commit; both are empty for a
	// repository without commits.
	Branch string
	Head   string
}

// ReadRemote opens the repository containing dir and reads the named remote.
func ReadRemote(dir, name string) (*Remote, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to open git repository").
			WithContext("path", dir).Build()
	}
	remote, err := repo.Remote(name)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "git remote not found").
			WithContext("remote", name).
			WithContext("path", dir).Build()
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return nil, errors.GitError("git remote has no URL").
			WithContext("remote", name).Build()
	}

	out, err := ParseRemoteURL(urls[0])
	if err != nil {
		return nil, err
	}
	out.Name = name

	if head, err := repo.Head(); err == nil {
		out.Head = head.Hash().String()
		if head.Name().IsBranch() {
			out.Branch = head.Name().Short()
		}
	} else if err != plumbing.ErrReferenceNotFound {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to resolve HEAD").
			WithContext("path", dir).Build()
	}
	return out, nil
}

// ParseRemoteURL splits a remote URL into host, owner and repository. It
// accepts https, ssh and scp-like (git@host:owner/repo.git) forms.
func ParseRemoteURL(raw string) (*Remote, error) {
	r := &Remote{URL: raw}
	var host, p string
	if i := strings.Index(raw, "://"); i >= 0 {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryGit, "invalid remote URL").
				WithContext("url", raw).Build()
		}
		host, p = u.Hostname(), u.Path
	} else if at, colon := strings.Index(raw, "@"), strings.Index(raw, ":"); colon > at {
		host, p = raw[at+1:colon], raw[colon+1:]
	}

	parts := strings.Split(strings.Trim(p, "/"), "/")
	if host == "" || len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return nil, errors.GitError("remote URL does not name an owner and repository").
			WithContext("url", raw).Build()
	}
	r.Host = strings.ToLower(host)
	r.Owner = parts[len(parts)-2]
	r.Repo = strings.TrimSuffix(parts[len(parts)-1], ".git")
	return r, nil
}
