package testutil

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// InitRepo initializes a git repository in dir. A non-empty remoteURL is
// registered as origin.
func InitRepo(t *testing.T, dir, remoteURL string) *git.Repository {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}
	if remoteURL != "" {
		if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{remoteURL}}); err != nil {
			t.Fatalf("failed to create remote: %v", err)
		}
	}
	return repo
}

// Commit stages path and commits it.
func Commit(t *testing.T, repo *git.Repository, path, message string) {
	t.Helper()
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}
	if _, err := wt.Add(path); err != nil {
		t.Fatalf("failed to add %s: %v", path, err)
	}
	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "notesite", Email: "notesite@example.org", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
}
