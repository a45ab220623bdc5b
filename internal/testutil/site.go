// Package testutil builds site directories and git repositories for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/notesite/internal/config"
)

// DeclaredDocs are the documents the built-in sidebar references, relative
// to the docs directory.
var DeclaredDocs = []string{
	"readme.md",
	"C/C-style-string.md",
	"computer-architecture/big-and-little-endian.md",
	"computer-architecture/instruction-set-architecture.md",
	"dsa/asymptotic-notation.md",
	"dsa/probability-review.md",
	"dsa/sortings/insertion-sort.md",
	"dsa/sortings/selection-sort.md",
	"dsa/sortings/mergesort.md",
	"dsa/sortings/quicksort.md",
}

// Site is a temporary site directory.
type Site struct {
	t   *testing.T
	Dir string
}

// NewSite creates an empty site directory.
func NewSite(t *testing.T) *Site {
	t.Helper()
	return &Site{t: t, Dir: t.TempDir()}
}

// DeclaredSite creates a site that passes every check: each declared
// document exists and so does the custom stylesheet.
func DeclaredSite(t *testing.T) *Site {
	t.Helper()
	s := NewSite(t)
	for _, rel := range DeclaredDocs {
		s.WriteDoc(rel, "# "+rel+"\n")
	}
	s.WriteFile("src/css/custom.css", ":root {}\n")
	return s
}

// WriteFile writes content at the slash-separated path rel below the site.
func (s *Site) WriteFile(rel, content string) *Site {
	s.t.Helper()
	p := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		s.t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		s.t.Fatalf("write %s: %v", p, err)
	}
	return s
}

// WriteDoc writes a document below the docs directory.
func (s *Site) WriteDoc(rel, content string) *Site {
	s.t.Helper()
	return s.WriteFile("docs/"+rel, content)
}

// RemoveDoc deletes a document below the docs directory.
func (s *Site) RemoveDoc(rel string) *Site {
	s.t.Helper()
	if err := os.Remove(s.Path("docs/" + rel)); err != nil {
		s.t.Fatalf("remove %s: %v", rel, err)
	}
	return s
}

// Path returns the absolute path of rel below the site.
func (s *Site) Path(rel string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(rel))
}

// Config returns the default tool configuration rooted at the site.
func (s *Site) Config() *config.Config {
	return config.Default().WithBaseDir(s.Dir)
}

// Files returns assertions rooted at the site directory.
func (s *Site) Files() *FileAssertions {
	return NewFileAssertions(s.t, s.Dir)
}
