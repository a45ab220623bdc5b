// Package corpus discovers the Markdown documents a sidebar can reference and
// derives the identifiers, routes and titles the generator assigns to them.
package corpus

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/notesite/internal/errors"
	"git.home.luguber.info/inful/notesite/internal/frontmatter"
	"git.home.luguber.info/inful/notesite/internal/logfields"
)

// Extensions lists the file extensions treated as documents.
var Extensions = []string{".md", ".mdx"}

// Corpus is the set of documents found under one docs directory.
type Corpus struct {
	Root string
	docs map[string]*Document
	// byPath indexes documents by their slash-separated relative path.
	byPath map[string]*Document
}

// Discover walks root and parses every document. Files and directories
// whose names start with "_" are partials and are skipped, as are hidden
// directories.
func Discover(root string) (*Corpus, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.NewError(errors.CategoryNotFound, "docs directory not found").
			WithContext("path", root).Fatal().Build()
	}

	c := &Corpus{Root: root, docs: map[string]*Document{}, byPath: map[string]*Document{}}
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if d.IsDir() {
			if p != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, "_") || !isDocument(name) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		doc, err := Load(p, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		return c.add(doc)
	})
	if err != nil {
		if _, ok := errors.AsClassified(err); ok {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryDocs, "failed to walk docs directory").
			WithContext("path", root).Build()
	}
	slog.Debug("Discovered documents", logfields.Path(root), logfields.Count(len(c.docs)))
	return c, nil
}

// New builds a corpus from already loaded documents.
func New(root string, docs ...*Document) (*Corpus, error) {
	c := &Corpus{Root: root, docs: map[string]*Document{}, byPath: map[string]*Document{}}
	for _, d := range docs {
		if err := c.add(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Corpus) add(doc *Document) error {
	if prev, dup := c.docs[doc.ID]; dup {
		return errors.DocsError("duplicate document id").
			WithContext("doc_id", doc.ID).
			WithContext("path", doc.Path).
			WithContext("previous", prev.Path).
			Build()
	}
	c.docs[doc.ID] = doc
	c.byPath[doc.Path] = doc
	return nil
}

func isDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads and parses one document; rel is its slash-separated path
// relative to the docs directory.
func Load(file, rel string) (*Document, error) {
	content, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryDocs, "failed to read document").
			WithContext("path", rel).Build()
	}
	return Parse(rel, content)
}

// Parse builds a Document from file content.
func Parse(rel string, content []byte) (*Document, error) {
	rawFM, body, _, err := frontmatter.Split(content)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryDocs, "invalid frontmatter").
			WithContext("path", rel).Build()
	}
	fields, all, err := frontmatter.Parse(rawFM)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryDocs, "invalid frontmatter").
			WithContext("path", rel).Build()
	}
	fp, err := Fingerprint(all, body)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryDocs, "failed to fingerprint document").
			WithContext("path", rel).Build()
	}

	info := analyze(body)
	doc := &Document{
		ID:          DocumentID(rel, fields),
		Path:        rel,
		Slug:        DocumentSlug(rel, fields),
		Title:       fields.Title,
		Draft:       fields.Draft,
		Fields:      fields,
		Links:       info.links,
		Fingerprint: fp,
	}
	if doc.Title == "" {
		doc.Title = info.title
	}
	if doc.Title == "" {
		doc.Title = path.Base(doc.ID)
	}
	doc.Label = fields.SidebarLabel
	if doc.Label == "" {
		doc.Label = doc.Title
	}
	return doc, nil
}

// Fingerprint hashes the frontmatter (minus the fingerprint key itself) and
// body, so it changes whenever the rendered page could.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	canon, err := frontmatter.Canonical(fields, mdfp.FingerprintField)
	if err != nil {
		return "", err
	}
	fm := strings.TrimSuffix(string(canon), "\n")
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}

// Has reports whether a document with id exists.
func (c *Corpus) Has(id string) bool {
	_, ok := c.docs[id]
	return ok
}

// Get returns the document with id.
func (c *Corpus) Get(id string) (*Document, bool) {
	d, ok := c.docs[id]
	return d, ok
}

// ByPath returns the document at the slash-separated relative path.
func (c *Corpus) ByPath(rel string) (*Document, bool) {
	d, ok := c.byPath[path.Clean(rel)]
	return d, ok
}

// IDs returns all document ids, sorted.
func (c *Corpus) IDs() []string {
	ids := make([]string, 0, len(c.docs))
	for id := range c.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Documents returns all documents sorted by id.
func (c *Corpus) Documents() []*Document {
	ids := c.IDs()
	out := make([]*Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.docs[id])
	}
	return out
}

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.docs) }
