// Package emit writes the files the static-site generator reads: the site
// configuration, the sidebars, the generated index pages and a build
// manifest.
package emit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/notesite/internal/corpus"
	"git.home.luguber.info/inful/notesite/internal/errors"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/sidebar"
	"git.home.luguber.info/inful/notesite/internal/site"
	"git.home.luguber.info/inful/notesite/internal/version"
)

// Output file names.
const (
	ConfigFile   = "docusaurus.config.json"
	IndexFile    = "generated-index.json"
	ManifestFile = "notesite-manifest.json"
)

// Options selects what Write emits.
type Options struct {
	Site     *site.SiteConfig
	Sidebars *sidebar.Registry
	// Corpus, when set, contributes per-document fingerprints to the manifest.
	Corpus *corpus.Corpus
	Format Format
	// BuildID defaults to a random UUID.
	BuildID string
	// Now defaults to the current time.
	Now time.Time
}

// Manifest records one emit run.
type Manifest struct {
	BuildID     string          `json:"build_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Version     string          `json:"version"`
	Format      Format          `json:"format"`
	Files       []string        `json:"files"`
	Sidebars    []string        `json:"sidebars"`
	Indexes     int             `json:"generated_indexes"`
	Inputs      string          `json:"inputs_fingerprint"`
	Documents   []DocumentEntry `json:"documents,omitempty"`
}

// DocumentEntry is a document's fingerprint at emit time.
type DocumentEntry struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
}

// Write emits all generator inputs into dir, creating it if needed. Each file
// is replaced atomically; the manifest is written last.
func Write(dir string, opts Options) (*Manifest, error) {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if opts.BuildID == "" {
		opts.BuildID = uuid.NewString()
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", dir).Build()
	}

	m := &Manifest{
		BuildID:     opts.BuildID,
		GeneratedAt: opts.Now.UTC(),
		Version:     version.Version,
		Format:      opts.Format,
		Sidebars:    opts.Sidebars.Names(),
		Indexes:     len(opts.Sidebars.GeneratedIndexes()),
	}

	files, err := render(opts)
	if err != nil {
		return nil, err
	}
	m.Inputs = fingerprint(files)
	for _, f := range files {
		if err := writeFileAtomic(filepath.Join(dir, f.name), f.data); err != nil {
			return nil, err
		}
		m.Files = append(m.Files, f.name)
	}

	if opts.Corpus != nil {
		for _, doc := range opts.Corpus.Documents() {
			m.Documents = append(m.Documents, DocumentEntry{ID: doc.ID, Path: doc.Path, Fingerprint: doc.Fingerprint})
		}
	}
	data, err := marshalJSON(m)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryBuild, "failed to encode manifest").Build()
	}
	if err := writeFileAtomic(filepath.Join(dir, ManifestFile), data); err != nil {
		return nil, err
	}

	slog.Info("Generated site inputs",
		logfields.Path(dir),
		logfields.BuildID(m.BuildID),
		logfields.Count(len(m.Files)+1))
	return m, nil
}

type renderedFile struct {
	name string
	data []byte
}

// render encodes every generator input in write order.
func render(opts Options) ([]renderedFile, error) {
	sidebarsFile := opts.Format.SidebarsFile()
	cfg := withSidebarPath(opts.Site, "./"+sidebarsFile)
	outputs := []struct {
		name    string
		marshal func() ([]byte, error)
	}{
		{ConfigFile, func() ([]byte, error) { return MarshalSite(cfg) }},
		{sidebarsFile, func() ([]byte, error) { return MarshalSidebars(opts.Sidebars, opts.Format) }},
		{IndexFile, func() ([]byte, error) { return MarshalIndexes(opts.Sidebars) }},
	}
	files := make([]renderedFile, 0, len(outputs))
	for _, out := range outputs {
		data, err := out.marshal()
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryBuild, "failed to encode generator input").
				WithContext("file", out.name).Build()
		}
		files = append(files, renderedFile{name: out.name, data: data})
	}
	return files, nil
}

func fingerprint(files []renderedFile) string {
	h := sha256.New()
	for _, f := range files {
		h.Write([]byte(f.name))
		h.Write([]byte{0})
		h.Write(f.data)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// InputsFingerprint hashes the generator inputs Write would emit for opts,
// without writing anything.
func InputsFingerprint(opts Options) (string, error) {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	files, err := render(opts)
	if err != nil {
		return "", err
	}
	return fingerprint(files), nil
}

// withSidebarPath returns a copy of cfg whose docs preset points at the
// emitted sidebars file. cfg itself is not modified.
func withSidebarPath(cfg *site.SiteConfig, sidebarPath string) *site.SiteConfig {
	out := *cfg
	out.Presets = make([]site.Preset, len(cfg.Presets))
	copy(out.Presets, cfg.Presets)
	for i, p := range out.Presets {
		if p.Docs != nil {
			docs := *p.Docs
			docs.SidebarPath = sidebarPath
			out.Presets[i].Docs = &docs
		}
	}
	return &out
}

// ReadManifest loads the manifest a previous Write left in dir.
func ReadManifest(dir string) (*Manifest, error) {
	p := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(filepath.Clean(p))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNotFound, "no manifest in output directory").
			WithContext("path", p).Build()
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapError(err, errors.CategoryBuild, "invalid manifest").
			WithContext("path", p).Build()
	}
	return &m, nil
}

// Stale returns the ids of documents whose fingerprint differs from the
// manifest's, plus documents the manifest does not know.
func (m *Manifest) Stale(c *corpus.Corpus) []string {
	known := make(map[string]string, len(m.Documents))
	for _, d := range m.Documents {
		known[d.ID] = d.Fingerprint
	}
	var stale []string
	for _, doc := range c.Documents() {
		if fp, ok := known[doc.ID]; !ok || fp != doc.Fingerprint {
			stale = append(stale, doc.ID)
		}
	}
	return stale
}
