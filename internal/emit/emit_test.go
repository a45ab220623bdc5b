package emit

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/notesite/internal/corpus"
	"git.home.luguber.info/inful/notesite/internal/sidebar"
	"git.home.luguber.info/inful/notesite/internal/site"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func declared() Options {
	return Options{
		Site:     site.Load(fixedNow),
		Sidebars: sidebar.Declaration(),
		BuildID:  "00000000-0000-4000-8000-000000000000",
		Now:      fixedNow,
	}
}

func assertGolden(t *testing.T, golden string, actual []byte) {
	t.Helper()
	path := filepath.Join("testdata", golden)
	// #nosec G304 - test file
	want, err := os.ReadFile(path)
	require.NoError(t, err)
	if !bytes.Equal(bytes.TrimSpace(want), bytes.TrimSpace(actual)) {
		if os.Getenv("UPDATE_GOLDEN") == "1" {
			require.NoError(t, os.WriteFile(path, actual, 0o600))
			return
		}
		t.Fatalf("%s mismatch; run UPDATE_GOLDEN=1 go test ./internal/emit to accept\n--- got ---\n%s", golden, actual)
	}
}

func TestWrite_JSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	m, err := Write(dir, declared())
	require.NoError(t, err)

	assert.Equal(t, []string{ConfigFile, "sidebars.json", IndexFile}, m.Files)
	assert.Equal(t, []string{"notes"}, m.Sidebars)
	assert.Equal(t, 3, m.Indexes)
	assert.Equal(t, fixedNow, m.GeneratedAt)

	sidebars, err := os.ReadFile(filepath.Join(dir, "sidebars.json"))
	require.NoError(t, err)
	assertGolden(t, "sidebars.golden.json", sidebars)

	indexes, err := os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	assertGolden(t, "generated-index.golden.json", indexes)

	// The emitted files read back into equivalent declarations.
	cfg, err := site.LoadFile(filepath.Join(dir, ConfigFile))
	require.NoError(t, err)
	assert.Equal(t, "Fan's Workspace", cfg.Title)
	assert.Equal(t, []string{"en", "zh-TW"}, cfg.I18n.Locales)
	assert.Equal(t, []string{"notes"}, cfg.SidebarRefs())
	docs, ok := cfg.DocsPreset()
	require.True(t, ok)
	assert.Equal(t, "./sidebars.json", docs.SidebarPath)
	assert.Contains(t, cfg.ThemeConfig.Footer.Copyright, "2026")

	reg, err := sidebar.LoadFile(filepath.Join(dir, "sidebars.json"))
	require.NoError(t, err)
	assert.Equal(t, sidebar.Declaration().DocIDs(), reg.DocIDs())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temporary file left behind: %s", e.Name())
	}
}

func TestWrite_YAMLSidebars(t *testing.T) {
	dir := t.TempDir()
	opts := declared()
	opts.Format = FormatYAML
	m, err := Write(dir, opts)
	require.NoError(t, err)
	assert.Contains(t, m.Files, "sidebars.yaml")
	assert.NoFileExists(t, filepath.Join(dir, "sidebars.json"))

	cfg, err := site.LoadFile(filepath.Join(dir, ConfigFile))
	require.NoError(t, err)
	docs, _ := cfg.DocsPreset()
	assert.Equal(t, "./sidebars.yaml", docs.SidebarPath)

	// The caller's declaration is untouched.
	orig, _ := opts.Site.DocsPreset()
	assert.Equal(t, "./sidebars.json", orig.SidebarPath)

	data, err := os.ReadFile(filepath.Join(dir, "sidebars.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "{", "expected block style")

	var root yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &root))
	top := root.Content[0]
	require.Equal(t, yaml.MappingNode, top.Kind)
	assert.Equal(t, "notes", top.Content[0].Value)

	var decoded map[string][]map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	notes := decoded["notes"]
	require.Len(t, notes, 4)
	assert.Equal(t, "readme", notes[0]["id"])
	assert.Equal(t, "Data structures and Algorithms", notes[3]["label"])
}

func TestWrite_ManifestAndStale(t *testing.T) {
	docsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "readme.md"), []byte("# README\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "intro.md"), []byte("# Intro\n"), 0o600))
	c, err := corpus.Discover(docsDir)
	require.NoError(t, err)

	out := t.TempDir()
	opts := declared()
	opts.BuildID = ""
	opts.Corpus = c
	m, err := Write(out, opts)
	require.NoError(t, err)
	_, err = uuid.Parse(m.BuildID)
	require.NoError(t, err)
	require.Len(t, m.Documents, 2)
	assert.Equal(t, "intro", m.Documents[0].ID)

	read, err := ReadManifest(out)
	require.NoError(t, err)
	assert.Equal(t, m.BuildID, read.BuildID)
	assert.Empty(t, read.Stale(c))

	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "intro.md"), []byte("# Intro, revised\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "new.md"), []byte("# New\n"), 0o600))
	c2, err := corpus.Discover(docsDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"intro", "new"}, read.Stale(c2))
}

func TestReadManifest_Missing(t *testing.T) {
	_, err := ReadManifest(t.TempDir())
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	assert.Equal(t, "sidebars.yaml", f.SidebarsFile())

	_, err = ParseFormat("toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid options")
}

func TestInputsFingerprint(t *testing.T) {
	opts := declared()
	m, err := Write(t.TempDir(), opts)
	require.NoError(t, err)

	fp, err := InputsFingerprint(opts)
	require.NoError(t, err)
	assert.Len(t, fp, 64)
	assert.Equal(t, m.Inputs, fp)

	opts.Site.Tagline = "changed"
	changed, err := InputsFingerprint(opts)
	require.NoError(t, err)
	assert.NotEqual(t, fp, changed)

	opts = declared()
	opts.Format = FormatYAML
	yamlFP, err := InputsFingerprint(opts)
	require.NoError(t, err)
	assert.NotEqual(t, fp, yamlFP)
}
