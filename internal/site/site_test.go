package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/errors"
)

func keysOf(t *testing.T, errs []error) []string {
	t.Helper()
	keys := make([]string, 0, len(errs))
	for _, err := range errs {
		ce, ok := errors.AsClassified(err)
		require.True(t, ok, "expected classified error, got %v", err)
		key, _ := ce.Context().GetString(KeyContext)
		keys = append(keys, key)
	}
	return keys
}

func TestDeclaration_IsValid(t *testing.T) {
	cfg := Load(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, cfg.Validate())
}

func TestDeclaration_Locales(t *testing.T) {
	cfg := Declaration()
	assert.Equal(t, "en", cfg.I18n.DefaultLocale)
	assert.Equal(t, []string{"en", "zh-TW"}, cfg.I18n.Locales)
	assert.True(t, cfg.I18n.HasLocale(cfg.I18n.DefaultLocale))
}

func TestDeclaration_FreshValueEachCall(t *testing.T) {
	a := Declaration()
	a.I18n.Locales[0] = "fr"
	b := Declaration()
	assert.Equal(t, "en", b.I18n.Locales[0])
}

func TestLoad_RendersCopyrightYear(t *testing.T) {
	cfg := Load(time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Copyright © 2031 Fan's Workspace, Inc. Built with Docusaurus.", cfg.ThemeConfig.Footer.Copyright)
	assert.Contains(t, Declaration().ThemeConfig.Footer.Copyright, YearPlaceholder)
}

func TestNavbar_ItemsAtKeepsDeclarationOrder(t *testing.T) {
	nav := Declaration().ThemeConfig.Navbar
	right := nav.ItemsAt(PositionRight)
	require.Len(t, right, 2)
	assert.IsType(t, LocaleDropdownItem{}, right[0])
	assert.Equal(t, LinkItem{Href: "https://github.com/Fan-55", Label: "GitHub", Position: PositionRight}, right[1])

	left := nav.ItemsAt(PositionLeft)
	require.Len(t, left, 1)
	assert.Equal(t, "notes", left[0].(DocSidebarItem).SidebarID)
}

func TestSidebarRefs(t *testing.T) {
	assert.Equal(t, []string{"notes"}, Declaration().SidebarRefs())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *SiteConfig)
		key    string
	}{
		{"default locale missing", func(c *SiteConfig) { c.I18n.DefaultLocale = "fr" }, "i18n.defaultLocale"},
		{"empty locale set", func(c *SiteConfig) { c.I18n.Locales = nil }, "i18n.locales"},
		{"duplicate locale", func(c *SiteConfig) { c.I18n.Locales = []string{"en", "en"} }, "i18n.locales[1]"},
		{"malformed locale", func(c *SiteConfig) { c.I18n.Locales = []string{"en", "not a tag"} }, "i18n.locales[1]"},
		{"empty stylesheet href", func(c *SiteConfig) { c.Stylesheets[0].Href = "" }, "stylesheets[0].href"},
		{"bad integrity", func(c *SiteConfig) { c.Stylesheets[0].Integrity = "md5-abc" }, "stylesheets[0].integrity"},
		{"bad crossorigin", func(c *SiteConfig) { c.Stylesheets[0].CrossOrigin = "everyone" }, "stylesheets[0].crossorigin"},
		{"bad base url", func(c *SiteConfig) { c.BaseURL = "docs" }, "baseUrl"},
		{"relative url", func(c *SiteConfig) { c.URL = "fan-55.github.io" }, "url"},
		{"no title", func(c *SiteConfig) { c.Title = " " }, "title"},
		{"bad policy", func(c *SiteConfig) { c.OnBrokenLinks = "explode" }, "onBrokenLinks"},
		{"two presets", func(c *SiteConfig) { c.Presets = append(c.Presets, Preset{Name: "classic"}) }, "presets"},
		{"bad position", func(c *SiteConfig) {
			c.ThemeConfig.Navbar.Items[0] = DocSidebarItem{SidebarID: "notes", Position: "top"}
		}, "themeConfig.navbar.items[0].position"},
		{"unknown prism theme", func(c *SiteConfig) { c.ThemeConfig.Prism.DarkTheme = "neon" }, "themeConfig.prism.darkTheme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Declaration()
			tt.mutate(cfg)
			assert.Contains(t, keysOf(t, cfg.Validate()), tt.key)
		})
	}
}

func TestMarshal_GeneratorShape(t *testing.T) {
	data, err := json.Marshal(Declaration())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "throw", m["onBrokenLinks"])
	assert.Equal(t, "/", m["baseUrl"])

	presets := m["presets"].([]any)
	require.Len(t, presets, 1)
	pair := presets[0].([]any)
	assert.Equal(t, "classic", pair[0])
	opts := pair[1].(map[string]any)
	assert.Equal(t, false, opts["blog"])
	assert.Equal(t, "./sidebars.json", opts["docs"].(map[string]any)["sidebarPath"])

	items := m["themeConfig"].(map[string]any)["navbar"].(map[string]any)["items"].([]any)
	require.Len(t, items, 3)
	assert.Equal(t, "docSidebar", items[0].(map[string]any)["type"])
	assert.Equal(t, "localeDropdown", items[1].(map[string]any)["type"])
	_, hasType := items[2].(map[string]any)["type"]
	assert.False(t, hasType)

	footer := m["themeConfig"].(map[string]any)["footer"].(map[string]any)
	assert.Equal(t, []any{}, footer["links"])
}

func TestDecode_RoundTrip(t *testing.T) {
	orig := Declaration()
	data, err := json.Marshal(orig)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, orig, decoded)
}

func TestLoadFile_JSONCWithComments(t *testing.T) {
	src := `{
  // site identity
  "title": "Notes",
  "tagline": "t",
  "url": "https://example.org/",
  "baseUrl": "/notes/",
  "organizationName": "o",
  "projectName": "p",
  "onBrokenLinks": "WARN",
  "onBrokenMarkdownLinks": "ignore",
  "i18n": {"defaultLocale": "en", "locales": ["en"]},
  "presets": ["classic"],
  "themeConfig": {
    "navbar": {"title": "Notes", "items": [
      {"type": "docSidebar", "sidebarId": "notes", "position": "left", "label": "Notes"},
      {"href": "https://example.org", "label": "Home", "position": "right"},
    ]},
    "footer": {"style": "light", "links": [], "copyright": "c"},
    "prism": {"theme": "github", "darkTheme": "dracula"}
  }
}`
	path := filepath.Join(t.TempDir(), "site.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, PolicyWarn, cfg.OnBrokenLinks)
	assert.Equal(t, "/notes/", cfg.BaseURL)
	require.Len(t, cfg.Presets, 1)
	assert.Nil(t, cfg.Presets[0].Docs)
	assert.Equal(t, []NavbarItem{
		DocSidebarItem{SidebarID: "notes", Label: "Notes", Position: PositionLeft},
		LinkItem{Href: "https://example.org", Label: "Home", Position: PositionRight},
	}, cfg.ThemeConfig.Navbar.Items)
}

func TestDecode_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown navbar type": `{"themeConfig": {"navbar": {"items": [{"type": "dropdown", "position": "left"}]}}}`,
		"unknown field":       `{"titel": "x"}`,
		"bad policy":          `{"onBrokenLinks": "explode"}`,
		"navbar item typo":    `{"themeConfig": {"navbar": {"items": [{"href": "https://x", "lable": "X", "position": "left"}]}}}`,
		"navbar typo":         `{"themeConfig": {"navbar": {"titel": "x"}}}`,
		"preset options typo": `{"presets": [["classic", {"thme": {}}]]}`,
		"docs options typo":   `{"presets": [["classic", {"docs": {"sidebarPth": "./sidebars.json"}}]]}`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(src))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestDecode_OmittedFooterLinksMarshalAsEmpty(t *testing.T) {
	cfg, err := Decode([]byte(`{"themeConfig": {"footer": {"style": "dark", "links": [{"title": "More"}]}}}`))
	require.NoError(t, err)
	require.Len(t, cfg.ThemeConfig.Footer.Links, 1)
	assert.NotNil(t, cfg.ThemeConfig.Footer.Links[0].Items)

	cfg, err = Decode([]byte(`{"themeConfig": {"footer": {"style": "dark", "copyright": "c"}}}`))
	require.NoError(t, err)
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	footer := m["themeConfig"].(map[string]any)["footer"].(map[string]any)
	assert.Equal(t, []any{}, footer["links"])
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}
