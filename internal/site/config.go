// Package site declares the documentation site's configuration: identity,
// locales, content preset, external stylesheets and theme.
//
// The values here are plain data. Field names and nesting follow the schema
// the static-site generator reads, so a SiteConfig marshals to JSON the
// generator accepts as-is.
package site

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SiteConfig is the site-wide configuration consumed by the generator.
type SiteConfig struct {
	Title                 string           `json:"title"`
	Tagline               string           `json:"tagline"`
	Favicon               string           `json:"favicon,omitempty"`
	URL                   string           `json:"url"`
	BaseURL               string           `json:"baseUrl"`
	OrganizationName      string           `json:"organizationName"`
	ProjectName           string           `json:"projectName"`
	OnBrokenLinks         BrokenLinkPolicy `json:"onBrokenLinks"`
	OnBrokenMarkdownLinks BrokenLinkPolicy `json:"onBrokenMarkdownLinks"`
	I18n                  I18n             `json:"i18n"`
	Presets               []Preset         `json:"presets"`
	Stylesheets           []Stylesheet     `json:"stylesheets,omitempty"`
	ThemeConfig           ThemeConfig      `json:"themeConfig"`
}

// I18n is the ordered locale set; DefaultLocale must be one of Locales.
type I18n struct {
	DefaultLocale string   `json:"defaultLocale"`
	Locales       []string `json:"locales"`
}

// HasLocale reports whether code is in the locale set.
func (i I18n) HasLocale(code string) bool {
	for _, l := range i.Locales {
		if l == code {
			return true
		}
	}
	return false
}

// Preset is one bundled generator profile. A nil Docs or Blog disables that
// content type and serializes as false.
type Preset struct {
	Name  string
	Docs  *DocsOptions
	Blog  *BlogOptions
	Theme PresetTheme
}

// DocsOptions configures the documentation content type.
type DocsOptions struct {
	SidebarPath   string `json:"sidebarPath"`
	RouteBasePath string `json:"routeBasePath,omitempty"`
}

// BlogOptions configures the blog content type.
type BlogOptions struct {
	ShowReadingTime bool `json:"showReadingTime,omitempty"`
}

// PresetTheme carries the preset's styling hooks.
type PresetTheme struct {
	CustomCSS string `json:"customCss,omitempty"`
}

type presetOptions struct {
	Docs  json.RawMessage `json:"docs"`
	Blog  json.RawMessage `json:"blog"`
	Theme PresetTheme     `json:"theme"`
}

var jsonFalse = json.RawMessage("false")

// MarshalJSON encodes the preset as the generator's [name, options] pair.
func (p Preset) MarshalJSON() ([]byte, error) {
	opts := presetOptions{Docs: jsonFalse, Blog: jsonFalse, Theme: p.Theme}
	if p.Docs != nil {
		b, err := json.Marshal(p.Docs)
		if err != nil {
			return nil, err
		}
		opts.Docs = b
	}
	if p.Blog != nil {
		b, err := json.Marshal(p.Blog)
		if err != nil {
			return nil, err
		}
		opts.Blog = b
	}
	return json.Marshal([]any{p.Name, opts})
}

// UnmarshalJSON accepts either a bare preset name or a [name, options] pair.
func (p *Preset) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Preset{Name: name}
		return nil
	}
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("preset must be a name or [name, options]: %w", err)
	}
	if len(pair) == 0 || len(pair) > 2 {
		return fmt.Errorf("preset must be a name or [name, options], got %d elements", len(pair))
	}
	out := Preset{}
	if err := json.Unmarshal(pair[0], &out.Name); err != nil {
		return fmt.Errorf("preset name: %w", err)
	}
	if len(pair) == 2 {
		var opts presetOptions
		if err := unmarshalStrict(pair[1], &opts); err != nil {
			return fmt.Errorf("preset options: %w", err)
		}
		out.Theme = opts.Theme
		var err error
		if out.Docs, err = decodeOptional[DocsOptions](opts.Docs); err != nil {
			return fmt.Errorf("preset docs: %w", err)
		}
		if out.Blog, err = decodeOptional[BlogOptions](opts.Blog); err != nil {
			return fmt.Errorf("preset blog: %w", err)
		}
	}
	*p = out
	return nil
}

// decodeOptional returns nil for an absent or false option block.
func decodeOptional[T any](raw json.RawMessage) (*T, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "false" || s == "null" {
		return nil, nil
	}
	v := new(T)
	if err := unmarshalStrict(raw, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Stylesheet is an external stylesheet injected into every page head.
type Stylesheet struct {
	Href        string `json:"href"`
	Type        string `json:"type,omitempty"`
	Integrity   string `json:"integrity,omitempty"`
	CrossOrigin string `json:"crossorigin,omitempty"`
}

// ThemeConfig holds the classic theme's navbar, footer and highlighter.
type ThemeConfig struct {
	Image  string `json:"image,omitempty"`
	Navbar Navbar `json:"navbar"`
	Footer Footer `json:"footer"`
	Prism  Prism  `json:"prism"`
}

// Logo is the navbar brand image.
type Logo struct {
	Alt string `json:"alt"`
	Src string `json:"src"`
}

// Footer is the page footer. Copyright may contain a {year} placeholder.
type Footer struct {
	Style     FooterStyle       `json:"style"`
	Links     []FooterLinkGroup `json:"links"`
	Copyright string            `json:"copyright"`
}

// FooterLinkGroup is a titled column of footer links.
type FooterLinkGroup struct {
	Title string       `json:"title"`
	Items []FooterLink `json:"items"`
}

// FooterLink points either at a site route (To) or an external URL (Href).
type FooterLink struct {
	Label string `json:"label"`
	To    string `json:"to,omitempty"`
	Href  string `json:"href,omitempty"`
}

// Prism names the light and dark syntax-highlighting themes.
type Prism struct {
	Theme     string `json:"theme"`
	DarkTheme string `json:"darkTheme"`
}

// DocsPreset returns the docs options of the first preset that enables docs.
func (c *SiteConfig) DocsPreset() (*DocsOptions, bool) {
	for _, p := range c.Presets {
		if p.Docs != nil {
			return p.Docs, true
		}
	}
	return nil, false
}

// CustomCSS returns the stylesheet paths declared by the presets.
func (c *SiteConfig) CustomCSS() []string {
	var out []string
	for _, p := range c.Presets {
		if p.Theme.CustomCSS != "" {
			out = append(out, p.Theme.CustomCSS)
		}
	}
	return out
}

// SidebarRefs returns the sidebar ids referenced by docSidebar navbar items,
// in declaration order.
func (c *SiteConfig) SidebarRefs() []string {
	var refs []string
	for _, item := range c.ThemeConfig.Navbar.Items {
		if ds, ok := item.(DocSidebarItem); ok {
			refs = append(refs, ds.SidebarID)
		}
	}
	return refs
}
