package site

import (
	"strconv"
	"strings"
	"time"
)

// YearPlaceholder is replaced by the current year in the footer copyright.
const YearPlaceholder = "{year}"

// Declaration returns the site's literal configuration. Each call builds a
// fresh value; callers own it and must treat it as read-only.
func Declaration() *SiteConfig {
	return &SiteConfig{
		Title:                 "Fan's Workspace",
		Tagline:               "Welcome to my workspace",
		Favicon:               "img/logo.svg",
		URL:                   "https://fan-55.github.io/",
		BaseURL:               "/",
		OrganizationName:      "Fan-55",
		ProjectName:           "Fan-55.github.io",
		OnBrokenLinks:         PolicyThrow,
		OnBrokenMarkdownLinks: PolicyWarn,
		I18n: I18n{
			DefaultLocale: "en",
			Locales:       []string{"en", "zh-TW"},
		},
		Presets: []Preset{{
			Name: "classic",
			Docs: &DocsOptions{
				SidebarPath:   "./sidebars.json",
				RouteBasePath: "docs",
			},
			Theme: PresetTheme{CustomCSS: "./src/css/custom.css"},
		}},
		Stylesheets: []Stylesheet{{
			Href:        "https://cdn.jsdelivr.net/npm/katex@0.13.24/dist/katex.min.css",
			Type:        "text/css",
			Integrity:   "sha384-odtC+0UGzzFL/6PNoE8rX/SPcQDXBJ+uRepguP4QkPCm2LBxH3FA3y+fKSiJ+AmM",
			CrossOrigin: "anonymous",
		}},
		ThemeConfig: ThemeConfig{
			Image: "img/docusaurus-social-card.jpg",
			Navbar: Navbar{
				Title: "Fan's Workspace",
				Logo:  &Logo{Alt: "My Site Logo", Src: "img/logo.svg"},
				Items: []NavbarItem{
					DocSidebarItem{SidebarID: "notes", Label: "Notes", Position: PositionLeft},
					LocaleDropdownItem{Position: PositionRight},
					LinkItem{Href: "https://github.com/Fan-55", Label: "GitHub", Position: PositionRight},
				},
			},
			Footer: Footer{
				Style:     FooterDark,
				Links:     []FooterLinkGroup{},
				Copyright: "Copyright © " + YearPlaceholder + " Fan's Workspace, Inc. Built with Docusaurus.",
			},
			Prism: Prism{Theme: "github", DarkTheme: "vsDark"},
		},
	}
}

// Load returns the declaration with build-time values filled in.
func Load(now time.Time) *SiteConfig {
	cfg := Declaration()
	cfg.ThemeConfig.Footer.Copyright = RenderCopyright(cfg.ThemeConfig.Footer.Copyright, now)
	return cfg
}

// RenderCopyright substitutes the year placeholder in tmpl.
func RenderCopyright(tmpl string, now time.Time) string {
	return strings.ReplaceAll(tmpl, YearPlaceholder, strconv.Itoa(now.Year()))
}
