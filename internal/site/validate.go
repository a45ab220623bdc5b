package site

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/notesite/internal/errors"
)

// KeyContext is the error context key naming the offending config key.
const KeyContext = "key"

func problem(key, format string, args ...any) error {
	return errors.ValidationError(fmt.Sprintf(format, args...)).
		WithContext(KeyContext, key).
		Build()
}

// Validate reports every invariant the generator enforces on this value.
// It never mutates c; a nil result means the generator would accept it.
func (c *SiteConfig) Validate() []error {
	var errs []error
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, problem("title", "title is required"))
	}
	errs = append(errs, validateURLs(c)...)
	errs = append(errs, validateI18n(c.I18n)...)

	if !c.OnBrokenLinks.Valid() {
		errs = append(errs, problem("onBrokenLinks", "unknown broken link policy %q", c.OnBrokenLinks))
	}
	if !c.OnBrokenMarkdownLinks.Valid() {
		errs = append(errs, problem("onBrokenMarkdownLinks", "unknown broken link policy %q", c.OnBrokenMarkdownLinks))
	}

	errs = append(errs, validatePresets(c.Presets)...)
	for i, s := range c.Stylesheets {
		errs = append(errs, validateStylesheet(fmt.Sprintf("stylesheets[%d]", i), s)...)
	}
	errs = append(errs, validateTheme(c.ThemeConfig)...)
	return errs
}

func validateURLs(c *SiteConfig) []error {
	var errs []error
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, problem("url", "url must be absolute, got %q", c.URL))
	}
	if !strings.HasPrefix(c.BaseURL, "/") || !strings.HasSuffix(c.BaseURL, "/") {
		errs = append(errs, problem("baseUrl", "baseUrl must start and end with '/', got %q", c.BaseURL))
	}
	return errs
}

func validateI18n(i I18n) []error {
	var errs []error
	if len(i.Locales) == 0 {
		return append(errs, problem("i18n.locales", "locale set is empty"))
	}
	seen := make(map[string]bool, len(i.Locales))
	for idx, code := range i.Locales {
		key := fmt.Sprintf("i18n.locales[%d]", idx)
		if seen[code] {
			errs = append(errs, problem(key, "duplicate locale %q", code))
		}
		seen[code] = true
		if _, err := language.Parse(code); err != nil {
			errs = append(errs, problem(key, "locale %q is not a valid BCP 47 tag: %v", code, err))
		}
	}
	if !i.HasLocale(i.DefaultLocale) {
		errs = append(errs, problem("i18n.defaultLocale", "default locale %q is not in the locale set %v", i.DefaultLocale, i.Locales))
	}
	return errs
}

func validatePresets(presets []Preset) []error {
	if len(presets) != 1 {
		return []error{problem("presets", "exactly one preset must be active, got %d", len(presets))}
	}
	p := presets[0]
	var errs []error
	if p.Name != "classic" {
		errs = append(errs, problem("presets[0]", "unsupported preset %q", p.Name))
	}
	if p.Docs != nil && strings.TrimSpace(p.Docs.SidebarPath) == "" {
		errs = append(errs, problem("presets[0].docs.sidebarPath", "sidebarPath is required when docs are enabled"))
	}
	return errs
}

var sriPrefixes = []string{"sha256-", "sha384-", "sha512-"}

func validateStylesheet(key string, s Stylesheet) []error {
	var errs []error
	if strings.TrimSpace(s.Href) == "" {
		errs = append(errs, problem(key+".href", "stylesheet href is required"))
	}
	if s.Integrity != "" {
		ok := false
		for _, p := range sriPrefixes {
			if strings.HasPrefix(s.Integrity, p) {
				ok = true
				break
			}
		}
		if !ok {
			errs = append(errs, problem(key+".integrity", "integrity must be a sha256/sha384/sha512 hash"))
		}
	}
	switch s.CrossOrigin {
	case "", "anonymous", "use-credentials":
	default:
		errs = append(errs, problem(key+".crossorigin", "unknown CORS policy %q", s.CrossOrigin))
	}
	return errs
}

func validateTheme(t ThemeConfig) []error {
	var errs []error
	for i, item := range t.Navbar.Items {
		key := fmt.Sprintf("themeConfig.navbar.items[%d]", i)
		if !item.ItemPosition().Valid() {
			errs = append(errs, problem(key+".position", "position must be left or right, got %q", item.ItemPosition()))
		}
		switch it := item.(type) {
		case DocSidebarItem:
			if it.SidebarID == "" {
				errs = append(errs, problem(key+".sidebarId", "sidebarId is required"))
			}
		case LinkItem:
			if it.Href == "" {
				errs = append(errs, problem(key+".href", "href is required"))
			}
		case LocaleDropdownItem:
		}
	}
	if !t.Footer.Style.Valid() {
		errs = append(errs, problem("themeConfig.footer.style", "footer style must be dark or light, got %q", t.Footer.Style))
	}
	if !prismThemes[t.Prism.Theme] {
		errs = append(errs, problem("themeConfig.prism.theme", "unknown prism theme %q", t.Prism.Theme))
	}
	if !prismThemes[t.Prism.DarkTheme] {
		errs = append(errs, problem("themeConfig.prism.darkTheme", "unknown prism theme %q", t.Prism.DarkTheme))
	}
	return errs
}
