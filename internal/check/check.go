// Package check reports, before the static-site generator runs, the problems
// that would make it fail or warn: invalid configuration, sidebar entries
// that do not resolve, missing stylesheets and broken links.
package check

import (
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/notesite/internal/corpus"
	"git.home.luguber.info/inful/notesite/internal/errors"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/sidebar"
	"git.home.luguber.info/inful/notesite/internal/site"
)

// Input is everything one check run looks at. Corpus and SiteDir are
// optional: without a corpus no document or link rules run, and without a
// site directory no file-existence rules run.
type Input struct {
	Site     *site.SiteConfig
	Sidebars *sidebar.Registry
	Corpus   *corpus.Corpus
	SiteDir  string
}

// Run checks in and returns every issue found.
func Run(in Input) *Result {
	res := &Result{}
	if in.Corpus != nil {
		res.DocsTotal = in.Corpus.Len()
	}

	for _, err := range in.Site.Validate() {
		res.add(RuleSiteConfig, SeverityError, keyOf(err), "%s", messageOf(err))
	}
	for _, err := range in.Sidebars.Validate() {
		res.add(RuleSidebar, SeverityError, keyOf(err), "%s", messageOf(err))
	}
	for _, ref := range in.Site.SidebarRefs() {
		if !in.Sidebars.Has(ref) {
			res.add(RuleNavbarSidebarRef, SeverityError, "themeConfig.navbar.items", "navbar references undeclared sidebar %q", ref)
		}
	}
	if in.SiteDir != "" {
		checkCustomCSS(res, in)
	}
	if in.Corpus != nil {
		checkDocRefs(res, in)
		checkLinks(res, in)
	}

	slog.Debug("Check finished",
		logfields.Count(len(res.Issues)),
		slog.Int("errors", res.ErrorCount()),
		slog.Int("warnings", res.WarningCount()))
	return res
}

func keyOf(err error) string {
	if ce, ok := errors.AsClassified(err); ok {
		if key, ok := ce.Context().GetString(site.KeyContext); ok {
			return key
		}
	}
	return ""
}

func messageOf(err error) string {
	if ce, ok := errors.AsClassified(err); ok {
		return ce.Message()
	}
	return err.Error()
}

func checkCustomCSS(res *Result, in Input) {
	for _, css := range in.Site.CustomCSS() {
		p := filepath.Join(in.SiteDir, filepath.FromSlash(css))
		if _, err := os.Stat(p); err != nil {
			res.add(RuleMissingCustomCSS, SeverityError, "presets.theme.customCss", "custom stylesheet %s does not exist", css)
		}
	}
}

func checkDocRefs(res *Result, in Input) {
	referenced := make(map[string]bool)
	for _, ref := range in.Sidebars.Docs() {
		id := ref.Doc.ID
		referenced[id] = true
		key := strings.Join(append([]string{ref.Sidebar}, ref.Trail...), " > ")
		doc, ok := in.Corpus.Get(id)
		switch {
		case !ok:
			res.add(RuleUnresolvedDoc, SeverityError, key, "document %q not found in %s", id, in.Corpus.Root)
		case doc.Draft:
			res.add(RuleDraftInSidebar, SeverityError, key, "document %q is a draft and is excluded from production builds", id)
		}
	}
	for _, doc := range in.Corpus.Documents() {
		if !referenced[doc.ID] && !doc.Draft && !doc.Fields.Unlisted {
			res.add(RuleUnlistedDoc, SeverityInfo, doc.Path, "document %q is not in any sidebar", doc.ID)
		}
	}
}

// routes is the set of paths the generated site serves.
type routes struct {
	baseURL  string
	docsBase string
	set      map[string]bool
	locales  []string
}

func buildRoutes(in Input) routes {
	r := routes{baseURL: in.Site.BaseURL, set: map[string]bool{}}
	if r.baseURL == "" {
		r.baseURL = "/"
	}
	r.docsBase = r.baseURL
	if docs, ok := in.Site.DocsPreset(); ok {
		r.docsBase = path.Join(r.baseURL, docs.RouteBasePath)
	}
	r.set[normalizeRoute(r.baseURL)] = true
	for _, doc := range in.Corpus.Documents() {
		r.set[normalizeRoute(path.Join(r.docsBase, doc.Slug))] = true
	}
	for _, page := range in.Sidebars.GeneratedIndexes() {
		r.set[normalizeRoute(path.Join(r.docsBase, page.Slug))] = true
	}
	for _, l := range in.Site.I18n.Locales {
		if l != in.Site.I18n.DefaultLocale {
			r.locales = append(r.locales, l)
		}
	}
	return r
}

// has reports whether route is served, in any locale.
func (r routes) has(route string) bool {
	route = normalizeRoute(route)
	if r.set[route] {
		return true
	}
	for _, l := range r.locales {
		prefix := normalizeRoute(path.Join(r.baseURL, l))
		if route == prefix {
			return true
		}
		if rest, ok := strings.CutPrefix(route, prefix+"/"); ok && r.set[normalizeRoute(path.Join(r.baseURL, rest))] {
			return true
		}
	}
	return false
}

func normalizeRoute(p string) string {
	p = path.Clean("/" + p)
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// stripFragment removes any query string and fragment.
func stripFragment(dest string) string {
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		return dest[:i]
	}
	return dest
}

func isExternal(dest string) bool {
	if strings.HasPrefix(dest, "//") {
		return true
	}
	u, err := url.Parse(dest)
	return err == nil && u.Scheme != ""
}

func isMarkdown(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range corpus.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func checkLinks(res *Result, in Input) {
	rt := buildRoutes(in)
	for _, doc := range in.Corpus.Documents() {
		for _, link := range doc.Links {
			checkLink(res, in, rt, doc, link)
		}
	}
}

func checkLink(res *Result, in Input, rt routes, doc *corpus.Document, link corpus.Link) {
	dest := strings.TrimSpace(link.Destination)
	if dest == "" || isExternal(dest) {
		return
	}
	target := stripFragment(dest)
	if target == "" {
		return
	}

	if strings.HasPrefix(target, "/") {
		if path.Ext(target) != "" && !isMarkdown(target) {
			checkStatic(res, in, doc, dest, target)
			return
		}
		if !rt.has(target) {
			res.addWithPolicy(in.Site.OnBrokenLinks, RuleBrokenLink, doc.Path, "link to %s matches no route", dest)
		}
		return
	}

	resolved := path.Join(path.Dir(doc.Path), target)
	switch {
	case isMarkdown(target):
		if _, ok := in.Corpus.ByPath(resolved); !ok {
			res.addWithPolicy(in.Site.OnBrokenMarkdownLinks, RuleBrokenMarkdownLink, doc.Path, "markdown link %s does not resolve to a document", dest)
		}
	case path.Ext(target) != "":
		if strings.HasPrefix(resolved, "../") {
			res.addWithPolicy(in.Site.OnBrokenLinks, RuleBrokenLink, doc.Path, "link to %s leaves the docs directory", dest)
			return
		}
		p := filepath.Join(in.Corpus.Root, filepath.FromSlash(resolved))
		if _, err := os.Stat(p); err != nil {
			res.addWithPolicy(in.Site.OnBrokenLinks, RuleBrokenLink, doc.Path, "linked file %s does not exist", dest)
		}
	default:
		// Relative routes resolve against the page's own URL.
		base := path.Join(rt.docsBase, doc.Slug)
		if !strings.HasSuffix(doc.Slug, "/") {
			base = path.Dir(base)
		}
		if !rt.has(path.Join(base, target)) {
			res.addWithPolicy(in.Site.OnBrokenLinks, RuleBrokenLink, doc.Path, "link to %s matches no route", dest)
		}
	}
}

// checkStatic resolves an absolute asset path against the static directory.
func checkStatic(res *Result, in Input, doc *corpus.Document, dest, target string) {
	if in.SiteDir == "" {
		return
	}
	rel := strings.TrimPrefix(target, strings.TrimSuffix(in.Site.BaseURL, "/"))
	p := filepath.Join(in.SiteDir, "static", filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	if _, err := os.Stat(p); err != nil {
		res.addWithPolicy(in.Site.OnBrokenLinks, RuleBrokenLink, doc.Path, "static asset %s does not exist", dest)
	}
}
