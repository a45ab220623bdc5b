package check

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/corpus"
	"git.home.luguber.info/inful/notesite/internal/errors"
	"git.home.luguber.info/inful/notesite/internal/sidebar"
	"git.home.luguber.info/inful/notesite/internal/site"
)

var declaredDocs = map[string]string{
	"C/C-style-string.md":                                   "# C style string\n",
	"computer-architecture/big-and-little-endian.md":        "# Big and Little Endian\n",
	"computer-architecture/instruction-set-architecture.md": "# ISA\n",
	"dsa/asymptotic-notation.md":                            "# Asymptotic Notation\n\nSee [quicksort](sortings/quicksort).\n",
	"dsa/sortings/insertion-sort.md":                        "# Insertion Sort\n",
	"dsa/sortings/selection-sort.md":                        "# Selection Sort\n",
	"dsa/sortings/mergesort.md":                             "# Mergesort\n",
	"dsa/sortings/quicksort.md":                             "# Quicksort\n\n![pivot](/img/logo.svg)\n",
	"dsa/probability-review.md":                             "# Probability Review\n",
	"readme.md": "# README\n\n" +
		"- [C strings](./C/C-style-string.md)\n" +
		"- [DSA](/docs/dsa)\n" +
		"- [C in Chinese](/zh-TW/docs/C#intro)\n" +
		"- [GitHub](https://github.com/Fan-55)\n" +
		"- [top](#top)\n",
}

// fixture lays out a site directory with the declared documents, the custom
// stylesheet and one static asset.
func fixture(t *testing.T, extra map[string]string) (string, *corpus.Corpus) {
	t.Helper()
	siteDir := t.TempDir()
	write := func(rel, content string) {
		p := filepath.Join(siteDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	for rel, content := range declaredDocs {
		write("docs/"+rel, content)
	}
	for rel, content := range extra {
		write(rel, content)
	}
	write("src/css/custom.css", ":root {}\n")
	write("static/img/logo.svg", "<svg/>")

	c, err := corpus.Discover(filepath.Join(siteDir, "docs"))
	require.NoError(t, err)
	return siteDir, c
}

func input(siteDir string, c *corpus.Corpus) Input {
	return Input{
		Site:     site.Load(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		Sidebars: sidebar.Declaration(),
		Corpus:   c,
		SiteDir:  siteDir,
	}
}

func TestRun_DeclaredSiteIsClean(t *testing.T) {
	siteDir, c := fixture(t, nil)
	res := Run(input(siteDir, c))

	assert.Empty(t, res.Issues)
	assert.Equal(t, 10, res.DocsTotal)
	assert.False(t, res.HasErrors())
	assert.NoError(t, res.Err())
}

func TestRun_WithoutCorpusChecksDeclarationsOnly(t *testing.T) {
	res := Run(Input{Site: site.Declaration(), Sidebars: sidebar.Declaration()})
	assert.Empty(t, res.Issues)
	assert.Equal(t, 0, res.DocsTotal)
}

func TestRun_UnresolvedAndDraftDocs(t *testing.T) {
	siteDir, c := fixture(t, map[string]string{
		"docs/dsa/sortings/mergesort.md": "---\ndraft: true\n---\n# Mergesort\n",
	})
	require.NoError(t, os.Remove(filepath.Join(siteDir, "docs", "dsa", "probability-review.md")))
	c, err := corpus.Discover(c.Root)
	require.NoError(t, err)

	res := Run(input(siteDir, c))

	unresolved := res.ByRule(RuleUnresolvedDoc)
	require.Len(t, unresolved, 1)
	assert.Contains(t, unresolved[0].Message, "dsa/probability-review")
	assert.Equal(t, "notes > Data structures and Algorithms", unresolved[0].Key)

	drafts := res.ByRule(RuleDraftInSidebar)
	require.Len(t, drafts, 1)
	assert.Equal(t, "notes > Data structures and Algorithms > Sortings", drafts[0].Key)
	assert.True(t, res.HasErrors())
}

func TestRun_UnlistedDocIsInfo(t *testing.T) {
	siteDir, c := fixture(t, map[string]string{
		"docs/scratch.md":           "# Scratch\n",
		"docs/hidden-on-purpose.md": "---\nunlisted: true\n---\n# Hidden\n",
	})
	res := Run(input(siteDir, c))

	unlisted := res.ByRule(RuleUnlistedDoc)
	require.Len(t, unlisted, 1)
	assert.Equal(t, SeverityInfo, unlisted[0].Severity)
	assert.Equal(t, "scratch.md", unlisted[0].Key)
	assert.False(t, res.HasErrors())
}

func TestRun_NavbarReferencesUnknownSidebar(t *testing.T) {
	in := Input{Site: site.Declaration(), Sidebars: sidebar.Declaration()}
	in.Site.ThemeConfig.Navbar.Items[0] = site.DocSidebarItem{SidebarID: "missing", Label: "Notes", Position: site.PositionLeft}

	res := Run(in)
	issues := res.ByRule(RuleNavbarSidebarRef)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, `"missing"`)
}

func TestRun_MissingCustomCSS(t *testing.T) {
	siteDir, c := fixture(t, nil)
	require.NoError(t, os.Remove(filepath.Join(siteDir, "src", "css", "custom.css")))

	res := Run(input(siteDir, c))
	issues := res.ByRule(RuleMissingCustomCSS)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
}

func TestRun_SiteAndSidebarProblemsBecomeIssues(t *testing.T) {
	in := Input{Site: site.Declaration(), Sidebars: sidebar.NewRegistry()}
	in.Site.I18n.DefaultLocale = "fr"

	res := Run(in)
	siteIssues := res.ByRule(RuleSiteConfig)
	require.NotEmpty(t, siteIssues)
	assert.Equal(t, "i18n.defaultLocale", siteIssues[0].Key)
	require.Len(t, res.ByRule(RuleSidebar), 1)
	// The navbar still points at "notes", which the empty registry lacks.
	require.Len(t, res.ByRule(RuleNavbarSidebarRef), 1)

	err := res.Err()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestRun_BrokenLinkPolicies(t *testing.T) {
	extra := map[string]string{
		"docs/dsa/links.md": "---\nunlisted: true\n---\n# Links\n\n" +
			"[gone](./gone.md)\n\n" +
			"[nowhere](/docs/nowhere)\n\n" +
			"[missing asset](/img/none.png)\n",
	}

	tests := []struct {
		name          string
		links         site.BrokenLinkPolicy
		markdownLinks site.BrokenLinkPolicy
		wantRoute     []Severity
		wantMarkdown  []Severity
	}{
		{"declared policies", site.PolicyThrow, site.PolicyWarn, []Severity{SeverityError, SeverityError}, []Severity{SeverityWarning}},
		{"all warn", site.PolicyWarn, site.PolicyWarn, []Severity{SeverityWarning, SeverityWarning}, []Severity{SeverityWarning}},
		{"all ignored", site.PolicyIgnore, site.PolicyIgnore, nil, nil},
		{"markdown throws", site.PolicyIgnore, site.PolicyThrow, nil, []Severity{SeverityError}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			siteDir, c := fixture(t, extra)
			in := input(siteDir, c)
			in.Site.OnBrokenLinks = tt.links
			in.Site.OnBrokenMarkdownLinks = tt.markdownLinks

			res := Run(in)
			assert.Equal(t, tt.wantRoute, severities(res.ByRule(RuleBrokenLink)))
			assert.Equal(t, tt.wantMarkdown, severities(res.ByRule(RuleBrokenMarkdownLink)))
			for _, issue := range res.ByRule(RuleBrokenLink) {
				assert.Equal(t, "dsa/links.md", issue.Key)
			}
		})
	}
}

func severities(issues []Issue) []Severity {
	var out []Severity
	for _, i := range issues {
		out = append(out, i.Severity)
	}
	return out
}

func TestRun_RelativeLinks(t *testing.T) {
	siteDir, c := fixture(t, map[string]string{
		"docs/dsa/img/tree.png": "png",
		"docs/dsa/rel.md": "---\nunlisted: true\n---\n# Rel\n\n" +
			"![tree](./img/tree.png)\n\n" +
			"![gone](./img/gone.png)\n\n" +
			"[up](../../secret.txt)\n\n" +
			"[sibling](sortings/mergesort)\n\n" +
			"[bad sibling](sortings/bogosort)\n",
	})
	res := Run(input(siteDir, c))

	broken := res.ByRule(RuleBrokenLink)
	var msgs []string
	for _, issue := range broken {
		msgs = append(msgs, issue.Message)
	}
	joined := strings.Join(msgs, "\n")
	assert.Len(t, broken, 3, joined)
	assert.Contains(t, joined, "./img/gone.png")
	assert.Contains(t, joined, "leaves the docs directory")
	assert.Contains(t, joined, "sortings/bogosort")
}

func TestRun_ReferenceLinkReportedOnce(t *testing.T) {
	siteDir, c := fixture(t, map[string]string{
		"docs/refs.md": "---\nunlisted: true\n---\n# Refs\n\n" +
			"See [gone][g] and again [gone][g].\n\n" +
			"[g]: ./gone.md\n",
	})
	res := Run(input(siteDir, c))

	broken := res.ByRule(RuleBrokenMarkdownLink)
	require.Len(t, broken, 1)
	assert.Contains(t, broken[0].Message, "./gone.md")
	assert.Equal(t, 1, res.WarningCount())
}

func TestRoutes_LocalePrefixes(t *testing.T) {
	_, c := fixture(t, nil)
	rt := buildRoutes(input("", c))

	assert.True(t, rt.has("/"))
	assert.True(t, rt.has("/docs/"))
	assert.True(t, rt.has("/docs/dsa/sortings/quicksort/"))
	assert.True(t, rt.has("/docs/computer-architecture"))
	assert.True(t, rt.has("/zh-TW"))
	assert.True(t, rt.has("/zh-TW/docs/dsa/asymptotic-notation"))
	assert.False(t, rt.has("/en/docs/dsa"))
	assert.False(t, rt.has("/docs/sortings"))
}

func TestFormatters(t *testing.T) {
	res := &Result{DocsTotal: 2}
	res.add(RuleUnresolvedDoc, SeverityError, "notes > C", "document %q not found", "C/x")
	res.add(RuleBrokenMarkdownLink, SeverityWarning, "readme.md", "markdown link %s does not resolve", "./x.md")

	var text bytes.Buffer
	require.NoError(t, NewFormatter("text").Format(&text, res, "/site"))
	out := text.String()
	assert.Contains(t, out, "Checking site in: /site")
	assert.Contains(t, out, "✗ notes > C [unresolved-doc]")
	assert.Contains(t, out, "Fix: create the document")
	assert.Contains(t, out, "1 error (fails the build)")
	assert.Contains(t, out, "1 warning (reported by the build)")

	var js bytes.Buffer
	require.NoError(t, NewFormatter("json").Format(&js, res, "/site"))
	var decoded JSONOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.ErrorCount)
	assert.Equal(t, 1, decoded.WarningCount)
	assert.Equal(t, 2, decoded.DocsTotal)
	require.Len(t, decoded.Issues, 2)
	assert.Equal(t, "ERROR", decoded.Issues[0].Severity)

	var clean bytes.Buffer
	require.NoError(t, NewTextFormatter().Format(&clean, &Result{}, "/site"))
	assert.Contains(t, clean.String(), "All checks passed")
}
