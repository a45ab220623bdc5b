package check

import (
	"fmt"

	"git.home.luguber.info/inful/notesite/internal/errors"
	"git.home.luguber.info/inful/notesite/internal/site"
)

// Severity indicates the importance level of an issue.
type Severity int

const (
	// SeverityInfo marks findings that never affect the build.
	SeverityInfo Severity = iota
	// SeverityWarning marks findings the generator reports but builds through.
	SeverityWarning
	// SeverityError marks findings that make the generator abort.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Rule identifiers.
const (
	RuleSiteConfig         = "site-config"
	RuleSidebar            = "sidebar"
	RuleNavbarSidebarRef   = "navbar-sidebar-ref"
	RuleUnresolvedDoc      = "unresolved-doc"
	RuleDraftInSidebar     = "draft-in-sidebar"
	RuleMissingCustomCSS   = "missing-custom-css"
	RuleBrokenLink         = "broken-link"
	RuleBrokenMarkdownLink = "broken-markdown-link"
	RuleUnlistedDoc        = "unlisted-doc"
)

// Issue is a single finding. Key names the offending configuration key,
// sidebar entry or document path.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Key      string   `json:"key"`
	Message  string   `json:"message"`
	Fix      string   `json:"fix,omitempty"`
}

// fixHints holds the suggested remedy per rule.
var fixHints = map[string]string{
	RuleNavbarSidebarRef:   "declare the sidebar or point the navbar item at an existing one",
	RuleUnresolvedDoc:      "create the document or correct the id in the sidebar",
	RuleDraftInSidebar:     "publish the document or remove it from the sidebar",
	RuleMissingCustomCSS:   "create the stylesheet or drop customCss from the preset",
	RuleBrokenLink:         "link to an existing route, or relax onBrokenLinks",
	RuleBrokenMarkdownLink: "fix the relative path, or relax onBrokenMarkdownLinks",
	RuleUnlistedDoc:        "add the document to a sidebar if it should be navigable",
}

// Result contains all issues found by a check run.
type Result struct {
	Issues    []Issue `json:"issues"`
	DocsTotal int     `json:"docs_total"`
}

func (r *Result) add(rule string, sev Severity, key, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Rule: rule, Severity: sev, Key: key, Message: fmt.Sprintf(format, args...), Fix: fixHints[rule]})
}

// addWithPolicy records an issue at the severity policy dictates, or drops it.
func (r *Result) addWithPolicy(policy site.BrokenLinkPolicy, rule, key, format string, args ...any) {
	switch policy {
	case site.PolicyThrow:
		r.add(rule, SeverityError, key, format, args...)
	case site.PolicyWarn:
		r.add(rule, SeverityWarning, key, format, args...)
	case site.PolicyIgnore:
	}
}

func (r *Result) count(sev Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool { return r.count(SeverityError) > 0 }

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool { return r.count(SeverityWarning) > 0 }

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int { return r.count(SeverityWarning) }

// ByRule returns the issues produced by rule.
func (r *Result) ByRule(rule string) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Rule == rule {
			out = append(out, issue)
		}
	}
	return out
}

// Err returns a validation error naming the first error-level issue, or nil.
func (r *Result) Err() error {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return errors.ValidationError(fmt.Sprintf("%d error(s) would fail the build: %s", r.ErrorCount(), issue.Message)).
				WithContext("rule", issue.Rule).
				WithContext("key", issue.Key).
				Build()
		}
	}
	return nil
}
