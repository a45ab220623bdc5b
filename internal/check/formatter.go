package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats check results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, siteDir string) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result, siteDir string) error {
	p := &printer{w: w}
	p.printf("Checking site in: %s\n", siteDir)
	p.println(strings.Repeat("━", 60))
	p.println()

	for _, issue := range result.Issues {
		f.formatIssue(p, issue)
		p.println()
	}

	p.println(strings.Repeat("━", 60))
	p.printf("Results:\n")
	p.printf("  %d document%s scanned\n", result.DocsTotal, pluralize(result.DocsTotal))
	if n := result.ErrorCount(); n > 0 {
		p.printf("  %d error%s (fails the build)\n", n, pluralize(n))
	}
	if n := result.WarningCount(); n > 0 {
		p.printf("  %d warning%s (reported by the build)\n", n, pluralize(n))
	}
	if n := result.count(SeverityInfo); n > 0 {
		p.printf("  %d info\n", n)
	}
	p.println()

	switch {
	case result.HasErrors():
		p.println("❌ The site has errors that will fail the build.")
	case result.HasWarnings():
		p.println("⚠️  The site builds with warnings.")
	case len(result.Issues) > 0:
		p.println("ℹ️  All issues are informational.")
	default:
		p.println("✨ All checks passed!")
	}
	return p.err
}

func (f *TextFormatter) formatIssue(p *printer, issue Issue) {
	var icon string
	switch issue.Severity {
	case SeverityError:
		icon = "✗"
	case SeverityWarning:
		icon = "⚠"
	case SeverityInfo:
		icon = "ℹ"
	}
	key := issue.Key
	if key == "" {
		key = "(site)"
	}
	p.printf("%s %s [%s]\n", icon, key, issue.Rule)
	p.printf("  %s: %s\n", issue.Severity, issue.Message)
	if issue.Fix != "" {
		p.printf("  Fix: %s\n", issue.Fix)
	}
}

// printer remembers the first write error so formatting code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *printer) println(args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintln(p.w, args...)
	}
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	SiteDir      string      `json:"site_dir"`
	DocsTotal    int         `json:"docs_total"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	InfoCount    int         `json:"info_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	Key      string `json:"key"`
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

// NewJSONOutput converts result into its JSON representation.
func NewJSONOutput(result *Result, siteDir string) JSONOutput {
	out := JSONOutput{
		SiteDir:      siteDir,
		DocsTotal:    result.DocsTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		InfoCount:    result.count(SeverityInfo),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		out.Issues = append(out.Issues, JSONIssue{
			Key:      issue.Key,
			Severity: issue.Severity.String(),
			Rule:     issue.Rule,
			Message:  issue.Message,
			Fix:      issue.Fix,
		})
	}
	return out
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result, siteDir string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewJSONOutput(result, siteDir))
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
