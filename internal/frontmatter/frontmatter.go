// Package frontmatter separates YAML frontmatter from a Markdown document and
// decodes the keys the generator reads from it.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates `---` delimited YAML frontmatter from the Markdown body.
// LF and CRLF documents are both accepted.
//
// If the document does not start with a frontmatter delimiter, had is false
// and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the very last line has no trailing newline.
		trailer := []byte(nl + "---")
		if bytes.HasSuffix(content, trailer) {
			end := len(content) - len(trailer)
			return content[start : end+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// Fields are the frontmatter keys that affect how a document is addressed
// and listed.
type Fields struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	SidebarLabel string `yaml:"sidebar_label"`
	Slug         string `yaml:"slug"`
	Draft        bool   `yaml:"draft"`
	Unlisted     bool   `yaml:"unlisted"`
}

// Parse decodes raw frontmatter (without delimiters) into typed fields and
// the complete key/value map.
func Parse(raw []byte) (Fields, map[string]any, error) {
	var fields Fields
	all := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fields, all, nil
	}
	if err := yaml.Unmarshal(raw, &all); err != nil {
		return Fields{}, nil, err
	}
	if all == nil {
		all = map[string]any{}
	}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return Fields{}, nil, err
	}
	return fields, all, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
