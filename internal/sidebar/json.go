package sidebar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"git.home.luguber.info/inful/notesite/internal/errors"
)

const (
	nodeTypeDoc            = "doc"
	nodeTypeCategory       = "category"
	linkTypeGeneratedIndex = "generated-index"
)

// nodeJSON is the generator's item shape; Type selects the case.
type nodeJSON struct {
	Type  string     `json:"type"`
	ID    string     `json:"id,omitempty"`
	Label string     `json:"label"`
	Link  *linkJSON  `json:"link,omitempty"`
	Items []nodeJSON `json:"items,omitempty"`
}

type linkJSON struct {
	Type        string `json:"type"`
	Slug        string `json:"slug,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

func encodeNodes(nodes []Node) []nodeJSON {
	out := make([]nodeJSON, 0, len(nodes))
	for _, n := range nodes {
		switch node := n.(type) {
		case *Doc:
			out = append(out, nodeJSON{Type: nodeTypeDoc, ID: node.ID, Label: node.Label})
		case *Category:
			enc := nodeJSON{Type: nodeTypeCategory, Label: node.Label, Items: encodeNodes(node.Items)}
			if node.Link != nil {
				enc.Link = &linkJSON{
					Type:        linkTypeGeneratedIndex,
					Slug:        node.Link.Slug,
					Title:       node.Link.Title,
					Description: node.Link.Description,
				}
			}
			out = append(out, enc)
		default:
			panic(fmt.Sprintf("sidebar: unhandled node %T", n))
		}
	}
	return out
}

func decodeNodes(in []nodeJSON, path string) ([]Node, error) {
	out := make([]Node, 0, len(in))
	for i, raw := range in {
		at := fmt.Sprintf("%s[%d]", path, i)
		switch raw.Type {
		case nodeTypeDoc:
			if len(raw.Items) > 0 || raw.Link != nil {
				return nil, fmt.Errorf("%s: doc item cannot have items or link", at)
			}
			out = append(out, &Doc{ID: raw.ID, Label: raw.Label})
		case nodeTypeCategory:
			items, err := decodeNodes(raw.Items, at+".items")
			if err != nil {
				return nil, err
			}
			c := &Category{Label: raw.Label, Items: items}
			if raw.Link != nil {
				if raw.Link.Type != linkTypeGeneratedIndex {
					return nil, fmt.Errorf("%s: unsupported category link type %q", at, raw.Link.Type)
				}
				c.Link = &GeneratedIndex{Slug: raw.Link.Slug, Title: raw.Link.Title, Description: raw.Link.Description}
			}
			out = append(out, c)
		default:
			return nil, fmt.Errorf("%s: unsupported sidebar item type %q", at, raw.Type)
		}
	}
	return out, nil
}

// MarshalJSON encodes the registry as an object keyed by sidebar id, in
// declaration order.
func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		items, err := json.Marshal(encodeNodes(r.sidebars[name]))
		if err != nil {
			return nil, err
		}
		buf.Write(items)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by sidebar id, preserving key order.
func (r *Registry) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sidebars must be a JSON object")
	}
	out := NewRegistry()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var raw []nodeJSON
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("sidebar %q: %w", name, err)
		}
		nodes, err := decodeNodes(raw, name)
		if err != nil {
			return err
		}
		if err := out.Add(name, nodes...); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = *out
	return nil
}

// LoadFile reads a registry from a JSON file; comments and trailing commas
// are allowed.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read sidebars").
			WithContext("path", path).Fatal().Build()
	}
	return Decode(data)
}

// Decode parses JSON or JSONC bytes into a Registry.
func Decode(data []byte) (*Registry, error) {
	r := NewRegistry()
	if err := json.Unmarshal(jsonc.ToJSON(data), r); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to decode sidebars").Fatal().Build()
	}
	return r, nil
}
