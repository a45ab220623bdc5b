package emit

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/notesite/internal/normalization"
	"git.home.luguber.info/inful/notesite/internal/sidebar"
	"git.home.luguber.info/inful/notesite/internal/site"
)

// Format selects the encoding of the sidebars file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var formatNormalizer = normalization.NewEnum("sidebars format", map[string]Format{
	"json": FormatJSON,
	"yaml": FormatYAML,
	"yml":  FormatYAML,
}, FormatJSON)

// ParseFormat accepts json, yaml or yml in any case.
func ParseFormat(raw string) (Format, error) { return formatNormalizer.Parse(raw) }

// SidebarsFile returns the file name the sidebars are written to.
func (f Format) SidebarsFile() string {
	if f == FormatYAML {
		return "sidebars.yaml"
	}
	return "sidebars.json"
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalSite encodes cfg as the generator's configuration object.
func MarshalSite(cfg *site.SiteConfig) ([]byte, error) {
	return marshalJSON(cfg)
}

// MarshalSidebars encodes the registry in the given format. Sidebar and key
// order follow the declaration in both formats.
func MarshalSidebars(r *sidebar.Registry, f Format) ([]byte, error) {
	data, err := marshalJSON(r)
	if err != nil {
		return nil, err
	}
	if f != FormatYAML {
		return data, nil
	}
	return jsonToYAML(data)
}

// MarshalIndexes encodes the generated index pages in declaration order.
func MarshalIndexes(r *sidebar.Registry) ([]byte, error) {
	pages := r.GeneratedIndexes()
	if pages == nil {
		pages = []sidebar.IndexPage{}
	}
	return marshalJSON(pages)
}

// jsonToYAML re-encodes JSON as block-style YAML. Decoding into a yaml.Node
// keeps object key order.
func jsonToYAML(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("re-encode as yaml: %w", err)
	}
	clearStyle(&doc)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("re-encode as yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// clearStyle drops the flow and quoting styles inherited from JSON syntax.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
