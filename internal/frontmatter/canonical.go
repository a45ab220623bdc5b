package frontmatter

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Canonical serializes fields as YAML with keys sorted at every level and LF
// newlines, so equal maps always produce equal bytes. Keys listed in skip are
// left out at the top level. An empty map yields an empty slice.
func Canonical(fields map[string]any, skip ...string) ([]byte, error) {
	omit := make(map[string]bool, len(skip))
	for _, k := range skip {
		omit[k] = true
	}
	filtered := make(map[string]any, len(fields))
	for k, v := range fields {
		if !omit[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return []byte{}, nil
	}

	node, err := mappingNode(filtered)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mappingNode(m map[string]any) (*yaml.Node, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		val, err := valueNode(m[k])
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, val)
	}
	return n, nil
}

func valueNode(v any) (*yaml.Node, error) {
	switch vv := v.(type) {
	case map[string]any:
		return mappingNode(vv)
	case map[any]any:
		converted := make(map[string]any, len(vv))
		for k, val := range vv {
			converted[fmt.Sprint(k)] = val
		}
		return mappingNode(converted)
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range vv {
			child, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	default:
		var n yaml.Node
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return &n, nil
	}
}
