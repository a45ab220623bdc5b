package sidebar

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/notesite/internal/errors"
)

// KeyContext is the error context key naming the offending sidebar entry.
const KeyContext = "key"

func problem(key, format string, args ...any) error {
	return errors.ValidationError(fmt.Sprintf(format, args...)).
		WithContext(KeyContext, key).
		Build()
}

// entryKey renders a readable location like "notes > Data structures and Algorithms > Sortings".
func entryKey(sidebar string, trail []string, label string) string {
	parts := append([]string{sidebar}, trail...)
	if label != "" {
		parts = append(parts, label)
	}
	return strings.Join(parts, " > ")
}

// Validate checks the tree invariants the generator relies on: document ids
// are pairwise distinct across the whole registry, labels and ids are
// non-empty, categories have children, and generated-index slugs are unique
// absolute paths.
func (r *Registry) Validate() []error {
	var errs []error
	if len(r.names) == 0 {
		return []error{problem("sidebars", "no sidebars declared")}
	}

	seenDocs := make(map[string]string)
	seenSlugs := make(map[string]string)
	for _, name := range r.names {
		nodes := r.sidebars[name]
		if len(nodes) == 0 {
			errs = append(errs, problem(name, "sidebar %q is empty", name))
		}
		Walk(nodes, func(n Node, trail []string) bool {
			key := entryKey(name, trail, n.NodeLabel())
			if strings.TrimSpace(n.NodeLabel()) == "" {
				errs = append(errs, problem(key, "label is required"))
			}
			switch node := n.(type) {
			case *Doc:
				if node.ID == "" {
					errs = append(errs, problem(key, "document id is required"))
					break
				}
				if prev, dup := seenDocs[node.ID]; dup {
					errs = append(errs, problem(key, "document id %q already referenced at %s", node.ID, prev))
				} else {
					seenDocs[node.ID] = key
				}
			case *Category:
				if len(node.Items) == 0 {
					errs = append(errs, problem(key, "category has no items"))
				}
				if node.Link != nil {
					slug := node.Link.Slug
					switch {
					case !strings.HasPrefix(slug, "/"):
						errs = append(errs, problem(key, "generated index slug %q must start with '/'", slug))
					case seenSlugs[slug] != "":
						errs = append(errs, problem(key, "generated index slug %q already used at %s", slug, seenSlugs[slug]))
					default:
						seenSlugs[slug] = key
					}
				}
			}
			return true
		})
	}
	return errs
}
