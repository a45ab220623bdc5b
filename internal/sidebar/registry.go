package sidebar

import (
	"fmt"
)

// Registry maps sidebar ids to their root node lists. Names keep the order
// in which sidebars were added.
type Registry struct {
	names    []string
	sidebars map[string][]Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sidebars: make(map[string][]Node)}
}

// Add registers a sidebar. Ids must be unique.
func (r *Registry) Add(name string, nodes ...Node) error {
	if name == "" {
		return fmt.Errorf("sidebar id is required")
	}
	if _, exists := r.sidebars[name]; exists {
		return fmt.Errorf("duplicate sidebar id %q", name)
	}
	r.names = append(r.names, name)
	r.sidebars[name] = nodes
	return nil
}

// Names returns the sidebar ids in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Sidebar returns the root nodes of the named sidebar.
func (r *Registry) Sidebar(name string) ([]Node, bool) {
	nodes, ok := r.sidebars[name]
	return nodes, ok
}

// Has reports whether name is a registered sidebar id.
func (r *Registry) Has(name string) bool {
	_, ok := r.sidebars[name]
	return ok
}

// DocRef is a Doc leaf together with where it sits in the registry.
type DocRef struct {
	Sidebar string
	Trail   []string
	Doc     *Doc
}

// Docs returns every Doc leaf, sidebar by sidebar, in declaration order.
func (r *Registry) Docs() []DocRef {
	var refs []DocRef
	for _, name := range r.names {
		Walk(r.sidebars[name], func(n Node, trail []string) bool {
			if d, ok := n.(*Doc); ok {
				refs = append(refs, DocRef{Sidebar: name, Trail: trail, Doc: d})
			}
			return true
		})
	}
	return refs
}

// DocIDs returns every referenced document id in declaration order.
func (r *Registry) DocIDs() []string {
	refs := r.Docs()
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.Doc.ID)
	}
	return ids
}

// Lookup finds the first Doc leaf with the given id.
func (r *Registry) Lookup(id string) (DocRef, bool) {
	for _, ref := range r.Docs() {
		if ref.Doc.ID == id {
			return ref, true
		}
	}
	return DocRef{}, false
}

// Categories returns every category in declaration order.
func (r *Registry) Categories() []*Category {
	var out []*Category
	for _, name := range r.names {
		Walk(r.sidebars[name], func(n Node, _ []string) bool {
			if c, ok := n.(*Category); ok {
				out = append(out, c)
			}
			return true
		})
	}
	return out
}
