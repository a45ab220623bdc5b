// Package sidebar declares the navigation tree shown beside documentation
// pages. A tree is an ordered list of nodes; each node is either a Doc leaf
// pointing at one document, or a Category grouping further nodes.
package sidebar

// Node is a sidebar entry: *Doc or *Category. The set is closed.
type Node interface {
	NodeLabel() string
	sidebarNode()
}

// Doc references exactly one document by id.
type Doc struct {
	ID    string
	Label string
}

// Category groups child nodes under a label. Items keep display order.
type Category struct {
	Label string
	Link  *GeneratedIndex
	Items []Node
}

// GeneratedIndex asks the generator for a landing page at Slug listing the
// category's direct children.
type GeneratedIndex struct {
	Slug        string
	Title       string
	Description string
}

func (*Doc) sidebarNode()      {}
func (*Category) sidebarNode() {}

func (d *Doc) NodeLabel() string      { return d.Label }
func (c *Category) NodeLabel() string { return c.Label }

// NewDoc is shorthand for a Doc leaf.
func NewDoc(id, label string) *Doc {
	return &Doc{ID: id, Label: label}
}

// NewCategory is shorthand for a Category without a generated index.
func NewCategory(label string, items ...Node) *Category {
	return &Category{Label: label, Items: items}
}

// WithIndex attaches a generated index at slug and returns c.
func (c *Category) WithIndex(slug string) *Category {
	c.Link = &GeneratedIndex{Slug: slug}
	return c
}

// WalkFunc is called for every node; trail holds the labels of its ancestors.
// Returning false from a Category skips its children.
type WalkFunc func(n Node, trail []string) bool

// Walk visits nodes depth-first in declaration order.
func Walk(nodes []Node, fn WalkFunc) {
	walk(nodes, nil, fn)
}

func walk(nodes []Node, trail []string, fn WalkFunc) {
	for _, n := range nodes {
		descend := fn(n, trail)
		switch node := n.(type) {
		case *Category:
			if descend {
				child := append(append([]string(nil), trail...), node.Label)
				walk(node.Items, child, fn)
			}
		case *Doc:
		}
	}
}

// Depth returns the deepest category nesting level in nodes; a flat list of
// docs has depth 0.
func Depth(nodes []Node) int {
	deepest := 0
	Walk(nodes, func(n Node, trail []string) bool {
		if _, ok := n.(*Category); ok && len(trail)+1 > deepest {
			deepest = len(trail) + 1
		}
		return true
	})
	return deepest
}
