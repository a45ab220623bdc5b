package sidebar

// IndexPage is an auto-generated category landing page.
type IndexPage struct {
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Entries     []IndexEntry `json:"entries"`
}

// IndexEntry is one card on an index page. Exactly one of DocID and Slug is set:
// Slug when the child category has its own index page.
type IndexEntry struct {
	Label string `json:"label"`
	DocID string `json:"docId,omitempty"`
	Slug  string `json:"slug,omitempty"`
}

// GeneratedIndexes returns one page per category that requests an index.
// Entries list the category's direct children in declared order.
func (r *Registry) GeneratedIndexes() []IndexPage {
	var pages []IndexPage
	for _, c := range r.Categories() {
		if c.Link == nil {
			continue
		}
		pages = append(pages, IndexFor(c))
	}
	return pages
}

// IndexFor builds the index page of c. c.Link must be non-nil.
func IndexFor(c *Category) IndexPage {
	page := IndexPage{
		Slug:        c.Link.Slug,
		Title:       c.Link.Title,
		Description: c.Link.Description,
		Entries:     make([]IndexEntry, 0, len(c.Items)),
	}
	if page.Title == "" {
		page.Title = c.Label
	}
	for _, child := range c.Items {
		switch n := child.(type) {
		case *Doc:
			page.Entries = append(page.Entries, IndexEntry{Label: n.Label, DocID: n.ID})
		case *Category:
			entry := IndexEntry{Label: n.Label}
			if n.Link != nil {
				entry.Slug = n.Link.Slug
			} else {
				entry.DocID = firstDoc(n.Items)
			}
			page.Entries = append(page.Entries, entry)
		}
	}
	return page
}

// firstDoc returns the id of the first doc reachable from nodes, or "".
func firstDoc(nodes []Node) string {
	id := ""
	Walk(nodes, func(n Node, _ []string) bool {
		if id != "" {
			return false
		}
		if d, ok := n.(*Doc); ok {
			id = d.ID
		}
		return true
	})
	return id
}
