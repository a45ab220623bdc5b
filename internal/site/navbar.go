package site

import (
	"encoding/json"
	"fmt"
)

// Navbar is the top navigation bar.
type Navbar struct {
	Title string
	Logo  *Logo
	Items []NavbarItem
}

// NavbarItem is one of DocSidebarItem, LocaleDropdownItem or LinkItem.
// The set is closed: only this package can add cases.
type NavbarItem interface {
	ItemPosition() Position
	navbarItem()
}

// DocSidebarItem opens the named sidebar's first document.
type DocSidebarItem struct {
	SidebarID string
	Label     string
	Position  Position
}

// LocaleDropdownItem renders the locale switcher.
type LocaleDropdownItem struct {
	Position Position
}

// LinkItem is an external link.
type LinkItem struct {
	Href     string
	Label    string
	Position Position
}

func (DocSidebarItem) navbarItem()     {}
func (LocaleDropdownItem) navbarItem() {}
func (LinkItem) navbarItem()           {}

func (i DocSidebarItem) ItemPosition() Position     { return i.Position }
func (i LocaleDropdownItem) ItemPosition() Position { return i.Position }
func (i LinkItem) ItemPosition() Position           { return i.Position }

const (
	itemTypeDocSidebar     = "docSidebar"
	itemTypeLocaleDropdown = "localeDropdown"
	itemTypeDefault        = "default"
)

// navbarItemJSON is the generator's flat item shape; Type selects the case.
type navbarItemJSON struct {
	Type      string   `json:"type,omitempty"`
	SidebarID string   `json:"sidebarId,omitempty"`
	Href      string   `json:"href,omitempty"`
	Label     string   `json:"label,omitempty"`
	Position  Position `json:"position"`
}

func encodeNavbarItem(item NavbarItem) navbarItemJSON {
	switch it := item.(type) {
	case DocSidebarItem:
		return navbarItemJSON{Type: itemTypeDocSidebar, SidebarID: it.SidebarID, Label: it.Label, Position: it.Position}
	case LocaleDropdownItem:
		return navbarItemJSON{Type: itemTypeLocaleDropdown, Position: it.Position}
	case LinkItem:
		return navbarItemJSON{Href: it.Href, Label: it.Label, Position: it.Position}
	default:
		panic(fmt.Sprintf("site: unhandled navbar item %T", item))
	}
}

func decodeNavbarItem(raw navbarItemJSON) (NavbarItem, error) {
	switch raw.Type {
	case itemTypeDocSidebar:
		return DocSidebarItem{SidebarID: raw.SidebarID, Label: raw.Label, Position: raw.Position}, nil
	case itemTypeLocaleDropdown:
		return LocaleDropdownItem{Position: raw.Position}, nil
	case "", itemTypeDefault:
		return LinkItem{Href: raw.Href, Label: raw.Label, Position: raw.Position}, nil
	default:
		return nil, fmt.Errorf("unsupported navbar item type %q", raw.Type)
	}
}

type navbarJSON struct {
	Title string           `json:"title"`
	Logo  *Logo            `json:"logo,omitempty"`
	Items []navbarItemJSON `json:"items"`
}

func (n Navbar) MarshalJSON() ([]byte, error) {
	out := navbarJSON{Title: n.Title, Logo: n.Logo, Items: make([]navbarItemJSON, 0, len(n.Items))}
	for _, item := range n.Items {
		out.Items = append(out.Items, encodeNavbarItem(item))
	}
	return json.Marshal(out)
}

func (n *Navbar) UnmarshalJSON(data []byte) error {
	var in navbarJSON
	if err := unmarshalStrict(data, &in); err != nil {
		return err
	}
	items := make([]NavbarItem, 0, len(in.Items))
	for i, raw := range in.Items {
		item, err := decodeNavbarItem(raw)
		if err != nil {
			return fmt.Errorf("navbar item %d: %w", i, err)
		}
		items = append(items, item)
	}
	*n = Navbar{Title: in.Title, Logo: in.Logo, Items: items}
	return nil
}

// ItemsAt returns the items rendered at pos, in declaration order.
func (n Navbar) ItemsAt(pos Position) []NavbarItem {
	var out []NavbarItem
	for _, item := range n.Items {
		if item.ItemPosition() == pos {
			out = append(out, item)
		}
	}
	return out
}
