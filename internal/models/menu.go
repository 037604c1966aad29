package models

// MenuGroup identifies a top-level navigation category
type MenuGroup string

const (
	MenuGroupDevTools MenuGroup = "devtools"
	MenuGroupCommon   MenuGroup = "common"
	MenuGroupImage    MenuGroup = "image"
)

// MenuItem is one node of the navigation tree.
// Leaf items carry a Path, group items carry Children.
type MenuItem struct {
	Title    string     `json:"title"`
	Key      string     `json:"key"`
	Icon     string     `json:"icon,omitempty"`
	Path     string     `json:"path,omitempty"`
	Children []MenuItem `json:"children,omitempty"`
}

// IsLeaf reports whether the item links directly to a tool
func (m MenuItem) IsLeaf() bool {
	return len(m.Children) == 0
}

// Leaves returns the tool entries below the item in display order
func (m MenuItem) Leaves() []MenuItem {
	if m.IsLeaf() {
		return []MenuItem{m}
	}
	var leaves []MenuItem
	for _, child := range m.Children {
		leaves = append(leaves, child.Leaves()...)
	}
	return leaves
}
