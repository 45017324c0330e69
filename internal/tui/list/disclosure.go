package listview

import tea "github.com/charmbracelet/bubbletea"

// ExpandFunc is called when an id becomes the expanded row. It returns the
// command that loads the row's detail, or nil when nothing needs loading.
type ExpandFunc func(id string) tea.Cmd

// Disclosure tracks which row of a list is expanded. At most one id is
// expanded at a time and every id starts collapsed.
type Disclosure struct {
	expanded string
	onExpand ExpandFunc
}

// NewDisclosure creates a Disclosure with nothing expanded.
func NewDisclosure(onExpand ExpandFunc) *Disclosure {
	return &Disclosure{onExpand: onExpand}
}

// Toggle collapses id if it is expanded, otherwise expands it (collapsing
// any other row) and returns the expand hook's command.
func (d *Disclosure) Toggle(id string) tea.Cmd {
	if id == "" {
		return nil
	}
	if d.expanded == id {
		d.expanded = ""
		return nil
	}

	d.expanded = id
	if d.onExpand == nil {
		return nil
	}
	return d.onExpand(id)
}

// Expanded returns the expanded id, if any.
func (d *Disclosure) Expanded() (string, bool) {
	return d.expanded, d.expanded != ""
}

// IsExpanded reports whether id is the expanded row.
func (d *Disclosure) IsExpanded(id string) bool {
	return id != "" && d.expanded == id
}

// Collapse collapses whatever row is expanded.
func (d *Disclosure) Collapse() {
	d.expanded = ""
}
