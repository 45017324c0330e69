package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor is used to centre the selected row.
const halfViewportDivisor = 2

// RenderFunc renders one item. The result may span several lines, which is
// how an expanded row shows its detail.
type RenderFunc[T any] func(item T, selected bool) string

// VirtualListModel is a scrolling list that renders only the rows around the
// selection. Navigation keys: up/down, j/k, pgup/pgdown, home/end.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	// selected is the index of the highlighted row (0-based).
	selected int

	// visibleFrom and visibleTo bound the rows in the viewport (to is exclusive).
	visibleFrom int
	visibleTo   int

	height int
	width  int
}

// NewVirtualListModel creates a list of items sized height rows by width columns.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     height,
		width:      width,
	}

	m.updateVisibleRange()
	return m
}

// Init implements tea.Model.
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and resizes.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleKey moves the selection. Unknown keys are ignored.
func (m *VirtualListModel[T]) handleKey(key string) {
	if len(m.items) == 0 {
		return
	}

	switch key {
	case "up", "k":
		m.SetSelected(m.selected - 1)
	case "down", "j":
		m.SetSelected(m.selected + 1)
	case "pgup":
		m.SetSelected(m.selected - m.pageSize())
	case "pgdown":
		m.SetSelected(m.selected + m.pageSize())
	case "home", "g":
		m.SetSelected(0)
	case "end", "G":
		m.SetSelected(len(m.items) - 1)
	}
}

func (m *VirtualListModel[T]) pageSize() int {
	if m.height < 1 {
		return 1
	}
	return m.height
}

// updateVisibleRange keeps the selected row inside the viewport.
func (m *VirtualListModel[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom = 0
		m.visibleTo = 0
		return
	}

	height := max(m.height, 1)
	from := max(m.selected-height/halfViewportDivisor, 0)
	to := from + height

	if to > len(m.items) {
		to = len(m.items)
		from = max(to-height, 0)
	}

	m.visibleFrom = from
	m.visibleTo = to
}

// View renders the rows in the viewport. Rows may span several lines; the
// output never exceeds height lines and always shows the selected row's
// first line.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 || m.renderFunc == nil {
		return ""
	}

	var lines []string
	selectedLine := 0
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		if i == m.selected {
			selectedLine = len(lines)
		}
		lines = append(lines, strings.Split(m.renderFunc(m.items[i], i == m.selected), "\n")...)
	}

	budget := max(m.height, 1)
	if len(lines) <= budget {
		return strings.Join(lines, "\n")
	}

	start := 0
	if selectedLine >= budget {
		start = min(selectedLine, len(lines)-budget)
	}
	return strings.Join(lines[start:start+budget], "\n")
}

// SetItems replaces the list contents, keeping the selection in bounds.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// Items returns the list contents.
func (m *VirtualListModel[T]) Items() []T {
	return m.items
}

// SetSize resizes the viewport.
func (m *VirtualListModel[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateVisibleRange()
}

// ItemCount returns the number of items.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the selected index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected moves the selection to index, clamped to valid bounds.
func (m *VirtualListModel[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0, index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}
	m.updateVisibleRange()
}

// VisibleFrom returns the first visible index (inclusive).
func (m *VirtualListModel[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the last visible index (exclusive).
func (m *VirtualListModel[T]) VisibleTo() int {
	return m.visibleTo
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// GetSelectedItem returns the selected item, or nil when the list is empty.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}
