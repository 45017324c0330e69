package listview

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPlain(item string, selected bool) string {
	if selected {
		return "> " + item
	}
	return "  " + item
}

func TestVirtualListModel_NewModel(t *testing.T) {
	model := NewVirtualListModel([]string{"CA1", "CA2", "CA3"}, 20, 80, renderPlain)

	assert.Equal(t, 3, model.ItemCount())
	assert.Equal(t, 20, model.Height())
	assert.Equal(t, 80, model.Width())
	assert.Equal(t, 0, model.Selected())
	assert.Equal(t, 0, model.VisibleFrom())
	assert.Equal(t, 3, model.VisibleTo())
	assert.Nil(t, model.Init())
}

func TestVirtualListModel_VisibleRange(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		height     int
		selected   int
		expectFrom int
		expectTo   int
	}{
		{name: "first page", total: 100, height: 20, selected: 0, expectFrom: 0, expectTo: 20},
		{name: "middle page", total: 100, height: 20, selected: 50, expectFrom: 40, expectTo: 60},
		{name: "last page", total: 100, height: 20, selected: 99, expectFrom: 80, expectTo: 100},
		{name: "fewer items than viewport", total: 10, height: 20, selected: 5, expectFrom: 0, expectTo: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]string, tt.total)
			model := NewVirtualListModel(items, tt.height, 80, renderPlain)
			model.SetSelected(tt.selected)

			assert.Equal(t, tt.expectFrom, model.VisibleFrom())
			assert.Equal(t, tt.expectTo, model.VisibleTo())
		})
	}
}

func TestVirtualListModel_Navigation(t *testing.T) {
	model := NewVirtualListModel([]string{"a", "b", "c", "d", "e"}, 2, 80, renderPlain)

	press := func(msg tea.KeyMsg) {
		_, cmd := model.Update(msg)
		assert.Nil(t, cmd)
	}

	press(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, model.Selected())

	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, model.Selected())

	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, model.Selected())

	press(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 4, model.Selected())

	press(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 4, model.Selected(), "selection stops at the last row")

	press(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 2, model.Selected())

	press(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, model.Selected())

	press(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, model.Selected(), "selection stops at the first row")

	press(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 2, model.Selected())
}

func TestVirtualListModel_EmptyList(t *testing.T) {
	model := NewVirtualListModel([]string{}, 10, 80, renderPlain)

	model.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, model.Selected())
	assert.Nil(t, model.GetSelectedItem())
	assert.Empty(t, model.View())
}

func TestVirtualListModel_WindowResize(t *testing.T) {
	model := NewVirtualListModel(make([]string, 50), 10, 80, renderPlain)

	model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	assert.Equal(t, 120, model.Width())
	assert.Equal(t, 30, model.Height())
	assert.Equal(t, 30, model.VisibleTo())
}

func TestVirtualListModel_SetItemsClampsSelection(t *testing.T) {
	model := NewVirtualListModel([]string{"a", "b", "c"}, 10, 80, renderPlain)
	model.SetSelected(2)

	model.SetItems([]string{"a"})
	assert.Equal(t, 0, model.Selected())
	assert.Equal(t, []string{"a"}, model.Items())

	selected := model.GetSelectedItem()
	require.NotNil(t, selected)
	assert.Equal(t, "a", *selected)
}

func TestVirtualListModel_ViewRendersMultilineRows(t *testing.T) {
	render := func(item string, selected bool) string {
		if selected {
			return "> " + item + "\n    detail for " + item
		}
		return "  " + item
	}
	model := NewVirtualListModel([]string{"CA1", "CA2"}, 10, 80, render)

	lines := strings.Split(model.View(), "\n")
	assert.Equal(t, []string{"> CA1", "    detail for CA1", "  CA2"}, lines)
}

func TestVirtualListModel_ViewRendersOnlyNearbyRows(t *testing.T) {
	items := make([]string, 1000)
	for i := range items {
		items[i] = "row"
	}
	model := NewVirtualListModel(items, 10, 80, renderPlain)
	model.SetSelected(500)

	rendered := strings.Count(model.View(), "row")
	assert.LessOrEqual(t, rendered, 10)
	assert.Contains(t, model.View(), "> row")
}

func TestVirtualListModel_ViewClipsToHeight(t *testing.T) {
	tall := func(item string, selected bool) string {
		if !selected {
			return "  " + item
		}
		lines := []string{"> " + item}
		for i := range 20 {
			lines = append(lines, fmt.Sprintf("    line %d", i))
		}
		return strings.Join(lines, "\n")
	}

	tests := []struct {
		name     string
		selected int
	}{
		{name: "first row expanded", selected: 0},
		{name: "middle row expanded", selected: 5},
		{name: "last row expanded", selected: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []string{"CA0", "CA1", "CA2", "CA3", "CA4", "CA5", "CA6", "CA7", "CA8", "CA9"}
			model := NewVirtualListModel(items, 8, 80, tall)
			model.SetSelected(tt.selected)

			lines := strings.Split(model.View(), "\n")
			assert.Len(t, lines, 8)
			assert.Contains(t, lines, "> "+items[tt.selected])
		})
	}
}

func TestVirtualListModel_SingleRowViewport(t *testing.T) {
	model := NewVirtualListModel([]string{"a", "b", "c"}, 1, 80, renderPlain)
	model.SetSelected(1)

	assert.Equal(t, 1, model.VisibleFrom())
	assert.Equal(t, 2, model.VisibleTo())
	assert.Equal(t, "> b", model.View())
}
