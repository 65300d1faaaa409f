// Package suggestions provides the candidate dropdown of the formula editor.
package suggestions

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the suggestions dropdown
type Styles struct {
	Box      lipgloss.Style
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Detail   lipgloss.Style
	Loading  lipgloss.Style
}

// DefaultStyles returns default styling
func DefaultStyles() Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6272A4")).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")).
			Bold(true),
		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#282A36")).
			Background(lipgloss.Color("#8BE9FD")),
		Detail: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")),
		Loading: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")).
			Italic(true),
	}
}

// Item is one row of the dropdown
type Item struct {
	Icon   string
	Text   string
	Detail string
}

// Model represents the dropdown state. The selection is owned by the caller
// and mirrored here for rendering.
type Model struct {
	title    string
	items    []Item
	selected int
	loading  bool
	maxShow  int
	styles   Styles
}

// New creates a new suggestions model
func New() Model {
	return Model{
		maxShow: 6,
		styles:  DefaultStyles(),
	}
}

// SetItems replaces the rows and the selected index
func (m Model) SetItems(title string, items []Item, selected int) Model {
	m.title = title
	m.items = items
	m.selected = selected
	if m.selected < 0 || m.selected >= len(items) {
		m.selected = 0
	}
	return m
}

// Clear drops all rows
func (m Model) Clear() Model {
	m.title = ""
	m.items = nil
	m.selected = 0
	return m
}

// SetStyles sets custom styles
func (m Model) SetStyles(s Styles) Model {
	m.styles = s
	return m
}

// SetMaxShow sets maximum visible items
func (m Model) SetMaxShow(n int) Model {
	if n > 0 {
		m.maxShow = n
	}
	return m
}

// SetLoading sets loading state
func (m Model) SetLoading(loading bool) Model {
	m.loading = loading
	return m
}

// Visible reports whether View renders anything
func (m Model) Visible() bool {
	return m.loading || len(m.items) > 0
}

// Loading returns loading state
func (m Model) Loading() bool {
	return m.loading
}

// Selected returns the selected index
func (m Model) Selected() int {
	return m.selected
}

// Len returns number of items
func (m Model) Len() int {
	return len(m.items)
}

// window returns the visible slice bounds, keeping the selection centred
func (m Model) window() (start, end int) {
	if m.selected > m.maxShow/2 {
		start = m.selected - m.maxShow/2
	}
	end = start + m.maxShow
	if end > len(m.items) {
		end = len(m.items)
		start = end - m.maxShow
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// View renders the suggestions dropdown
func (m Model) View() string {
	if m.loading {
		return m.styles.Box.Render(m.styles.Loading.Render("Loading..."))
	}
	if len(m.items) == 0 {
		return ""
	}

	var views []string
	if m.title != "" {
		views = append(views, m.styles.Title.Render(m.title))
	}

	start, end := m.window()
	for i := start; i < end; i++ {
		item := m.items[i]
		style := m.styles.Item
		prefix := "  "
		if i == m.selected {
			style = m.styles.Selected
			prefix = "> "
		}
		line := prefix
		if item.Icon != "" {
			line += item.Icon + " "
		}
		line += item.Text
		row := style.Render(line)
		if item.Detail != "" && item.Detail != item.Text {
			row += m.styles.Detail.Render("  " + item.Detail)
		}
		views = append(views, row)
	}
	if end-start < len(m.items) {
		views = append(views, m.styles.Detail.Render(fmt.Sprintf("%d/%d", m.selected+1, len(m.items))))
	}

	return m.styles.Box.Render(strings.Join(views, "\n"))
}
