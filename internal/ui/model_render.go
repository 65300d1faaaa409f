package ui

import (
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// 1. Render Components
	header := m.renderHeader()
	inputView := InputStyle.Width(m.width - 2).Render(m.input.View())
	preview := PreviewStyle.Render(m.highlighter.Formula(m.session.Buffer().Text))
	if m.result != "" {
		preview += "\n" + PreviewStyle.Render(ResultStyle.Render("= "+m.result))
	}
	statusBar := m.renderStatusBar()
	helpText := m.renderHelp()

	// 2. Stretch the editor area so the status bar sits at the bottom
	top := lipgloss.JoinVertical(lipgloss.Left, header, inputView, preview)
	bodyHeight := m.height - lipgloss.Height(statusBar) - lipgloss.Height(helpText)
	if bodyHeight > 0 {
		top = lipgloss.NewStyle().Height(bodyHeight).Render(top)
	}
	main := lipgloss.JoinVertical(lipgloss.Left, top, statusBar, helpText)

	// 3. Suggestions Overlay, anchored under the token being completed
	if dropdown := m.suggestions.View(); dropdown != "" {
		x := m.suggestionOffset()
		if w := lipgloss.Width(dropdown); x+w > m.width {
			x = m.width - w
		}
		if x < 0 {
			x = 0
		}
		y := lipgloss.Height(header) + lipgloss.Height(inputView) - 1
		main = overlay.Composite(dropdown, main, overlay.Left, overlay.Top, x, y)
	}

	return main
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render("Formula editor")
	if label := m.config.CurrentLabel(); label != "" {
		title += MetaStyle.Render("  editing " + label)
	}
	return title
}
