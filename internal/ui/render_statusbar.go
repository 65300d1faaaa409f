package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezformula/internal/ui/icons"
)

func (m Model) renderStatusBar() string {
	var parts []string

	// 1. Module being edited
	module := m.config.CurrentLabel()
	if module == "" {
		module = "no module"
	}
	parts = append(parts, ModuleStyle.Render(module))

	// 2. Active suggestion context
	if ctx := m.session.Context(); ctx.Active() {
		parts = append(parts, KindStyle.Render(icons.ForKind(ctx.Kind)+" "+ctx.Kind.String()))
	}

	// 3. Running remote action
	if m.busy != "" {
		loadingStyle := lipgloss.NewStyle().Foreground(AccentColor()).Padding(0, 1)
		parts = append(parts, loadingStyle.Render(m.spinner.View()+" "+m.busy+"..."))
	}

	// 4. Status message (success/info)
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Background(SuccessColor()).Foreground(BgPrimary()).Padding(0, 1)
		parts = append(parts, statusStyle.Render(icons.IconSuccess+" "+m.statusMsg))
	}

	// 5. Error indicator
	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().Background(ErrorColor()).Foreground(TextPrimary()).Padding(0, 1)
		icon := icons.IconError
		if m.authHint {
			icon = icons.IconLock
		}
		parts = append(parts, errorStyle.Render(icon+" "+limitString(m.errorMsg, 60)))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return StatusBarStyle.Width(m.width).Render(content)
}
