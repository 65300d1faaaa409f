package ui

import (
	"strings"
)

func (m Model) renderHelp() string {
	hint := func(key, desc string) string {
		return HelpKeyStyle.Render(key) + HelpDescStyle.Render(" "+desc)
	}

	// Helper to get first key or fallback
	key := func(bindings []string, fallback string) string {
		if len(bindings) > 0 {
			return bindings[0]
		}
		return fallback
	}

	keys := m.config.Keys
	var hints []string
	if m.session.Context().Active() {
		hints = append(hints,
			hint("↑/↓", "Select"),
			hint("tab", "Insert"),
			hint("esc", "Dismiss"),
		)
	} else {
		hints = append(hints,
			hint(key(keys.Check, "ctrl+k"), "Check"),
			hint(key(keys.Evaluate, "ctrl+e"), "Evaluate"),
			hint(key(keys.Submit, "ctrl+s"), "Submit"),
			hint(key(keys.Copy, "ctrl+y"), "Copy"),
			hint(key(keys.Exit, "esc"), "Quit"),
		)
	}
	return strings.Join(hints, "  ")
}
