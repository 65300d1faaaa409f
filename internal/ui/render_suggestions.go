package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezformula/internal/formula"
	"github.com/nhath/ezformula/internal/ui/components/suggestions"
	"github.com/nhath/ezformula/internal/ui/icons"
)

// candidateItem turns a candidate into a dropdown row
func candidateItem(kind formula.Kind, c formula.Candidate) suggestions.Item {
	item := suggestions.Item{Icon: c.Icon, Text: c.Text, Detail: c.Display}
	if item.Icon == "" {
		item.Icon = icons.ForKind(kind)
	}
	if kind == formula.KindModule && c.Label != "" {
		item.Detail = c.Label
	}
	return item
}

// contextTitle is the dropdown header for a context
func contextTitle(ctx formula.Context) string {
	switch ctx.Kind {
	case formula.KindField:
		return "fields of " + ctx.Qualifier
	case formula.KindModule:
		return "modules"
	case formula.KindFunction:
		return "functions"
	case formula.KindOperator:
		return "operators"
	default:
		return ctx.Kind.String()
	}
}

// suggestionOffset is the column of the span start, where the dropdown is anchored
func (m Model) suggestionOffset() int {
	ctx := m.session.Context()
	text := m.session.Buffer().Text
	start := ctx.Span.Start
	if start > len(text) {
		start = len(text)
	}
	// border + padding + prompt
	return 2 + lipgloss.Width(m.input.Prompt) + lipgloss.Width(text[:start])
}
