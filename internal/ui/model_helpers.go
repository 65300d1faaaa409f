package ui

import (
	"errors"
	"fmt"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezformula/internal/api"
	"github.com/nhath/ezformula/internal/formula"
)

// matchKey checks if a key message matches any of the given key bindings
func matchKey(msg tea.KeyMsg, keys []string) bool {
	keyStr := msg.String()
	for _, k := range keys {
		if k == keyStr {
			return true
		}
	}
	return false
}

// byteCaret converts the input's rune cursor into a byte offset of value
func byteCaret(value string, runePos int) int {
	for i := range value {
		if runePos == 0 {
			return i
		}
		runePos--
	}
	return len(value)
}

// runeCaret converts a byte offset of value into a rune cursor
func runeCaret(value string, byteOff int) int {
	if byteOff > len(value) {
		byteOff = len(value)
	}
	return utf8.RuneCountInString(value[:byteOff])
}

// limitString truncates s to max runes with an ellipsis
func limitString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// describeError renders an error for the status bar. Unauthorized responses
// point the user at the token setup.
func describeError(err error) (msg string, auth bool) {
	if errors.Is(err, api.ErrUnauthorized) {
		return "unauthorized: run ezformula --set-token", true
	}
	var notFound *formula.ModuleNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf("unknown module %q", notFound.Token), false
	}
	return err.Error(), false
}

// formatValue renders an evaluation result
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
