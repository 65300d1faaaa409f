package icons

import "github.com/nhath/ezformula/internal/formula"

const (
	// Context Icons
	IconModule   = "◆"
	IconField    = "•"
	IconIfElse   = "⑂"
	IconOperator = "≠"
	IconFunction = "ƒ"

	// Utility Icons
	IconLock      = "🔒"
	IconSuccess   = "✓"
	IconError     = "⚠"
	IconSelect    = "▸"
	IconBullet    = "•"
	IconSeparator = "  •  "
)

// ForKind returns the row icon of a suggestion context
func ForKind(kind formula.Kind) string {
	switch kind {
	case formula.KindModule:
		return IconModule
	case formula.KindField:
		return IconField
	case formula.KindIfElse:
		return IconIfElse
	case formula.KindOperator:
		return IconOperator
	case formula.KindFunction:
		return IconFunction
	default:
		return IconBullet
	}
}
