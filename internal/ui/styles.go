// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezformula/internal/config"
	"github.com/nhath/ezformula/internal/ui/components/suggestions"
)

var (
	// Colors (exported via getter functions below)
	textPrimary   lipgloss.Color
	textSecondary lipgloss.Color
	textFaint     lipgloss.Color

	accentColor    lipgloss.Color
	successColor   lipgloss.Color
	errorColor     lipgloss.Color
	highlightColor lipgloss.Color
	warningColor   lipgloss.Color

	bgPrimary   lipgloss.Color
	bgSecondary lipgloss.Color
	cardBg      lipgloss.Color
	popupBg     lipgloss.Color
	borderColor lipgloss.Color
	selectedBg  lipgloss.Color

	// Styles
	StatusBarStyle  lipgloss.Style
	ModuleStyle     lipgloss.Style
	KindStyle       lipgloss.Style
	TitleStyle      lipgloss.Style
	MetaStyle       lipgloss.Style
	InputStyle      lipgloss.Style
	PromptStyle     lipgloss.Style
	PreviewStyle    lipgloss.Style
	SuccessStyle    lipgloss.Style
	ErrorStyle      lipgloss.Style
	WarningStyle    lipgloss.Style
	ResultStyle     lipgloss.Style
	HelpKeyStyle    lipgloss.Style
	HelpDescStyle   lipgloss.Style
	SuggestionStyle suggestions.Styles
)

// Color getter functions for use in components
func TextPrimary() lipgloss.Color   { return textPrimary }
func TextSecondary() lipgloss.Color { return textSecondary }
func TextFaint() lipgloss.Color     { return textFaint }
func AccentColor() lipgloss.Color   { return accentColor }
func SuccessColor() lipgloss.Color  { return successColor }
func ErrorColor() lipgloss.Color    { return errorColor }
func BgPrimary() lipgloss.Color     { return bgPrimary }
func BgSecondary() lipgloss.Color   { return bgSecondary }

// InitStyles initializes the global styles based on the provided configuration theme
func InitStyles(theme config.Theme) {
	// Initialize Colors
	textPrimary = lipgloss.Color(theme.TextPrimary)
	textSecondary = lipgloss.Color(theme.TextSecondary)
	textFaint = lipgloss.Color(theme.TextFaint)

	accentColor = lipgloss.Color(theme.Accent)
	successColor = lipgloss.Color(theme.Success)
	errorColor = lipgloss.Color(theme.Error)
	highlightColor = lipgloss.Color(theme.Highlight)
	warningColor = lipgloss.Color(theme.Warning)

	bgPrimary = lipgloss.Color(theme.BgPrimary)
	bgSecondary = lipgloss.Color(theme.BgSecondary)
	cardBg = lipgloss.Color(theme.CardBg)
	popupBg = lipgloss.Color(theme.PopupBg)
	borderColor = lipgloss.Color(theme.BorderColor)
	selectedBg = lipgloss.Color(theme.SelectedBg)

	// Initialize Styles
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(bgSecondary)

	ModuleStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(successColor).
		Foreground(bgPrimary)

	KindStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(cardBg).
		Foreground(textPrimary)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor)

	MetaStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Italic(true)

	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor)

	PreviewStyle = lipgloss.NewStyle().
		Padding(0, 2)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
		Foreground(bgPrimary).
		Background(warningColor).
		Bold(true).
		Padding(0, 1)

	ResultStyle = lipgloss.NewStyle().
		Foreground(highlightColor).
		Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(textSecondary).
		Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
		Foreground(textFaint)

	SuggestionStyle = suggestions.Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlightColor).
			Background(popupBg).
			Padding(0, 1),
		Title:    lipgloss.NewStyle().Foreground(textFaint).Background(popupBg).Italic(true),
		Item:     lipgloss.NewStyle().Foreground(textPrimary).Background(popupBg),
		Selected: lipgloss.NewStyle().Foreground(textPrimary).Background(selectedBg).Bold(true),
		Detail:   lipgloss.NewStyle().Foreground(textFaint).Background(popupBg),
		Loading:  lipgloss.NewStyle().Foreground(textFaint).Background(popupBg).Italic(true),
	}
}
