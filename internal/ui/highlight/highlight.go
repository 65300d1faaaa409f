// Package highlight renders formulas with ANSI colors for the terminal.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"
)

const ident = `[A-Za-z_][A-Za-z0-9_]*`

// Lexer tokenises formula text: keywords, function calls, module.field
// references, literals and operators.
var Lexer = chroma.MustNewLexer(
	&chroma.Config{
		Name:            "Formula",
		Aliases:         []string{"formula"},
		CaseInsensitive: false,
	},
	func() chroma.Rules {
		return chroma.Rules{
			"root": {
				{Pattern: `\s+`, Type: chroma.Text},
				{Pattern: `"[^"]*"?|'[^']*'?`, Type: chroma.LiteralString},
				{Pattern: `\d+(\.\d+)?`, Type: chroma.LiteralNumber},
				{Pattern: `(?i)(if|then|else|and|or|not|true|false)\b`, Type: chroma.Keyword},
				{Pattern: ident + `(?=\()`, Type: chroma.NameFunction},
				{Pattern: `(` + ident + `)(\.)(` + ident + `)?`, Type: chroma.ByGroups(chroma.NameNamespace, chroma.Punctuation, chroma.NameAttribute)},
				{Pattern: ident, Type: chroma.Name},
				{Pattern: `==|!=|>=|<=|[-+*/%^<>=!]`, Type: chroma.Operator},
				{Pattern: `[(),.]`, Type: chroma.Punctuation},
				{Pattern: `.`, Type: chroma.Text},
			},
		}
	},
)

// Highlighter formats formulas with a chroma style
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// New creates a highlighter for the named chroma style, falling back to the default
func New(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{style: style, formatter: formatters.TTY256}
}

// Formula returns text with terminal color codes. On a lexer or formatter
// error the text is returned unchanged.
func (h *Highlighter) Formula(text string) string {
	if text == "" {
		return ""
	}
	it, err := Lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return text
	}
	return b.String()
}
