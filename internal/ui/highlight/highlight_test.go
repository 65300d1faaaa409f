package highlight

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(t *testing.T, text string) map[string]chroma.TokenType {
	t.Helper()
	it, err := Lexer.Tokenise(nil, text)
	require.NoError(t, err)

	types := make(map[string]chroma.TokenType)
	for _, tok := range it.Tokens() {
		if strings.TrimSpace(tok.Value) == "" {
			continue
		}
		types[tok.Value] = tok.Type
	}
	return types
}

func TestLexerTokenTypes(t *testing.T) {
	types := tokenTypes(t, `if(SUM(loan.amount) >= 3.5) then "ok" else 0`)

	assert.Equal(t, chroma.Keyword, types["if"])
	assert.Equal(t, chroma.NameFunction, types["SUM"])
	assert.Equal(t, chroma.NameNamespace, types["loan"])
	assert.Equal(t, chroma.NameAttribute, types["amount"])
	assert.Equal(t, chroma.Operator, types[">="])
	assert.Equal(t, chroma.LiteralNumber, types["3.5"])
	assert.Equal(t, chroma.LiteralString, types[`"ok"`])
	assert.Equal(t, chroma.Keyword, types["else"])
}

func TestLexerUnfinishedReference(t *testing.T) {
	types := tokenTypes(t, "loan.")
	assert.Equal(t, chroma.NameNamespace, types["loan"])
	assert.Equal(t, chroma.Punctuation, types["."])
}

func TestFormulaKeepsText(t *testing.T) {
	h := New("nord")
	text := `inventory.qty * 2 + ABS(x) # ?`

	out := h.Formula(text)
	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, text, ansi.Strip(out))
}

func TestUnknownStyleFallsBack(t *testing.T) {
	h := New("no-such-style")
	assert.Equal(t, "a + b", ansi.Strip(h.Formula("a + b")))
	assert.Empty(t, h.Formula(""))
}
