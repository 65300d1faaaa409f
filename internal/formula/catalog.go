// internal/formula/catalog.go
package formula

import (
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Static snippet tables, used when the suggestion service has nothing
var (
	ifElseSnippets = []Snippet{
		// caret lands right after "("
		{Label: "if / else", Value: "if() then  else ", Display: "if(condition) then a else b", CursorOffset: -13},
	}

	arithmeticSnippets = []Snippet{
		{Label: "Add", Value: "+", Display: "a + b"},
		{Label: "Subtract", Value: "-", Display: "a - b"},
		{Label: "Multiply", Value: "*", Display: "a * b"},
		{Label: "Divide", Value: "/", Display: "a / b"},
		{Label: "Modulo", Value: "%", Display: "a % b"},
		{Label: "Power", Value: "^", Display: "a ^ b"},
	}

	comparisonSnippets = []Snippet{
		{Label: "Greater than", Value: ">", Display: "a > b"},
		{Label: "Less than", Value: "<", Display: "a < b"},
		{Label: "Greater or equal", Value: ">=", Display: "a >= b"},
		{Label: "Less or equal", Value: "<=", Display: "a <= b"},
		{Label: "Not equal", Value: "!=", Display: "a != b"},
		{Label: "Equal", Value: "==", Display: "a == b"},
	}

	functionSnippets = []Snippet{
		{Label: "ABS", Value: "ABS()", Display: "ABS(number)", CursorOffset: -1},
		{Label: "AVG", Value: "AVG()", Display: "AVG(number1, number2, ...)", CursorOffset: -1},
		{Label: "CEIL", Value: "CEIL()", Display: "CEIL(number)", CursorOffset: -1},
		{Label: "CONCAT", Value: "CONCAT()", Display: "CONCAT(text1, text2, ...)", CursorOffset: -1},
		{Label: "COUNT", Value: "COUNT()", Display: "COUNT(value1, value2, ...)", CursorOffset: -1},
		{Label: "DATEDIFF", Value: "DATEDIFF()", Display: "DATEDIFF(start, end, unit)", CursorOffset: -1},
		{Label: "FLOOR", Value: "FLOOR()", Display: "FLOOR(number)", CursorOffset: -1},
		{Label: "IFNULL", Value: "IFNULL()", Display: "IFNULL(value, fallback)", CursorOffset: -1},
		{Label: "LEN", Value: "LEN()", Display: "LEN(text)", CursorOffset: -1},
		{Label: "LOWER", Value: "LOWER()", Display: "LOWER(text)", CursorOffset: -1},
		{Label: "MAX", Value: "MAX()", Display: "MAX(number1, number2, ...)", CursorOffset: -1},
		{Label: "MIN", Value: "MIN()", Display: "MIN(number1, number2, ...)", CursorOffset: -1},
		{Label: "NOW", Value: "NOW()", Display: "NOW()"},
		{Label: "ROUND", Value: "ROUND()", Display: "ROUND(number, digits)", CursorOffset: -1},
		{Label: "SUM", Value: "SUM()", Display: "SUM(number1, number2, ...)", CursorOffset: -1},
		{Label: "TODAY", Value: "TODAY()", Display: "TODAY()"},
		{Label: "TRIM", Value: "TRIM()", Display: "TRIM(text)", CursorOffset: -1},
		{Label: "UPPER", Value: "UPPER()", Display: "UPPER(text)", CursorOffset: -1},
	}
)

// Catalog answers fallback lookups against the static tables
type Catalog struct {
	functions *patricia.Trie
}

// NewCatalog indexes the function table by lowercase name
func NewCatalog() *Catalog {
	trie := patricia.NewTrie()
	for _, s := range functionSnippets {
		trie.Insert(patricia.Prefix(strings.ToLower(s.Label)), s)
	}
	return &Catalog{functions: trie}
}

// IfElse returns the if/else templates
func (c *Catalog) IfElse() []Snippet {
	return clone(ifElseSnippets)
}

// Operators returns arithmetic followed by comparison operators
func (c *Catalog) Operators() []Snippet {
	out := make([]Snippet, 0, len(arithmeticSnippets)+len(comparisonSnippets))
	out = append(out, arithmeticSnippets...)
	return append(out, comparisonSnippets...)
}

// Functions returns functions whose name starts with prefix, case-insensitively
func (c *Catalog) Functions(prefix string) []Snippet {
	var out []Snippet
	c.functions.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(_ patricia.Prefix, item patricia.Item) error {
		out = append(out, item.(Snippet))
		return nil
	})
	return out
}

// equalityFirst moves the "==" snippet to the front, keeping the others in order
func equalityFirst(snips []Snippet) []Snippet {
	idx := -1
	for i, s := range snips {
		if strings.TrimSpace(s.Value) == "==" {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return snips
	}
	out := make([]Snippet, 0, len(snips))
	out = append(out, snips[idx])
	out = append(out, snips[:idx]...)
	return append(out, snips[idx+1:]...)
}

func clone(s []Snippet) []Snippet {
	return append([]Snippet(nil), s...)
}
