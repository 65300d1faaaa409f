// internal/formula/types.go
// Package formula is the caret-context autocomplete engine of the formula editor.
package formula

// Kind is the suggestion context active for the current edit
type Kind int

const (
	KindNone Kind = iota
	KindModule
	KindField
	KindIfElse
	KindOperator
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindField:
		return "field"
	case KindIfElse:
		return "if-else"
	case KindOperator:
		return "operator"
	case KindFunction:
		return "function"
	default:
		return "none"
	}
}

// IsSnippet reports whether candidates of this kind are snippets
func (k Kind) IsSnippet() bool {
	return k == KindIfElse || k == KindOperator || k == KindFunction
}

// Buffer is the formula text plus a byte offset caret
type Buffer struct {
	Text  string
	Caret int
}

// Before returns the text left of the caret
func (b Buffer) Before() string { return b.Text[:b.clamp()] }

// After returns the text right of the caret
func (b Buffer) After() string { return b.Text[b.clamp():] }

func (b Buffer) clamp() int {
	switch {
	case b.Caret < 0:
		return 0
	case b.Caret > len(b.Text):
		return len(b.Text)
	}
	return b.Caret
}

// Normalize returns b with its caret clamped into the text
func (b Buffer) Normalize() Buffer {
	b.Caret = b.clamp()
	return b
}

// Span is the replacement range of a context. End is always the caret.
type Span struct {
	Start int
	End   int
}

// ModuleRecord is a module that can be referenced as "<id>.<field>"
type ModuleRecord struct {
	ID    string
	Label string
	Icon  string
}

// Snippet is an insertable operator, function or control-flow template
type Snippet struct {
	Label   string
	Value   string
	Display string
	// CursorOffset moves the caret relative to the end of the inserted Value
	CursorOffset int
}

// Candidate is a single entry of the active suggestion list
type Candidate struct {
	Text         string // inserted verbatim
	Label        string
	Display      string
	Icon         string
	CursorOffset int
}

// Context is the active suggestion context. Kind is the variant tag; the
// candidate list belongs to that variant alone.
type Context struct {
	Kind       Kind
	Span       Span
	Token      string // partial token that triggered the context
	Qualifier  string // resolved module id for field contexts
	Candidates []Candidate
	Highlight  int
}

// Active reports whether a context with candidates is shown
func (c Context) Active() bool {
	return c.Kind != KindNone && len(c.Candidates) > 0
}

// Selected returns the highlighted candidate
func (c Context) Selected() (Candidate, bool) {
	if !c.Active() || c.Highlight < 0 || c.Highlight >= len(c.Candidates) {
		return Candidate{}, false
	}
	return c.Candidates[c.Highlight], true
}

func moduleCandidates(mods []ModuleRecord) []Candidate {
	out := make([]Candidate, len(mods))
	for i, m := range mods {
		out[i] = Candidate{Text: m.ID, Label: m.Label, Display: m.Label, Icon: m.Icon}
	}
	return out
}

func fieldCandidates(fields []string) []Candidate {
	out := make([]Candidate, len(fields))
	for i, f := range fields {
		out[i] = Candidate{Text: f, Label: f, Display: f}
	}
	return out
}

func snippetCandidates(snips []Snippet) []Candidate {
	out := make([]Candidate, len(snips))
	for i, s := range snips {
		out[i] = Candidate{Text: s.Value, Label: s.Label, Display: s.Display, CursorOffset: s.CursorOffset}
	}
	return out
}
