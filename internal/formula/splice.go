// internal/formula/splice.go
package formula

// Splice replaces the context's span with the candidate text and places the
// caret at span start + inserted length + CursorOffset. Text after the caret
// is kept verbatim.
func Splice(buf Buffer, c Context, cand Candidate) Buffer {
	buf = buf.Normalize()
	before, after := buf.Before(), buf.After()

	start := c.Span.Start
	if start < 0 {
		start = 0
	}
	if start > len(before) {
		start = len(before)
	}

	text := before[:start] + cand.Text + after
	caret := start + len(cand.Text) + cand.CursorOffset
	return Buffer{Text: text, Caret: caret}.Normalize()
}
