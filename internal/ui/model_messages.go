// internal/ui/model_messages.go
// Consolidated message types for Bubble Tea Update cycle
package ui

import (
	"github.com/nhath/ezformula/internal/api"
	"github.com/nhath/ezformula/internal/formula"
)

// JobDoneMsg carries the result of a session job back to the event loop
type JobDoneMsg struct {
	Update formula.Update
}

// SyntaxCheckedMsg is sent when the remote syntax check completes
type SyntaxCheckedMsg struct {
	Formula string
	Result  *api.SyntaxResult
	Err     error
}

// EvaluatedMsg is sent when remote evaluation completes
type EvaluatedMsg struct {
	Formula string
	Value   any
	Err     error
}

// SubmittedMsg is sent when submit validation completes
type SubmittedMsg struct {
	Formula string
	Err     error
}

// ClipboardCopiedMsg is sent when clipboard copy completes
type ClipboardCopiedMsg struct {
	Text string
	Err  error
}
