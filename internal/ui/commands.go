// internal/ui/commands.go
// tea.Cmd builders for session jobs and remote actions
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezformula/internal/formula"
)

// runJobs runs each session job off the event loop
func (m Model) runJobs(jobs []formula.Job) tea.Cmd {
	if len(jobs) == 0 {
		return nil
	}
	ctx := m.ctx
	cmds := make([]tea.Cmd, len(jobs))
	for i, job := range jobs {
		job := job
		cmds[i] = func() tea.Msg {
			return JobDoneMsg{Update: job(ctx)}
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) checkSyntaxCmd(text string) tea.Cmd {
	ctx, session, data := m.ctx, m.session, m.data
	return func() tea.Msg {
		res, err := session.CheckSyntax(ctx, text, data)
		return SyntaxCheckedMsg{Formula: text, Result: res, Err: err}
	}
}

func (m Model) evaluateCmd(text string) tea.Cmd {
	ctx, session, data := m.ctx, m.session, m.data
	return func() tea.Msg {
		v, err := session.Evaluate(ctx, text, data)
		return EvaluatedMsg{Formula: text, Value: v, Err: err}
	}
}

func (m Model) submitCmd(text string) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		accepted, err := session.Submit(ctx, text)
		return SubmittedMsg{Formula: accepted, Err: err}
	}
}

func (m Model) copyCmd(text string) tea.Cmd {
	copyFn := m.copy
	return func() tea.Msg {
		return ClipboardCopiedMsg{Text: text, Err: copyFn(text)}
	}
}
