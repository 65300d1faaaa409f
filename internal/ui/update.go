// internal/ui/update.go
// Update loop: key routing, session edits and async results
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezformula/internal/formula"
	"github.com/nhath/ezformula/internal/ui/components/suggestions"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - 8
		return m, nil

	case tea.BlurMsg:
		return m, m.runJobs([]formula.Job{m.session.Blur()})

	case tea.FocusMsg:
		return m, nil

	case JobDoneMsg:
		jobs := m.session.Apply(msg.Update)
		m = m.syncSuggestions()
		return m, m.runJobs(jobs)

	case spinner.TickMsg:
		if m.busy == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SyntaxCheckedMsg:
		m.busy = ""
		if msg.Err != nil {
			m = m.setError(msg.Err)
			return m, nil
		}
		if msg.Result.Valid {
			m.statusMsg = "syntax ok"
			m.errorMsg = ""
		} else {
			m.statusMsg = ""
			m.errorMsg = "syntax: " + msg.Result.Error
		}
		return m, nil

	case EvaluatedMsg:
		m.busy = ""
		if msg.Err != nil {
			m = m.setError(msg.Err)
			return m, nil
		}
		m.result = formatValue(msg.Value)
		m.errorMsg = ""
		return m, nil

	case SubmittedMsg:
		m.busy = ""
		if msg.Err != nil {
			m = m.setError(msg.Err)
			return m, nil
		}
		m.submitted = msg.Formula
		m.log.Info("formula submitted", "formula", msg.Formula)
		return m, tea.Quit

	case ClipboardCopiedMsg:
		if msg.Err != nil {
			m = m.setError(msg.Err)
			return m, nil
		}
		m.statusMsg = "copied to clipboard"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey routes a keystroke: the open candidate list first, then the
// editor bindings, then the text input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k := formula.ParseKey(msg.String()); k != formula.KeyOther {
		if buf, ok := m.session.Key(k); ok {
			m = m.setBuffer(buf).syncSuggestions()
			return m, nil
		}
	}

	keys := m.config.Keys
	text := m.session.Buffer().Text
	switch {
	case matchKey(msg, keys.Exit):
		return m, tea.Quit

	case matchKey(msg, keys.Check):
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m = m.startBusy("checking")
		return m, tea.Batch(m.spinner.Tick, m.checkSyntaxCmd(text))

	case matchKey(msg, keys.Evaluate):
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m = m.startBusy("evaluating")
		return m, tea.Batch(m.spinner.Tick, m.evaluateCmd(text))

	case matchKey(msg, keys.Submit):
		m = m.startBusy("validating")
		return m, tea.Batch(m.spinner.Tick, m.submitCmd(text))

	case matchKey(msg, keys.Copy):
		return m, m.copyCmd(text)
	}

	before, beforePos := m.input.Value(), m.input.Position()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	value, pos := m.input.Value(), m.input.Position()
	if value == before && pos == beforePos {
		return m, cmd
	}
	if value != before {
		m.result = ""
		m.statusMsg = ""
	}
	jobs := m.session.Change(value, byteCaret(value, pos))
	m = m.syncSuggestions()
	return m, tea.Batch(cmd, m.runJobs(jobs))
}

// setBuffer mirrors a session buffer into the text input
func (m Model) setBuffer(buf formula.Buffer) Model {
	m.input.SetValue(buf.Text)
	m.input.SetCursor(runeCaret(buf.Text, buf.Caret))
	return m
}

// syncSuggestions copies the session's suggestion state into the dropdown
func (m Model) syncSuggestions() Model {
	if err := m.session.Err(); err != nil {
		m.errorMsg, m.authHint = describeError(err)
	} else if m.busy == "" && !m.authHint {
		m.errorMsg = ""
	}

	m.suggestions = m.suggestions.SetLoading(m.session.Loading())
	ctx := m.session.Context()
	if !ctx.Active() {
		m.suggestions = m.suggestions.Clear()
		return m
	}

	items := make([]suggestions.Item, len(ctx.Candidates))
	for i, c := range ctx.Candidates {
		items[i] = candidateItem(ctx.Kind, c)
	}
	m.suggestions = m.suggestions.SetItems(contextTitle(ctx), items, ctx.Highlight)
	return m
}

func (m Model) startBusy(what string) Model {
	m.busy = what
	m.errorMsg = ""
	m.statusMsg = ""
	m.authHint = false
	return m
}

func (m Model) setError(err error) Model {
	m.errorMsg, m.authHint = describeError(err)
	m.statusMsg = ""
	m.log.Debug("action failed", "err", err)
	return m
}
