package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/ezformula/internal/api"
	"github.com/nhath/ezformula/internal/config"
	"github.com/nhath/ezformula/internal/formula"
)

type fakeSyntax struct {
	result    api.SyntaxResult
	err       error
	value     any
	checkData map[string]any
}

func (f *fakeSyntax) CheckSyntax(_ context.Context, _ string, data map[string]any) (*api.SyntaxResult, error) {
	f.checkData = data
	if f.err != nil {
		return nil, f.err
	}
	res := f.result
	return &res, nil
}

func (f *fakeSyntax) Evaluate(_ context.Context, _ string, _ map[string]any) (any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.value, nil
}

type harness struct {
	t      *testing.T
	m      Model
	copied string
}

func newHarness(t *testing.T, backend formula.SyntaxBackend, initial string) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.CurrentModule = "loan"
	InitStyles(cfg.Theme)

	dir := formula.NewDirectory(nil, formula.DirectoryOptions{
		Static:  []formula.ModuleRecord{{ID: "inventory", Label: "Inventory"}},
		Current: formula.ModuleRecord{ID: "loan"},
	})
	dir.Stage([]api.Section{{Inputs: map[string]api.Input{
		"amount": {Name: "amount"},
		"rate":   {Name: "rate"},
	}}})
	session := formula.NewSession(formula.Options{
		Directory: dir,
		Backend:   backend,
		BlurDelay: time.Millisecond,
	})

	h := &harness{t: t}
	h.m = NewModel(Options{
		Config:  cfg,
		Session: session,
		Formula: initial,
		Data:    map[string]any{"loan": map[string]any{"amount": 10}},
		Copy: func(s string) error {
			h.copied = s
			return nil
		},
	})
	h.send(tea.WindowSizeMsg{Width: 100, Height: 24})
	h.settle(h.m.Init())
	return h
}

// exec runs cmd and flattens batches. Commands that block, like cursor
// blinking, are abandoned.
func exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, exec(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// send delivers msg and returns the messages its command produced
func (h *harness) send(msg tea.Msg) []tea.Msg {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return h.settle(cmd)
}

// settle feeds async results back into the model until none are left
func (h *harness) settle(cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	for _, msg := range exec(cmd) {
		seen = append(seen, msg)
		switch msg.(type) {
		case JobDoneMsg, SyntaxCheckedMsg, EvaluatedMsg, SubmittedMsg, ClipboardCopiedMsg:
			seen = append(seen, h.send(msg)...)
		}
	}
	return seen
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) key(t tea.KeyType) []tea.Msg {
	return h.send(tea.KeyMsg{Type: t})
}

func (h *harness) view() string {
	return ansi.Strip(h.m.View())
}

func quits(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestModuleCompletionWithTab(t *testing.T) {
	h := newHarness(t, &fakeSyntax{}, "")
	h.typeText("inv")

	assert.Contains(t, h.view(), "inventory")
	h.key(tea.KeyTab)

	assert.Equal(t, "inventory", h.m.input.Value())
	assert.Equal(t, 9, h.m.input.Position())
	assert.False(t, h.m.suggestions.Visible())
}

func TestFieldCompletionWithEnter(t *testing.T) {
	h := newHarness(t, &fakeSyntax{}, "")
	h.typeText("loan.ra")

	assert.Contains(t, h.view(), "fields of loan")
	h.key(tea.KeyEnter)

	assert.Equal(t, "loan.rate", h.m.input.Value())
	assert.Equal(t, 9, h.m.input.Position())
}

func TestIfElseCaretInsideParens(t *testing.T) {
	h := newHarness(t, &fakeSyntax{}, "")
	h.typeText("if")
	h.key(tea.KeyTab)

	assert.Equal(t, "if() then  else ", h.m.input.Value())
	assert.Equal(t, 3, h.m.input.Position())
}

func TestArrowNavigation(t *testing.T) {
	h := newHarness(t, &fakeSyntax{}, "")
	h.typeText("a +")

	h.key(tea.KeyDown)
	h.key(tea.KeyDown)
	assert.Equal(t, 2, h.m.session.Context().Highlight)
	assert.Equal(t, 2, h.m.suggestions.Selected())

	h.key(tea.KeyUp)
	h.key(tea.KeyTab)
	assert.Equal(t, "a -", h.m.input.Value())
}

func TestEscapeDismissesThenQuits(t *testing.T) {
	h := newHarness(t, &fakeSyntax{}, "")
	h.typeText("inv")

	assert.False(t, quits(h.key(tea.KeyEsc)))
	assert.False(t, h.m.session.Context().Active())
	assert.Equal(t, "inv", h.m.input.Value())

	assert.True(t, quits(h.key(tea.KeyEsc)))
}

func TestUnknownModuleShown(t *testing.T) {
	h := newHarness(t, &fakeSyntax{}, "")
	h.typeText("nope.")

	assert.Contains(t, h.view(), `unknown module "nope"`)
	h.key(tea.KeyBackspace)
	assert.NotContains(t, h.view(), "unknown module")
}

func TestInitialFormulaIsClassified(t *testing.T) {
	h := newHarness(t, &fakeSyntax{}, "inv")

	assert.Equal(t, formula.KindModule, h.m.session.Context().Kind)
	assert.Contains(t, h.view(), "inventory")
}

func TestCheckThenSubmit(t *testing.T) {
	backend := &fakeSyntax{result: api.SyntaxResult{Valid: true}}
	h := newHarness(t, backend, "")
	h.typeText("loan.amount * 2")

	h.key(tea.KeyCtrlS)
	assert.Contains(t, h.view(), "not been checked")
	assert.Empty(t, h.m.Submitted())

	h.key(tea.KeyCtrlK)
	assert.Contains(t, h.view(), "syntax ok")
	assert.Equal(t, map[string]any{"loan": map[string]any{"amount": 10}}, backend.checkData)

	msgs := h.key(tea.KeyCtrlS)
	assert.Equal(t, "loan.amount * 2", h.m.Submitted())
	assert.True(t, quits(msgs))
}

func TestInvalidSyntaxShown(t *testing.T) {
	h := newHarness(t, &fakeSyntax{result: api.SyntaxResult{Valid: false, Error: "unexpected end"}}, "")
	h.typeText("1 +")
	h.key(tea.KeyEsc)

	h.key(tea.KeyCtrlK)
	assert.Contains(t, h.view(), "syntax: unexpected end")
}

func TestUnauthorizedHint(t *testing.T) {
	h := newHarness(t, &fakeSyntax{err: &api.StatusError{StatusCode: 401, ErrorMessage: "expired"}}, "")
	h.typeText("1")

	h.key(tea.KeyCtrlK)
	assert.True(t, h.m.authHint)
	assert.Contains(t, h.view(), "--set-token")
}

func TestEvaluateShowsResult(t *testing.T) {
	h := newHarness(t, &fakeSyntax{value: 42.0}, "")
	h.typeText("2 * 21")

	h.key(tea.KeyCtrlE)
	assert.Contains(t, h.view(), "= 42")
}

func TestEvaluateError(t *testing.T) {
	h := newHarness(t, &fakeSyntax{err: errors.New("division by zero")}, "")
	h.typeText("1 / 0")

	h.key(tea.KeyCtrlE)
	assert.Contains(t, h.view(), "division by zero")
	assert.Empty(t, h.m.busy)
}

func TestCopy(t *testing.T) {
	h := newHarness(t, &fakeSyntax{}, "")
	h.typeText("3 * 4")

	h.key(tea.KeyCtrlY)
	assert.Equal(t, "3 * 4", h.copied)
	assert.Contains(t, h.view(), "copied")
}

func TestBlurHidesSuggestions(t *testing.T) {
	h := newHarness(t, &fakeSyntax{}, "")
	h.typeText("inv")
	require.True(t, h.m.suggestions.Visible())

	h.send(tea.BlurMsg{})
	assert.False(t, h.m.suggestions.Visible())
	assert.Equal(t, "inv", h.m.input.Value())
}

func TestViewBeforeResize(t *testing.T) {
	m := NewModel(Options{})
	assert.Equal(t, "Loading...", m.View())
}

func TestCaretConversion(t *testing.T) {
	s := "ß + x"
	assert.Equal(t, 2, byteCaret(s, 1))
	assert.Equal(t, len(s), byteCaret(s, 99))
	assert.Equal(t, 1, runeCaret(s, 2))
	assert.True(t, strings.HasPrefix(s[byteCaret(s, 1):], " +"))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "42", formatValue(42.0))
	assert.Equal(t, "2.5", formatValue(2.5))
	assert.Equal(t, `"x"`, formatValue("x"))
	assert.Equal(t, "null", formatValue(nil))
	assert.Equal(t, "true", formatValue(true))
}
