// internal/ui/model.go
// Root Model struct, constructor, and Init
package ui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nhath/ezformula/internal/config"
	"github.com/nhath/ezformula/internal/formula"
	"github.com/nhath/ezformula/internal/logger"
	"github.com/nhath/ezformula/internal/ui/components/suggestions"
	"github.com/nhath/ezformula/internal/ui/highlight"
)

// Options wires the editor model
type Options struct {
	Config  *config.Config
	Session *formula.Session
	Formula string         // initial text
	Data    map[string]any // sample bindings for check and evaluate
	Logger  *log.Logger
	Copy    func(string) error
}

// Model is the root Bubble Tea model of the formula editor
type Model struct {
	config  *config.Config
	session *formula.Session
	log     *log.Logger
	ctx     context.Context
	copy    func(string) error

	// Components
	input       textinput.Model
	spinner     spinner.Model
	suggestions suggestions.Model
	highlighter *highlight.Highlighter

	width, height int
	initial       string
	data          map[string]any

	// Status
	busy      string // running remote action, shown with the spinner
	statusMsg string
	errorMsg  string
	result    string
	authHint  bool

	submitted string
}

// NewModel creates the editor model
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Session == nil {
		opts.Session = formula.NewSession(formula.Options{Logger: opts.Logger})
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Prompt = "ƒ "
	ti.Placeholder = "Type a formula, e.g. loan.amount * 2"
	ti.CharLimit = 2000
	ti.Width = 80
	ti.PromptStyle = PromptStyle
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(TextFaint())
	ti.SetValue(opts.Formula)
	ti.CursorEnd()
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor())

	return Model{
		config:      cfg,
		session:     opts.Session,
		log:         opts.Logger,
		ctx:         context.Background(),
		copy:        opts.Copy,
		input:       ti,
		spinner:     sp,
		suggestions: suggestions.New().SetStyles(SuggestionStyle).SetMaxShow(cfg.SuggestionLimit),
		highlighter: highlight.New("nord"),
		initial:     opts.Formula,
		data:        opts.Data,
	}
}

// Init opens the editing session and loads the module list
func (m Model) Init() tea.Cmd {
	open := m.session.Open(m.initial)
	return tea.Batch(textinput.Blink, m.runJobs([]formula.Job{open}))
}

// Submitted returns the accepted formula after a successful submit
func (m Model) Submitted() string {
	return m.submitted
}
