// internal/formula/session.go
package formula

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nhath/ezformula/internal/api"
	"github.com/nhath/ezformula/internal/logger"
)

// DefaultBlurDelay leaves time for a pointer click on a candidate to land
// before focus loss hides the list.
const DefaultBlurDelay = 200 * time.Millisecond

// Job is blocking work requested by the session. The host runs it off the
// event loop and hands the result back to Apply.
type Job func(ctx context.Context) Update

// Update is the result of a Job
type Update struct {
	Seq      uint64
	Kind     Kind
	Span     Span
	Token    string
	Module   ModuleRecord
	Fields   []string
	Snippets []Snippet
	Blur     bool
	Loaded   bool // module list refreshed
}

// Options wires a Session
type Options struct {
	Directory *Directory
	Fetcher   *Fetcher
	Catalog   *Catalog
	Backend   SyntaxBackend
	BlurDelay time.Duration
	Logger    *log.Logger
}

// Session is one formula editing session. Buffer and suggestion state belong
// to the goroutine running the event loop; only Jobs, CheckSyntax, Evaluate
// and Validate may run elsewhere.
type Session struct {
	dir       *Directory
	fetcher   *Fetcher
	catalog   *Catalog
	backend   SyntaxBackend
	blurDelay time.Duration
	log       *log.Logger

	buf   Buffer
	store Store
	seq   uint64
	// edited is cleared when the user commits or dismisses; a late module
	// list only reclassifies edits still waiting on it
	edited bool

	mu      sync.Mutex
	checked *syntaxRecord
}

// NewSession creates a session; nil collaborators get offline defaults
func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Directory == nil {
		opts.Directory = NewDirectory(nil, DirectoryOptions{Logger: opts.Logger})
	}
	if opts.Fetcher == nil {
		opts.Fetcher = NewFetcher(nil, 0, opts.Logger)
	}
	if opts.Catalog == nil {
		opts.Catalog = NewCatalog()
	}
	if opts.BlurDelay <= 0 {
		opts.BlurDelay = DefaultBlurDelay
	}
	return &Session{
		dir:       opts.Directory,
		fetcher:   opts.Fetcher,
		catalog:   opts.Catalog,
		backend:   opts.Backend,
		blurDelay: opts.BlurDelay,
		log:       opts.Logger,
	}
}

// Open starts a fresh session over text: the snippet cache is cleared and a
// Job loading the module list is returned.
func (s *Session) Open(text string) Job {
	s.fetcher.Reset()
	s.buf = Buffer{Text: text, Caret: len(text)}
	s.store = Store{}
	s.seq++
	s.edited = true
	return func(ctx context.Context) Update {
		if err := s.dir.Load(ctx); err != nil {
			s.log.Debug("continuing without module list", "err", err)
		}
		return Update{Loaded: true}
	}
}

// Buffer returns the current text and caret
func (s *Session) Buffer() Buffer { return s.buf }

// Context returns the active suggestion context
func (s *Session) Context() Context { return s.store.Context() }

// Loading reports whether candidates are still being fetched
func (s *Session) Loading() bool { return s.store.Loading() }

// Err returns the inline error of the current edit, if any
func (s *Session) Err() error { return s.store.Err() }

// Directory exposes the module directory of the session
func (s *Session) Directory() *Directory { return s.dir }

// Change records an edit and re-derives the suggestion context. Anything
// that cannot be answered from local data comes back as a Job.
func (s *Session) Change(text string, caret int) []Job {
	s.seq++
	s.edited = true
	s.buf = Buffer{Text: text, Caret: caret}.Normalize()
	s.store = s.store.SetError(nil).Deactivate()

	c := Classify(s.buf, s.dir)
	if c.Err != nil {
		s.store = s.store.SetError(c.Err)
		return nil
	}

	switch {
	case c.Kind == KindModule:
		s.store = s.store.Activate(Context{
			Kind:       KindModule,
			Span:       c.Span,
			Token:      c.Token,
			Candidates: moduleCandidates(c.Modules),
		})
		return nil

	case c.Kind == KindField:
		if fields, ok := s.dir.CachedFields(c.Module.ID); ok {
			s.activateFields(c.Span, c.Token, c.Module, fields)
			return nil
		}
		s.store = s.store.SetLoading(true)
		seq, dir := s.seq, s.dir
		return []Job{func(ctx context.Context) Update {
			return Update{
				Seq:    seq,
				Kind:   KindField,
				Span:   c.Span,
				Token:  c.Token,
				Module: c.Module,
				Fields: dir.FieldsFor(ctx, c.Module.ID),
			}
		}}

	case c.Kind.IsSnippet():
		if snips, ok := s.fetcher.Cached(c.Token); ok {
			s.activateSnippets(c.Kind, c.Span, c.Token, snips)
			return nil
		}
		s.store = s.store.SetLoading(true)
		seq, fetcher := s.seq, s.fetcher
		return []Job{func(ctx context.Context) Update {
			return Update{
				Seq:      seq,
				Kind:     c.Kind,
				Span:     c.Span,
				Token:    c.Token,
				Snippets: fetcher.Fetch(ctx, c.Token),
			}
		}}
	}
	return nil
}

// Apply folds a Job result into the session. Results dispatched before the
// latest edit are dropped; their data still warmed the caches.
func (s *Session) Apply(u Update) []Job {
	if u.Loaded {
		if !s.edited || s.buf.Text == "" {
			return nil
		}
		return s.Change(s.buf.Text, s.buf.Caret)
	}
	if u.Seq != s.seq {
		s.log.Debug("dropping stale update", "kind", u.Kind, "token", u.Token, "seq", u.Seq, "latest", s.seq)
		return nil
	}

	switch {
	case u.Blur:
		s.edited = false
		s.store = s.store.Deactivate()
	case u.Kind == KindField:
		s.activateFields(u.Span, u.Token, u.Module, u.Fields)
	case u.Kind.IsSnippet():
		s.activateSnippets(u.Kind, u.Span, u.Token, u.Snippets)
	}
	return nil
}

// Blur hides the candidate list after the blur delay unless the buffer
// changed or a candidate was picked in the meantime.
func (s *Session) Blur() Job {
	seq, delay := s.seq, s.blurDelay
	return func(ctx context.Context) Update {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
		}
		return Update{Seq: seq, Blur: true}
	}
}

func (s *Session) activateFields(span Span, partial string, mod ModuleRecord, fields []string) {
	s.store = s.store.Activate(Context{
		Kind:       KindField,
		Span:       span,
		Token:      partial,
		Qualifier:  mod.ID,
		Candidates: fieldCandidates(filterFields(fields, partial)),
	})
}

func (s *Session) activateSnippets(kind Kind, span Span, token string, remote []Snippet) {
	s.store = s.store.Activate(Context{
		Kind:       kind,
		Span:       span,
		Token:      token,
		Candidates: snippetCandidates(s.snippetsFor(kind, token, remote)),
	})
}

// snippetsFor applies the static fallback for kind when remote is empty
func (s *Session) snippetsFor(kind Kind, token string, remote []Snippet) []Snippet {
	snips := remote
	if len(snips) == 0 {
		switch kind {
		case KindIfElse:
			snips = s.catalog.IfElse()
		case KindOperator:
			snips = s.catalog.Operators()
		case KindFunction:
			snips = s.catalog.Functions(token)
		}
	}
	if kind == KindOperator && len(token) >= 2 && token[len(token)-2:] == "==" {
		snips = equalityFirst(snips)
	}
	return snips
}

func (s *Session) commit() Buffer {
	ctx := s.store.Context()
	cand, ok := ctx.Selected()
	if !ok {
		return s.buf
	}
	s.buf = Splice(s.buf, ctx, cand)
	s.seq++
	s.edited = false
	s.store = s.store.Deactivate()
	s.log.Debug("candidate committed", "kind", ctx.Kind, "text", cand.Text, "caret", s.buf.Caret)
	return s.buf
}

func (s *Session) dismiss() {
	s.seq++
	s.edited = false
	s.store = s.store.Deactivate()
}

var _ SyntaxBackend = (*api.Client)(nil)
