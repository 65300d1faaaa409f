// internal/formula/store.go
package formula

// Store holds the active suggestion context and its presentation flags.
// Methods return the updated Store.
type Store struct {
	ctx     Context
	loading bool
	err     error
}

// Context returns the active context
func (s Store) Context() Context { return s.ctx }

// Loading reports whether candidates are being fetched
func (s Store) Loading() bool { return s.loading }

// Err returns the inline error of the last classification
func (s Store) Err() error { return s.err }

// Visible reports whether a candidate list should be rendered
func (s Store) Visible() bool { return s.ctx.Active() }

// Activate replaces the current context. An empty candidate list deactivates.
func (s Store) Activate(c Context) Store {
	s.loading = false
	if c.Kind == KindNone || len(c.Candidates) == 0 {
		s.ctx = Context{}
		return s
	}
	c.Highlight = 0
	s.ctx = c
	return s
}

// Deactivate clears the context and the loading flag
func (s Store) Deactivate() Store {
	s.ctx = Context{}
	s.loading = false
	return s
}

// SetLoading sets loading state
func (s Store) SetLoading(loading bool) Store {
	s.loading = loading
	return s
}

// SetError sets the inline error; a non-nil error hides any context
func (s Store) SetError(err error) Store {
	s.err = err
	if err != nil {
		s.ctx = Context{}
		s.loading = false
	}
	return s
}

// Move shifts the highlight by delta with wrap-around
func (s Store) Move(delta int) Store {
	n := len(s.ctx.Candidates)
	if !s.ctx.Active() || n == 0 {
		return s
	}
	s.ctx.Highlight = ((s.ctx.Highlight+delta)%n + n) % n
	return s
}

// Highlight sets the highlight to i when it is in range
func (s Store) Highlight(i int) Store {
	if i >= 0 && i < len(s.ctx.Candidates) {
		s.ctx.Highlight = i
	}
	return s
}
