// internal/formula/keys.go
package formula

// Key is a keystroke the router may intercept
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyTab
	KeyEnter
	KeyEscape
)

// ParseKey maps key names as reported by terminals and browsers
func ParseKey(name string) Key {
	switch name {
	case "up", "ArrowUp", "ctrl+p":
		return KeyUp
	case "down", "ArrowDown", "ctrl+n":
		return KeyDown
	case "tab", "Tab":
		return KeyTab
	case "enter", "Enter":
		return KeyEnter
	case "esc", "Escape":
		return KeyEscape
	default:
		return KeyOther
	}
}

// Key routes a keystroke to the suggestion list. It returns the buffer after
// the key and whether the key was consumed; unconsumed keys belong to the
// text input.
func (s *Session) Key(k Key) (Buffer, bool) {
	if !s.store.Visible() {
		return s.buf, false
	}

	switch k {
	case KeyDown:
		s.store = s.store.Move(1)
	case KeyUp:
		s.store = s.store.Move(-1)
	case KeyTab, KeyEnter:
		return s.commit(), true
	case KeyEscape:
		s.dismiss()
	default:
		return s.buf, false
	}
	return s.buf, true
}

// Select commits candidate i, as a pointer click does
func (s *Session) Select(i int) (Buffer, bool) {
	ctx := s.store.Context()
	if !ctx.Active() || i < 0 || i >= len(ctx.Candidates) {
		return s.buf, false
	}
	s.store = s.store.Highlight(i)
	return s.commit(), true
}
