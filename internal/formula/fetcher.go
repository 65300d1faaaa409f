// internal/formula/fetcher.go
package formula

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/nhath/ezformula/internal/api"
	"github.com/nhath/ezformula/internal/logger"
)

// SuggestionSource is the part of the platform API the fetcher reads
type SuggestionSource interface {
	Suggestions(ctx context.Context, query string, limit int) ([]api.Suggestion, error)
}

// Fetcher requests snippet completions for partial tokens and memoizes them
// for the lifetime of an editing session.
type Fetcher struct {
	source SuggestionSource
	limit  int
	log    *log.Logger

	mu    sync.RWMutex
	cache map[string][]Snippet
	group singleflight.Group
}

// NewFetcher creates a fetcher. source may be nil, in which case every
// lookup is empty and callers fall back to the static catalog.
func NewFetcher(source SuggestionSource, limit int, l *log.Logger) *Fetcher {
	if limit <= 0 {
		limit = 10
	}
	if l == nil {
		l = logger.Discard()
	}
	return &Fetcher{
		source: source,
		limit:  limit,
		log:    l,
		cache:  make(map[string][]Snippet),
	}
}

// Cached returns the memoized result for query. Empty queries are always
// answered (with nothing).
func (f *Fetcher) Cached(query string) ([]Snippet, bool) {
	key := strings.ToLower(query)
	if key == "" || f.source == nil {
		return nil, true
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	snips, ok := f.cache[key]
	return snips, ok
}

// Fetch returns snippets for query, calling the backend at most once per
// distinct lowercase query. Failures are logged and yield nil; they are not
// cached, so a later keystroke retries.
func (f *Fetcher) Fetch(ctx context.Context, query string) []Snippet {
	if snips, ok := f.Cached(query); ok {
		return snips
	}
	key := strings.ToLower(query)

	v, err, _ := f.group.Do(key, func() (interface{}, error) {
		if snips, ok := f.Cached(key); ok {
			return snips, nil
		}
		raw, err := f.source.Suggestions(ctx, query, f.limit)
		if err != nil {
			return nil, err
		}
		snips := toSnippets(raw)
		f.mu.Lock()
		f.cache[key] = snips
		f.mu.Unlock()
		return snips, nil
	})
	if err != nil {
		f.log.Warn("suggestions unavailable", "query", query, "err", err)
		return nil
	}
	return v.([]Snippet)
}

// Reset drops every memoized result; called when a new session starts
func (f *Fetcher) Reset() {
	f.mu.Lock()
	f.cache = make(map[string][]Snippet)
	f.mu.Unlock()
}

func toSnippets(raw []api.Suggestion) []Snippet {
	out := make([]Snippet, 0, len(raw))
	for _, s := range raw {
		text := s.Text()
		if text == "" {
			continue
		}
		out = append(out, Snippet{Label: text, Value: text, Display: text})
	}
	return out
}
