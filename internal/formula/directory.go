// internal/formula/directory.go
package formula

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/nhath/ezformula/internal/api"
	"github.com/nhath/ezformula/internal/logger"
)

// DirectoryBackend is the part of the platform API the directory reads
type DirectoryBackend interface {
	Modules(ctx context.Context, offset, limit int) ([]api.Module, error)
	Forms(ctx context.Context, moduleID string, offset, limit int) ([]api.Form, error)
}

// DirectoryOptions configures a Directory
type DirectoryOptions struct {
	Static    []ModuleRecord
	Current   ModuleRecord // module being edited; empty ID disables the alias
	PageSize  int
	CacheSize int
	CacheTTL  time.Duration
	Logger    *log.Logger
}

// Directory resolves module tokens and lists the fields of a module
type Directory struct {
	backend  DirectoryBackend
	static   []ModuleRecord
	current  ModuleRecord
	pageSize int
	log      *log.Logger

	mu     sync.RWMutex
	loaded []ModuleRecord
	staged []api.Section

	// saved default-form fields per normalized module id
	saved *expirable.LRU[string, []string]
}

// NewDirectory creates a directory. backend may be nil for offline use.
func NewDirectory(backend DirectoryBackend, opts DirectoryOptions) *Directory {
	if opts.PageSize <= 0 {
		opts.PageSize = 100
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 64
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	return &Directory{
		backend:  backend,
		static:   append([]ModuleRecord(nil), opts.Static...),
		current:  opts.Current,
		pageSize: opts.PageSize,
		log:      opts.Logger,
		saved:    expirable.NewLRU[string, []string](opts.CacheSize, nil, opts.CacheTTL),
	}
}

// Load fetches the module list from the backend. A failure leaves the
// directory with static modules and the current module only.
func (d *Directory) Load(ctx context.Context) error {
	if d.backend == nil {
		return nil
	}
	mods, err := d.backend.Modules(ctx, 0, d.pageSize)
	if err != nil {
		d.log.Warn("module list unavailable", "err", err)
		return err
	}

	loaded := make([]ModuleRecord, 0, len(mods))
	for _, m := range mods {
		if m.ID == "" {
			continue
		}
		loaded = append(loaded, ModuleRecord{ID: m.ID, Label: m.Label, Icon: m.Icon})
	}

	d.mu.Lock()
	d.loaded = loaded
	d.mu.Unlock()
	d.log.Debug("modules loaded", "count", len(loaded))
	return nil
}

// Stage replaces the unsaved sections of the module being edited
func (d *Directory) Stage(sections []api.Section) {
	d.mu.Lock()
	d.staged = append([]api.Section(nil), sections...)
	d.mu.Unlock()
}

// Modules returns static modules, then loaded modules, then the current
// module, deduplicated by normalized id.
func (d *Directory) Modules() []ModuleRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()

	seen := make(map[string]bool)
	out := make([]ModuleRecord, 0, len(d.static)+len(d.loaded)+1)
	add := func(m ModuleRecord) {
		key := NormalizeID(m.ID)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, m)
	}
	for _, m := range d.static {
		add(m)
	}
	for _, m := range d.loaded {
		add(m)
	}
	add(d.current)
	return out
}

// Resolve finds the module whose normalized id equals the normalized token
func (d *Directory) Resolve(token string) (ModuleRecord, bool) {
	key := NormalizeID(token)
	if key == "" {
		return ModuleRecord{}, false
	}
	for _, m := range d.Modules() {
		if NormalizeID(m.ID) == key {
			return m, true
		}
	}
	return ModuleRecord{}, false
}

// Match returns modules whose id starts with fragment, compared plainly or normalized
func (d *Directory) Match(fragment string) []ModuleRecord {
	if fragment == "" {
		return nil
	}
	norm := NormalizeID(fragment)

	var out []ModuleRecord
	for _, m := range d.Modules() {
		if strings.HasPrefix(m.ID, fragment) || (norm != "" && strings.HasPrefix(NormalizeID(m.ID), norm)) {
			out = append(out, m)
		}
	}
	return out
}

// isCurrent reports whether id names the module being edited
func (d *Directory) isCurrent(id string) bool {
	return d.current.ID != "" && NormalizeID(d.current.ID) == NormalizeID(id)
}

// StagedFields returns the fields of the unsaved sections when id is the current module
func (d *Directory) StagedFields(id string) []string {
	if !d.isCurrent(id) {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return api.FieldNames(d.staged)
}

// CachedFields returns the merged field list without touching the network.
// ok is false when the saved form of id has not been fetched yet.
func (d *Directory) CachedFields(id string) ([]string, bool) {
	if d.backend == nil {
		return dedupeFold(d.StagedFields(id)), true
	}
	saved, ok := d.saved.Get(NormalizeID(id))
	if !ok {
		return nil, false
	}
	return dedupeFold(append(d.StagedFields(id), saved...)), true
}

// FieldsFor returns the deduplicated union of staged fields and the fields of
// the module's saved default form. Backend failures degrade to staged fields.
func (d *Directory) FieldsFor(ctx context.Context, id string) []string {
	if fields, ok := d.CachedFields(id); ok {
		return fields
	}

	saved, err := d.fetchSaved(ctx, id)
	if err != nil {
		d.log.Warn("saved form unavailable", "module", id, "err", err)
		return dedupeFold(d.StagedFields(id))
	}
	d.saved.Add(NormalizeID(id), saved)
	return dedupeFold(append(d.StagedFields(id), saved...))
}

func (d *Directory) fetchSaved(ctx context.Context, id string) ([]string, error) {
	forms, err := d.backend.Forms(ctx, id, 0, d.pageSize)
	if err != nil {
		return nil, err
	}
	for _, f := range forms {
		if f.Default {
			return api.FieldNames(f.Sections), nil
		}
	}
	return []string{}, nil
}
