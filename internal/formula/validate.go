// internal/formula/validate.go
package formula

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nhath/ezformula/internal/api"
)

// SyntaxBackend checks and evaluates formulas remotely
type SyntaxBackend interface {
	CheckSyntax(ctx context.Context, formula string, data map[string]any) (*api.SyntaxResult, error)
	Evaluate(ctx context.Context, formula string, data map[string]any) (any, error)
}

type syntaxRecord struct {
	text   string
	result api.SyntaxResult
}

// Reference is a "<module>.<field>" occurrence in a formula
type Reference struct {
	Module string
	Field  string
	Offset int
}

// References scans text for module.field pairs, skipping string literals
// and numbers.
func References(text string) []Reference {
	var refs []Reference
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '"' || c == '\'':
			j := strings.IndexByte(text[i+1:], c)
			if j < 0 {
				return refs
			}
			i += j + 2
		case isIdentStart(c) && (i == 0 || text[i-1] != '.'):
			end := i
			for end < len(text) && isIdentChar(text[end]) {
				end++
			}
			if end < len(text) && text[end] == '.' {
				fEnd := end + 1
				for fEnd < len(text) && isIdentChar(text[fEnd]) {
					fEnd++
				}
				if fEnd > end+1 {
					refs = append(refs, Reference{Module: text[i:end], Field: text[end+1 : fEnd], Offset: i})
					i = fEnd
					continue
				}
			}
			i = end
		case isIdentChar(c):
			// digits, or the tail of a dotted chain
			for i < len(text) && isIdentChar(text[i]) {
				i++
			}
		default:
			i++
		}
	}
	return refs
}

// Validate re-scans the whole formula and reports every unknown module or
// field. It returns nil when all references resolve.
func (s *Session) Validate(ctx context.Context, text string) error {
	var errs []error
	fields := make(map[string][]string)

	for _, ref := range References(text) {
		mod, ok := s.dir.Resolve(ref.Module)
		if !ok {
			errs = append(errs, &ModuleNotFoundError{Token: ref.Module})
			continue
		}
		key := NormalizeID(mod.ID)
		if _, seen := fields[key]; !seen {
			fields[key] = s.dir.FieldsFor(ctx, mod.ID)
		}
		if !containsFold(fields[key], ref.Field) {
			errs = append(errs, &FieldNotFoundError{Module: ref.Module, Field: ref.Field})
		}
	}
	return errors.Join(errs...)
}

// CheckSyntax asks the backend about text and remembers the verdict for Submit
func (s *Session) CheckSyntax(ctx context.Context, text string, data map[string]any) (*api.SyntaxResult, error) {
	if s.backend == nil {
		return nil, errors.New("no backend configured")
	}
	res, err := s.backend.CheckSyntax(ctx, text, SampleData(text, data))
	if err != nil {
		return nil, fmt.Errorf("check syntax: %w", err)
	}

	s.mu.Lock()
	s.checked = &syntaxRecord{text: text, result: *res}
	s.mu.Unlock()
	return res, nil
}

// Syntax returns the recorded verdict for text, if text was checked
func (s *Session) Syntax(text string) (api.SyntaxResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checked == nil || s.checked.text != text {
		return api.SyntaxResult{}, false
	}
	return s.checked.result, true
}

// Submit returns text when every reference resolves and its syntax was
// checked valid.
func (s *Session) Submit(ctx context.Context, text string) (string, error) {
	if err := s.Validate(ctx, text); err != nil {
		return "", err
	}
	res, ok := s.Syntax(text)
	if !ok {
		return "", ErrSyntaxUnchecked
	}
	if !res.Valid {
		return "", &SyntaxError{Message: res.Error}
	}
	return text, nil
}

// Evaluate computes text remotely against the sample data
func (s *Session) Evaluate(ctx context.Context, text string, data map[string]any) (any, error) {
	if s.backend == nil {
		return nil, errors.New("no backend configured")
	}
	v, err := s.backend.Evaluate(ctx, text, SampleData(text, data))
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	return v, nil
}

// SampleData binds every referenced module.field to 0 and overlays the
// caller's bindings on top.
func SampleData(text string, overrides map[string]any) map[string]any {
	data := make(map[string]any)
	for _, ref := range References(text) {
		mod, _ := data[ref.Module].(map[string]any)
		if mod == nil {
			mod = make(map[string]any)
			data[ref.Module] = mod
		}
		mod[ref.Field] = 0
	}

	for k, v := range overrides {
		src, isMap := v.(map[string]any)
		dst, hasMap := data[k].(map[string]any)
		if isMap && hasMap {
			for fk, fv := range src {
				dst[fk] = fv
			}
			continue
		}
		data[k] = v
	}
	return data
}

func containsFold(items []string, s string) bool {
	for _, it := range items {
		if strings.EqualFold(it, s) {
			return true
		}
	}
	return false
}
