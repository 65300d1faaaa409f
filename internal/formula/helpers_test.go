package formula

import (
	"context"
	"strings"
	"sync"

	"github.com/nhath/ezformula/internal/api"
)

type fakeBackend struct {
	mu sync.Mutex

	suggestions  map[string][]api.Suggestion
	suggestErr   error
	suggestCalls map[string]int

	modules    []api.Module
	modulesErr error

	forms     map[string][]api.Form
	formsErr  error
	formCalls int

	syntax    *api.SyntaxResult
	syntaxFor []string
	evaluated any
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		suggestions:  make(map[string][]api.Suggestion),
		suggestCalls: make(map[string]int),
		forms:        make(map[string][]api.Form),
	}
}

func (f *fakeBackend) Suggestions(_ context.Context, query string, _ int) ([]api.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suggestCalls[strings.ToLower(query)]++
	if f.suggestErr != nil {
		return nil, f.suggestErr
	}
	return f.suggestions[strings.ToLower(query)], nil
}

func (f *fakeBackend) Modules(_ context.Context, _, _ int) ([]api.Module, error) {
	if f.modulesErr != nil {
		return nil, f.modulesErr
	}
	return f.modules, nil
}

func (f *fakeBackend) Forms(_ context.Context, moduleID string, _, _ int) ([]api.Form, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.formCalls++
	if f.formsErr != nil {
		return nil, f.formsErr
	}
	return f.forms[moduleID], nil
}

func (f *fakeBackend) CheckSyntax(_ context.Context, formula string, _ map[string]any) (*api.SyntaxResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syntaxFor = append(f.syntaxFor, formula)
	if f.syntax == nil {
		return &api.SyntaxResult{Valid: true}, nil
	}
	res := *f.syntax
	return &res, nil
}

func (f *fakeBackend) Evaluate(_ context.Context, _ string, _ map[string]any) (any, error) {
	return f.evaluated, nil
}

func (f *fakeBackend) calls(query string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suggestCalls[query]
}

// newTestSession wires a session over b with a "loan" current module and an
// "inventory" static module.
func newTestSession(b *fakeBackend) *Session {
	dir := NewDirectory(b, DirectoryOptions{
		Static:  []ModuleRecord{{ID: "inventory", Label: "Inventory", Icon: "box"}},
		Current: ModuleRecord{ID: "loan", Label: "Loan"},
	})
	return NewSession(Options{
		Directory: dir,
		Fetcher:   NewFetcher(b, 10, nil),
		Backend:   b,
	})
}

// drain runs jobs synchronously, as a host event loop would, until none are left
func drain(s *Session, jobs []Job) {
	for len(jobs) > 0 {
		job := jobs[0]
		jobs = append(jobs[1:], s.Apply(job(context.Background()))...)
	}
}

// typeText sets the buffer with the caret at the end and settles all jobs
func typeText(s *Session, text string) {
	drain(s, s.Change(text, len(text)))
}

func texts(c Context) []string {
	out := make([]string, len(c.Candidates))
	for i, cand := range c.Candidates {
		out[i] = cand.Text
	}
	return out
}
