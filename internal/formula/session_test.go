package formula

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/ezformula/internal/api"
)

func TestSessionModuleCompletion(t *testing.T) {
	s := newTestSession(newFakeBackend())
	typeText(s, "inv")

	ctx := s.Context()
	require.Equal(t, KindModule, ctx.Kind)
	assert.Equal(t, []string{"inventory"}, texts(ctx))
	assert.Equal(t, "box", ctx.Candidates[0].Icon)

	buf, ok := s.Key(KeyEnter)
	require.True(t, ok)
	assert.Equal(t, Buffer{Text: "inventory", Caret: 9}, buf)
	assert.False(t, s.Context().Active())
}

func TestSessionFieldCompletion(t *testing.T) {
	b := newFakeBackend()
	b.forms["loan"] = loanForms()
	s := newTestSession(b)

	typeText(s, "loan.am")
	ctx := s.Context()
	require.Equal(t, KindField, ctx.Kind)
	assert.Equal(t, "loan", ctx.Qualifier)
	assert.Equal(t, []string{"amount"}, texts(ctx))

	buf, ok := s.Key(KeyTab)
	require.True(t, ok)
	assert.Equal(t, Buffer{Text: "loan.amount", Caret: 11}, buf)
}

func TestSessionFieldFromStagedSubsection(t *testing.T) {
	s := newTestSession(newFakeBackend())
	s.Directory().Stage([]api.Section{{
		Inputs: map[string]api.Input{"amount": {Name: "amount"}},
		Subsections: []api.Section{
			{Inputs: map[string]api.Input{"rate": {Name: "rate"}}},
		},
	}})

	typeText(s, "loan.")
	assert.ElementsMatch(t, []string{"amount", "rate"}, texts(s.Context()))

	typeText(s, "loan.ra")
	assert.Equal(t, []string{"rate"}, texts(s.Context()))
}

func TestSessionFieldWithoutMatchesIsInactive(t *testing.T) {
	b := newFakeBackend()
	b.forms["loan"] = loanForms()
	s := newTestSession(b)

	typeText(s, "loan.zz")
	assert.Equal(t, KindNone, s.Context().Kind)
	assert.NoError(t, s.Err())
}

func TestSessionUnknownModule(t *testing.T) {
	s := newTestSession(newFakeBackend())
	typeText(s, "nope.x")

	assert.False(t, s.Context().Active())
	var notFound *ModuleNotFoundError
	require.ErrorAs(t, s.Err(), &notFound)
	assert.Equal(t, "nope", notFound.Token)

	typeText(s, "loan")
	assert.NoError(t, s.Err())
}

func TestSessionIfElseFallback(t *testing.T) {
	s := newTestSession(newFakeBackend())
	typeText(s, "total if")

	ctx := s.Context()
	require.Equal(t, KindIfElse, ctx.Kind)
	require.Len(t, ctx.Candidates, 1)

	buf, ok := s.Key(KeyEnter)
	require.True(t, ok)
	assert.Equal(t, "total if() then  else ", buf.Text)
	assert.True(t, strings.HasSuffix(buf.Text[:buf.Caret], "("))
}

func TestSessionIdenticalQueriesFetchOnce(t *testing.T) {
	b := newFakeBackend()
	s := newTestSession(b)

	typeText(s, "if")
	typeText(s, "")
	typeText(s, "if")
	assert.Equal(t, 1, b.calls("if"))
	assert.Equal(t, KindIfElse, s.Context().Kind)
}

func TestSessionFetchFailureShowsStaticTable(t *testing.T) {
	b := newFakeBackend()
	b.suggestErr = errors.New("down")
	s := newTestSession(b)

	typeText(s, "a +")
	ctx := s.Context()
	require.Equal(t, KindOperator, ctx.Kind)
	assert.Equal(t, []string{"+", "-", "*", "/", "%", "^", ">", "<", ">=", "<=", "!=", "=="}, texts(ctx))
	assert.Equal(t, 1, b.calls("+"))
	assert.NoError(t, s.Err())
}

func TestSessionRemoteSnippetsWin(t *testing.T) {
	b := newFakeBackend()
	b.suggestions["su"] = []api.Suggestion{{Example: "SUBSTITUTE()"}}
	s := newTestSession(b)

	typeText(s, "su")
	ctx := s.Context()
	require.Equal(t, KindFunction, ctx.Kind)
	assert.Equal(t, []string{"SUBSTITUTE()"}, texts(ctx))
}

func TestSessionFunctionFallbackByPrefix(t *testing.T) {
	s := newTestSession(newFakeBackend())
	typeText(s, "x + su")

	ctx := s.Context()
	require.Equal(t, KindFunction, ctx.Kind)
	assert.Equal(t, []string{"SUM()"}, texts(ctx))

	buf, _ := s.Key(KeyTab)
	assert.Equal(t, "x + SUM()", buf.Text)
	assert.Equal(t, len("x + SUM("), buf.Caret)
}

func TestSessionEqualityListedFirst(t *testing.T) {
	s := newTestSession(newFakeBackend())

	typeText(s, "a >")
	ctx := s.Context()
	require.Equal(t, KindOperator, ctx.Kind)
	assert.Equal(t, "+", ctx.Candidates[0].Text)

	typeText(s, "a ==")
	ctx = s.Context()
	require.Equal(t, KindOperator, ctx.Kind)
	assert.Equal(t, "==", ctx.Candidates[0].Text)
	assert.Equal(t, 2, ctx.Span.Start)
	assert.Len(t, ctx.Candidates, 12)
}

func TestSessionNavigationWraps(t *testing.T) {
	s := newTestSession(newFakeBackend())
	typeText(s, "a >")
	n := len(s.Context().Candidates)

	_, ok := s.Key(KeyUp)
	require.True(t, ok)
	assert.Equal(t, n-1, s.Context().Highlight)

	for i := 0; i < n+3; i++ {
		s.Key(KeyDown)
	}
	assert.Equal(t, 2, s.Context().Highlight)
}

func TestSessionKeysPassThroughWhenInactive(t *testing.T) {
	s := newTestSession(newFakeBackend())
	typeText(s, "1 ")

	for _, k := range []Key{KeyUp, KeyDown, KeyTab, KeyEnter, KeyEscape} {
		_, ok := s.Key(k)
		assert.False(t, ok, "key %d", k)
	}
}

func TestSessionEscapeDismisses(t *testing.T) {
	s := newTestSession(newFakeBackend())
	typeText(s, "inv")

	buf, ok := s.Key(KeyEscape)
	assert.True(t, ok)
	assert.Equal(t, "inv", buf.Text)
	assert.False(t, s.Context().Active())
}

func TestSessionSelect(t *testing.T) {
	s := newTestSession(newFakeBackend())
	typeText(s, "a +")

	buf, ok := s.Select(2)
	require.True(t, ok)
	assert.Equal(t, "a *", buf.Text)

	_, ok = s.Select(0)
	assert.False(t, ok)
}

func TestSessionDropsStaleUpdates(t *testing.T) {
	b := newFakeBackend()
	b.suggestions[">"] = []api.Suggestion{{Value: ">"}}
	s := newTestSession(b)

	stale := s.Change("a >", 3)
	require.Len(t, stale, 1)
	assert.True(t, s.Loading())

	fresh := s.Change("su", 2)
	require.Len(t, fresh, 1)
	drain(s, fresh)
	require.Equal(t, KindFunction, s.Context().Kind)

	assert.Empty(t, s.Apply(stale[0](context.Background())))
	assert.Equal(t, KindFunction, s.Context().Kind)
	assert.Equal(t, []string{"SUM()"}, texts(s.Context()))

	// the stale fetch still warmed the cache
	_, cached := s.fetcher.Cached(">")
	assert.True(t, cached)
}

func TestSessionBlurHidesList(t *testing.T) {
	s := newTestSession(newFakeBackend())
	s.blurDelay = time.Millisecond
	typeText(s, "a +")
	require.True(t, s.Context().Active())

	drain(s, []Job{s.Blur()})
	assert.False(t, s.Context().Active())
}

func TestSessionBlurIgnoredAfterEdit(t *testing.T) {
	s := newTestSession(newFakeBackend())
	s.blurDelay = time.Millisecond
	typeText(s, "a")
	blur := s.Blur()

	typeText(s, "a +")
	drain(s, []Job{blur})
	assert.True(t, s.Context().Active())
}

func TestSessionBlurReturnsOnCancel(t *testing.T) {
	s := newTestSession(newFakeBackend())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := s.Blur()(ctx)
	assert.True(t, u.Blur)
}

func TestSessionOpenLoadsModulesAndReclassifies(t *testing.T) {
	b := newFakeBackend()
	b.modules = []api.Module{{ID: "Loan-Onboarding", Label: "Onboarding"}}
	b.forms["Loan-Onboarding"] = []api.Form{{Default: true, Sections: []api.Section{
		{Inputs: map[string]api.Input{"score": {Name: "score"}}},
	}}}
	s := newTestSession(b)

	drain(s, []Job{s.Open("loan_onboarding.")})

	ctx := s.Context()
	require.Equal(t, KindField, ctx.Kind)
	assert.Equal(t, "Loan-Onboarding", ctx.Qualifier)
	assert.Equal(t, []string{"score"}, texts(ctx))
}

func TestSessionModuleListKeepsCommittedListClosed(t *testing.T) {
	b := newFakeBackend()
	b.modules = []api.Module{{ID: "inventory_audit"}}
	s := newTestSession(b)

	load := s.Open("")
	typeText(s, "inv")
	require.Equal(t, KindModule, s.Context().Kind)

	buf, ok := s.Key(KeyTab)
	require.True(t, ok)
	assert.Equal(t, "inventory", buf.Text)

	assert.Empty(t, s.Apply(load(context.Background())))
	assert.False(t, s.Context().Active())
	assert.Equal(t, "inventory", s.Buffer().Text)
}

func TestSessionModuleListReclassifiesPendingEdit(t *testing.T) {
	b := newFakeBackend()
	b.modules = []api.Module{{ID: "lockbox"}}
	s := newTestSession(b)

	load := s.Open("")
	typeText(s, "loc")
	require.False(t, s.Context().Active())

	drain(s, s.Apply(load(context.Background())))
	ctx := s.Context()
	require.Equal(t, KindModule, ctx.Kind)
	assert.Equal(t, []string{"lockbox"}, texts(ctx))
}

func TestSessionOpenResetsSnippetCache(t *testing.T) {
	b := newFakeBackend()
	s := newTestSession(b)

	typeText(s, "su")
	drain(s, []Job{s.Open("")})
	typeText(s, "su")
	assert.Equal(t, 2, b.calls("su"))
}

func TestParseKey(t *testing.T) {
	assert.Equal(t, KeyUp, ParseKey("ArrowUp"))
	assert.Equal(t, KeyDown, ParseKey("down"))
	assert.Equal(t, KeyTab, ParseKey("tab"))
	assert.Equal(t, KeyEnter, ParseKey("Enter"))
	assert.Equal(t, KeyEscape, ParseKey("esc"))
	assert.Equal(t, KeyOther, ParseKey("a"))
}
