package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowledge-bot/internal/constant"
	"knowledge-bot/pkg/wiki"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// stubProvider returns canned results per phrase and records every call.
type stubProvider struct {
	results map[string]*wiki.Result
	err     error
	calls   []string
}

func (s *stubProvider) Lookup(ctx context.Context, phrase string) (*wiki.Result, error) {
	s.calls = append(s.calls, phrase)
	if s.err != nil {
		return nil, s.err
	}
	if r, ok := s.results[phrase]; ok {
		return r, nil
	}
	return &wiki.Result{Outcome: wiki.OutcomeNotFound}, nil
}

func found(title, summary string) *wiki.Result {
	return &wiki.Result{
		Outcome: wiki.OutcomeFound,
		Title:   title,
		Summary: summary,
		URL:     "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(title, " ", "_"),
	}
}

func TestHandleEmptyInput(t *testing.T) {
	b := New(&stubProvider{}, nopLogger{})

	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := b.Handle(context.Background(), raw)
		assert.ErrorIs(t, err, ErrEmptyInput, "raw=%q", raw)
	}
	assert.Empty(t, b.History(), "rejected input must not touch history")
}

func TestHandleNoContext(t *testing.T) {
	stub := &stubProvider{}
	b := New(stub, nopLogger{})

	_, err := b.Handle(context.Background(), "where did he study")
	assert.ErrorIs(t, err, ErrNoContext)
	assert.Empty(t, stub.calls, "no lookup on a failed follow-up")
	assert.Empty(t, b.History())
}

func TestHandleScenarioCEOThenFollowUp(t *testing.T) {
	stub := &stubProvider{results: map[string]*wiki.Result{
		"google":              found("Sundar Pichai", "Sundar Pichai is the chief executive officer of Alphabet Inc."),
		"Sundar Pichai study": found("Stanford University", "Stanford University is a private research university."),
	}}
	b := New(stub, nopLogger{})

	reply, err := b.Handle(context.Background(), "who is the ceo of google")
	require.NoError(t, err)
	assert.Equal(t, KindAnswer, reply.Kind)
	assert.True(t, strings.HasPrefix(reply.Text, "**Sundar Pichai**"), "answer: %q", reply.Text)
	require.Len(t, b.History(), 1)
	assert.Equal(t, "Sundar Pichai", b.History()[0].ResolvedEntity)

	reply, err = b.Handle(context.Background(), "where did he study")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "Stanford University")
	assert.Equal(t, []string{"google", "Sundar Pichai study"}, stub.calls,
		"follow-up must be looked up with the previous entity, never a bare pronoun")
	assert.Len(t, b.History(), 2)
}

func TestHandleAppendsExactlyOneTurnPerAnswer(t *testing.T) {
	stub := &stubProvider{results: map[string]*wiki.Result{
		"google": found("Google", "Google LLC is an American technology company."),
	}}
	b := New(stub, nopLogger{})

	questions := []string{"tell me about google", "what is photosynthesis", "who is he"}
	for i, q := range questions {
		before := len(b.History())
		_, err := b.Handle(context.Background(), q)
		require.NoError(t, err, q)
		assert.Equal(t, before+1, len(b.History()), "question %d", i)
	}
}

func TestHandleNotFound(t *testing.T) {
	b := New(&stubProvider{}, nopLogger{})

	reply, err := b.Handle(context.Background(), "tell me about xyzzyplugh")
	require.NoError(t, err)
	assert.Equal(t, KindNotFound, reply.Kind)
	assert.Contains(t, reply.Text, "Could not find information")
	assert.NotEqual(t, constant.EmptyInputReply, reply.Text)

	// The turn is still recorded so later follow-ups on new topics work.
	require.Len(t, b.History(), 1)
	assert.Equal(t, "", b.History()[0].ResolvedEntity)
	assert.Equal(t, "xyzzyplugh", b.History()[0].EffectiveQuery)
}

func TestHandleLookupTransportError(t *testing.T) {
	stub := &stubProvider{err: errors.New("connection refused")}
	b := New(stub, nopLogger{})

	_, err := b.Handle(context.Background(), "who is Marie Curie")
	assert.ErrorIs(t, err, ErrLookup)
	assert.Empty(t, b.History(), "nothing learned, nothing recorded")
}

func TestHandleDisambiguationTakesFirstCandidate(t *testing.T) {
	stub := &stubProvider{results: map[string]*wiki.Result{
		"mercury": {
			Outcome:    wiki.OutcomeDisambiguation,
			Title:      "Mercury",
			Candidates: []string{"Mercury (planet)", "Mercury (element)"},
		},
		"Mercury (planet)": found("Mercury (planet)", "Mercury is the first planet from the Sun."),
	}}
	b := New(stub, nopLogger{})

	reply, err := b.Handle(context.Background(), "what is mercury")
	require.NoError(t, err)
	assert.Equal(t, []string{"mercury", "Mercury (planet)"}, stub.calls)
	assert.True(t, strings.HasPrefix(reply.Text, "**Mercury (planet)**"))
	assert.Equal(t, "Mercury (planet)", b.History()[0].ResolvedEntity)
}

func TestHandleDoubleDisambiguationBecomesNotFound(t *testing.T) {
	disambig := &wiki.Result{
		Outcome:    wiki.OutcomeDisambiguation,
		Candidates: []string{"Mercury"},
	}
	stub := &stubProvider{results: map[string]*wiki.Result{
		"mercury": disambig,
	}}
	b := New(stub, nopLogger{})

	reply, err := b.Handle(context.Background(), "what is mercury")
	require.NoError(t, err)
	assert.Equal(t, KindNotFound, reply.Kind)
}

func TestHandleSmallTalkNotRecorded(t *testing.T) {
	stub := &stubProvider{}
	b := New(stub, nopLogger{})

	for raw, want := range map[string]string{
		"hello":     constant.GreetingReply,
		"help":      constant.HelpReply,
		"thank you": constant.ThanksReply,
	} {
		reply, err := b.Handle(context.Background(), raw)
		require.NoError(t, err, raw)
		assert.Equal(t, KindSmallTalk, reply.Kind, raw)
		assert.Equal(t, want, reply.Text, raw)
	}
	assert.Empty(t, stub.calls)
	assert.Empty(t, b.History())
}

func TestClearHistory(t *testing.T) {
	stub := &stubProvider{results: map[string]*wiki.Result{
		"google": found("Google", "Google LLC."),
	}}
	b := New(stub, nopLogger{})

	_, err := b.Handle(context.Background(), "what is google")
	require.NoError(t, err)
	require.Len(t, b.History(), 1)

	b.ClearHistory()
	assert.Empty(t, b.History())

	_, err = b.Handle(context.Background(), "who is he")
	assert.ErrorIs(t, err, ErrNoContext)
}
