package followup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowledge-bot/pkg/bot/history"
)

func historyWith(entities ...string) *history.History {
	h := history.New()
	for _, e := range entities {
		h.Append(history.Turn{EffectiveQuery: e, ResolvedEntity: e, Answer: "..."})
	}
	return h
}

func TestResolveFreshQuery(t *testing.T) {
	eq, err := Resolve("Who is the CEO of Google", history.New())
	require.NoError(t, err)
	assert.False(t, eq.IsFollowUp)
	assert.Equal(t, "Google", eq.Text)
}

func TestResolveFreshQueryIgnoresHistory(t *testing.T) {
	eq, err := Resolve("What is quantum computing?", historyWith("Sundar Pichai"))
	require.NoError(t, err)
	assert.False(t, eq.IsFollowUp)
	assert.Equal(t, "quantum computing", eq.Text)
}

func TestResolveFollowUpWithPronoun(t *testing.T) {
	eq, err := Resolve("where did he study", historyWith("Sundar Pichai"))
	require.NoError(t, err)
	assert.True(t, eq.IsFollowUp)
	assert.Contains(t, eq.Text, "Sundar Pichai")
	assert.Equal(t, "Sundar Pichai study", eq.Text)
}

func TestResolveFollowUpWithPossessive(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"what was his profession", "Sundar Pichai profession"},
		{"what is her education", "Sundar Pichai education"},
		{"tell me about his early life", "Sundar Pichai early life"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			eq, err := Resolve(tt.raw, historyWith("Sundar Pichai"))
			require.NoError(t, err)
			assert.True(t, eq.IsFollowUp)
			assert.Equal(t, tt.want, eq.Text)
		})
	}
}

func TestResolvePurePronounUsesEntityAlone(t *testing.T) {
	eq, err := Resolve("who is he", historyWith("Mahatma Gandhi"))
	require.NoError(t, err)
	assert.True(t, eq.IsFollowUp)
	assert.Equal(t, "Mahatma Gandhi", eq.Text)
}

func TestResolveNoContext(t *testing.T) {
	_, err := Resolve("where did he study", history.New())
	assert.ErrorIs(t, err, ErrNoContext)
}

func TestResolveContextSwitchMostRecentWins(t *testing.T) {
	hist := historyWith("Google", "Mahatma Gandhi")

	eq, err := Resolve("where did he study", hist)
	require.NoError(t, err)
	assert.Contains(t, eq.Text, "Mahatma Gandhi")
	assert.NotContains(t, eq.Text, "Google")
}

func TestResolveNeverShipsBarePronoun(t *testing.T) {
	for _, raw := range []string{"who is he", "who is she", "tell me about him", "what is it"} {
		eq, err := Resolve(raw, historyWith("Ada Lovelace"))
		require.NoError(t, err, raw)
		assert.True(t, eq.IsFollowUp, raw)
		assert.Contains(t, eq.Text, "Ada Lovelace", raw)
	}
}
