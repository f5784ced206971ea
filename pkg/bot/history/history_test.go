package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendAndLen(t *testing.T) {
	h := New()
	assert.Equal(t, 0, h.Len())

	h.Append(Turn{Question: "who is the ceo of google", EffectiveQuery: "Google", ResolvedEntity: "Sundar Pichai", Answer: "..."})
	h.Append(Turn{Question: "where did he study", EffectiveQuery: "Sundar Pichai study", ResolvedEntity: "Stanford University", Answer: "..."})

	assert.Equal(t, 2, h.Len())
	turns := h.Turns()
	assert.Equal(t, "who is the ceo of google", turns[0].Question)
	assert.Equal(t, "where did he study", turns[1].Question)
	assert.False(t, turns[0].CreatedAt.IsZero(), "CreatedAt should be stamped on append")
}

func TestLatestResolvedEntity(t *testing.T) {
	h := New()
	assert.Equal(t, "", h.LatestResolvedEntity())

	h.Append(Turn{EffectiveQuery: "Google", ResolvedEntity: "Google"})
	assert.Equal(t, "Google", h.LatestResolvedEntity())

	h.Append(Turn{EffectiveQuery: "Mahatma Gandhi", ResolvedEntity: "Mahatma Gandhi"})
	assert.Equal(t, "Mahatma Gandhi", h.LatestResolvedEntity(), "most recent turn wins")

	// A not-found turn has no resolved entity but its effective query
	// still anchors follow-ups.
	h.Append(Turn{EffectiveQuery: "Xyzzyplugh"})
	assert.Equal(t, "Xyzzyplugh", h.LatestResolvedEntity())
}

func TestTurnsIsDefensiveCopy(t *testing.T) {
	h := New()
	h.Append(Turn{Question: "original"})

	snapshot := h.Turns()
	snapshot[0].Question = "mutated"

	assert.Equal(t, "original", h.Turns()[0].Question)
}

func TestClear(t *testing.T) {
	h := New()
	h.Append(Turn{Question: "q", EffectiveQuery: "q"})
	h.Clear()

	assert.Equal(t, 0, h.Len())
	assert.Equal(t, "", h.LatestResolvedEntity())
}
