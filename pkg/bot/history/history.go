// Package history keeps the rolling conversation log for one bot session.
// It is a plain append-only log: turns are never edited or removed
// individually, only a full Clear is supported.
package history

import "time"

// Turn is one question/answer exchange.
type Turn struct {
	Question       string    `json:"question"`
	EffectiveQuery string    `json:"effective_query"`
	ResolvedEntity string    `json:"resolved_entity,omitempty"`
	Answer         string    `json:"answer"`
	CreatedAt      time.Time `json:"created_at"`
}

// History is an ordered, append-only sequence of turns, most recent last.
// It carries no locking: each session owns exactly one History and the
// service layer serializes access per session.
type History struct {
	turns []Turn
}

func New() *History {
	return &History{}
}

// Append adds a turn to the end of the log.
func (h *History) Append(turn Turn) {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	h.turns = append(h.turns, turn)
}

// LatestResolvedEntity scans backward and returns the subject of the most
// recent turn: its resolved entity, or its effective query when no entity
// was resolved. Returns "" only when the log is empty.
func (h *History) LatestResolvedEntity() string {
	for i := len(h.turns) - 1; i >= 0; i-- {
		if h.turns[i].ResolvedEntity != "" {
			return h.turns[i].ResolvedEntity
		}
		if h.turns[i].EffectiveQuery != "" {
			return h.turns[i].EffectiveQuery
		}
	}
	return ""
}

// Turns returns a defensive copy of the log, oldest first.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

func (h *History) Len() int {
	return len(h.turns)
}

// Clear empties the log. Used for explicit "start a new conversation"
// requests only.
func (h *History) Clear() {
	h.turns = nil
}
