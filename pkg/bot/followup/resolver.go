// Package followup decides whether a question refers back to an entity
// mentioned earlier in the conversation and, when it does, rewrites it into
// a concrete search phrase.
package followup

import (
	"errors"

	"knowledge-bot/pkg/bot/extract"
	"knowledge-bot/pkg/bot/history"
)

// ErrNoContext is returned when a follow-up question is detected but no
// prior turn established an entity to refer back to.
var ErrNoContext = errors.New("no conversation context for follow-up")

// EffectiveQuery is the concrete search phrase sent to the lookup service.
type EffectiveQuery struct {
	Text       string
	IsFollowUp bool
}

// Resolve classifies raw as a fresh query or a follow-up and produces the
// effective search phrase. A follow-up never reaches the lookup service as
// a bare pronoun: either the previous entity is substituted in, or Resolve
// fails with ErrNoContext so the caller can ask for clarification. History
// is never mutated here.
func Resolve(raw string, hist *history.History) (EffectiveQuery, error) {
	stripped := extract.Strip(raw)

	residual, isFollowUp := classify(stripped)
	if !isFollowUp {
		return EffectiveQuery{Text: extract.Extract(raw), IsFollowUp: false}, nil
	}

	previous := hist.LatestResolvedEntity()
	if previous == "" {
		return EffectiveQuery{}, ErrNoContext
	}

	text := previous
	if residual != "" {
		text = previous + " " + residual
	}
	return EffectiveQuery{Text: text, IsFollowUp: true}, nil
}

// classify reports whether the stripped phrase relies on conversation
// context, and the descriptive fragment left once the pronoun is removed
// ("his profession" -> "profession", "he study" -> "study").
func classify(stripped string) (residual string, isFollowUp bool) {
	if stripped == "" {
		return "", true
	}
	// Possessive first: "her" is both a possessive and an object pronoun,
	// and "her education" must keep its residual.
	if residual, ok := extract.LeadingPossessive(stripped); ok {
		return residual, true
	}
	if residual, ok := extract.LeadingPronoun(stripped); ok {
		return residual, true
	}
	return "", false
}
