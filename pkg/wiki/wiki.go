// Package wiki is the encyclopedia lookup collaborator: given a search
// phrase it returns a page title and intro summary, or reports that nothing
// (or too many things) matched.
package wiki

import "context"

// Outcome tags the closed set of lookup results. Keeping the shape a tagged
// variant (instead of a loose map) lets the orchestrator handle every case
// exhaustively.
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeNotFound
	OutcomeDisambiguation
)

// Result is the outcome of a single lookup.
type Result struct {
	Outcome Outcome
	Title   string
	Summary string
	URL     string

	// Candidates is populated for OutcomeDisambiguation, ordered by the
	// encyclopedia's own ranking.
	Candidates []string
}

// Provider performs one blocking lookup per call. Transport failures are
// returned as errors; "no such topic" is a NotFound result, not an error.
type Provider interface {
	Lookup(ctx context.Context, phrase string) (*Result, error)
}
