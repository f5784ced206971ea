// Package bot composes entity extraction, follow-up resolution, the
// encyclopedia lookup and the conversation history into a single
// question-answering orchestrator.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"knowledge-bot/internal/constant"
	"knowledge-bot/internal/pkg/logger"
	"knowledge-bot/pkg/bot/followup"
	"knowledge-bot/pkg/bot/history"
	"knowledge-bot/pkg/wiki"
)

var (
	// ErrEmptyInput is returned for empty or whitespace-only questions.
	// The question never reaches extraction and history is untouched.
	ErrEmptyInput = errors.New("empty question")

	// ErrNoContext is returned when a follow-up has no prior entity to
	// refer back to. History is untouched.
	ErrNoContext = followup.ErrNoContext

	// ErrLookup is returned when the encyclopedia is unreachable. No turn
	// is recorded: nothing was learned, so the question is treated as
	// never asked.
	ErrLookup = errors.New("lookup failed")
)

// Kind tags what a reply is, so UIs can render canned texts apart from
// real answers.
type Kind string

const (
	KindAnswer    Kind = "answer"
	KindNotFound  Kind = "not_found"
	KindSmallTalk Kind = "small_talk"
)

// Reply is the outcome of one handled question.
type Reply struct {
	Text string
	Kind Kind
}

// Bot answers questions for exactly one session. It is the sole mutator of
// its history; calls are expected to be serialized by the owner.
type Bot struct {
	history *history.History
	lookup  wiki.Provider
	log     logger.ILogger
}

func New(lookup wiki.Provider, log logger.ILogger) *Bot {
	return &Bot{
		history: history.New(),
		lookup:  lookup,
		log:     log,
	}
}

// Handle answers one question: small talk gets a canned reply, everything
// else goes through follow-up resolution and a single encyclopedia lookup.
// Successful lookups and not-found results are appended to the history;
// rejected input and transport failures are not.
func (b *Bot) Handle(ctx context.Context, raw string) (*Reply, error) {
	question := strings.TrimSpace(raw)
	if question == "" {
		return nil, ErrEmptyInput
	}

	if reply, ok := smallTalk(question); ok {
		return &Reply{Text: reply, Kind: KindSmallTalk}, nil
	}

	eq, err := followup.Resolve(question, b.history)
	if err != nil {
		return nil, err
	}
	b.log.Debug("bot", "resolved question", map[string]interface{}{
		"question":        question,
		"effective_query": eq.Text,
		"is_follow_up":    eq.IsFollowUp,
	})

	result, err := b.lookup.Lookup(ctx, eq.Text)
	if err != nil {
		b.log.Warn("bot", "lookup failed", map[string]interface{}{"query": eq.Text, "error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}

	// Disambiguation policy: silently take the top-ranked candidate and
	// retry once. This mirrors the product behavior of the original bot;
	// candidates are still available on the Result for callers that want
	// to surface them instead.
	if result.Outcome == wiki.OutcomeDisambiguation {
		if len(result.Candidates) == 0 {
			result = &wiki.Result{Outcome: wiki.OutcomeNotFound}
		} else {
			result, err = b.lookup.Lookup(ctx, result.Candidates[0])
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrLookup, err)
			}
			if result.Outcome == wiki.OutcomeDisambiguation {
				result = &wiki.Result{Outcome: wiki.OutcomeNotFound}
			}
		}
	}

	var answer, resolvedEntity string
	kind := KindAnswer
	switch result.Outcome {
	case wiki.OutcomeFound:
		answer = formatAnswer(result)
		resolvedEntity = result.Title
		if resolvedEntity == "" {
			resolvedEntity = eq.Text
		}
	case wiki.OutcomeNotFound:
		answer = fmt.Sprintf(constant.NotFoundTemplate, eq.Text)
		kind = KindNotFound
	}

	b.history.Append(history.Turn{
		Question:       question,
		EffectiveQuery: eq.Text,
		ResolvedEntity: resolvedEntity,
		Answer:         answer,
	})
	return &Reply{Text: answer, Kind: kind}, nil
}

// History returns a read-only snapshot of the conversation, oldest first.
func (b *Bot) History() []history.Turn {
	return b.history.Turns()
}

// ClearHistory starts a new conversation.
func (b *Bot) ClearHistory() {
	b.history.Clear()
}

func formatAnswer(result *wiki.Result) string {
	var sb strings.Builder
	sb.WriteString("**")
	sb.WriteString(result.Title)
	sb.WriteString("**\n\n")
	sb.WriteString(result.Summary)
	if result.URL != "" {
		sb.WriteString("\n\n[Read more](")
		sb.WriteString(result.URL)
		sb.WriteString(")")
	}
	return sb.String()
}

func smallTalk(question string) (string, bool) {
	lower := strings.ToLower(question)
	for _, g := range constant.GreetingInputs {
		if lower == g {
			return constant.GreetingReply, true
		}
	}
	for _, h := range constant.HelpInputs {
		if lower == h {
			return constant.HelpReply, true
		}
	}
	if strings.Contains(lower, constant.ThanksMarker) {
		return constant.ThanksReply, true
	}
	return "", false
}
