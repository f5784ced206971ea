package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	// Chat is deliberately not validated as required: empty input gets the
	// bot's own canned prompt instead of a 400.
	Chat string `json:"chat"`
}

type SendChatResponse struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	Question      string    `json:"question"`
	Reply         string    `json:"reply"`
	// ReplyKind tags canned replies so clients can render them apart from
	// real answers: "answer", "not_found", "empty_input", "no_context",
	// "lookup_failed", "small_talk".
	ReplyKind string    `json:"reply_kind"`
	CreatedAt time.Time `json:"created_at"`
}

type TurnResponse struct {
	Question       string    `json:"question"`
	EffectiveQuery string    `json:"effective_query"`
	ResolvedEntity string    `json:"resolved_entity,omitempty"`
	Answer         string    `json:"answer"`
	CreatedAt      time.Time `json:"created_at"`
}
