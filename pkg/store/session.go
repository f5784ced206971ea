package store

import (
	"sync"
	"time"

	"knowledge-bot/pkg/bot"
)

// Session is the in-memory state of one conversation. Each session owns
// exactly one Bot (and through it one conversation history); the mutex
// serializes question handling so one exchange completes before the next
// begins.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	LastQuery string    `json:"last_query"`

	Bot *bot.Bot `json:"-"`

	Mu sync.Mutex `json:"-"`
}
