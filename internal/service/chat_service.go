package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"knowledge-bot/internal/constant"
	"knowledge-bot/internal/dto"
	"knowledge-bot/internal/pkg/logger"
	"knowledge-bot/internal/pkg/serverutils"
	"knowledge-bot/internal/repository/memory"
	"knowledge-bot/pkg/bot"
	"knowledge-bot/pkg/store"
	"knowledge-bot/pkg/wiki"
)

// IChatService defines the chat session surface exposed to the REST and
// WebSocket controllers.
type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.TurnResponse, error)
	ExportHistory(ctx context.Context, sessionId uuid.UUID) (string, error)
	ClearHistory(ctx context.Context, sessionId uuid.UUID) error
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
}

type chatService struct {
	sessionRepo *memory.SessionRepository
	lookup      wiki.Provider
	log         logger.ILogger
}

func NewChatService(sessionRepo *memory.SessionRepository, lookup wiki.Provider, log logger.ILogger) IChatService {
	return &chatService{
		sessionRepo: sessionRepo,
		lookup:      lookup,
		log:         log,
	}
}

// CreateSession creates a new conversation with an empty history.
func (cs *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := &store.Session{
		ID:        uuid.New().String(),
		Title:     "New conversation",
		CreatedAt: time.Now(),
		Bot:       bot.New(cs.lookup, cs.log),
	}
	cs.sessionRepo.Save(session)

	id, err := uuid.Parse(session.ID)
	if err != nil {
		return nil, fmt.Errorf("parse session id: %w", err)
	}
	cs.log.Info("chat", "session created", map[string]interface{}{"session_id": session.ID})
	return &dto.CreateSessionResponse{Id: id, CreatedAt: session.CreatedAt}, nil
}

// SendChat handles one question inside a session. Bot-level rejections
// (empty input, missing context, lookup transport failure) become normal
// replies with a distinguishing kind; only infrastructure problems surface
// as errors.
func (cs *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	session, err := cs.getSession(request.ChatSessionId)
	if err != nil {
		return nil, err
	}

	session.Mu.Lock()
	defer session.Mu.Unlock()

	response := &dto.SendChatResponse{
		ChatSessionId: request.ChatSessionId,
		Question:      request.Chat,
		CreatedAt:     time.Now(),
	}

	reply, err := session.Bot.Handle(ctx, request.Chat)
	switch {
	case err == nil:
		response.Reply = reply.Text
		response.ReplyKind = string(reply.Kind)
	case errors.Is(err, bot.ErrEmptyInput):
		response.Reply = constant.EmptyInputReply
		response.ReplyKind = "empty_input"
	case errors.Is(err, bot.ErrNoContext):
		response.Reply = constant.NoContextReply
		response.ReplyKind = "no_context"
	case errors.Is(err, bot.ErrLookup):
		response.Reply = constant.LookupFailedReply
		response.ReplyKind = "lookup_failed"
	default:
		return nil, err
	}

	if session.Title == "New conversation" && strings.TrimSpace(request.Chat) != "" {
		session.Title = truncate(strings.TrimSpace(request.Chat), 50)
	}
	session.LastQuery = request.Chat
	cs.sessionRepo.Save(session)

	return response, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.TurnResponse, error) {
	session, err := cs.getSession(sessionId)
	if err != nil {
		return nil, err
	}

	// The bot has no internal locking; every access to a session's history
	// goes through the session mutex.
	session.Mu.Lock()
	turns := session.Bot.History()
	session.Mu.Unlock()
	out := make([]*dto.TurnResponse, len(turns))
	for i, turn := range turns {
		out[i] = &dto.TurnResponse{
			Question:       turn.Question,
			EffectiveQuery: turn.EffectiveQuery,
			ResolvedEntity: turn.ResolvedEntity,
			Answer:         turn.Answer,
			CreatedAt:      turn.CreatedAt,
		}
	}
	return out, nil
}

// ExportHistory renders the conversation as a plain-text transcript for
// download.
func (cs *chatService) ExportHistory(ctx context.Context, sessionId uuid.UUID) (string, error) {
	session, err := cs.getSession(sessionId)
	if err != nil {
		return "", err
	}

	session.Mu.Lock()
	turns := session.Bot.History()
	session.Mu.Unlock()

	var sb strings.Builder
	sb.WriteString("Conversation History:\n\n")
	for _, turn := range turns {
		sb.WriteString("User: ")
		sb.WriteString(turn.Question)
		sb.WriteString("\n\nBot: ")
		sb.WriteString(turn.Answer)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

func (cs *chatService) ClearHistory(ctx context.Context, sessionId uuid.UUID) error {
	session, err := cs.getSession(sessionId)
	if err != nil {
		return err
	}

	session.Mu.Lock()
	defer session.Mu.Unlock()
	session.Bot.ClearHistory()
	cs.sessionRepo.Save(session)
	cs.log.Info("chat", "history cleared", map[string]interface{}{"session_id": session.ID})
	return nil
}

func (cs *chatService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	if _, err := cs.getSession(sessionId); err != nil {
		return err
	}
	cs.sessionRepo.Delete(sessionId.String())
	return nil
}

func (cs *chatService) getSession(sessionId uuid.UUID) (*store.Session, error) {
	session, found := cs.sessionRepo.Get(sessionId.String())
	if !found {
		return nil, fmt.Errorf("chat session %s: %w", sessionId, serverutils.ErrNotFound)
	}
	return session, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
