package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"knowledge-bot/internal/dto"
	"knowledge-bot/internal/pkg/logger"
	"knowledge-bot/internal/pkg/serverutils"
	"knowledge-bot/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	ExportHistory(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	log         logger.ILogger
}

func NewChatController(chatService service.IChatService, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		log:         log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("session", c.CreateSession)
	h.Post("", c.SendChat)
	h.Get(":session_id/history", c.GetHistory)
	h.Get(":session_id/export", c.ExportHistory)
	h.Delete(":session_id/history", c.ClearHistory)
	h.Delete(":session_id", c.DeleteSession)

	h.Use("ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("ws/:session_id", websocket.New(c.handleWS))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.GetChatHistory(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *chatController) ExportHistory(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	transcript, err := c.chatService.ExportHistory(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="chat_history.txt"`)
	return ctx.SendString(transcript)
}

func (c *chatController) ClearHistory(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	if err := c.chatService.ClearHistory(ctx.Context(), sessionId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success clear history", nil))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	if err := c.chatService.DeleteSession(ctx.Context(), sessionId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete session", nil))
}

// handleWS is the interactive chat transport: each text frame is one
// question, each reply frame is the SendChat response JSON.
func (c *chatController) handleWS(conn *websocket.Conn) {
	defer conn.Close()

	sessionId, err := uuid.Parse(conn.Params("session_id"))
	if err != nil {
		_ = conn.WriteJSON(fiber.Map{"success": false, "message": "Invalid session id"})
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		res, err := c.chatService.SendChat(context.Background(), &dto.SendChatRequest{
			ChatSessionId: sessionId,
			Chat:          string(msg),
		})
		if err != nil {
			c.log.Warn("ws", "send chat failed", map[string]interface{}{"error": err.Error()})
			if writeErr := conn.WriteJSON(fiber.Map{"success": false, "message": "Could not handle message"}); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(serverutils.SuccessResponse("Success send chat", res)); err != nil {
			return
		}
	}
}

func parseSessionId(ctx *fiber.Ctx) (uuid.UUID, error) {
	sessionId, err := uuid.Parse(ctx.Params("session_id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	return sessionId, nil
}
