package bootstrap

import (
	"time"

	"knowledge-bot/internal/config"
	"knowledge-bot/internal/controller"
	"knowledge-bot/internal/pkg/logger"
	"knowledge-bot/internal/repository/memory"
	"knowledge-bot/internal/service"
	"knowledge-bot/pkg/wiki"
)

type Container struct {
	ChatController controller.IChatController
	Logger         logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	lookup := wiki.NewClient(
		cfg.Wiki.APIBaseURL,
		cfg.Wiki.UserAgent,
		cfg.Wiki.SummarySentences,
	)

	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Session.TTLMinutes) * time.Minute)

	chatService := service.NewChatService(sessionRepo, lookup, sysLogger)

	return &Container{
		ChatController: controller.NewChatController(chatService, sysLogger),
		Logger:         sysLogger,
	}
}
