package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"knowledge-bot/internal/config"
	"knowledge-bot/internal/constant"
	"knowledge-bot/internal/pkg/logger"
	"knowledge-bot/pkg/bot"
	"knowledge-bot/pkg/wiki"
)

func main() {
	cfg := config.Load()

	// File-only logging keeps the interactive prompt clean.
	sysLogger := logger.NewFileOnlyLogger(cfg.App.LogFilePath)
	defer sysLogger.Sync()

	lookup := wiki.NewClient(
		cfg.Wiki.APIBaseURL,
		cfg.Wiki.UserAgent,
		cfg.Wiki.SummarySentences,
	)
	b := bot.New(lookup, sysLogger)

	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	blue := color.New(color.FgBlue)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	cyan.Println(strings.Repeat("=", 60))
	cyan.Println("CONVERSATIONAL KNOWLEDGE BOT")
	cyan.Println("Memory: Active | Wikipedia: Enabled")
	cyan.Println(strings.Repeat("=", 60))
	green.Println("Ready! Ask me anything factual.")
	fmt.Println("Type 'help' for instructions, 'clear' to start over, 'quit' to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		blue.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "quit", "exit":
			cyan.Println("Goodbye!")
			return
		case "clear":
			b.ClearHistory()
			yellow.Println("Memory cleared!")
			continue
		case "history":
			for _, turn := range b.History() {
				blue.Printf("You: %s\n", turn.Question)
				green.Printf("Bot: %s\n\n", turn.Answer)
			}
			continue
		}

		reply, err := b.Handle(context.Background(), input)
		if err != nil && !isUserFacing(err) {
			red.Printf("Error: %v\n\n", err)
			continue
		}

		cyan.Println(strings.Repeat("-", 60))
		green.Print("Bot: ")
		fmt.Println(replyText(reply, err))
		cyan.Println(strings.Repeat("-", 60))
		fmt.Println()
	}
}

// replyText mirrors the service layer's error translation for the
// terminal: bot-level rejections become canned prompts.
func replyText(reply *bot.Reply, err error) string {
	switch {
	case err == nil:
		return reply.Text
	case errors.Is(err, bot.ErrEmptyInput):
		return constant.EmptyInputReply
	case errors.Is(err, bot.ErrNoContext):
		return constant.NoContextReply
	default:
		return constant.LookupFailedReply
	}
}

func isUserFacing(err error) bool {
	return errors.Is(err, bot.ErrEmptyInput) ||
		errors.Is(err, bot.ErrNoContext) ||
		errors.Is(err, bot.ErrLookup)
}
