// Package notify delivers out-of-band notifications about visitor activity.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gobishoftu/site/backend/internal/domain"
)

// sender is the part of *tgbotapi.BotAPI the notifier uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts new feedback to a Telegram chat.
// A notifier built without a token is disabled and only logs.
type TelegramNotifier struct {
	bot    sender
	chatID int64
	logger *slog.Logger
}

// NewTelegramNotifier connects to the Bot API when token is set.
func NewTelegramNotifier(token string, chatID int64, logger *slog.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, feedback notifications disabled")
		return &TelegramNotifier{logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("notify.NewTelegramNotifier: create bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

// NotifyFeedback sends one feedback message. Delivery failures are logged.
func (n *TelegramNotifier) NotifyFeedback(ctx context.Context, fb domain.FeedbackDraft) {
	name := fb.Name
	if name == "" {
		name = "anonymous"
	}
	n.send(ctx, fmt.Sprintf("New feedback from %s:\n\n%s", name, fb.Message))
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	if n.bot == nil {
		n.logger.DebugContext(ctx, "notification skipped (bot disabled)", "text", text)
		return
	}
	if n.chatID == 0 {
		n.logger.DebugContext(ctx, "notification skipped (no chat_id)")
		return
	}
	if err := ctx.Err(); err != nil {
		n.logger.DebugContext(ctx, "notification skipped (context cancelled)", "chat_id", n.chatID)
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, strings.TrimSpace(text))
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.ErrorContext(ctx, "failed to send telegram notification",
			"chat_id", n.chatID,
			"error", err,
		)
	}
}
