package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/logging"
)

// Sender is the part of *tgbotapi.BotAPI used to post messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts notifications to a single Telegram chat. The
// channel id is included in the log only; Telegram has no equivalent.
type TelegramNotifier struct {
	sender Sender
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier connects to the Bot API with token.
func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	return NewTelegramNotifierWithSender(bot, chatID, logger), nil
}

// NewTelegramNotifierWithSender uses an existing sender.
func NewTelegramNotifierWithSender(s Sender, chatID int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		sender: s,
		chatID: chatID,
		logger: logging.OrNop(logger).Named("telegram"),
	}
}

func (t *TelegramNotifier) Notify(ctx context.Context, channelID, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, formatMessage(title, body))

	sent, err := t.sender.Send(msg)
	if err != nil {
		t.logger.Warn("send telegram message", zap.Int64("chat", t.chatID), zap.Error(err))
		return fmt.Errorf("send telegram message: %w", err)
	}
	t.logger.Debug("telegram message sent",
		zap.String("channel", channelID),
		zap.Int64("chat", t.chatID),
		zap.Int("message_id", sent.MessageID))
	return nil
}

func formatMessage(title, body string) string {
	return title + "\n\n" + body
}
