package notifiers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/rs/zerolog"
)

// botSender is satisfied by *tgbotapi.BotAPI.
type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends jobs via a Telegram bot.
type TelegramNotifier struct {
	bot    botSender
	logger zerolog.Logger
}

// NewTelegramNotifier creates a new instance of TelegramNotifier.
func NewTelegramNotifier(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot api: %w", err)
	}
	return &TelegramNotifier{
		bot:    bot,
		logger: logger.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// Send implements the Notifier interface for Telegram.
// Messages go out as plain text since bodies carry user input.
func (n *TelegramNotifier) Send(_ context.Context, j *model.Job) error {
	if j.Kind != model.ChannelTelegram || j.Telegram == nil {
		return fmt.Errorf("invalid job for telegram channel")
	}

	msg := tgbotapi.NewMessage(j.Telegram.ChatID, fmt.Sprintf("%s\n\n%s", j.Subject, j.Body))
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error().Err(err).Stringer("job_id", j.ID).Msg("failed to send telegram message")
		return err
	}

	n.logger.Info().Stringer("job_id", j.ID).Int64("chat_id", j.Telegram.ChatID).Msg("telegram message sent successfully")
	return nil
}
