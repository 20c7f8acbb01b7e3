package notifiers

import (
	"context"
	"fmt"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/rs/zerolog"
)

// LogNotifier writes jobs to the log instead of delivering them.
// It backs every channel in development mode.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new instance of LogNotifier.
func NewLogNotifier(logger *zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With().Str("component", "log_notifier").Logger(),
	}
}

// Send implements the Notifier interface.
func (n *LogNotifier) Send(_ context.Context, j *model.Job) error {
	n.logger.Info().
		Stringer("job_id", j.ID).
		Str("channel", string(j.Kind)).
		Str("recipient", recipient(j)).
		Str("subject", j.Subject).
		Int("body_len", len(j.Body)).
		Msg(">>> MOCK SEND: job dispatched")
	return nil
}

func recipient(j *model.Job) string {
	switch j.Kind {
	case model.ChannelEmail:
		if j.Email != nil {
			return j.Email.To
		}
	case model.ChannelTelegram:
		if j.Telegram != nil {
			return fmt.Sprintf("ChatID %d", j.Telegram.ChatID)
		}
	}
	return ""
}
