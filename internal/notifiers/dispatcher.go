package notifiers

import (
	"context"
	"fmt"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/rs/zerolog"
)

// ModeProduction enables real delivery channels.
const ModeProduction = "production"

// Dispatcher is a composite notifier that routes jobs to the correct channel-specific notifier.
// It implements the Notifier interface itself.
type Dispatcher struct {
	notifiers map[model.Channel]Notifier
	logger    zerolog.Logger
}

// NewDispatcher creates a new Dispatcher and initializes channel-specific notifiers
// based on the application's configuration mode.
func NewDispatcher(cfg *config.Config, logger *zerolog.Logger) (*Dispatcher, error) {
	log := logger.With().Str("component", "dispatcher").Logger()
	log.Info().Str("mode", cfg.Notifiers.Mode).Msg("initializing notifiers")

	// The log notifier is the default for every channel.
	logNotifier := NewLogNotifier(logger)
	notifiersMap := map[model.Channel]Notifier{
		model.ChannelEmail:    logNotifier,
		model.ChannelTelegram: logNotifier,
	}

	if cfg.Notifiers.Mode == ModeProduction {
		if cfg.Notifiers.Email.Enabled() {
			email := NewEmailNotifier(cfg.Notifiers.Email, logger)
			notifiersMap[model.ChannelEmail] = NewBreakerNotifier(email, NewCircuitBreaker("smtp", logger))
			log.Info().Msg("email notifier enabled")
		}
		if cfg.Notifiers.Telegram.BotToken != "" {
			tg, err := NewTelegramNotifier(cfg.Notifiers.Telegram, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
			}
			notifiersMap[model.ChannelTelegram] = NewBreakerNotifier(tg, NewCircuitBreaker("telegram", logger))
			log.Info().Msg("telegram notifier enabled")
		}
	}

	return &Dispatcher{notifiers: notifiersMap, logger: log}, nil
}

// Send implements the Notifier interface. It finds the correct notifier for the
// job's channel and delegates the send operation to it.
func (d *Dispatcher) Send(ctx context.Context, j *model.Job) error {
	notifier, ok := d.notifiers[j.Kind]
	if !ok {
		d.logger.Error().Str("channel", string(j.Kind)).Msg("no notifier found for channel")
		return fmt.Errorf("notifier for channel %s not found", j.Kind)
	}
	return notifier.Send(ctx, j)
}
