package rabbitmq

import (
	"fmt"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// NewConnection creates and returns a raw amqp.Connection.
// This single connection is shared by the publisher and the consumer.
func NewConnection(cfg *config.Config, logger *zerolog.Logger) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: failed to connect: %w", err)
	}
	logger.Info().Str("component", "rabbitmq").Msg("connected to rabbitmq")
	return conn, nil
}
