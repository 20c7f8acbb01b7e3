package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Ensure JobQueue implements the repository interface at compile time.
var _ repo.JobQueue = (*JobQueue)(nil)

// Constants for our RabbitMQ topology.
const (
	WaitExchange  = "wait.exchange"
	RetryExchange = "retry.exchange"
	JobsExchange  = "jobs.exchange"

	JobsQueue  = "jobs.queue.process"
	WaitQueue  = "wait.queue.delay"
	RetryQueue = "retry.queue.delay"

	Direct = "direct"
)

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// JobQueue implements the JobQueue interface. It acts as a PUBLISHER.
// Jobs are parked in a delay queue with a per-message TTL and dead-lettered
// into the processing queue once the TTL elapses.
type JobQueue struct {
	ch     channel
	mu     sync.Mutex // amqp channels are not safe for concurrent publishing
	logger zerolog.Logger
}

// NewJobQueue creates a new instance of the JobQueue publisher.
// It receives a shared amqp.Connection to create its own channel.
func NewJobQueue(conn *amqp.Connection, logger *zerolog.Logger) (*JobQueue, error) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Error().Err(err).Msg("rabbitmq: failed to open a channel")
		return nil, fmt.Errorf("rabbitmq: failed to open a channel: %w", err)
	}
	return newJobQueue(ch, logger)
}

func newJobQueue(ch channel, logger *zerolog.Logger) (*JobQueue, error) {
	q := &JobQueue{
		ch:     ch,
		logger: logger.With().Str("component", "rabbitmq_publisher").Logger(),
	}
	if err := DeclareTopology(q.ch); err != nil {
		q.logger.Error().Err(err).Msg("rabbitmq: failed to setup topology")
		return nil, fmt.Errorf("rabbitmq: failed to setup topology: %w", err)
	}
	q.logger.Info().Msg("rabbitmq topology setup successful")
	return q, nil
}

// topologyDeclarer is satisfied by *amqp.Channel.
type topologyDeclarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

// DeclareTopology declares all exchanges and queues. It is idempotent.
func DeclareTopology(ch topologyDeclarer) error {
	for _, ex := range []string{JobsExchange, WaitExchange, RetryExchange} {
		if err := ch.ExchangeDeclare(ex, Direct, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", ex, err)
		}
	}

	queues := []struct {
		name     string
		exchange string
		args     amqp.Table
	}{
		{JobsQueue, JobsExchange, nil},
		{WaitQueue, WaitExchange, amqp.Table{"x-dead-letter-exchange": JobsExchange}},
		{RetryQueue, RetryExchange, amqp.Table{"x-dead-letter-exchange": JobsExchange}},
	}
	for _, q := range queues {
		if _, err := ch.QueueDeclare(q.name, true, false, false, false, q.args); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", q.name, err)
		}
		if err := ch.QueueBind(q.name, "", q.exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s to exchange %s: %w", q.name, q.exchange, err)
		}
	}
	return nil
}

// Publish enqueues a job, delaying it until its NotBefore time.
func (q *JobQueue) Publish(ctx context.Context, j *model.Job) error {
	return q.publish(ctx, WaitExchange, j, j.Delay(time.Now()))
}

// PublishRetry schedules a job for a retry attempt.
func (q *JobQueue) PublishRetry(ctx context.Context, j *model.Job, retryDelay time.Duration) error {
	return q.publish(ctx, RetryExchange, j, retryDelay)
}

func (q *JobQueue) publish(ctx context.Context, exchange string, j *model.Job, delay time.Duration) error {
	msg, err := newPublishing(j, delay)
	if err != nil {
		q.logger.Error().Err(err).Stringer("id", j.ID).Msg("failed to marshal job")
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.ch.PublishWithContext(ctx, exchange, "", false, false, msg); err != nil {
		q.logger.Error().Err(err).Stringer("id", j.ID).Str("exchange", exchange).Msg("failed to publish job")
		return fmt.Errorf("rabbitmq: publish to %s: %w", exchange, err)
	}
	q.logger.Debug().Stringer("id", j.ID).Str("kind", string(j.Kind)).Dur("delay", delay).Msg("job published")
	return nil
}

// newPublishing encodes a job as a persistent message expiring after delay.
func newPublishing(j *model.Job, delay time.Duration) (amqp.Publishing, error) {
	body, err := json.Marshal(j)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal job: %w", err)
	}
	if delay < 0 {
		delay = 0
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    j.ID.String(),
		Type:         string(j.Kind),
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Expiration:   strconv.FormatInt(delay.Milliseconds(), 10),
	}, nil
}

// Close gracefully shuts down the channel. The connection is managed by Fx.
func (q *JobQueue) Close() error {
	if q.ch != nil {
		return q.ch.Close()
	}
	return nil
}
