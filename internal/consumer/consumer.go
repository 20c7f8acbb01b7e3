package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/notifiers"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/storage/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	defaultWorkerCount = 4
	defaultMaxAttempts = 5
	defaultRetryBase   = 5 * time.Second
)

// channel is the part of an AMQP channel a worker consumes through.
type channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Consumer listens to the jobs queue and processes messages using a pool of workers.
// When every worker has stopped on its own, it shuts the application down with exit code 1.
type Consumer struct {
	logger      zerolog.Logger
	openChannel func() (channel, error) // One channel per worker.
	declare     func() error
	queue       repo.JobQueue
	notifier    notifiers.Notifier
	shutdowner  fx.Shutdowner
	workerCount int
	maxAttempts int
	retryBase   time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
	live   atomic.Int32
}

// New creates a new instance of Consumer.
func New(
	cfg *config.Config,
	logger *zerolog.Logger,
	conn *amqp.Connection,
	queue repo.JobQueue,
	notifier notifiers.Notifier,
	shutdowner fx.Shutdowner,
) *Consumer {
	c := &Consumer{
		logger:      logger.With().Str("component", "consumer").Logger(),
		queue:       queue,
		notifier:    notifier,
		shutdowner:  shutdowner,
		workerCount: cfg.Async.Workers,
		maxAttempts: cfg.Async.MaxAttempts,
		retryBase:   cfg.Async.RetryBase,
	}
	c.openChannel = func() (channel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		return ch, nil
	}
	c.declare = func() error {
		ch, err := conn.Channel()
		if err != nil {
			return fmt.Errorf("consumer: open channel: %w", err)
		}
		defer ch.Close()
		if err := rabbitmq.DeclareTopology(ch); err != nil {
			return fmt.Errorf("consumer: declare topology: %w", err)
		}
		return nil
	}
	if c.workerCount <= 0 {
		c.workerCount = defaultWorkerCount
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if c.retryBase <= 0 {
		c.retryBase = defaultRetryBase
	}
	return c
}

// Start declares the topology and launches the worker pool. It returns immediately;
// workers run until Stop is called.
func (c *Consumer) Start(_ context.Context) error {
	if err := c.declare(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.logger.Info().Int("count", c.workerCount).Msg("starting worker pool")
	c.live.Store(int32(c.workerCount))
	for i := 0; i < c.workerCount; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.runWorker(ctx, workerID)
			c.workerExited(ctx)
		}(i + 1)
	}
	return nil
}

// workerExited asks fx to stop the application once the last worker is gone
// while the consumer is still supposed to be running.
func (c *Consumer) workerExited(ctx context.Context) {
	if c.live.Add(-1) > 0 || ctx.Err() != nil {
		return
	}
	c.logger.Error().Msg("all workers stopped unexpectedly, shutting down")
	if c.shutdowner == nil {
		return
	}
	if err := c.shutdowner.Shutdown(fx.ExitCode(1)); err != nil {
		c.logger.Error().Err(err).Msg("failed to request shutdown")
	}
}

// Stop cancels the workers and waits for in-flight jobs, bounded by ctx.
func (c *Consumer) Stop(ctx context.Context) error {
	if c.cancel == nil {
		return nil
	}
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		c.logger.Info().Msg("consumer stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runWorker contains the main logic for a single worker goroutine.
func (c *Consumer) runWorker(ctx context.Context, workerID int) {
	logger := c.logger.With().Int("worker_id", workerID).Logger()

	ch, err := c.openChannel()
	if err != nil {
		logger.Error().Err(err).Msg("failed to open channel for worker")
		return
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		logger.Error().Err(err).Msg("failed to set QoS")
		return
	}

	msgs, err := ch.Consume(
		rabbitmq.JobsQueue,
		fmt.Sprintf("worker-%d", workerID),
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error().Err(err).Msg("failed to register a consumer")
		return
	}

	logger.Info().Msg("worker is waiting for jobs")
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				logger.Warn().Msg("message channel closed by RabbitMQ, worker stopping")
				return
			}
			c.handleMessage(ctx, msg, logger)
		}
	}
}

// handleMessage processes a single delivery.
func (c *Consumer) handleMessage(ctx context.Context, msg amqp.Delivery, logger zerolog.Logger) {
	var j model.Job
	if err := json.Unmarshal(msg.Body, &j); err != nil {
		logger.Error().Err(err).Msg("failed to unmarshal job, rejecting")
		_ = msg.Nack(false, false)
		return
	}

	log := logger.With().Stringer("job_id", j.ID).Str("channel", string(j.Kind)).Logger()
	log.Debug().Int("attempt", j.Attempts+1).Msg("processing job")

	if err := c.notifier.Send(ctx, &j); err != nil {
		c.handleSendError(ctx, &j, err, msg, log)
		return
	}

	log.Info().Msg("job completed")
	_ = msg.Ack(false)
}

// handleSendError retries the job with exponential backoff until attempts run out.
func (c *Consumer) handleSendError(ctx context.Context, j *model.Job, sendErr error, msg amqp.Delivery, log zerolog.Logger) {
	j.Attempts++

	if j.Attempts >= c.maxAttempts {
		log.Error().Err(sendErr).Int("attempts", j.Attempts).Msg("max attempts reached, dropping job")
		_ = msg.Ack(false)
		return
	}

	backoff := c.backoff(j.Attempts)
	log.Warn().Err(sendErr).Int("attempt", j.Attempts).Dur("backoff", backoff).Msg("job failed, scheduling retry")

	if err := c.queue.PublishRetry(ctx, j, backoff); err != nil {
		log.Error().Err(err).Msg("failed to publish job to retry queue")
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}

// backoff returns retryBase * 2^attempt.
func (c *Consumer) backoff(attempt int) time.Duration {
	return c.retryBase << attempt
}
