package repository

import (
	"context"
	"time"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
)

// JobQueue defines the contract for interacting with a delayed job queue.
// This provides an abstraction over a system like RabbitMQ.
type JobQueue interface {
	// Publish enqueues a job, delaying it until its NotBefore time.
	Publish(ctx context.Context, j *model.Job) error

	// PublishRetry schedules a job for another attempt after retryDelay.
	PublishRetry(ctx context.Context, j *model.Job, retryDelay time.Duration) error
}
