package notifiers

import (
	"context"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
)

// Notifier defines the interface for any outbound delivery channel.
type Notifier interface {
	// Send delivers the job's message.
	Send(ctx context.Context, j *model.Job) error
}
