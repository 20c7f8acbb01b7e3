package notifiers

import (
	"context"
	"time"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// NewCircuitBreaker returns a breaker that opens after three consecutive failures
// and tries again after 30 seconds.
func NewCircuitBreaker(name string, logger *zerolog.Logger) *gobreaker.CircuitBreaker {
	log := logger.With().Str("component", "circuit_breaker").Str("breaker", name).Logger()
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
}

// BreakerNotifier guards a Notifier with a circuit breaker. While the breaker is
// open Send fails fast with gobreaker.ErrOpenState and the job is retried later.
type BreakerNotifier struct {
	next Notifier
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerNotifier(next Notifier, cb *gobreaker.CircuitBreaker) *BreakerNotifier {
	return &BreakerNotifier{next: next, cb: cb}
}

func (b *BreakerNotifier) Send(ctx context.Context, j *model.Job) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.next.Send(ctx, j)
	})
	return err
}
