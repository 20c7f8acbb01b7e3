package service

import (
	"context"
	"time"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/scheduler"
	"github.com/rs/zerolog"
)

// MaintenanceService holds the periodic housekeeping tasks.
type MaintenanceService struct {
	users     repo.UserRepository
	queue     repo.JobQueue
	intervals config.SchedulerConfig
	logger    zerolog.Logger
	now       func() time.Time
}

func NewMaintenanceService(cfg *config.Config, users repo.UserRepository, queue repo.JobQueue, logger *zerolog.Logger) *MaintenanceService {
	return &MaintenanceService{
		users:     users,
		queue:     queue,
		intervals: cfg.Scheduler,
		logger:    logger.With().Str("layer", "service").Str("service", "maintenance").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Tasks returns the scheduled tasks backed by this service.
func (s *MaintenanceService) Tasks() []scheduler.Task {
	return []scheduler.Task{
		{Name: "membership-expiry", Interval: s.intervals.MembershipExpiryInterval, RunOnStart: true, Run: s.ExpireMemberships},
		{Name: "reset-token-purge", Interval: s.intervals.ResetTokenPurgeInterval, RunOnStart: true, Run: s.PurgeResetTokens},
	}
}

// ExpireMemberships deactivates memberships past their end date and notifies each member.
// Each deactivation is conditional on the stored row, so a membership renewed after the
// listing is left alone and a member expired by another process is not mailed twice.
// A failure for one user does not stop the others.
func (s *MaintenanceService) ExpireMemberships(ctx context.Context) error {
	now := s.now()
	users, err := s.users.ListExpiredMemberships(ctx, now)
	if err != nil {
		return err
	}

	expired := 0
	for _, u := range users {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log := s.logger.With().Stringer("user_id", u.ID).Logger()

		ok, err := s.users.ExpireMembership(ctx, u.ID, now)
		if err != nil {
			log.Error().Err(err).Msg("failed to deactivate membership")
			continue
		}
		if !ok {
			log.Debug().Msg("membership changed since listing, skipped")
			continue
		}
		expired++

		body, err := render(membershipExpiredTmpl, map[string]any{
			"Name":    u.Name,
			"Type":    u.Membership.Type,
			"EndDate": u.Membership.EndDate.Format("January 2, 2006"),
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to render expiry email")
			continue
		}
		job := model.NewEmailJob(u.Email, "", "Your FitGenius Hub membership has expired", body, true)
		if err := s.queue.Publish(ctx, job); err != nil {
			log.Error().Err(err).Msg("failed to enqueue expiry email")
		}
	}

	if expired > 0 {
		s.logger.Info().Int("count", expired).Msg("memberships expired")
	}
	return nil
}

// PurgeResetTokens clears password-reset tokens that have expired.
func (s *MaintenanceService) PurgeResetTokens(ctx context.Context) error {
	n, err := s.users.ClearExpiredResetTokens(ctx, s.now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info().Int64("count", n).Msg("expired reset tokens cleared")
	}
	return nil
}
