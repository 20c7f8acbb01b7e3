package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/rs/zerolog"
)

// MembershipUpdate carries optional membership changes.
type MembershipUpdate struct {
	Type      *model.MembershipType
	StartDate *time.Time
	EndDate   *time.Time
	IsActive  *bool
}

// StatsProfile is the profile part of UserStats.
type StatsProfile struct {
	Age          *int     `json:"age,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	FitnessLevel string   `json:"fitnessLevel"`
	Goals        []string `json:"goals"`
	BMI          *float64 `json:"bmi"`
	BMICategory  *string  `json:"bmiCategory"`
}

// UserStats summarizes a user's body metrics and membership.
type UserStats struct {
	Profile     StatsProfile      `json:"profile"`
	Membership  model.Membership  `json:"membership"`
	Preferences model.Preferences `json:"preferences"`
	LastLogin   time.Time         `json:"lastLogin"`
	MemberSince time.Time         `json:"memberSince"`
}

// UserService implements user administration.
type UserService struct {
	users  repo.UserRepository
	logger zerolog.Logger
}

func NewUserService(users repo.UserRepository, logger *zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger.With().Str("layer", "service").Str("service", "user").Logger(),
	}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

// Get returns the user if the actor is that user or an admin.
func (s *UserService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error) {
	if !actor.CanAccess(id) {
		return nil, ErrForbidden
	}
	return s.users.GetByID(ctx, id)
}

// UpdateMembership applies a partial membership update.
func (s *UserService) UpdateMembership(ctx context.Context, id uuid.UUID, in MembershipUpdate) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m := &u.Membership
	if in.Type != nil {
		m.Type = *in.Type
	}
	if in.StartDate != nil {
		m.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		m.EndDate = in.EndDate
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return nil, invalid("Membership end date must be after the start date")
	}

	if err := s.users.UpdateMembership(ctx, id, *m); err != nil {
		return nil, err
	}
	s.logger.Info().Stringer("user_id", id).Str("type", string(m.Type)).Bool("active", m.IsActive).Msg("membership updated")
	return u, nil
}

// Stats returns the stats of the user if the actor is that user or an admin.
func (s *UserService) Stats(ctx context.Context, actor *model.User, id uuid.UUID) (*UserStats, error) {
	u, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		Profile: StatsProfile{
			Age:          u.Profile.Age,
			Gender:       u.Profile.Gender,
			Height:       u.Profile.Height,
			Weight:       u.Profile.Weight,
			FitnessLevel: u.Profile.FitnessLevel,
			Goals:        u.Profile.Goals,
			BMI:          u.BMI(),
		},
		Membership:  u.Membership,
		Preferences: u.Preferences,
		LastLogin:   u.LastLogin,
		MemberSince: u.CreatedAt,
	}
	if c := u.BMICategory(); c != "" {
		stats.Profile.BMICategory = &c
	}
	return stats, nil
}

// Delete removes the user and everything they own.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Stringer("user_id", id).Msg("user deleted")
	return nil
}
