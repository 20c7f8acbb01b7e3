package repository

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
)

// ExerciseFilter narrows an exercise listing. Empty fields do not filter.
type ExerciseFilter struct {
	Category    string
	MuscleGroup string
	Difficulty  string
	Equipment   string
}

// WorkoutFilter narrows a public workout listing. Empty fields do not filter.
type WorkoutFilter struct {
	Type        string
	Difficulty  string
	MuscleGroup string
	CreatedBy   *uuid.UUID
}

// Page selects a window of a result set. Page is 1-based.
type Page struct {
	Limit int
	Page  int
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt.
func (p Page) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// ExerciseRepository defines the contract for the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, e *model.Exercise) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Exercise, error)
	// List returns matching exercises sorted by name.
	List(ctx context.Context, f ExerciseFilter) ([]*model.Exercise, error)
	// FindByIDs returns the exercises that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Exercise, error)
}

// WorkoutRepository defines the contract for workout persistence.
type WorkoutRepository interface {
	Create(ctx context.Context, w *model.Workout) error
	// GetByID returns the workout with CreatorName populated.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Workout, error)
	Update(ctx context.Context, w *model.Workout) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListPublic returns public workouts, newest first, with CreatorName populated.
	ListPublic(ctx context.Context, f WorkoutFilter) ([]*model.Workout, error)
}

// WorkoutLogRepository defines the contract for workout session history.
type WorkoutLogRepository interface {
	Create(ctx context.Context, l *model.WorkoutLog) error
	// ListByUser returns a page of the user's logs, newest first, and the total count.
	ListByUser(ctx context.Context, userID uuid.UUID, p Page) ([]*model.WorkoutLog, int, error)
}
