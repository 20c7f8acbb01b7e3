package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/rs/zerolog"
)

// WorkoutUpdate carries optional workout changes. Nil fields are left untouched.
type WorkoutUpdate struct {
	Name               *string
	Description        *string
	Type               *string
	Difficulty         *string
	Duration           *int
	Exercises          []model.WorkoutExercise
	TargetMuscleGroups []string
	Equipment          []string
	Calories           *int
	IsPublic           *bool
	Tags               []string
}

// WorkoutService implements the exercise catalog, workouts and workout logs.
type WorkoutService struct {
	exercises repo.ExerciseRepository
	workouts  repo.WorkoutRepository
	logs      repo.WorkoutLogRepository
	activity  ActivityPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewWorkoutService(
	exercises repo.ExerciseRepository,
	workouts repo.WorkoutRepository,
	logs repo.WorkoutLogRepository,
	activity ActivityPublisher,
	logger *zerolog.Logger,
) *WorkoutService {
	return &WorkoutService{
		exercises: exercises,
		workouts:  workouts,
		logs:      logs,
		activity:  activity,
		logger:    logger.With().Str("layer", "service").Str("service", "workout").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListExercises returns the catalog sorted by name.
func (s *WorkoutService) ListExercises(ctx context.Context, f repo.ExerciseFilter) ([]*model.Exercise, error) {
	return s.exercises.List(ctx, f)
}

func (s *WorkoutService) GetExercise(ctx context.Context, id uuid.UUID) (*model.Exercise, error) {
	return s.exercises.GetByID(ctx, id)
}

// CreateExercise adds an exercise to the catalog.
func (s *WorkoutService) CreateExercise(ctx context.Context, e *model.Exercise) (*model.Exercise, error) {
	e.ID = uuid.New()
	if err := s.exercises.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListWorkouts returns public workouts, newest first.
func (s *WorkoutService) ListWorkouts(ctx context.Context, f repo.WorkoutFilter) ([]*model.Workout, error) {
	return s.workouts.ListPublic(ctx, f)
}

// GetWorkout returns the workout with its exercises populated.
func (s *WorkoutService) GetWorkout(ctx context.Context, id uuid.UUID) (*model.Workout, error) {
	w, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.populateExercises(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// CreateWorkout stores a workout owned by the actor. Every referenced exercise must exist.
func (s *WorkoutService) CreateWorkout(ctx context.Context, actor *model.User, w *model.Workout) (*model.Workout, error) {
	for i := range w.Exercises {
		w.Exercises[i].ApplyDefaults()
	}
	missing, err := s.populateExercises(ctx, w)
	if err != nil {
		return nil, err
	}
	if missing != nil {
		return nil, missing
	}

	now := s.now()
	w.ID = uuid.New()
	w.CreatedBy = actor.ID
	w.CreatedAt, w.UpdatedAt = now, now
	if err := s.workouts.Create(ctx, w); err != nil {
		return nil, err
	}
	w.CreatorName = actor.Name

	s.logger.Info().Stringer("workout_id", w.ID).Stringer("user_id", actor.ID).Msg("workout created")
	s.activity.Publish(model.ActivityEvent{
		Type:      model.ActivityWorkoutCreated,
		UserID:    actor.ID,
		UserName:  actor.Name,
		Data:      map[string]any{"workoutId": w.ID, "name": w.Name},
		Timestamp: now,
	})
	return w, nil
}

// UpdateWorkout applies a partial update. Only the owner or an admin may update.
func (s *WorkoutService) UpdateWorkout(ctx context.Context, actor *model.User, id uuid.UUID, in WorkoutUpdate) (*model.Workout, error) {
	w, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(w.CreatedBy) {
		return nil, ErrForbidden
	}

	if in.Name != nil {
		w.Name = *in.Name
	}
	if in.Description != nil {
		w.Description = *in.Description
	}
	if in.Type != nil {
		w.Type = *in.Type
	}
	if in.Difficulty != nil {
		w.Difficulty = *in.Difficulty
	}
	if in.Duration != nil {
		w.Duration = *in.Duration
	}
	if in.Exercises != nil {
		if len(in.Exercises) == 0 {
			return nil, invalid("At least one exercise is required")
		}
		for i := range in.Exercises {
			in.Exercises[i].ApplyDefaults()
		}
		w.Exercises = in.Exercises
	}
	if in.TargetMuscleGroups != nil {
		w.TargetMuscleGroups = in.TargetMuscleGroups
	}
	if in.Equipment != nil {
		w.Equipment = in.Equipment
	}
	if in.Calories != nil {
		w.Calories = in.Calories
	}
	if in.IsPublic != nil {
		w.IsPublic = *in.IsPublic
	}
	if in.Tags != nil {
		w.Tags = in.Tags
	}

	missing, err := s.populateExercises(ctx, w)
	if err != nil {
		return nil, err
	}
	if missing != nil {
		return nil, missing
	}

	w.UpdatedAt = s.now()
	if err := s.workouts.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// DeleteWorkout removes a workout. Only the owner or an admin may delete.
func (s *WorkoutService) DeleteWorkout(ctx context.Context, actor *model.User, id uuid.UUID) error {
	w, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanAccess(w.CreatedBy) {
		return ErrForbidden
	}
	return s.workouts.Delete(ctx, id)
}

// LogWorkout records a session of the workout for the actor.
func (s *WorkoutService) LogWorkout(ctx context.Context, actor *model.User, workoutID uuid.UUID, l *model.WorkoutLog) (*model.WorkoutLog, error) {
	w, err := s.workouts.GetByID(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	l.ID = uuid.New()
	l.UserID = actor.ID
	l.WorkoutID = w.ID
	if l.Date.IsZero() {
		l.Date = now
	}
	if l.Exercises == nil {
		l.Exercises = []model.LoggedExercise{}
	}
	l.CreatedAt, l.UpdatedAt = now, now
	if err := s.logs.Create(ctx, l); err != nil {
		return nil, err
	}
	l.Workout = w

	s.activity.Publish(model.ActivityEvent{
		Type:     model.ActivityWorkoutLogged,
		UserID:   actor.ID,
		UserName: actor.Name,
		Data: map[string]any{
			"workoutId": w.ID,
			"workout":   w.Name,
			"duration":  l.Duration,
			"calories":  l.Calories,
		},
		Timestamp: now,
	})
	return l, nil
}

// ListLogs returns a page of the user's logs with their workouts populated, and the total count.
func (s *WorkoutService) ListLogs(ctx context.Context, userID uuid.UUID, p repo.Page) ([]*model.WorkoutLog, int, error) {
	logs, total, err := s.logs.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, 0, err
	}

	workouts := make(map[uuid.UUID]*model.Workout)
	for _, l := range logs {
		w, ok := workouts[l.WorkoutID]
		if !ok {
			w, err = s.workouts.GetByID(ctx, l.WorkoutID)
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return nil, 0, err
			}
			workouts[l.WorkoutID] = w
		}
		l.Workout = w
	}
	return logs, total, nil
}

// populateExercises attaches exercise details. The returned ReferenceError names
// the first exercise that does not exist.
func (s *WorkoutService) populateExercises(ctx context.Context, w *model.Workout) (*ReferenceError, error) {
	found, err := s.exercises.FindByIDs(ctx, w.ExerciseIDs())
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.Exercise, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}
	var missing *ReferenceError
	for i := range w.Exercises {
		e, ok := byID[w.Exercises[i].ExerciseID]
		if !ok {
			if missing == nil {
				missing = &ReferenceError{Entity: "Exercise", ID: w.Exercises[i].ExerciseID}
			}
			continue
		}
		w.Exercises[i].Details = e
	}
	return missing, nil
}
