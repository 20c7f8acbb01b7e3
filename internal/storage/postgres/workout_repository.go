package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/rs/zerolog"
)

var (
	_ repo.ExerciseRepository   = (*ExerciseRepository)(nil)
	_ repo.WorkoutRepository    = (*WorkoutRepository)(nil)
	_ repo.WorkoutLogRepository = (*WorkoutLogRepository)(nil)
)

// ---------------------------------------------------------------------------
// Exercises
// ---------------------------------------------------------------------------

const exerciseColumns = `id, name, description, category, muscle_groups, equipment,
	difficulty, instructions, tips, video_url, image_url, calories_per_minute`

// ExerciseRepository stores the exercise catalog.
type ExerciseRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewExerciseRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *ExerciseRepository {
	return &ExerciseRepository{
		pool:   pool,
		logger: logger.With().Str("layer", "postgres_repository").Str("table", "exercises").Logger(),
	}
}

func (r *ExerciseRepository) Create(ctx context.Context, e *model.Exercise) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO exercises (`+exerciseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.Name, e.Description, e.Category, nonNil(e.MuscleGroups), nonNil(e.Equipment),
		e.Difficulty, nonNil(e.Instructions), nonNil(e.Tips), e.VideoURL, e.ImageURL, e.CaloriesPerMinute)
	if err != nil {
		r.logger.Err(err).Msg("cannot create exercise")
		return fmt.Errorf("postgres: create exercise failed: %w", mapError(err))
	}
	return nil
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exercise, error) {
	e, err := scanExercise(r.pool.QueryRow(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		r.logger.Err(err).Stringer("id", id).Msg("cannot get exercise")
		return nil, fmt.Errorf("postgres: get exercise failed: %w", err)
	}
	return e, nil
}

// List returns exercises matching the filter sorted by name. Array filters match membership.
func (r *ExerciseRepository) List(ctx context.Context, f repo.ExerciseFilter) ([]*model.Exercise, error) {
	query, args := exerciseListQuery(f)
	return r.query(ctx, query, args...)
}

func (r *ExerciseRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Exercise, error) {
	if len(ids) == 0 {
		return []*model.Exercise{}, nil
	}
	return r.query(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = ANY($1)`, ids)
}

func (r *ExerciseRepository) query(ctx context.Context, query string, args ...any) ([]*model.Exercise, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Msg("cannot query exercises")
		return nil, fmt.Errorf("postgres: query exercises failed: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Exercise, 0)
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan exercise failed: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func exerciseListQuery(f repo.ExerciseFilter) (string, []any) {
	var w whereClause
	if f.Category != "" {
		w.add("category = $%d", f.Category)
	}
	if f.MuscleGroup != "" {
		w.add("$%d = ANY(muscle_groups)", f.MuscleGroup)
	}
	if f.Difficulty != "" {
		w.add("difficulty = $%d", f.Difficulty)
	}
	if f.Equipment != "" {
		w.add("$%d = ANY(equipment)", f.Equipment)
	}
	return `SELECT ` + exerciseColumns + ` FROM exercises` + w.String() + ` ORDER BY name`, w.args
}

func scanExercise(s rowScanner) (*model.Exercise, error) {
	var e model.Exercise
	err := s.Scan(&e.ID, &e.Name, &e.Description, &e.Category, &e.MuscleGroups, &e.Equipment,
		&e.Difficulty, &e.Instructions, &e.Tips, &e.VideoURL, &e.ImageURL, &e.CaloriesPerMinute)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ---------------------------------------------------------------------------
// Workouts
// ---------------------------------------------------------------------------

const workoutColumns = `w.id, w.name, w.description, w.type, w.difficulty, w.duration, w.exercises,
	w.target_muscle_groups, w.equipment, w.calories, w.created_by, COALESCE(u.name, ''),
	w.is_public, w.tags, w.rating_average, w.rating_count, w.created_at, w.updated_at`

const workoutFrom = ` FROM workouts w LEFT JOIN users u ON u.id = w.created_by`

// WorkoutRepository stores workout plans. Prescribed exercises are kept as a JSONB document.
type WorkoutRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewWorkoutRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *WorkoutRepository {
	return &WorkoutRepository{
		pool:   pool,
		logger: logger.With().Str("layer", "postgres_repository").Str("table", "workouts").Logger(),
	}
}

func (r *WorkoutRepository) Create(ctx context.Context, w *model.Workout) error {
	exercises, err := marshalWorkoutExercises(w.Exercises)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO workouts (id, name, description, type, difficulty, duration,
		exercises, target_muscle_groups, equipment, calories, created_by, is_public, tags,
		rating_average, rating_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		w.ID, w.Name, w.Description, w.Type, w.Difficulty, w.Duration,
		exercises, nonNil(w.TargetMuscleGroups), nonNil(w.Equipment), w.Calories, w.CreatedBy, w.IsPublic, nonNil(w.Tags),
		w.Rating.Average, w.Rating.Count, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		r.logger.Err(err).Stringer("id", w.ID).Msg("cannot create workout")
		return fmt.Errorf("postgres: create workout failed: %w", mapError(err))
	}
	return nil
}

func (r *WorkoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Workout, error) {
	w, err := scanWorkout(r.pool.QueryRow(ctx, `SELECT `+workoutColumns+workoutFrom+` WHERE w.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		r.logger.Err(err).Stringer("id", id).Msg("cannot get workout")
		return nil, fmt.Errorf("postgres: get workout failed: %w", err)
	}
	return w, nil
}

func (r *WorkoutRepository) Update(ctx context.Context, w *model.Workout) error {
	exercises, err := marshalWorkoutExercises(w.Exercises)
	if err != nil {
		return err
	}
	w.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `UPDATE workouts SET
		name = $2, description = $3, type = $4, difficulty = $5, duration = $6, exercises = $7,
		target_muscle_groups = $8, equipment = $9, calories = $10, is_public = $11, tags = $12,
		updated_at = $13
		WHERE id = $1`,
		w.ID, w.Name, w.Description, w.Type, w.Difficulty, w.Duration, exercises,
		nonNil(w.TargetMuscleGroups), nonNil(w.Equipment), w.Calories, w.IsPublic, nonNil(w.Tags), w.UpdatedAt)
	if err != nil {
		r.logger.Err(err).Stringer("id", w.ID).Msg("cannot update workout")
		return fmt.Errorf("postgres: update workout failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *WorkoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		r.logger.Err(err).Stringer("id", id).Msg("cannot delete workout")
		return fmt.Errorf("postgres: delete workout failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *WorkoutRepository) ListPublic(ctx context.Context, f repo.WorkoutFilter) ([]*model.Workout, error) {
	query, args := workoutListQuery(f)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Msg("cannot list workouts")
		return nil, fmt.Errorf("postgres: list workouts failed: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Workout, 0)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan workout failed: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func workoutListQuery(f repo.WorkoutFilter) (string, []any) {
	w := whereClause{conds: []string{"w.is_public"}}
	if f.Type != "" {
		w.add("w.type = $%d", f.Type)
	}
	if f.Difficulty != "" {
		w.add("w.difficulty = $%d", f.Difficulty)
	}
	if f.MuscleGroup != "" {
		w.add("$%d = ANY(w.target_muscle_groups)", f.MuscleGroup)
	}
	if f.CreatedBy != nil {
		w.add("w.created_by = $%d", *f.CreatedBy)
	}
	return `SELECT ` + workoutColumns + workoutFrom + w.String() + ` ORDER BY w.created_at DESC`, w.args
}

func scanWorkout(s rowScanner) (*model.Workout, error) {
	var (
		w         model.Workout
		exercises []byte
	)
	err := s.Scan(&w.ID, &w.Name, &w.Description, &w.Type, &w.Difficulty, &w.Duration, &exercises,
		&w.TargetMuscleGroups, &w.Equipment, &w.Calories, &w.CreatedBy, &w.CreatorName,
		&w.IsPublic, &w.Tags, &w.Rating.Average, &w.Rating.Count, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(exercises, &w.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshalling exercises of workout %s: %w", w.ID, err)
	}
	w.Exercises = nonNil(w.Exercises)
	return &w, nil
}

// marshalWorkoutExercises encodes the prescription without populated exercise details.
func marshalWorkoutExercises(in []model.WorkoutExercise) ([]byte, error) {
	stored := make([]model.WorkoutExercise, len(in))
	for i, e := range in {
		e.Details = nil
		stored[i] = e
	}
	b, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("marshalling workout exercises: %w", err)
	}
	return b, nil
}

// ---------------------------------------------------------------------------
// Workout logs
// ---------------------------------------------------------------------------

const workoutLogColumns = `id, user_id, workout_id, date, duration, exercises,
	calories, rating, notes, completed, created_at, updated_at`

// WorkoutLogRepository stores performed workout sessions.
type WorkoutLogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewWorkoutLogRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *WorkoutLogRepository {
	return &WorkoutLogRepository{
		pool:   pool,
		logger: logger.With().Str("layer", "postgres_repository").Str("table", "workout_logs").Logger(),
	}
}

func (r *WorkoutLogRepository) Create(ctx context.Context, l *model.WorkoutLog) error {
	exercises, err := json.Marshal(nonNil(l.Exercises))
	if err != nil {
		return fmt.Errorf("marshalling logged exercises: %w", err)
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO workout_logs (`+workoutLogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		l.ID, l.UserID, l.WorkoutID, l.Date, l.Duration, exercises,
		l.Calories, l.Rating, l.Notes, l.Completed, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		r.logger.Err(err).Stringer("id", l.ID).Msg("cannot create workout log")
		return fmt.Errorf("postgres: create workout log failed: %w", mapError(err))
	}
	return nil
}

// ListByUser returns a page of the user's logs, newest first, with the total count.
func (r *WorkoutLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, p repo.Page) ([]*model.WorkoutLog, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM workout_logs WHERE user_id = $1`, userID).Scan(&total); err != nil {
		r.logger.Err(err).Stringer("user_id", userID).Msg("cannot count workout logs")
		return nil, 0, fmt.Errorf("postgres: count workout logs failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+workoutLogColumns+` FROM workout_logs
		WHERE user_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`, userID, p.Limit, p.Offset())
	if err != nil {
		r.logger.Err(err).Stringer("user_id", userID).Msg("cannot list workout logs")
		return nil, 0, fmt.Errorf("postgres: list workout logs failed: %w", err)
	}
	defer rows.Close()

	out := make([]*model.WorkoutLog, 0)
	for rows.Next() {
		var (
			l         model.WorkoutLog
			exercises []byte
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.WorkoutID, &l.Date, &l.Duration, &exercises,
			&l.Calories, &l.Rating, &l.Notes, &l.Completed, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("postgres: scan workout log failed: %w", err)
		}
		if err := json.Unmarshal(exercises, &l.Exercises); err != nil {
			return nil, 0, fmt.Errorf("unmarshalling exercises of log %s: %w", l.ID, err)
		}
		l.Exercises = nonNil(l.Exercises)
		out = append(out, &l)
	}
	return out, total, rows.Err()
}
