package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workoutFixture struct {
	*fixture
	exercises *memory.Exercises
	workouts  *memory.Workouts
	logs      *memory.WorkoutLogs
	svc       *WorkoutService
}

func newWorkoutFixture(t *testing.T) *workoutFixture {
	f := newFixture(t)
	wf := &workoutFixture{
		fixture:   f,
		exercises: &memory.Exercises{},
		workouts:  &memory.Workouts{Names: f.users},
		logs:      &memory.WorkoutLogs{},
	}
	wf.svc = NewWorkoutService(wf.exercises, wf.workouts, wf.logs, f.activity, &f.logger)
	return wf
}

func (wf *workoutFixture) exercise(t *testing.T, name string) *model.Exercise {
	t.Helper()
	e, err := wf.svc.CreateExercise(context.Background(), &model.Exercise{Name: name, Category: "strength"})
	require.NoError(t, err)
	return e
}

func TestWorkoutService_CreateWorkout(t *testing.T) {
	wf := newWorkoutFixture(t)
	ctx := context.Background()
	owner := wf.seedUser(t, "sam", model.RoleUser)
	squat := wf.exercise(t, "Squat")

	w, err := wf.svc.CreateWorkout(ctx, owner, &model.Workout{
		Name:      "Leg day",
		Type:      "strength",
		IsPublic:  true,
		Exercises: []model.WorkoutExercise{{ExerciseID: squat.ID}},
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, w.CreatedBy)
	assert.Equal(t, "sam", w.CreatorName)
	assert.Equal(t, 3, w.Exercises[0].Sets, "prescription defaults apply")
	assert.Equal(t, 10, w.Exercises[0].Reps)
	assert.Equal(t, 60, w.Exercises[0].Rest)
	require.NotNil(t, w.Exercises[0].Details)
	assert.Equal(t, "Squat", w.Exercises[0].Details.Name)

	require.Len(t, wf.activity.events, 1)
	assert.Equal(t, model.ActivityWorkoutCreated, wf.activity.events[0].Type)
	assert.Equal(t, owner.ID, wf.activity.events[0].UserID)

	got, err := wf.svc.GetWorkout(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Squat", got.Exercises[0].Details.Name)
	assert.Equal(t, "sam", got.CreatorName)
}

func TestWorkoutService_CreateWorkoutMissingExercise(t *testing.T) {
	wf := newWorkoutFixture(t)
	owner := wf.seedUser(t, "sam", model.RoleUser)
	squat := wf.exercise(t, "Squat")
	missing := uuid.New()

	_, err := wf.svc.CreateWorkout(context.Background(), owner, &model.Workout{
		Name:      "Broken",
		Exercises: []model.WorkoutExercise{{ExerciseID: squat.ID}, {ExerciseID: missing}},
	})
	require.ErrorIs(t, err, ErrInvalidReference)
	assert.Equal(t, "Exercise with ID "+missing.String()+" not found", err.Error())
	assert.Empty(t, wf.activity.events)

	list, err := wf.svc.ListWorkouts(context.Background(), repo.WorkoutFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWorkoutService_OwnershipRules(t *testing.T) {
	wf := newWorkoutFixture(t)
	ctx := context.Background()
	owner := wf.seedUser(t, "owner", model.RoleUser)
	other := wf.seedUser(t, "other", model.RoleUser)
	admin := wf.seedUser(t, "admin", model.RoleAdmin)
	squat := wf.exercise(t, "Squat")

	w, err := wf.svc.CreateWorkout(ctx, owner, &model.Workout{
		Name:      "Leg day",
		Exercises: []model.WorkoutExercise{{ExerciseID: squat.ID}},
	})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = wf.svc.UpdateWorkout(ctx, other, w.ID, WorkoutUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, wf.svc.DeleteWorkout(ctx, other, w.ID), ErrForbidden)

	name = "Leg day v2"
	updated, err := wf.svc.UpdateWorkout(ctx, owner, w.ID, WorkoutUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Leg day v2", updated.Name)

	_, err = wf.svc.UpdateWorkout(ctx, owner, w.ID, WorkoutUpdate{Exercises: []model.WorkoutExercise{}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = wf.svc.UpdateWorkout(ctx, owner, w.ID, WorkoutUpdate{Exercises: []model.WorkoutExercise{{ExerciseID: uuid.New()}}})
	assert.ErrorIs(t, err, ErrInvalidReference)

	require.NoError(t, wf.svc.DeleteWorkout(ctx, admin, w.ID))
	_, err = wf.svc.GetWorkout(ctx, w.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestWorkoutService_ListWorkoutsOnlyPublic(t *testing.T) {
	wf := newWorkoutFixture(t)
	ctx := context.Background()
	owner := wf.seedUser(t, "sam", model.RoleUser)
	squat := wf.exercise(t, "Squat")

	for _, public := range []bool{true, false} {
		_, err := wf.svc.CreateWorkout(ctx, owner, &model.Workout{
			Name:      "w",
			IsPublic:  public,
			Exercises: []model.WorkoutExercise{{ExerciseID: squat.ID}},
		})
		require.NoError(t, err)
	}

	list, err := wf.svc.ListWorkouts(ctx, repo.WorkoutFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsPublic)
}

func TestWorkoutService_LogAndListLogs(t *testing.T) {
	wf := newWorkoutFixture(t)
	ctx := context.Background()
	owner := wf.seedUser(t, "sam", model.RoleUser)
	squat := wf.exercise(t, "Squat")

	w, err := wf.svc.CreateWorkout(ctx, owner, &model.Workout{
		Name:      "Leg day",
		Exercises: []model.WorkoutExercise{{ExerciseID: squat.ID}},
	})
	require.NoError(t, err)

	_, err = wf.svc.LogWorkout(ctx, owner, uuid.New(), &model.WorkoutLog{Duration: 30})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	older := time.Now().Add(-48 * time.Hour)
	_, err = wf.svc.LogWorkout(ctx, owner, w.ID, &model.WorkoutLog{Duration: 30, Date: older})
	require.NoError(t, err)
	latest, err := wf.svc.LogWorkout(ctx, owner, w.ID, &model.WorkoutLog{Duration: 45})
	require.NoError(t, err)
	assert.False(t, latest.Date.IsZero())
	assert.NotNil(t, latest.Exercises)

	require.Len(t, wf.activity.events, 3)
	assert.Equal(t, model.ActivityWorkoutLogged, wf.activity.events[2].Type)

	logs, total, err := wf.svc.ListLogs(ctx, owner.ID, repo.Page{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, logs, 1)
	assert.Equal(t, 45, logs[0].Duration, "newest first")
	require.NotNil(t, logs[0].Workout)
	assert.Equal(t, "Leg day", logs[0].Workout.Name)
}
