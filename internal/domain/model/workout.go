package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating is an aggregate star rating.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Exercise is a catalog entry describing a single movement.
type Exercise struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	MuscleGroups      []string  `json:"muscleGroups"`
	Equipment         []string  `json:"equipment"`
	Difficulty        string    `json:"difficulty"`
	Instructions      []string  `json:"instructions"`
	Tips              []string  `json:"tips"`
	VideoURL          string    `json:"videoUrl,omitempty"`
	ImageURL          string    `json:"imageUrl,omitempty"`
	CaloriesPerMinute *float64  `json:"caloriesPerMinute,omitempty"`
}

// WorkoutExercise is one prescribed exercise inside a workout.
// Duration and Rest are in seconds, Weight in kilograms.
type WorkoutExercise struct {
	ExerciseID uuid.UUID `json:"exercise"`
	Sets       int       `json:"sets"`
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight"`
	Duration   *int      `json:"duration,omitempty"`
	Rest       int       `json:"rest"`
	Notes      string    `json:"notes,omitempty"`

	// Details is populated on reads; it is not persisted.
	Details *Exercise `json:"details,omitempty"`
}

// ApplyDefaults fills the prescription defaults for unset values.
func (e *WorkoutExercise) ApplyDefaults() {
	if e.Sets <= 0 {
		e.Sets = 3
	}
	if e.Reps <= 0 {
		e.Reps = 10
	}
	if e.Rest <= 0 {
		e.Rest = 60
	}
	if e.Weight < 0 {
		e.Weight = 0
	}
}

// Workout is a reusable training plan. Duration is in minutes.
type Workout struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Type               string            `json:"type"`
	Difficulty         string            `json:"difficulty"`
	Duration           int               `json:"duration"`
	Exercises          []WorkoutExercise `json:"exercises"`
	TargetMuscleGroups []string          `json:"targetMuscleGroups"`
	Equipment          []string          `json:"equipment"`
	Calories           *int              `json:"calories,omitempty"`
	CreatedBy          uuid.UUID         `json:"createdBy"`
	CreatorName        string            `json:"creatorName,omitempty"`
	IsPublic           bool              `json:"isPublic"`
	Tags               []string          `json:"tags"`
	Rating             Rating            `json:"rating"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// ExerciseIDs returns the distinct exercise references of the workout in order.
func (w *Workout) ExerciseIDs() []uuid.UUID {
	return distinctIDs(len(w.Exercises), func(i int) uuid.UUID { return w.Exercises[i].ExerciseID })
}

// LoggedSet is a single performed set.
type LoggedSet struct {
	Reps      *int     `json:"reps,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Duration  *int     `json:"duration,omitempty"`
	Completed bool     `json:"completed"`
}

// LoggedExercise records what was actually done for one exercise.
type LoggedExercise struct {
	ExerciseID uuid.UUID   `json:"exercise"`
	Sets       []LoggedSet `json:"sets"`
	Notes      string      `json:"notes,omitempty"`
}

// WorkoutLog is a completed (or partially completed) workout session.
type WorkoutLog struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user"`
	WorkoutID uuid.UUID        `json:"workout"`
	Date      time.Time        `json:"date"`
	Duration  int              `json:"duration"`
	Exercises []LoggedExercise `json:"exercises"`
	Calories  *int             `json:"calories,omitempty"`
	Rating    *int             `json:"rating,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	Completed bool             `json:"completed"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`

	// Workout is populated on reads; it is not persisted.
	Workout *Workout `json:"workoutDetails,omitempty"`
}

func distinctIDs(n int, at func(int) uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, n)
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		id := at(i)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
