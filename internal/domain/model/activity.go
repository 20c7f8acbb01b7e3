package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType names a social-feed event.
type ActivityType string

const (
	ActivityWorkoutLogged   ActivityType = "workout_logged"
	ActivityWorkoutCreated  ActivityType = "workout_created"
	ActivityNutritionLogged ActivityType = "nutrition_logged"
)

// ActivityEvent is pushed to connected WebSocket clients.
type ActivityEvent struct {
	Type      ActivityType `json:"type"`
	UserID    uuid.UUID    `json:"user"`
	UserName  string       `json:"userName,omitempty"`
	Data      any          `json:"data,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}
