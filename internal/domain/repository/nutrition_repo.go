package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
)

// FoodFilter narrows a food listing. Search matches name or description case-insensitively.
type FoodFilter struct {
	Category   string
	DietaryTag string
	Search     string
}

// MealFilter narrows a meal listing.
type MealFilter struct {
	Type       string
	Difficulty string
	Search     string
}

// DietPlanFilter narrows a public diet plan listing.
type DietPlanFilter struct {
	Type       string
	Difficulty string
	CreatedBy  *uuid.UUID
}

// NutritionLogFilter selects a user's logs. The date range applies only when both bounds are set.
type NutritionLogFilter struct {
	From *time.Time
	To   *time.Time
	Page Page
}

// FoodRepository defines the contract for the food catalog.
type FoodRepository interface {
	Create(ctx context.Context, f *model.FoodItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.FoodItem, error)
	List(ctx context.Context, f FoodFilter) ([]*model.FoodItem, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.FoodItem, error)
}

// MealRepository defines the contract for meal recipes.
type MealRepository interface {
	Create(ctx context.Context, m *model.Meal) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Meal, error)
	List(ctx context.Context, f MealFilter) ([]*model.Meal, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Meal, error)
}

// DietPlanRepository defines the contract for diet plans.
type DietPlanRepository interface {
	Create(ctx context.Context, p *model.DietPlan) error
	// GetByID returns the plan with CreatorName populated.
	GetByID(ctx context.Context, id uuid.UUID) (*model.DietPlan, error)
	// ListPublic returns public plans, newest first.
	ListPublic(ctx context.Context, f DietPlanFilter) ([]*model.DietPlan, error)
}

// NutritionLogRepository defines the contract for the food diary.
type NutritionLogRepository interface {
	Create(ctx context.Context, l *model.NutritionLog) error
	// List returns a page of logs, newest first, and the total count for the filter.
	List(ctx context.Context, userID uuid.UUID, f NutritionLogFilter) ([]*model.NutritionLog, int, error)
	// Since returns every log dated at or after from, oldest first.
	Since(ctx context.Context, userID uuid.UUID, from time.Time) ([]*model.NutritionLog, error)
}
