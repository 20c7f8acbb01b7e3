package model

import (
	"time"

	"github.com/google/uuid"
)

// ServingSize is the reference portion nutrition values refer to.
type ServingSize struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// FoodItem is a catalog entry with macro-nutrient values per serving.
type FoodItem struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	Calories      float64     `json:"calories"`
	Protein       float64     `json:"protein"`
	Carbohydrates float64     `json:"carbohydrates"`
	Fat           float64     `json:"fat"`
	Fiber         float64     `json:"fiber"`
	Sugar         float64     `json:"sugar"`
	Sodium        float64     `json:"sodium"`
	ServingSize   ServingSize `json:"servingSize"`
	Allergens     []string    `json:"allergens"`
	DietaryTags   []string    `json:"dietaryTags"`
	ImageURL      string      `json:"imageUrl,omitempty"`
	Description   string      `json:"description,omitempty"`
}

// Ingredient is a food reference inside a meal.
type Ingredient struct {
	FoodID uuid.UUID `json:"food"`
	Amount float64   `json:"amount"`
	Unit   string    `json:"unit"`

	Food *FoodItem `json:"details,omitempty"`
}

// Meal is a recipe. PrepTime and CookTime are in minutes.
type Meal struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	Description  string       `json:"description,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	PrepTime     *int         `json:"prepTime,omitempty"`
	CookTime     *int         `json:"cookTime,omitempty"`
	Difficulty   string       `json:"difficulty"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	Tags         []string     `json:"tags"`
	Rating       Rating       `json:"rating"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// FoodIDs returns the distinct food references of the meal.
func (m *Meal) FoodIDs() []uuid.UUID {
	return distinctIDs(len(m.Ingredients), func(i int) uuid.UUID { return m.Ingredients[i].FoodID })
}

// PlanMeal places a meal on a day (1..7) of a diet plan.
type PlanMeal struct {
	Day          int         `json:"day"`
	MealType     string      `json:"mealType"`
	MealID       uuid.UUID   `json:"meal"`
	Alternatives []uuid.UUID `json:"alternatives"`

	Meal *Meal `json:"details,omitempty"`
}

// DietPlan is a weekly eating plan. Macro targets are in grams.
type DietPlan struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	TargetCalories int        `json:"targetCalories"`
	TargetProtein  *float64   `json:"targetProtein,omitempty"`
	TargetCarbs    *float64   `json:"targetCarbs,omitempty"`
	TargetFat      *float64   `json:"targetFat,omitempty"`
	Meals          []PlanMeal `json:"meals"`
	CreatedBy      uuid.UUID  `json:"createdBy"`
	CreatorName    string     `json:"creatorName,omitempty"`
	IsPublic       bool       `json:"isPublic"`
	Difficulty     string     `json:"difficulty"`
	Tags           []string   `json:"tags"`
	Rating         Rating     `json:"rating"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// MealIDs returns every distinct meal referenced by the plan, alternatives included.
func (p *DietPlan) MealIDs() []uuid.UUID {
	var all []uuid.UUID
	for _, m := range p.Meals {
		all = append(all, m.MealID)
		all = append(all, m.Alternatives...)
	}
	return distinctIDs(len(all), func(i int) uuid.UUID { return all[i] })
}

// LoggedFood is an eaten food portion.
type LoggedFood struct {
	FoodID uuid.UUID `json:"food"`
	Amount float64   `json:"amount"`
	Unit   string    `json:"unit"`
}

// LoggedMeal groups the foods eaten in one meal.
type LoggedMeal struct {
	Type  string       `json:"type"`
	Foods []LoggedFood `json:"foods"`
	Notes string       `json:"notes,omitempty"`
}

// NutritionLog is a user's food diary entry. WaterIntake is in millilitres.
type NutritionLog struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"user"`
	Date          time.Time    `json:"date"`
	Meals         []LoggedMeal `json:"meals"`
	TotalCalories float64      `json:"totalCalories"`
	TotalProtein  float64      `json:"totalProtein"`
	TotalCarbs    float64      `json:"totalCarbs"`
	TotalFat      float64      `json:"totalFat"`
	WaterIntake   float64      `json:"waterIntake"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
