package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodsAndMeals(t *testing.T) {
	f := newAPI(t, newConfig())
	_, trainerToken := f.seedUser(t, "coach", model.RoleTrainer)

	rec, env := f.do(t, http.MethodPost, "/api/nutrition/foods", gin.H{
		"name": "Oats", "category": "grain", "calories": 389,
		"servingSize": gin.H{"amount": 40, "unit": "g"}, "dietaryTags": []string{"vegan"},
	}, trainerToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	oats := decode[model.FoodItem](t, env.Data)

	rec, env = f.do(t, http.MethodPost, "/api/nutrition/foods", gin.H{
		"name": "Mystery", "category": "grain", "servingSize": gin.H{"amount": 1, "unit": "g"},
	}, trainerToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Calories are required and cannot be negative", env.Errors[0].Message)

	rec, env = f.do(t, http.MethodGet, "/api/nutrition/foods?dietaryTag=vegan&search=OAT", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *env.Count)

	meal := gin.H{"name": "Porridge", "type": "breakfast", "ingredients": []gin.H{{"food": oats.ID, "amount": 40, "unit": "g"}}}
	rec, env = f.do(t, http.MethodPost, "/api/nutrition/meals", meal, trainerToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	m := decode[model.Meal](t, env.Data)
	assert.Equal(t, "easy", m.Difficulty)

	rec, env = f.do(t, http.MethodGet, "/api/nutrition/meals/"+m.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[model.Meal](t, env.Data)
	require.NotNil(t, got.Ingredients[0].Food)
	assert.Equal(t, "Oats", got.Ingredients[0].Food.Name)

	rec, env = f.do(t, http.MethodGet, "/api/nutrition/foods/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Food item not found", env.Message)
}

func TestDietPlans(t *testing.T) {
	f := newAPI(t, newConfig())
	_, token := f.seedUser(t, "sam", model.RoleUser)
	meal := &model.Meal{ID: uuid.New(), Name: "Porridge", Type: "breakfast", Difficulty: "easy"}
	require.NoError(t, f.meals.Create(context.Background(), meal))

	body := gin.H{
		"name":           "Lean Week",
		"description":    "A week of simple meals",
		"type":           "balanced",
		"targetCalories": 2000,
		"meals":          []gin.H{{"day": 1, "mealType": "breakfast", "meal": meal.ID}},
	}
	rec, env := f.do(t, http.MethodPost, "/api/nutrition/diet-plans", body, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Diet plan created successfully", env.Message)
	p := decode[model.DietPlan](t, env.Data)
	assert.Equal(t, "beginner", p.Difficulty)
	assert.True(t, p.IsPublic)

	missing := uuid.New()
	body["meals"] = []gin.H{{"day": 2, "mealType": "lunch", "meal": meal.ID, "alternatives": []uuid.UUID{missing}}}
	rec, env = f.do(t, http.MethodPost, "/api/nutrition/diet-plans", body, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Meal with ID "+missing.String()+" not found", env.Message)

	body["targetCalories"] = 500
	body["meals"] = []gin.H{{"day": 9, "mealType": "lunch", "meal": meal.ID}}
	rec, env = f.do(t, http.MethodPost, "/api/nutrition/diet-plans", body, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.ElementsMatch(t, []FieldError{
		{Field: "targetCalories", Message: "Target calories must be between 800 and 5000"},
		{Field: "meals[0].day", Message: "Day must be between 1 and 7"},
	}, env.Errors)

	rec, env = f.do(t, http.MethodGet, "/api/nutrition/diet-plans", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *env.Count)
}

func TestNutritionLogsAndSummary(t *testing.T) {
	f := newAPI(t, newConfig())
	_, token := f.seedUser(t, "sam", model.RoleUser)

	rec, env := f.do(t, http.MethodPost, "/api/nutrition/log", gin.H{"totalCalories": 2000}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Meals must be an array", env.Errors[0].Message)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	for _, cal := range []float64{1800, 2201} {
		rec, _ = f.do(t, http.MethodPost, "/api/nutrition/log", gin.H{
			"date": yesterday, "meals": []gin.H{}, "totalCalories": cal, "waterIntake": 2000,
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env = f.do(t, http.MethodGet, "/api/nutrition/logs?limit=1", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, *env.Total)
	assert.Equal(t, &Pagination{Page: 1, Pages: 2}, env.Pagination)

	rec, env = f.do(t, http.MethodGet, "/api/nutrition/summary?days=3", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	s := decode[service.NutritionSummary](t, env.Data)
	assert.Equal(t, "3 days", s.Period)
	assert.Equal(t, 2, s.TotalDays)
	assert.Equal(t, 2001, s.Averages.Calories)
	assert.Equal(t, 2000, s.Averages.Water)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2024-03-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = parseDate("")
	assert.Error(t, err)
}
