package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
)

const (
	foodNotFound     = "Food item not found"
	mealNotFound     = "Meal not found"
	dietPlanNotFound = "Diet plan not found"
)

func (h *Handlers) ListFoods(c *gin.Context) {
	foods, err := h.nutrition.ListFoods(c.Request.Context(), repo.FoodFilter{
		Category:   c.Query("category"),
		DietaryTag: c.Query("dietaryTag"),
		Search:     c.Query("search"),
	})
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	list(c, foods)
}

func (h *Handlers) GetFood(c *gin.Context) {
	id, valid := idParam(c, foodNotFound)
	if !valid {
		return
	}
	f, err := h.nutrition.GetFood(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, errorText{NotFound: foodNotFound})
		return
	}
	respond(c, http.StatusOK, "", f)
}

func (h *Handlers) CreateFood(c *gin.Context) {
	var req FoodRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	f, err := h.nutrition.CreateFood(c.Request.Context(), req.toModel())
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	respond(c, http.StatusCreated, "Food item created successfully", f)
}

func (h *Handlers) ListMeals(c *gin.Context) {
	meals, err := h.nutrition.ListMeals(c.Request.Context(), repo.MealFilter{
		Type:       c.Query("type"),
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
	})
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	list(c, meals)
}

func (h *Handlers) GetMeal(c *gin.Context) {
	id, valid := idParam(c, mealNotFound)
	if !valid {
		return
	}
	m, err := h.nutrition.GetMeal(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, errorText{NotFound: mealNotFound})
		return
	}
	respond(c, http.StatusOK, "", m)
}

func (h *Handlers) CreateMeal(c *gin.Context) {
	var req MealRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	m, err := h.nutrition.CreateMeal(c.Request.Context(), req.toModel())
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	respond(c, http.StatusCreated, "Meal created successfully", m)
}

func (h *Handlers) ListDietPlans(c *gin.Context) {
	plans, err := h.nutrition.ListDietPlans(c.Request.Context(), repo.DietPlanFilter{
		Type:       c.Query("type"),
		Difficulty: c.Query("difficulty"),
		CreatedBy:  optionalUUID(c, "createdBy"),
	})
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	list(c, plans)
}

func (h *Handlers) GetDietPlan(c *gin.Context) {
	id, valid := idParam(c, dietPlanNotFound)
	if !valid {
		return
	}
	p, err := h.nutrition.GetDietPlan(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, errorText{NotFound: dietPlanNotFound})
		return
	}
	respond(c, http.StatusOK, "", p)
}

func (h *Handlers) CreateDietPlan(c *gin.Context) {
	var req DietPlanRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	p, err := h.nutrition.CreateDietPlan(c.Request.Context(), currentUser(c), req.toModel())
	if err != nil {
		h.fail(c, err, errorText{Server: "Server error during diet plan creation"})
		return
	}
	respond(c, http.StatusCreated, "Diet plan created successfully", p)
}

func (h *Handlers) LogNutrition(c *gin.Context) {
	var req NutritionLogRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	l, err := h.nutrition.LogNutrition(c.Request.Context(), currentUser(c), req.toModel())
	if err != nil {
		h.fail(c, err, errorText{Server: "Server error during nutrition logging"})
		return
	}
	respond(c, http.StatusCreated, "Nutrition logged successfully", l)
}

// ListNutritionLogs filters by date only when both startDate and endDate parse.
func (h *Handlers) ListNutritionLogs(c *gin.Context) {
	p := pageQuery(c)
	f := repo.NutritionLogFilter{Page: p}
	from, fromErr := parseDate(c.Query("startDate"))
	to, toErr := parseDate(c.Query("endDate"))
	if fromErr == nil && toErr == nil {
		f.From, f.To = &from, &to
	}

	logs, total, err := h.nutrition.ListLogs(c.Request.Context(), currentUser(c).ID, f)
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	n := len(logs)
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Count:      &n,
		Total:      &total,
		Pagination: &Pagination{Page: p.Page, Pages: pages(total, p.Limit)},
		Data:       orEmpty(logs),
	})
}

func (h *Handlers) NutritionSummary(c *gin.Context) {
	days := positiveQuery(c, "days", 0)
	s, err := h.nutrition.Summary(c.Request.Context(), currentUser(c).ID, days)
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	respond(c, http.StatusOK, "", s)
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, s)
}
