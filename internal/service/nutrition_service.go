package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/rs/zerolog"
)

const defaultSummaryDays = 7

// Averages holds per-log macro averages rounded to integers.
type Averages struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Water    int `json:"water"`
}

// DailyIntake is one point of the summary series.
type DailyIntake struct {
	Date     time.Time `json:"date"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
	Water    float64   `json:"water"`
}

// NutritionSummary aggregates a user's recent food diary.
type NutritionSummary struct {
	Period    string        `json:"period"`
	TotalDays int           `json:"totalDays"`
	Averages  Averages      `json:"averages"`
	Logs      []DailyIntake `json:"logs"`
}

// NutritionService implements foods, meals, diet plans and the food diary.
type NutritionService struct {
	foods    repo.FoodRepository
	meals    repo.MealRepository
	plans    repo.DietPlanRepository
	logs     repo.NutritionLogRepository
	activity ActivityPublisher
	logger   zerolog.Logger
	now      func() time.Time
}

func NewNutritionService(
	foods repo.FoodRepository,
	meals repo.MealRepository,
	plans repo.DietPlanRepository,
	logs repo.NutritionLogRepository,
	activity ActivityPublisher,
	logger *zerolog.Logger,
) *NutritionService {
	return &NutritionService{
		foods:    foods,
		meals:    meals,
		plans:    plans,
		logs:     logs,
		activity: activity,
		logger:   logger.With().Str("layer", "service").Str("service", "nutrition").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *NutritionService) ListFoods(ctx context.Context, f repo.FoodFilter) ([]*model.FoodItem, error) {
	return s.foods.List(ctx, f)
}

func (s *NutritionService) GetFood(ctx context.Context, id uuid.UUID) (*model.FoodItem, error) {
	return s.foods.GetByID(ctx, id)
}

// CreateFood adds a food item to the catalog.
func (s *NutritionService) CreateFood(ctx context.Context, f *model.FoodItem) (*model.FoodItem, error) {
	f.ID = uuid.New()
	if err := s.foods.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// ListMeals returns meals sorted by name with ingredients populated.
func (s *NutritionService) ListMeals(ctx context.Context, f repo.MealFilter) ([]*model.Meal, error) {
	meals, err := s.meals.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, m := range meals {
		if _, err := s.populateIngredients(ctx, m); err != nil {
			return nil, err
		}
	}
	return meals, nil
}

func (s *NutritionService) GetMeal(ctx context.Context, id uuid.UUID) (*model.Meal, error) {
	m, err := s.meals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.populateIngredients(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateMeal stores a recipe. Every ingredient must reference an existing food.
func (s *NutritionService) CreateMeal(ctx context.Context, m *model.Meal) (*model.Meal, error) {
	missing, err := s.populateIngredients(ctx, m)
	if err != nil {
		return nil, err
	}
	if missing != nil {
		return nil, missing
	}

	now := s.now()
	m.ID = uuid.New()
	m.CreatedAt, m.UpdatedAt = now, now
	if err := s.meals.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListDietPlans returns public plans, newest first, with meals populated.
func (s *NutritionService) ListDietPlans(ctx context.Context, f repo.DietPlanFilter) ([]*model.DietPlan, error) {
	plans, err := s.plans.ListPublic(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		if _, err := s.populateMeals(ctx, p); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func (s *NutritionService) GetDietPlan(ctx context.Context, id uuid.UUID) (*model.DietPlan, error) {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.populateMeals(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateDietPlan stores a plan owned by the actor. Every referenced meal,
// alternatives included, must exist.
func (s *NutritionService) CreateDietPlan(ctx context.Context, actor *model.User, p *model.DietPlan) (*model.DietPlan, error) {
	missing, err := s.populateMeals(ctx, p)
	if err != nil {
		return nil, err
	}
	if missing != nil {
		return nil, missing
	}

	now := s.now()
	p.ID = uuid.New()
	p.CreatedBy = actor.ID
	p.CreatedAt, p.UpdatedAt = now, now
	if err := s.plans.Create(ctx, p); err != nil {
		return nil, err
	}
	p.CreatorName = actor.Name
	s.logger.Info().Stringer("plan_id", p.ID).Stringer("user_id", actor.ID).Msg("diet plan created")
	return p, nil
}

// LogNutrition records a food diary entry for the actor. A zero date means now.
func (s *NutritionService) LogNutrition(ctx context.Context, actor *model.User, l *model.NutritionLog) (*model.NutritionLog, error) {
	now := s.now()
	l.ID = uuid.New()
	l.UserID = actor.ID
	if l.Date.IsZero() {
		l.Date = now
	}
	if l.Meals == nil {
		l.Meals = []model.LoggedMeal{}
	}
	l.CreatedAt, l.UpdatedAt = now, now
	if err := s.logs.Create(ctx, l); err != nil {
		return nil, err
	}

	s.activity.Publish(model.ActivityEvent{
		Type:      model.ActivityNutritionLogged,
		UserID:    actor.ID,
		UserName:  actor.Name,
		Data:      map[string]any{"calories": l.TotalCalories, "meals": len(l.Meals)},
		Timestamp: now,
	})
	return l, nil
}

// ListLogs returns a page of the user's diary and the total count for the filter.
func (s *NutritionService) ListLogs(ctx context.Context, userID uuid.UUID, f repo.NutritionLogFilter) ([]*model.NutritionLog, int, error) {
	return s.logs.List(ctx, userID, f)
}

// Summary averages the logs of the last days. Averages are taken over the number of logs.
func (s *NutritionService) Summary(ctx context.Context, userID uuid.UUID, days int) (*NutritionSummary, error) {
	if days <= 0 {
		days = defaultSummaryDays
	}
	logs, err := s.logs.Since(ctx, userID, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	out := &NutritionSummary{
		Period:    fmt.Sprintf("%d days", days),
		TotalDays: len(logs),
		Logs:      make([]DailyIntake, 0, len(logs)),
	}
	var sum DailyIntake
	for _, l := range logs {
		day := DailyIntake{
			Date:     l.Date,
			Calories: l.TotalCalories,
			Protein:  l.TotalProtein,
			Carbs:    l.TotalCarbs,
			Fat:      l.TotalFat,
			Water:    l.WaterIntake,
		}
		sum.Calories += day.Calories
		sum.Protein += day.Protein
		sum.Carbs += day.Carbs
		sum.Fat += day.Fat
		sum.Water += day.Water
		out.Logs = append(out.Logs, day)
	}
	if n := float64(len(logs)); n > 0 {
		out.Averages = Averages{
			Calories: int(math.Round(sum.Calories / n)),
			Protein:  int(math.Round(sum.Protein / n)),
			Carbs:    int(math.Round(sum.Carbs / n)),
			Fat:      int(math.Round(sum.Fat / n)),
			Water:    int(math.Round(sum.Water / n)),
		}
	}
	return out, nil
}

func (s *NutritionService) populateIngredients(ctx context.Context, m *model.Meal) (*ReferenceError, error) {
	found, err := s.foods.FindByIDs(ctx, m.FoodIDs())
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.FoodItem, len(found))
	for _, f := range found {
		byID[f.ID] = f
	}
	var missing *ReferenceError
	for i := range m.Ingredients {
		f, ok := byID[m.Ingredients[i].FoodID]
		if !ok {
			if missing == nil {
				missing = &ReferenceError{Entity: "Food item", ID: m.Ingredients[i].FoodID}
			}
			continue
		}
		m.Ingredients[i].Food = f
	}
	return missing, nil
}

func (s *NutritionService) populateMeals(ctx context.Context, p *model.DietPlan) (*ReferenceError, error) {
	found, err := s.meals.FindByIDs(ctx, p.MealIDs())
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.Meal, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}
	var missing *ReferenceError
	for i := range p.Meals {
		pm := &p.Meals[i]
		if m, ok := byID[pm.MealID]; ok {
			pm.Meal = m
		} else if missing == nil {
			missing = &ReferenceError{Entity: "Meal", ID: pm.MealID}
		}
		for _, alt := range pm.Alternatives {
			if _, ok := byID[alt]; !ok && missing == nil {
				missing = &ReferenceError{Entity: "Meal", ID: alt}
			}
		}
	}
	return missing, nil
}
