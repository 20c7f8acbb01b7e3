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
	_ repo.FoodRepository         = (*FoodRepository)(nil)
	_ repo.MealRepository         = (*MealRepository)(nil)
	_ repo.DietPlanRepository     = (*DietPlanRepository)(nil)
	_ repo.NutritionLogRepository = (*NutritionLogRepository)(nil)
)

// ---------------------------------------------------------------------------
// Foods
// ---------------------------------------------------------------------------

const foodColumns = `id, name, category, calories, protein, carbohydrates, fat, fiber, sugar, sodium,
	serving_amount, serving_unit, allergens, dietary_tags, image_url, description`

// FoodRepository stores the food catalog.
type FoodRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewFoodRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *FoodRepository {
	return &FoodRepository{
		pool:   pool,
		logger: logger.With().Str("layer", "postgres_repository").Str("table", "foods").Logger(),
	}
}

func (r *FoodRepository) Create(ctx context.Context, f *model.FoodItem) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO foods (`+foodColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		f.ID, f.Name, f.Category, f.Calories, f.Protein, f.Carbohydrates, f.Fat, f.Fiber, f.Sugar, f.Sodium,
		f.ServingSize.Amount, f.ServingSize.Unit, nonNil(f.Allergens), nonNil(f.DietaryTags), f.ImageURL, f.Description)
	if err != nil {
		r.logger.Err(err).Msg("cannot create food")
		return fmt.Errorf("postgres: create food failed: %w", mapError(err))
	}
	return nil
}

func (r *FoodRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FoodItem, error) {
	f, err := scanFood(r.pool.QueryRow(ctx, `SELECT `+foodColumns+` FROM foods WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		r.logger.Err(err).Stringer("id", id).Msg("cannot get food")
		return nil, fmt.Errorf("postgres: get food failed: %w", err)
	}
	return f, nil
}

func (r *FoodRepository) List(ctx context.Context, f repo.FoodFilter) ([]*model.FoodItem, error) {
	query, args := foodListQuery(f)
	return r.query(ctx, query, args...)
}

func (r *FoodRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.FoodItem, error) {
	if len(ids) == 0 {
		return []*model.FoodItem{}, nil
	}
	return r.query(ctx, `SELECT `+foodColumns+` FROM foods WHERE id = ANY($1)`, ids)
}

func (r *FoodRepository) query(ctx context.Context, query string, args ...any) ([]*model.FoodItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Msg("cannot query foods")
		return nil, fmt.Errorf("postgres: query foods failed: %w", err)
	}
	defer rows.Close()

	out := make([]*model.FoodItem, 0)
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan food failed: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func foodListQuery(f repo.FoodFilter) (string, []any) {
	var w whereClause
	if f.Category != "" {
		w.add("category = $%d", f.Category)
	}
	if f.DietaryTag != "" {
		w.add("$%d = ANY(dietary_tags)", f.DietaryTag)
	}
	if f.Search != "" {
		w.add("(name ILIKE $%[1]d OR description ILIKE $%[1]d)", containsPattern(f.Search))
	}
	return `SELECT ` + foodColumns + ` FROM foods` + w.String() + ` ORDER BY name`, w.args
}

func scanFood(s rowScanner) (*model.FoodItem, error) {
	var f model.FoodItem
	err := s.Scan(&f.ID, &f.Name, &f.Category, &f.Calories, &f.Protein, &f.Carbohydrates, &f.Fat,
		&f.Fiber, &f.Sugar, &f.Sodium, &f.ServingSize.Amount, &f.ServingSize.Unit,
		&f.Allergens, &f.DietaryTags, &f.ImageURL, &f.Description)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ---------------------------------------------------------------------------
// Meals
// ---------------------------------------------------------------------------

const mealColumns = `id, name, type, description, ingredients, instructions, prep_time, cook_time,
	difficulty, image_url, tags, rating_average, rating_count, created_at, updated_at`

// MealRepository stores recipes. Ingredients are kept as a JSONB document.
type MealRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewMealRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *MealRepository {
	return &MealRepository{
		pool:   pool,
		logger: logger.With().Str("layer", "postgres_repository").Str("table", "meals").Logger(),
	}
}

func (r *MealRepository) Create(ctx context.Context, m *model.Meal) error {
	stored := make([]model.Ingredient, len(m.Ingredients))
	for i, in := range m.Ingredients {
		in.Food = nil
		stored[i] = in
	}
	ingredients, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshalling ingredients: %w", err)
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO meals (`+mealColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.ID, m.Name, m.Type, m.Description, ingredients, nonNil(m.Instructions), m.PrepTime, m.CookTime,
		m.Difficulty, m.ImageURL, nonNil(m.Tags), m.Rating.Average, m.Rating.Count, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		r.logger.Err(err).Msg("cannot create meal")
		return fmt.Errorf("postgres: create meal failed: %w", mapError(err))
	}
	return nil
}

func (r *MealRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Meal, error) {
	m, err := scanMeal(r.pool.QueryRow(ctx, `SELECT `+mealColumns+` FROM meals WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		r.logger.Err(err).Stringer("id", id).Msg("cannot get meal")
		return nil, fmt.Errorf("postgres: get meal failed: %w", err)
	}
	return m, nil
}

func (r *MealRepository) List(ctx context.Context, f repo.MealFilter) ([]*model.Meal, error) {
	query, args := mealListQuery(f)
	return r.query(ctx, query, args...)
}

func (r *MealRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Meal, error) {
	if len(ids) == 0 {
		return []*model.Meal{}, nil
	}
	return r.query(ctx, `SELECT `+mealColumns+` FROM meals WHERE id = ANY($1)`, ids)
}

func (r *MealRepository) query(ctx context.Context, query string, args ...any) ([]*model.Meal, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Msg("cannot query meals")
		return nil, fmt.Errorf("postgres: query meals failed: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Meal, 0)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan meal failed: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func mealListQuery(f repo.MealFilter) (string, []any) {
	var w whereClause
	if f.Type != "" {
		w.add("type = $%d", f.Type)
	}
	if f.Difficulty != "" {
		w.add("difficulty = $%d", f.Difficulty)
	}
	if f.Search != "" {
		w.add("(name ILIKE $%[1]d OR description ILIKE $%[1]d)", containsPattern(f.Search))
	}
	return `SELECT ` + mealColumns + ` FROM meals` + w.String() + ` ORDER BY name`, w.args
}

func scanMeal(s rowScanner) (*model.Meal, error) {
	var (
		m           model.Meal
		ingredients []byte
	)
	err := s.Scan(&m.ID, &m.Name, &m.Type, &m.Description, &ingredients, &m.Instructions, &m.PrepTime,
		&m.CookTime, &m.Difficulty, &m.ImageURL, &m.Tags, &m.Rating.Average, &m.Rating.Count,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(ingredients, &m.Ingredients); err != nil {
		return nil, fmt.Errorf("unmarshalling ingredients of meal %s: %w", m.ID, err)
	}
	m.Ingredients = nonNil(m.Ingredients)
	return &m, nil
}

// ---------------------------------------------------------------------------
// Diet plans
// ---------------------------------------------------------------------------

const dietPlanColumns = `p.id, p.name, p.description, p.type, p.target_calories, p.target_protein,
	p.target_carbs, p.target_fat, p.meals, p.created_by, COALESCE(u.name, ''), p.is_public,
	p.difficulty, p.tags, p.rating_average, p.rating_count, p.created_at, p.updated_at`

const dietPlanFrom = ` FROM diet_plans p LEFT JOIN users u ON u.id = p.created_by`

// DietPlanRepository stores weekly eating plans.
type DietPlanRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewDietPlanRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *DietPlanRepository {
	return &DietPlanRepository{
		pool:   pool,
		logger: logger.With().Str("layer", "postgres_repository").Str("table", "diet_plans").Logger(),
	}
}

func (r *DietPlanRepository) Create(ctx context.Context, p *model.DietPlan) error {
	stored := make([]model.PlanMeal, len(p.Meals))
	for i, m := range p.Meals {
		m.Meal = nil
		m.Alternatives = nonNil(m.Alternatives)
		stored[i] = m
	}
	meals, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshalling plan meals: %w", err)
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO diet_plans (id, name, description, type, target_calories,
		target_protein, target_carbs, target_fat, meals, created_by, is_public, difficulty, tags,
		rating_average, rating_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		p.ID, p.Name, p.Description, p.Type, p.TargetCalories, p.TargetProtein, p.TargetCarbs, p.TargetFat,
		meals, p.CreatedBy, p.IsPublic, p.Difficulty, nonNil(p.Tags), p.Rating.Average, p.Rating.Count,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		r.logger.Err(err).Msg("cannot create diet plan")
		return fmt.Errorf("postgres: create diet plan failed: %w", mapError(err))
	}
	return nil
}

func (r *DietPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DietPlan, error) {
	p, err := scanDietPlan(r.pool.QueryRow(ctx, `SELECT `+dietPlanColumns+dietPlanFrom+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		r.logger.Err(err).Stringer("id", id).Msg("cannot get diet plan")
		return nil, fmt.Errorf("postgres: get diet plan failed: %w", err)
	}
	return p, nil
}

func (r *DietPlanRepository) ListPublic(ctx context.Context, f repo.DietPlanFilter) ([]*model.DietPlan, error) {
	query, args := dietPlanListQuery(f)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Msg("cannot list diet plans")
		return nil, fmt.Errorf("postgres: list diet plans failed: %w", err)
	}
	defer rows.Close()

	out := make([]*model.DietPlan, 0)
	for rows.Next() {
		p, err := scanDietPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan diet plan failed: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func dietPlanListQuery(f repo.DietPlanFilter) (string, []any) {
	w := whereClause{conds: []string{"p.is_public"}}
	if f.Type != "" {
		w.add("p.type = $%d", f.Type)
	}
	if f.Difficulty != "" {
		w.add("p.difficulty = $%d", f.Difficulty)
	}
	if f.CreatedBy != nil {
		w.add("p.created_by = $%d", *f.CreatedBy)
	}
	return `SELECT ` + dietPlanColumns + dietPlanFrom + w.String() + ` ORDER BY p.created_at DESC`, w.args
}

func scanDietPlan(s rowScanner) (*model.DietPlan, error) {
	var (
		p     model.DietPlan
		meals []byte
	)
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &p.TargetCalories, &p.TargetProtein,
		&p.TargetCarbs, &p.TargetFat, &meals, &p.CreatedBy, &p.CreatorName, &p.IsPublic,
		&p.Difficulty, &p.Tags, &p.Rating.Average, &p.Rating.Count, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(meals, &p.Meals); err != nil {
		return nil, fmt.Errorf("unmarshalling meals of plan %s: %w", p.ID, err)
	}
	p.Meals = nonNil(p.Meals)
	return &p, nil
}

// ---------------------------------------------------------------------------
// Nutrition logs
// ---------------------------------------------------------------------------

const nutritionLogColumns = `id, user_id, date, meals, total_calories, total_protein, total_carbs,
	total_fat, water_intake, notes, created_at, updated_at`

// NutritionLogRepository stores the users' food diaries.
type NutritionLogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewNutritionLogRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *NutritionLogRepository {
	return &NutritionLogRepository{
		pool:   pool,
		logger: logger.With().Str("layer", "postgres_repository").Str("table", "nutrition_logs").Logger(),
	}
}

func (r *NutritionLogRepository) Create(ctx context.Context, l *model.NutritionLog) error {
	meals, err := json.Marshal(nonNil(l.Meals))
	if err != nil {
		return fmt.Errorf("marshalling logged meals: %w", err)
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO nutrition_logs (`+nutritionLogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		l.ID, l.UserID, l.Date, meals, l.TotalCalories, l.TotalProtein, l.TotalCarbs,
		l.TotalFat, l.WaterIntake, l.Notes, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		r.logger.Err(err).Msg("cannot create nutrition log")
		return fmt.Errorf("postgres: create nutrition log failed: %w", mapError(err))
	}
	return nil
}

// List returns a page of logs, newest first, plus the total count for the same filter.
func (r *NutritionLogRepository) List(ctx context.Context, userID uuid.UUID, f repo.NutritionLogFilter) ([]*model.NutritionLog, int, error) {
	w := nutritionLogWhere(userID, f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM nutrition_logs`+w.String(), w.args...).Scan(&total); err != nil {
		r.logger.Err(err).Stringer("user_id", userID).Msg("cannot count nutrition logs")
		return nil, 0, fmt.Errorf("postgres: count nutrition logs failed: %w", err)
	}

	where := w.String()
	limit := w.next(f.Page.Limit)
	offset := w.next(f.Page.Offset())
	logs, err := r.query(ctx, `SELECT `+nutritionLogColumns+` FROM nutrition_logs`+where+
		` ORDER BY date DESC LIMIT `+limit+` OFFSET `+offset, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Since returns every log dated at or after from, oldest first.
func (r *NutritionLogRepository) Since(ctx context.Context, userID uuid.UUID, from time.Time) ([]*model.NutritionLog, error) {
	return r.query(ctx, `SELECT `+nutritionLogColumns+` FROM nutrition_logs
		WHERE user_id = $1 AND date >= $2 ORDER BY date`, userID, from)
}

func nutritionLogWhere(userID uuid.UUID, f repo.NutritionLogFilter) *whereClause {
	w := &whereClause{}
	w.add("user_id = $%d", userID)
	if f.From != nil && f.To != nil {
		w.add("date >= $%d", *f.From)
		w.add("date <= $%d", *f.To)
	}
	return w
}

func (r *NutritionLogRepository) query(ctx context.Context, query string, args ...any) ([]*model.NutritionLog, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Msg("cannot query nutrition logs")
		return nil, fmt.Errorf("postgres: query nutrition logs failed: %w", err)
	}
	defer rows.Close()

	out := make([]*model.NutritionLog, 0)
	for rows.Next() {
		var (
			l     model.NutritionLog
			meals []byte
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.Date, &meals, &l.TotalCalories, &l.TotalProtein,
			&l.TotalCarbs, &l.TotalFat, &l.WaterIntake, &l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan nutrition log failed: %w", err)
		}
		if err := json.Unmarshal(meals, &l.Meals); err != nil {
			return nil, fmt.Errorf("unmarshalling meals of log %s: %w", l.ID, err)
		}
		l.Meals = nonNil(l.Meals)
		out = append(out, &l)
	}
	return out, rows.Err()
}
