package http

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/service"
)

// Response is the envelope of every API reply.
type Response struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message,omitempty"`
	Data       any          `json:"data,omitempty"`
	Count      *int         `json:"count,omitempty"`
	Total      *int         `json:"total,omitempty"`
	Query      string       `json:"query,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// Pagination describes the window returned by a paged listing.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Limit int `json:"limit,omitempty"`
}

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// normalizer is implemented by requests that clean their input before validation.
type normalizer interface {
	normalize()
}

// === Auth ===

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=50" msg:"Name is required and must be less than 50 characters"`
	Email    string `json:"email" binding:"required,email" msg:"Please provide a valid email"`
	Password string `json:"password" binding:"required,min=6,max=72" msg:"Password must be at least 6 characters" msg_max:"Password must be at most 72 characters"`
}

func (r *RegisterRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" msg:"Please provide a valid email"`
	Password string `json:"password" binding:"required" msg:"Password is required"`
}

func (r *LoginRequest) normalize() { r.Email = strings.TrimSpace(r.Email) }

type ProfileRequest struct {
	Age                *int     `json:"age" binding:"omitempty,min=13,max=100" msg:"Age must be between 13 and 100"`
	Gender             *string  `json:"gender" binding:"omitempty,oneof=male female other" msg:"Invalid gender"`
	Height             *float64 `json:"height" binding:"omitempty,min=100,max=250" msg:"Height must be between 100 and 250 cm"`
	Weight             *float64 `json:"weight" binding:"omitempty,min=30,max=300" msg:"Weight must be between 30 and 300 kg"`
	FitnessLevel       *string  `json:"fitnessLevel" binding:"omitempty,oneof=beginner intermediate advanced" msg:"Invalid fitness level"`
	Goals              []string `json:"goals" binding:"omitempty,dive,oneof=weight_loss muscle_gain endurance flexibility strength general_fitness" msg:"Invalid goal"`
	DietaryPreferences []string `json:"dietaryPreferences" binding:"omitempty,dive,oneof=vegan vegetarian omnivore keto paleo mediterranean" msg:"Invalid dietary preference"`
	MedicalConditions  []string `json:"medicalConditions"`
	Allergies          []string `json:"allergies"`
}

type PreferencesRequest struct {
	WorkoutDuration      *int    `json:"workoutDuration" binding:"omitempty,min=1" msg:"Workout duration must be positive"`
	WorkoutFrequency     *int    `json:"workoutFrequency" binding:"omitempty,min=1,max=7" msg:"Workout frequency must be between 1 and 7"`
	PreferredWorkoutTime *string `json:"preferredWorkoutTime" binding:"omitempty,oneof=morning afternoon evening" msg:"Invalid preferred workout time"`
}

type UpdateProfileRequest struct {
	Name        *string             `json:"name" binding:"omitempty,min=1,max=50" msg:"Name must be less than 50 characters"`
	Profile     *ProfileRequest     `json:"profile"`
	Preferences *PreferencesRequest `json:"preferences"`
}

func (r *UpdateProfileRequest) normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

func (r *UpdateProfileRequest) toUpdate() service.ProfileUpdate {
	u := service.ProfileUpdate{Name: r.Name}
	if p := r.Profile; p != nil {
		u.Age, u.Gender, u.Height, u.Weight, u.FitnessLevel = p.Age, p.Gender, p.Height, p.Weight, p.FitnessLevel
		u.Goals = p.Goals
		u.DietaryPreferences = p.DietaryPreferences
		u.MedicalConditions = p.MedicalConditions
		u.Allergies = p.Allergies
	}
	if p := r.Preferences; p != nil {
		u.Preferences = &service.PreferencesUpdate{
			WorkoutDuration:      p.WorkoutDuration,
			WorkoutFrequency:     p.WorkoutFrequency,
			PreferredWorkoutTime: p.PreferredWorkoutTime,
		}
	}
	return u
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required" msg:"Current password is required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72" msg:"New password must be at least 6 characters" msg_max:"New password must be at most 72 characters"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" msg:"Please provide a valid email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72" msg:"Password must be at least 6 characters" msg_max:"Password must be at most 72 characters"`
}

// === Users ===

type MembershipRequest struct {
	Type      *string    `json:"type" binding:"omitempty,oneof=basic premium elite" msg:"Invalid membership type"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	IsActive  *bool      `json:"isActive"`
}

func (r *MembershipRequest) toUpdate() service.MembershipUpdate {
	u := service.MembershipUpdate{StartDate: r.StartDate, EndDate: r.EndDate, IsActive: r.IsActive}
	if r.Type != nil {
		t := model.MembershipType(*r.Type)
		u.Type = &t
	}
	return u
}

// MembershipView is the reply of a membership update.
type MembershipView struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Membership model.Membership `json:"membership"`
}

// === Workouts ===

type ExerciseRequest struct {
	Name              string   `json:"name" binding:"required" msg:"Exercise name is required"`
	Description       string   `json:"description" binding:"required" msg:"Exercise description is required"`
	Category          string   `json:"category" binding:"required,oneof=strength cardio flexibility balance sports" msg:"Invalid exercise category"`
	MuscleGroups      []string `json:"muscleGroups" binding:"omitempty,dive,oneof=chest back shoulders biceps triceps forearms abs obliques quads hamstrings calves glutes full_body" msg:"Invalid muscle group"`
	Equipment         []string `json:"equipment" binding:"omitempty,dive,oneof=barbell dumbbell kettlebell cable machine bodyweight resistance_band medicine_ball stability_ball foam_roller none" msg:"Invalid equipment"`
	Difficulty        string   `json:"difficulty" binding:"required,oneof=beginner intermediate advanced" msg:"Invalid difficulty level"`
	Instructions      []string `json:"instructions"`
	Tips              []string `json:"tips"`
	VideoURL          string   `json:"videoUrl" binding:"omitempty,url" msg:"Video URL must be a valid URL"`
	ImageURL          string   `json:"imageUrl" binding:"omitempty,url" msg:"Image URL must be a valid URL"`
	CaloriesPerMinute *float64 `json:"caloriesPerMinute" binding:"omitempty,min=0" msg:"Calories per minute cannot be negative"`
}

func (r *ExerciseRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *ExerciseRequest) toModel() *model.Exercise {
	return &model.Exercise{
		Name:              r.Name,
		Description:       r.Description,
		Category:          r.Category,
		MuscleGroups:      orEmpty(r.MuscleGroups),
		Equipment:         orEmpty(r.Equipment),
		Difficulty:        r.Difficulty,
		Instructions:      orEmpty(r.Instructions),
		Tips:              orEmpty(r.Tips),
		VideoURL:          r.VideoURL,
		ImageURL:          r.ImageURL,
		CaloriesPerMinute: r.CaloriesPerMinute,
	}
}

type WorkoutExerciseRequest struct {
	Exercise uuid.UUID `json:"exercise" binding:"required" msg:"Exercise ID is required"`
	Sets     int       `json:"sets" binding:"omitempty,min=1" msg:"Sets must be at least 1"`
	Reps     int       `json:"reps" binding:"omitempty,min=1" msg:"Reps must be at least 1"`
	Weight   float64   `json:"weight" binding:"omitempty,min=0" msg:"Weight cannot be negative"`
	Duration *int      `json:"duration" binding:"omitempty,min=0" msg:"Duration cannot be negative"`
	Rest     int       `json:"rest" binding:"omitempty,min=0" msg:"Rest cannot be negative"`
	Notes    string    `json:"notes"`
}

func toWorkoutExercises(in []WorkoutExerciseRequest) []model.WorkoutExercise {
	if in == nil {
		return nil
	}
	out := make([]model.WorkoutExercise, len(in))
	for i, e := range in {
		out[i] = model.WorkoutExercise{
			ExerciseID: e.Exercise,
			Sets:       e.Sets,
			Reps:       e.Reps,
			Weight:     e.Weight,
			Duration:   e.Duration,
			Rest:       e.Rest,
			Notes:      e.Notes,
		}
	}
	return out
}

type WorkoutRequest struct {
	Name               string                   `json:"name" binding:"required,min=3,max=100" msg:"Workout name must be between 3 and 100 characters"`
	Description        string                   `json:"description" binding:"required,min=10,max=500" msg:"Description must be between 10 and 500 characters"`
	Type               string                   `json:"type" binding:"required,oneof=strength cardio flexibility hiit circuit yoga pilates crossfit custom" msg:"Invalid workout type"`
	Difficulty         string                   `json:"difficulty" binding:"required,oneof=beginner intermediate advanced" msg:"Invalid difficulty level"`
	Duration           int                      `json:"duration" binding:"required,min=5,max=300" msg:"Duration must be between 5 and 300 minutes"`
	Exercises          []WorkoutExerciseRequest `json:"exercises" binding:"required,min=1,dive" msg:"At least one exercise is required"`
	TargetMuscleGroups []string                 `json:"targetMuscleGroups" binding:"omitempty,dive,oneof=chest back shoulders biceps triceps forearms abs obliques quads hamstrings calves glutes full_body" msg:"Invalid muscle group"`
	Equipment          []string                 `json:"equipment" binding:"omitempty,dive,oneof=barbell dumbbell kettlebell cable machine bodyweight resistance_band medicine_ball stability_ball foam_roller none" msg:"Invalid equipment"`
	Calories           *int                     `json:"calories" binding:"omitempty,min=0" msg:"Calories cannot be negative"`
	IsPublic           *bool                    `json:"isPublic"`
	Tags               []string                 `json:"tags"`
}

func (r *WorkoutRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *WorkoutRequest) toModel() *model.Workout {
	public := true
	if r.IsPublic != nil {
		public = *r.IsPublic
	}
	return &model.Workout{
		Name:               r.Name,
		Description:        r.Description,
		Type:               r.Type,
		Difficulty:         r.Difficulty,
		Duration:           r.Duration,
		Exercises:          toWorkoutExercises(r.Exercises),
		TargetMuscleGroups: orEmpty(r.TargetMuscleGroups),
		Equipment:          orEmpty(r.Equipment),
		Calories:           r.Calories,
		IsPublic:           public,
		Tags:               orEmpty(r.Tags),
	}
}

type UpdateWorkoutRequest struct {
	Name               *string                  `json:"name" binding:"omitempty,min=3,max=100" msg:"Workout name must be between 3 and 100 characters"`
	Description        *string                  `json:"description" binding:"omitempty,min=10,max=500" msg:"Description must be between 10 and 500 characters"`
	Type               *string                  `json:"type" binding:"omitempty,oneof=strength cardio flexibility hiit circuit yoga pilates crossfit custom" msg:"Invalid workout type"`
	Difficulty         *string                  `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced" msg:"Invalid difficulty level"`
	Duration           *int                     `json:"duration" binding:"omitempty,min=5,max=300" msg:"Duration must be between 5 and 300 minutes"`
	Exercises          []WorkoutExerciseRequest `json:"exercises" binding:"omitempty,dive"`
	TargetMuscleGroups []string                 `json:"targetMuscleGroups" binding:"omitempty,dive,oneof=chest back shoulders biceps triceps forearms abs obliques quads hamstrings calves glutes full_body" msg:"Invalid muscle group"`
	Equipment          []string                 `json:"equipment" binding:"omitempty,dive,oneof=barbell dumbbell kettlebell cable machine bodyweight resistance_band medicine_ball stability_ball foam_roller none" msg:"Invalid equipment"`
	Calories           *int                     `json:"calories" binding:"omitempty,min=0" msg:"Calories cannot be negative"`
	IsPublic           *bool                    `json:"isPublic"`
	Tags               []string                 `json:"tags"`
}

func (r *UpdateWorkoutRequest) toUpdate() service.WorkoutUpdate {
	return service.WorkoutUpdate{
		Name:               r.Name,
		Description:        r.Description,
		Type:               r.Type,
		Difficulty:         r.Difficulty,
		Duration:           r.Duration,
		Exercises:          toWorkoutExercises(r.Exercises),
		TargetMuscleGroups: r.TargetMuscleGroups,
		Equipment:          r.Equipment,
		Calories:           r.Calories,
		IsPublic:           r.IsPublic,
		Tags:               r.Tags,
	}
}

type WorkoutLogRequest struct {
	Date      *time.Time             `json:"date"`
	Duration  int                    `json:"duration" binding:"required,min=1" msg:"Duration must be at least 1 minute"`
	Exercises []model.LoggedExercise `json:"exercises" binding:"required" msg:"Exercises must be an array"`
	Calories  *int                   `json:"calories" binding:"omitempty,min=0" msg:"Calories cannot be negative"`
	Rating    *int                   `json:"rating" binding:"omitempty,min=1,max=5" msg:"Rating must be between 1 and 5"`
	Notes     string                 `json:"notes"`
	Completed *bool                  `json:"completed"`
}

func (r *WorkoutLogRequest) toModel() *model.WorkoutLog {
	l := &model.WorkoutLog{
		Duration:  r.Duration,
		Exercises: r.Exercises,
		Calories:  r.Calories,
		Rating:    r.Rating,
		Notes:     r.Notes,
		Completed: true,
	}
	if r.Date != nil {
		l.Date = r.Date.UTC()
	}
	if r.Completed != nil {
		l.Completed = *r.Completed
	}
	return l
}

// === Nutrition ===

type ServingSizeRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0" msg:"Serving amount must be positive"`
	Unit   string  `json:"unit" binding:"required,oneof=g ml cup tbsp tsp piece slice" msg:"Invalid serving unit"`
}

type FoodRequest struct {
	Name          string             `json:"name" binding:"required" msg:"Food name is required"`
	Category      string             `json:"category" binding:"required,oneof=protein carbohydrate fat vegetable fruit dairy grain supplement" msg:"Invalid food category"`
	Calories      *float64           `json:"calories" binding:"required,min=0" msg:"Calories are required and cannot be negative"`
	Protein       float64            `json:"protein" binding:"min=0" msg:"Protein cannot be negative"`
	Carbohydrates float64            `json:"carbohydrates" binding:"min=0" msg:"Carbohydrates cannot be negative"`
	Fat           float64            `json:"fat" binding:"min=0" msg:"Fat cannot be negative"`
	Fiber         float64            `json:"fiber" binding:"min=0" msg:"Fiber cannot be negative"`
	Sugar         float64            `json:"sugar" binding:"min=0" msg:"Sugar cannot be negative"`
	Sodium        float64            `json:"sodium" binding:"min=0" msg:"Sodium cannot be negative"`
	ServingSize   ServingSizeRequest `json:"servingSize"`
	Allergens     []string           `json:"allergens"`
	DietaryTags   []string           `json:"dietaryTags" binding:"omitempty,dive,oneof=vegan vegetarian gluten_free dairy_free nut_free organic non_gmo" msg:"Invalid dietary tag"`
	ImageURL      string             `json:"imageUrl" binding:"omitempty,url" msg:"Image URL must be a valid URL"`
	Description   string             `json:"description"`
}

func (r *FoodRequest) normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r *FoodRequest) toModel() *model.FoodItem {
	return &model.FoodItem{
		Name:          r.Name,
		Category:      r.Category,
		Calories:      *r.Calories,
		Protein:       r.Protein,
		Carbohydrates: r.Carbohydrates,
		Fat:           r.Fat,
		Fiber:         r.Fiber,
		Sugar:         r.Sugar,
		Sodium:        r.Sodium,
		ServingSize:   model.ServingSize{Amount: r.ServingSize.Amount, Unit: r.ServingSize.Unit},
		Allergens:     orEmpty(r.Allergens),
		DietaryTags:   orEmpty(r.DietaryTags),
		ImageURL:      r.ImageURL,
		Description:   r.Description,
	}
}

type IngredientRequest struct {
	Food   uuid.UUID `json:"food" binding:"required" msg:"Food ID is required"`
	Amount float64   `json:"amount" binding:"required,gt=0" msg:"Ingredient amount must be positive"`
	Unit   string    `json:"unit" binding:"required" msg:"Ingredient unit is required"`
}

type MealRequest struct {
	Name         string              `json:"name" binding:"required" msg:"Meal name is required"`
	Type         string              `json:"type" binding:"required,oneof=breakfast lunch dinner snack pre_workout post_workout" msg:"Invalid meal type"`
	Description  string              `json:"description"`
	Ingredients  []IngredientRequest `json:"ingredients" binding:"required,min=1,dive" msg:"At least one ingredient is required"`
	Instructions []string            `json:"instructions"`
	PrepTime     *int                `json:"prepTime" binding:"omitempty,min=0" msg:"Prep time cannot be negative"`
	CookTime     *int                `json:"cookTime" binding:"omitempty,min=0" msg:"Cook time cannot be negative"`
	Difficulty   string              `json:"difficulty" binding:"omitempty,oneof=easy medium hard" msg:"Invalid difficulty"`
	ImageURL     string              `json:"imageUrl" binding:"omitempty,url" msg:"Image URL must be a valid URL"`
	Tags         []string            `json:"tags"`
}

func (r *MealRequest) normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r *MealRequest) toModel() *model.Meal {
	m := &model.Meal{
		Name:         r.Name,
		Type:         r.Type,
		Description:  r.Description,
		Ingredients:  make([]model.Ingredient, len(r.Ingredients)),
		Instructions: orEmpty(r.Instructions),
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Difficulty:   r.Difficulty,
		ImageURL:     r.ImageURL,
		Tags:         orEmpty(r.Tags),
	}
	if m.Difficulty == "" {
		m.Difficulty = "easy"
	}
	for i, in := range r.Ingredients {
		m.Ingredients[i] = model.Ingredient{FoodID: in.Food, Amount: in.Amount, Unit: in.Unit}
	}
	return m
}

type PlanMealRequest struct {
	Day          int         `json:"day" binding:"required,min=1,max=7" msg:"Day must be between 1 and 7"`
	MealType     string      `json:"mealType" binding:"required,oneof=breakfast lunch dinner snack" msg:"Invalid meal type"`
	Meal         uuid.UUID   `json:"meal" binding:"required" msg:"Meal ID is required"`
	Alternatives []uuid.UUID `json:"alternatives"`
}

type DietPlanRequest struct {
	Name           string            `json:"name" binding:"required,min=3,max=100" msg:"Diet plan name must be between 3 and 100 characters"`
	Description    string            `json:"description" binding:"required,min=10,max=500" msg:"Description must be between 10 and 500 characters"`
	Type           string            `json:"type" binding:"required,oneof=vegan vegetarian omnivore keto paleo mediterranean low_carb high_protein balanced" msg:"Invalid diet type"`
	TargetCalories int               `json:"targetCalories" binding:"required,min=800,max=5000" msg:"Target calories must be between 800 and 5000"`
	TargetProtein  *float64          `json:"targetProtein" binding:"omitempty,min=0" msg:"Target protein cannot be negative"`
	TargetCarbs    *float64          `json:"targetCarbs" binding:"omitempty,min=0" msg:"Target carbs cannot be negative"`
	TargetFat      *float64          `json:"targetFat" binding:"omitempty,min=0" msg:"Target fat cannot be negative"`
	Meals          []PlanMealRequest `json:"meals" binding:"required,min=1,dive" msg:"At least one meal is required"`
	IsPublic       *bool             `json:"isPublic"`
	Difficulty     string            `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced" msg:"Invalid difficulty level"`
	Tags           []string          `json:"tags"`
}

func (r *DietPlanRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *DietPlanRequest) toModel() *model.DietPlan {
	p := &model.DietPlan{
		Name:           r.Name,
		Description:    r.Description,
		Type:           r.Type,
		TargetCalories: r.TargetCalories,
		TargetProtein:  r.TargetProtein,
		TargetCarbs:    r.TargetCarbs,
		TargetFat:      r.TargetFat,
		Meals:          make([]model.PlanMeal, len(r.Meals)),
		IsPublic:       true,
		Difficulty:     r.Difficulty,
		Tags:           orEmpty(r.Tags),
	}
	if r.IsPublic != nil {
		p.IsPublic = *r.IsPublic
	}
	if p.Difficulty == "" {
		p.Difficulty = "beginner"
	}
	for i, m := range r.Meals {
		p.Meals[i] = model.PlanMeal{Day: m.Day, MealType: m.MealType, MealID: m.Meal, Alternatives: orEmpty(m.Alternatives)}
	}
	return p
}

type NutritionLogRequest struct {
	Date          *time.Time         `json:"date" msg:"Date must be a valid ISO date"`
	Meals         []model.LoggedMeal `json:"meals" binding:"required" msg:"Meals must be an array"`
	TotalCalories float64            `json:"totalCalories" binding:"min=0" msg:"Total calories cannot be negative"`
	TotalProtein  float64            `json:"totalProtein" binding:"min=0" msg:"Total protein cannot be negative"`
	TotalCarbs    float64            `json:"totalCarbs" binding:"min=0" msg:"Total carbs cannot be negative"`
	TotalFat      float64            `json:"totalFat" binding:"min=0" msg:"Total fat cannot be negative"`
	WaterIntake   float64            `json:"waterIntake" binding:"min=0" msg:"Water intake cannot be negative"`
	Notes         string             `json:"notes"`
}

func (r *NutritionLogRequest) toModel() *model.NutritionLog {
	l := &model.NutritionLog{
		Meals:         r.Meals,
		TotalCalories: r.TotalCalories,
		TotalProtein:  r.TotalProtein,
		TotalCarbs:    r.TotalCarbs,
		TotalFat:      r.TotalFat,
		WaterIntake:   r.WaterIntake,
		Notes:         r.Notes,
	}
	if r.Date != nil {
		l.Date = r.Date.UTC()
	}
	return l
}

// === Chatbot ===

type ChatRequest struct {
	Message string `json:"message" binding:"required,min=10,max=500" msg:"Message must be between 10 and 500 characters"`
}

func (r *ChatRequest) normalize() { r.Message = strings.TrimSpace(r.Message) }

type GeneralChatRequest struct {
	Message string `json:"message" binding:"required,max=500" msg:"Message must be between 1 and 500 characters"`
}

func (r *GeneralChatRequest) normalize() { r.Message = strings.TrimSpace(r.Message) }

type CustomDietRequest struct {
	Requirements string `json:"requirements" binding:"required,min=20,max=1000" msg:"Requirements must be between 20 and 1000 characters"`
}

func (r *CustomDietRequest) normalize() { r.Requirements = strings.TrimSpace(r.Requirements) }

// ChatReply is the data of every chatbot answer. User is null for anonymous callers.
type ChatReply struct {
	Message   string     `json:"message,omitempty"`
	DietPlan  string     `json:"dietPlan,omitempty"`
	Timestamp string     `json:"timestamp"`
	User      *uuid.UUID `json:"user"`
}

// === Contact ===

type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=50" msg:"Name must be between 2 and 50 characters"`
	Email   string `json:"email" binding:"required,email" msg:"Please provide a valid email"`
	Message string `json:"message" binding:"required,min=10,max=1000" msg:"Message must be between 10 and 1000 characters"`
	Phone   string `json:"phone" binding:"omitempty,phone" msg:"Please provide a valid phone number"`
	Subject string `json:"subject"`
}

func (r *ContactRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Message = strings.TrimSpace(r.Message)
	r.Subject = strings.TrimSpace(r.Subject)
}

type MembershipInquiryRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=50" msg:"Name must be between 2 and 50 characters"`
	Email   string `json:"email" binding:"required,email" msg:"Please provide a valid email"`
	Phone   string `json:"phone" binding:"required,phone" msg:"Please provide a valid phone number"`
	Message string `json:"message" binding:"max=500" msg:"Message must be less than 500 characters"`
}

func (r *MembershipInquiryRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Message = strings.TrimSpace(r.Message)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
