package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/chatbot"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/delivery/ws"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/service"
	"github.com/rs/zerolog"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	maxPage          = 100000
)

// Handlers serves the REST API.
type Handlers struct {
	auth      *service.AuthService
	users     *service.UserService
	workouts  *service.WorkoutService
	nutrition *service.NutritionService
	blog      *service.BlogService
	contact   *service.ContactService
	bot       *chatbot.Bot
	hub       *ws.Hub

	authLimiter *rateLimiter
	chatLimiter *rateLimiter
	logger      zerolog.Logger
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(
	cfg *config.Config,
	authService *service.AuthService,
	users *service.UserService,
	workouts *service.WorkoutService,
	nutrition *service.NutritionService,
	blog *service.BlogService,
	contact *service.ContactService,
	bot *chatbot.Bot,
	hub *ws.Hub,
	logger *zerolog.Logger,
) *Handlers {
	registerValidators()

	h := &Handlers{
		auth:      authService,
		users:     users,
		workouts:  workouts,
		nutrition: nutrition,
		blog:      blog,
		contact:   contact,
		bot:       bot,
		hub:       hub,
		logger:    logger.With().Str("layer", "http_handler").Logger(),
	}
	if rl := cfg.RateLimit; rl.AuthPerMinute > 0 {
		h.authLimiter = newRateLimiter(rl.AuthPerMinute, rl.Burst)
	}
	if rl := cfg.RateLimit; rl.ChatbotPerMinute > 0 {
		h.chatLimiter = newRateLimiter(rl.ChatbotPerMinute, rl.Burst)
	}
	return h
}

// RegisterRoutes sets up the routing for the whole API.
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")

	authLimit := h.authLimiter.middleware()
	a := api.Group("/auth")
	{
		a.POST("/register", authLimit, h.Register)
		a.POST("/login", authLimit, h.Login)
		a.GET("/me", h.Protect(), h.Me)
		a.PUT("/profile", h.Protect(), h.UpdateProfile)
		a.PUT("/password", h.Protect(), h.ChangePassword)
		a.POST("/forgot-password", authLimit, h.ForgotPassword)
		a.PUT("/reset-password/:token", authLimit, h.ResetPassword)
		a.POST("/logout", h.Protect(), h.Logout)
	}

	u := api.Group("/users", h.Protect())
	{
		u.GET("", Authorize(model.RoleAdmin), h.ListUsers)
		u.GET("/:id", h.GetUser)
		u.PUT("/:id/membership", Authorize(model.RoleAdmin), h.UpdateMembership)
		u.GET("/:id/stats", h.UserStats)
		u.DELETE("/:id", Authorize(model.RoleAdmin), h.DeleteUser)
	}

	staff := Authorize(model.RoleTrainer, model.RoleAdmin)
	w := api.Group("/workouts")
	{
		w.GET("/exercises", h.ListExercises)
		w.GET("/exercises/:id", h.GetExercise)
		w.POST("/exercises", h.Protect(), staff, h.CreateExercise)
		w.GET("/logs", h.Protect(), h.ListWorkoutLogs)
		w.GET("", h.ListWorkouts)
		w.GET("/:id", h.GetWorkout)
		w.POST("", h.Protect(), h.CreateWorkout)
		w.PUT("/:id", h.Protect(), h.UpdateWorkout)
		w.DELETE("/:id", h.Protect(), h.DeleteWorkout)
		w.POST("/:id/log", h.Protect(), h.LogWorkout)
	}

	n := api.Group("/nutrition")
	{
		n.GET("/foods", h.ListFoods)
		n.GET("/foods/:id", h.GetFood)
		n.POST("/foods", h.Protect(), staff, h.CreateFood)
		n.GET("/meals", h.ListMeals)
		n.GET("/meals/:id", h.GetMeal)
		n.POST("/meals", h.Protect(), staff, h.CreateMeal)
		n.GET("/diet-plans", h.ListDietPlans)
		n.GET("/diet-plans/:id", h.GetDietPlan)
		n.POST("/diet-plans", h.Protect(), h.CreateDietPlan)
		n.POST("/log", h.Protect(), h.LogNutrition)
		n.GET("/logs", h.Protect(), h.ListNutritionLogs)
		n.GET("/summary", h.Protect(), h.NutritionSummary)
	}

	cb := api.Group("/chatbot", h.chatLimiter.middleware())
	{
		cb.POST("/workout", h.OptionalAuth(), h.ChatWorkout)
		cb.POST("/nutrition", h.OptionalAuth(), h.ChatNutrition)
		cb.POST("/custom-diet", h.OptionalAuth(), h.ChatCustomDiet)
		cb.POST("/general", h.OptionalAuth(), h.ChatGeneral)
		cb.POST("/message", h.ChatMessage)
	}

	b := api.Group("/blog")
	{
		b.GET("", h.ListPosts)
		b.GET("/categories", h.PostCategories)
		b.GET("/tags", h.PostTags)
		b.GET("/featured", h.FeaturedPosts)
		b.GET("/search", h.SearchPosts)
		b.GET("/:id", h.GetPost)
		b.GET("/:id/related", h.RelatedPosts)
	}

	ct := api.Group("/contact")
	{
		ct.POST("", h.SubmitContact)
		ct.POST("/membership", h.SubmitMembershipInquiry)
	}

	router.GET("/ws", h.SocketAuth(), h.ServeWS)
}

// ServeWS upgrades the request to a WebSocket connection on the hub.
func (h *Handlers) ServeWS(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request, currentUserID(c))
}

// errorText overrides the default messages of mapped errors for one route.
type errorText struct {
	NotFound    string
	Forbidden   string
	Unavailable string
	Server      string
}

// fail maps a service or repository error onto the response envelope.
func (h *Handlers) fail(c *gin.Context, err error, text errorText) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, Response{Message: err.Error()})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusBadRequest, Response{Message: "User already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, Response{Message: "Invalid credentials"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, Response{Message: "Not authorized, token failed"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, Response{Message: orDefault(text.Forbidden, "Not authorized to access this resource")})
	case errors.Is(err, repo.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Message: orDefault(text.NotFound, "Resource not found")})
	case errors.Is(err, repo.ErrDuplicateRecord):
		c.JSON(http.StatusConflict, Response{Message: "Resource already exists"})
	case errors.Is(err, service.ErrEmailUnavailable):
		c.JSON(http.StatusServiceUnavailable, Response{Message: orDefault(text.Unavailable, "Email delivery is not configured")})
	default:
		h.logger.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, Response{Message: orDefault(text.Server, "Server error")})
	}
}

// bindOrReject binds the body and writes the 400 reply itself when binding fails.
func (h *Handlers) bindOrReject(c *gin.Context, req any) bool {
	fields, err := bind(c, req)
	switch {
	case errors.Is(err, errMalformedBody):
		c.JSON(http.StatusBadRequest, Response{Message: "Invalid request body"})
		return false
	case err != nil:
		h.logger.Error().Err(err).Msg("validator failure")
		c.JSON(http.StatusInternalServerError, Response{Message: "Server error"})
		return false
	case len(fields) > 0:
		c.JSON(http.StatusBadRequest, Response{Message: "Validation error", Errors: fields})
		return false
	}
	return true
}

// idParam parses the :id path parameter. A malformed ID is reported as not found.
func idParam(c *gin.Context, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, Response{Message: notFound})
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUID parses a query parameter; a missing or malformed value yields nil.
func optionalUUID(c *gin.Context, key string) *uuid.UUID {
	id, err := uuid.Parse(c.Query(key))
	if err != nil {
		return nil
	}
	return &id
}

// pageQuery reads limit and page, falling back to the defaults on bad input.
func pageQuery(c *gin.Context) repo.Page {
	return repo.Page{
		Limit: min(positiveQuery(c, "limit", defaultPageLimit), maxPageLimit),
		Page:  min(positiveQuery(c, "page", 1), maxPage),
	}
}

func positiveQuery(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func pages(total, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// list replies with a collection and its count.
func list[T any](c *gin.Context, items []T) {
	items = orEmpty(items)
	n := len(items)
	c.JSON(http.StatusOK, Response{Success: true, Count: &n, Data: items})
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
