package http

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Server is a wrapper for the HTTP server.
type Server struct {
	*http.Server
	logger zerolog.Logger
}

// NewServer creates and configures a new Gin server.
func NewServer(cfg *config.Config, handlers *Handlers, logger *zerolog.Logger) *Server {
	log := logger.With().Str("layer", "http_server").Logger()
	log.Info().Msg("initializing http server")

	log.Info().Str("mode", cfg.HTTP.GinMode).Msg("setting gin mode")
	gin.SetMode(cfg.HTTP.GinMode)

	router := NewRouter(cfg.HTTP, handlers, log)

	server := &http.Server{
		Addr:         cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &Server{server, log}
}

// NewRouter builds the gin engine with middleware, API routes and fallbacks.
func NewRouter(cfg config.HTTPConfig, handlers *Handlers, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}

	log.Info().Msg("initializing middleware: recovery, request logger, cors")
	router.Use(Recovery(log), RequestLogger(log), corsMiddleware(cfg.AllowedOrigins))

	log.Info().Msg("registering health check endpoint")
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "FitGenius Hub API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	log.Info().Msg("registering api routes")
	handlers.RegisterRoutes(router)

	static := staticFiles(cfg.StaticDir)
	if cfg.StaticDir != "" {
		log.Info().Str("dir", cfg.StaticDir).Msg("serving static files")
	}
	router.NoRoute(func(c *gin.Context) {
		if static != nil && static(c) {
			return
		}
		c.JSON(http.StatusNotFound, Response{Message: "Route not found"})
	})

	return router
}

// corsMiddleware applies rs/cors to every request and answers preflights itself.
// No configured origins, or "*", means any origin is allowed without credentials.
func corsMiddleware(origins []string) gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: len(origins) > 0 && !slices.Contains(origins, "*"),
	})
	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}

// staticFiles serves existing files under dir for non-API paths. It reports
// whether it wrote a response.
func staticFiles(dir string) func(*gin.Context) bool {
	if dir == "" {
		return nil
	}
	fs := http.Dir(dir)
	return func(c *gin.Context) bool {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || strings.HasPrefix(path, "/api/") {
			return false
		}
		if path == "/" {
			path = "/index.html"
		}
		f, err := fs.Open(path)
		if err != nil {
			return false
		}
		defer f.Close()
		st, err := f.Stat()
		if err != nil || st.IsDir() {
			return false
		}
		http.ServeContent(c.Writer, c.Request, st.Name(), st.ModTime(), f)
		return true
	}
}
