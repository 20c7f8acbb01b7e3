package http

import (
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/auth"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	ctxUser   = "fitgenius.user"
	ctxClaims = "fitgenius.claims"
)

// Recovery turns a panic into a 500 envelope and logs the stack.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, Response{Message: "Something went wrong!"})
			}
		}()
		c.Next()
	}
}

// RequestLogger emits one structured line per request.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := logger.Info()
		if status >= http.StatusInternalServerError {
			ev = logger.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// rateLimiterIdle is the minimum time a client bucket is kept after its last request.
const rateLimiterIdle = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than idle are dropped on the next sweep.
type rateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiter(perMinute, burst int) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(float64(perMinute) / time.Minute.Seconds())
	idle := rateLimiterIdle
	if limit > 0 {
		// An evicted bucket must already have refilled completely.
		idle = max(idle, time.Duration(float64(burst)/float64(limit)*float64(time.Second)))
	}
	return &rateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     limit,
		burst:     burst,
		idle:      idle,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idle {
		rl.sweep(now)
	}
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (rl *rateLimiter) sweep(now time.Time) {
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) >= rl.idle {
			delete(rl.visitors, key)
		}
	}
	rl.lastSweep = now
}

func (rl *rateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// middleware rejects requests over the limit with 429. A nil limiter allows everything.
func (rl *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl != nil && !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, Response{Message: "Too many requests, please try again later."})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return ""
}

// socketToken also reads ?token=, since browsers cannot set headers on a
// WebSocket handshake.
func socketToken(c *gin.Context) string {
	if token := bearerToken(c); token != "" {
		return token
	}
	return c.Query("token")
}

// Protect requires a valid, unrevoked bearer token.
func (h *Handlers) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Message: "Not authorized, no token"})
			return
		}
		claims, user, err := h.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			h.logger.Debug().Err(err).Msg("token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Message: "Not authorized, token failed"})
			return
		}
		c.Set(ctxClaims, claims)
		c.Set(ctxUser, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid bearer token is present and never rejects.
func (h *Handlers) OptionalAuth() gin.HandlerFunc { return h.optionalAuth(bearerToken) }

// SocketAuth is OptionalAuth for the WebSocket upgrade, which may carry the token in the query.
func (h *Handlers) SocketAuth() gin.HandlerFunc { return h.optionalAuth(socketToken) }

func (h *Handlers) optionalAuth(extract func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extract(c); token != "" {
			if claims, user, err := h.auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(ctxClaims, claims)
				c.Set(ctxUser, user)
			}
		}
		c.Next()
	}
}

// Authorize allows only the given roles. It must run after Protect.
func Authorize(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Message: "Not authorized, no token"})
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, Response{Message: "User role " + string(u.Role) + " is not authorized to access this route"})
	}
}

func currentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ctxUser); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

func currentClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ctxClaims); ok {
		if cl, ok := v.(*auth.Claims); ok {
			return cl
		}
	}
	return nil
}

// currentUserID returns the caller's ID, or nil for anonymous requests.
func currentUserID(c *gin.Context) *uuid.UUID {
	if u := currentUser(c); u != nil {
		id := u.ID
		return &id
	}
	return nil
}
