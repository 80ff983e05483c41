package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// requestID reuses the caller's X-Request-ID or assigns a fresh one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestIDField(c *gin.Context) zap.Field {
	return zap.String("request_id", c.GetString(requestIDKey))
}

// requestLogger logs one line per request once the handler chain returns
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("route", c.FullPath()),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
			requestIDField(c),
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("HTTP Request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("HTTP Request", fields...)
		default:
			log.Info("HTTP Request", fields...)
		}
	}
}

// recovery turns panics, including broken-invariant panics from the core,
// into a 500 envelope
func recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Panic while handling request",
			zap.Any("panic", recovered),
			zap.String("route", c.FullPath()),
			requestIDField(c),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, internalErrorBody(c))
	})
}

// internalErrorBody hides failure details from the client; they are logged
// under the same request id
func internalErrorBody(c *gin.Context) errorBody {
	return errorBody{
		Error:   errInternal,
		Message: fmt.Sprintf("unexpected server error, request id %s", c.GetString(requestIDKey)),
	}
}

// ============================================================================
// Rate Limiting
// ============================================================================

// RateLimiter applies a token bucket per client IP
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter allows rps requests per second per client with the given burst
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rate:      rate.Limit(rps),
		burst:     burst,
		idleAfter: 10 * time.Minute,
		now:       time.Now,
	}
}

// Allow reports whether a request from client may proceed
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	now := rl.now()
	rl.sweep(now)

	entry, ok := rl.limiters[client]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[client] = entry
	}
	entry.lastAccess = now
	limiter := entry.limiter
	rl.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// sweep drops limiters idle for longer than idleAfter; rl.mu must be held
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.idleAfter {
		return
	}
	rl.lastSweep = now
	for client, entry := range rl.limiters {
		if now.Sub(entry.lastAccess) > rl.idleAfter {
			delete(rl.limiters, client)
		}
	}
}

// Middleware rejects over-limit clients with 429
func (rl *RateLimiter) Middleware(log *zap.Logger, onReject func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			log.Warn("Rate limit exceeded", zap.String("ip", c.ClientIP()), requestIDField(c))
			if onReject != nil {
				onReject()
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody{
				Error:   errRateLimited,
				Message: "rate limit exceeded, retry later",
			})
			return
		}
		c.Next()
	}
}
