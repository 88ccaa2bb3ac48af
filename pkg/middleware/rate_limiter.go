package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// RateLimiter tracks per-IP token buckets. Analyses are cheap but not free;
// the limiter keeps one tenant's bulk re-scoring from starving the rest.
type RateLimiter struct {
	visitors map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

// NewRateLimiter creates a rate limiter from a per-minute budget.
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*rate.Limiter),
		r:        rate.Limit(float64(requestsPerMinute) / 60.0),
		b:        burst,
	}

	go rl.cleanupVisitors()

	return rl
}

// GetLimiter returns the limiter for the given IP, creating one if needed.
func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.visitors[ip]
	if !exists {
		limiter = rate.NewLimiter(rl.r, rl.b)
		rl.visitors[ip] = limiter
	}

	return limiter
}

// cleanupVisitors drops limiters that have refilled completely, meaning the
// IP has been idle.
func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(3 * time.Minute)

		rl.mu.Lock()
		for ip, limiter := range rl.visitors {
			if limiter.Tokens() >= float64(rl.b) {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware creates an Echo middleware enforcing the per-IP limit.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = c.Request().RemoteAddr
			}

			if !rl.GetLimiter(ip).Allow() {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:   "rate_limit_exceeded",
					Message: "Too many requests. Please try again later.",
				})
			}

			return next(c)
		}
	}
}
