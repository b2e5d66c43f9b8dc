package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/apex-leadership/apex_api/shared"
)

// Limiter is the counter backend; redis in production.
type Limiter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit is a fixed-window limiter keyed by authenticated user id, falling
// back to client IP for anonymous routes. A backend failure lets the request
// through; the limiter protects, it does not gate.
func RateLimit(limiter Limiter, name string, limit int64, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := c.Locals(shared.UserID).(string)
		if caller == "" {
			caller = c.IP()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", name, caller)
		count, err := limiter.Incr(c.Context(), key, window)
		if err != nil {
			log.Printf("Rate limiter unavailable for %s: %v", name, err)
			return c.Next()
		}

		if count > limit {
			c.Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", nil)
		}

		return c.Next()
	}
}
