package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/RoyKeane94/toad/internal/cache"
	"github.com/RoyKeane94/toad/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Limiter counts hits in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (cache.Quota, error)
}

// RateLimit limits requests per authenticated user, falling back to the client IP.
// Limiter errors let the request through.
func RateLimit(log *zap.SugaredLogger, limiter Limiter, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limit <= 0 {
			return c.Next()
		}
		key := "ip:" + c.IP()
		if userID, ok := UserID(c); ok {
			key = "user:" + userID
		}

		q, err := limiter.Allow(c.UserContext(), key, limit, window)
		if err != nil {
			log.Errorw("rate limiter unavailable", "key", key, "error", err)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(q.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(q.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(q.Reset.Unix(), 10))
		if !q.Allowed {
			retry := int(time.Until(q.Reset).Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retry))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Error(dto.CodeRateLimited, "rate limit exceeded"))
		}
		return c.Next()
	}
}
