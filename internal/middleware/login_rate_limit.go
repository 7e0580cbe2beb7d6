package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const (
	loginRatePrefix = "loginrate:v1:"
	loginRateWindow = time.Minute
)

// LoginRateLimit throttles login attempts per username and source address.
// A nil cache or a cache error fails open so an unavailable Redis never
// locks everyone out of the app.
func LoginRateLimit(cache *redis.Client, maxAttempts int, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cache == nil || maxAttempts <= 0 {
			return c.Next()
		}

		var body struct {
			Username string `json:"username"`
		}
		_ = c.BodyParser(&body)

		key := loginRatePrefix + strings.ToLower(strings.TrimSpace(body.Username)) + ":" + c.IP()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		count, err := cache.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("login rate limiter unavailable", slog.Any("error", err))
			return c.Next()
		}
		if count == 1 {
			cache.Expire(ctx, key, loginRateWindow)
		}
		if count > int64(maxAttempts) {
			return fiber.NewError(fiber.StatusTooManyRequests, "too many login attempts, try again shortly")
		}

		return c.Next()
	}
}
