package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy controls what happens to a request when the limiter's Redis
// store is unreachable.
type FailPolicy int

const (
	// FailOpen lets the request through.
	FailOpen FailPolicy = iota
	// FailClosed rejects the request with 503 Service Unavailable.
	FailClosed
)

// Limit is a named request budget over a fixed window. The resource name
// scopes the Redis counter so endpoints never share a budget.
type Limit struct {
	Resource string
	Max      int
	Window   time.Duration
}

// Budgets for the abuse-prone endpoints: account creation, credential
// guessing, username enumeration and content spam.
var (
	SignupLimit        = Limit{Resource: "signup", Max: 3, Window: 10 * time.Minute}
	LoginLimit         = Limit{Resource: "login", Max: 10, Window: 5 * time.Minute}
	SearchLimit        = Limit{Resource: "search", Max: 10, Window: time.Minute}
	CreatePostLimit    = Limit{Resource: "create_post", Max: 10, Window: 5 * time.Minute}
	CreateCommentLimit = Limit{Resource: "create_comment", Max: 15, Window: time.Minute}
)

// Allow reports whether the caller identified by id still has budget left
// under l. Limiting is disabled when APP_ENV is "test" or "development" so
// dev workflows are not throttled.
func Allow(ctx context.Context, rdb *redis.Client, l Limit, id string) (bool, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	switch env {
	case "test", "development":
		return true, nil
	}

	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", l.Resource, id)

	// INCR, then start the window on the first hit.
	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		rdb.Expire(ctx, key, l.Window)
	}
	return cnt <= int64(l.Max), nil
}

// RateLimit returns a Fiber middleware enforcing l, keyed by the
// authenticated user when present and by remote IP otherwise. Store outages
// fail open.
func RateLimit(rdb *redis.Client, l Limit) fiber.Handler {
	return RateLimitWithPolicy(rdb, l, FailOpen)
}

// RateLimitWithPolicy is RateLimit with an explicit outage policy.
func RateLimitWithPolicy(rdb *redis.Client, l Limit, policy FailPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id string
		if uid := c.Locals("userID"); uid != nil {
			id = fmt.Sprintf("user:%v", uid)
		} else {
			id = fmt.Sprintf("ip:%s", c.IP())
		}

		allowed, err := Allow(context.Background(), rdb, l, id)
		if err != nil {
			if policy == FailClosed {
				Logger.Warn("rate limit store unavailable",
					slog.String("resource", l.Resource),
					slog.String("path", c.Path()),
					slog.String("error", err.Error()))
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "rate limit unavailable",
				})
			}
			return c.Next()
		}

		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
