package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// LoginThrottle limits credential attempts per client IP using a fixed
// Redis window: INCR on a per-IP key, EXPIRE on first hit, reject once
// the count exceeds maxAttempts.  A nil Redis client or a Redis failure
// disables throttling rather than blocking logins.
func LoginThrottle(rdb *redis.Client, maxAttempts int, window time.Duration) echo.MiddlewareFunc {
	if rdb == nil || maxAttempts <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("login:attempts:%s", c.RealIP())

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, window).Err()
			}
			if n > int64(maxAttempts) {
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "too many login attempts, try again later",
				})
			}
			return next(c)
		}
	}
}
