package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// rateLimitKeyPrefix namespaces rate limit counters in Redis.
const rateLimitKeyPrefix = "ratelimit:"

// incrWindow increments the window counter and, on the first hit, attaches
// the expiry in the same atomic step. A counter key must never exist
// without a TTL: a crash between a bare INCR and its EXPIRE would leave
// that IP+path limited forever.
var incrWindow = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RateLimit returns middleware that limits requests per IP to maxRequests
// within the given window. Intended for the credential-accepting endpoints
// (login, register, admin login) to slow brute-force and credential
// stuffing attacks. Returns 429 when exceeded.
//
// Counters live in Redis as fixed windows, so the limit holds across
// server restarts and multiple instances. If Redis is unavailable the
// request is allowed through -- failing open keeps login working during a
// Redis outage.
func RateLimit(rdb *redis.Client, maxRequests int, window time.Duration) echo.MiddlewareFunc {
	windowSeconds := int(window.Seconds())

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("%s%s:%s", rateLimitKeyPrefix, c.Path(), c.RealIP())

			count, err := incrWindow.Run(ctx, rdb, []string{key}, windowSeconds).Int64()
			if err != nil {
				slog.Warn("rate limiter unavailable, allowing request",
					slog.String("key", key),
					slog.Any("error", err),
				)
				return next(c)
			}

			if count > int64(maxRequests) {
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success": false,
					"message": "Too many requests. Please try again later.",
				})
			}

			return next(c)
		}
	}
}
