package middleware

import (
    "fmt"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/avezina/showbill/internal/config"
)

// NewRateLimit returns a fixed-window rate limiter backed by Redis.  Each
// (client IP, route) pair gets a counter that expires after the window;
// once the counter passes the limit the request is rejected with 429 and a
// Retry-After header.  Redis errors fail open so an unavailable Redis never
// takes the listing site down with it.
func NewRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return func(c echo.Context) error { return next(c) } }
    }
    // Guard against a sub-second window sneaking past config validation:
    // the bucket index divides by whole seconds.
    winSecs := int64(cfg.Window.Seconds())
    if winSecs < 1 {
        winSecs = 1
        cfg.Window = time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ctx := c.Request().Context()
            window := time.Now().Unix() / winSecs
            key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, c.RealIP(), c.Path(), window)

            n, err := rdb.Incr(ctx, key).Result()
            if err != nil {
                return next(c)
            }
            if n == 1 {
                _ = rdb.Expire(ctx, key, cfg.Window).Err()
            }
            if n > int64(cfg.Limit) {
                retry := cfg.Window.Seconds()
                c.Response().Header().Set("Retry-After", strconv.Itoa(int(retry)))
                return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
            }
            return next(c)
        }
    }
}
