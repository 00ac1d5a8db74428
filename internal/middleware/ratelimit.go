package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/avelik/schedesk/internal/config"
)

// NewLoginLimiter bounds credential attempts per account within a fixed
// window.  The counter keys on the submitted username, matching how the
// login activity log attributes attempts, so rotating source addresses
// does not reset it; requests without a parsable username fall back to the
// client IP.  A nil Redis client disables limiting entirely, and a Redis
// error lets the request through rather than locking everyone out.
func NewLoginLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := loginKey(cfg.Prefix, c)

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if n == 1 {
				rdb.Expire(ctx, key, cfg.Window)
			}
			if n > int64(cfg.Attempts) {
				retry := int(cfg.Window / time.Second)
				if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					retry = int((ttl + time.Second - 1) / time.Second)
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too many attempts",
					"retry_after": retry,
				})
			}
			return next(c)
		}
	}
}

// loginKey extracts the username from the JSON body without consuming it;
// the body is restored so the handler's Bind still sees it.
func loginKey(prefix string, c echo.Context) string {
	req := c.Request()
	if req.Body != nil {
		if body, err := io.ReadAll(req.Body); err == nil {
			req.Body = io.NopCloser(bytes.NewReader(body))
			var creds struct {
				Username string `json:"username"`
			}
			if json.Unmarshal(body, &creds) == nil && creds.Username != "" {
				return prefix + ":user:" + creds.Username
			}
		}
	}
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	return prefix + ":ip:" + ip
}
