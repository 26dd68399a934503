package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pokeshop/storefront/internal/api/metrics"
	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// LoginRateLimit bounds login attempts per client IP. The limit applies
// before credentials are checked, so a blocked attempt never reaches the
// credential store.
func LoginRateLimit(limiter ports.RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				// Fail open: an unavailable limiter should not lock
				// everyone out of login.
				log.Error().Err(err).Msg("rate limiter unavailable")
				return next(c)
			}
			if !allowed {
				metrics.LoginRateLimitedTotal.Inc()
				log.Warn().Str("ip", c.RealIP()).Msg("login blocked by rate limit")
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}
