package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// CookieName carries the opaque session id.
const CookieName = "pokeshop_sid"

// sessionContextKey is where the loaded session lives in echo's context.
const sessionContextKey = "session"

// SessionConfig wires the session middleware.
type SessionConfig struct {
	Store ports.SessionStore
	// ServerStart is the boot time of this process; sessions stamped by an
	// earlier process are destroyed on first use.
	ServerStart int64
	TTL         time.Duration
	Secure      bool
	Log         zerolog.Logger
}

// CurrentSession returns the request's session, or nil when the client has
// none.
func CurrentSession(c echo.Context) *domain.Session {
	s, _ := c.Get(sessionContextKey).(*domain.Session)
	return s
}

// SetSession injects a session into the request context.
func SetSession(c echo.Context, s *domain.Session) {
	c.Set(sessionContextKey, s)
}

// Session loads the session referenced by the cookie, enforces the
// staleness rule, slides the TTL, and injects the session into context.
// Requests without a valid session proceed with none; guards downstream
// decide whether that is acceptable.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			sess, err := cfg.Store.Get(ctx, cookie.Value)
			if err != nil {
				cfg.Log.Error().Err(err).Msg("session load failed")
				return next(c)
			}
			if sess == nil {
				ClearSessionCookie(c, cfg.Secure)
				return next(c)
			}

			// A marker from a previous process bounds the blast radius of
			// in-memory changes across deployments.
			if sess.ServerStart < cfg.ServerStart {
				if err := cfg.Store.Delete(ctx, sess.ID); err != nil {
					cfg.Log.Warn().Err(err).Msg("failed to destroy stale session")
				}
				ClearSessionCookie(c, cfg.Secure)
				return next(c)
			}

			// Rolling expiry: every use pushes the deadline out.
			if err := cfg.Store.Touch(ctx, sess.ID); err != nil {
				cfg.Log.Warn().Err(err).Msg("failed to touch session")
			}
			SetSessionCookie(c, sess.ID, cfg.TTL, cfg.Secure)

			SetSession(c, sess)
			return next(c)
		}
	}
}

// EnsureSession creates an anonymous session when the request has none, so
// endpoints like cart mutation work before login. Must run after Session.
func EnsureSession(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentSession(c) != nil {
				return next(c)
			}

			id, err := domain.NewSessionID()
			if err != nil {
				return err
			}
			sess := &domain.Session{ID: id, ServerStart: cfg.ServerStart}
			if err := cfg.Store.Save(c.Request().Context(), sess); err != nil {
				return err
			}

			SetSessionCookie(c, id, cfg.TTL, cfg.Secure)
			SetSession(c, sess)
			return next(c)
		}
	}
}

// SetSessionCookie issues the HTTP-only, SameSite=Lax session cookie.
func SetSessionCookie(c echo.Context, id string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie instructs the client to discard the session cookie.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
