package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/pokeshop/storefront/internal/core/domain"
)

// RequireAuthenticated passes only requests carrying a logged-in session.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !CurrentSession(c).Authenticated() {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}

// RequireStaff passes owners and employees. Any staff member can manage any
// product; there is deliberately no row-level ownership.
func RequireStaff() echo.MiddlewareFunc {
	return requireRole(func(r domain.Role) bool { return r.IsStaff() })
}

// RequireOwner passes only the owner role.
func RequireOwner() echo.MiddlewareFunc {
	return requireRole(func(r domain.Role) bool { return r == domain.RoleOwner })
}

func requireRole(allowed func(domain.Role) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := CurrentSession(c)
			if !s.Authenticated() {
				return domain.ErrUnauthenticated
			}
			if !allowed(s.Role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
