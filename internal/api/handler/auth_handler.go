package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pokeshop/storefront/internal/api/metrics"
	apimw "github.com/pokeshop/storefront/internal/api/middleware"
	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// AuthHandler handles login, logout and identity lookup.
type AuthHandler struct {
	auth         ports.AuthService
	cookieTTL    time.Duration
	cookieSecure bool
}

func NewAuthHandler(auth ports.AuthService, cookieTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieTTL: cookieTTL, cookieSecure: cookieSecure}
}

type loginRequest struct {
	Email string `json:"email" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type meResponse struct {
	Nome  string `json:"nome"`
	Role  string `json:"role"`
	Cargo string `json:"cargo,omitempty"`
}

// Login authenticates the user and issues a fresh session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  okResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados_incompletos")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados_incompletos")
	}

	prevID := ""
	if s := apimw.CurrentSession(c); s != nil {
		prevID = s.ID
	} else if cookie, err := c.Cookie(apimw.CookieName); err == nil {
		prevID = cookie.Value
	}

	sess, err := h.auth.Login(c.Request().Context(), ports.LoginInput{
		Email:         req.Email,
		Senha:         req.Senha,
		PrevSessionID: prevID,
	})
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	apimw.SetSessionCookie(c, sess.ID, h.cookieTTL, h.cookieSecure)
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Logout destroys the session and clears the cookie. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  okResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	id := ""
	if s := apimw.CurrentSession(c); s != nil {
		id = s.ID
	} else if cookie, err := c.Cookie(apimw.CookieName); err == nil {
		id = cookie.Value
	}

	if err := h.auth.Logout(c.Request().Context(), id); err != nil {
		return err
	}
	apimw.ClearSessionCookie(c, h.cookieSecure)
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Me returns the denormalized identity cached in the session.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	s := apimw.CurrentSession(c)
	if !s.Authenticated() {
		return domain.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, meResponse{Nome: s.Nome, Role: string(s.Role), Cargo: s.Cargo})
}
