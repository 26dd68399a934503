package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimw "github.com/pokeshop/storefront/internal/api/middleware"
	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// UserHandler handles account administration. Creation is public
// (self-registration); everything else is owner-gated by the route table.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// userRequest mirrors the storefront's registration form field names.
type userRequest struct {
	Nome  string `json:"nome_usuario"`
	Email string `json:"email_usuario"`
	Senha string `json:"senha_usuario"`
	Cargo string `json:"cargo_usuario"`
	Role  string `json:"role"`
}

// List handles GET /api/users (owner).
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Cargos handles GET /api/users/cargos (owner) — the permitted job titles.
func (h *UserHandler) Cargos(c echo.Context) error {
	return c.JSON(http.StatusOK, h.users.ListCargos())
}

// Create handles POST /api/users. Anyone may register; the requested role
// only takes effect when the request comes from an owner session.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      userRequest  true  "User fields"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados_incompletos")
	}

	user, err := h.users.Create(c.Request().Context(), ports.UserInput{
		Nome:      req.Nome,
		Email:     req.Email,
		Senha:     req.Senha,
		Cargo:     req.Cargo,
		Role:      req.Role,
		ActorRole: actorRole(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update handles PUT /api/users/:id (owner).
func (h *UserHandler) Update(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados_incompletos")
	}

	err := h.users.Update(c.Request().Context(), c.Param("id"), ports.UserInput{
		Nome:      req.Nome,
		Cargo:     req.Cargo,
		Role:      req.Role,
		ActorRole: actorRole(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Delete handles DELETE /api/users/:id (owner).
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// actorRole returns the requesting session's role, or "" for anonymous.
func actorRole(c echo.Context) domain.Role {
	if s := apimw.CurrentSession(c); s.Authenticated() {
		return s.Role
	}
	return ""
}
