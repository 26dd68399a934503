package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pokeshop/storefront/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Erro is
// a short machine-checkable reason token; Produto names the offending cart
// line on checkout failures.
type errorResponse struct {
	Erro    string `json:"erro"`
	Produto string `json:"produto,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"erro": "<reason>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Erro: fmt.Sprintf("%v", he.Message)}
	}

	// Checkout failures carry the name of the line that failed.
	var cle *domain.CheckoutLineError
	if errors.As(err, &cle) {
		reason := "sem_estoque"
		if errors.Is(cle.Err, domain.ErrProductGone) {
			reason = "produto_indisponivel"
		}
		return http.StatusBadRequest, errorResponse{Erro: reason, Produto: cle.Produto}
	}

	// Known domain errors map to deterministic codes and reason tokens.
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, errorResponse{Erro: "dados_incompletos"}
	case errors.Is(err, domain.ErrInvalidCargo):
		return http.StatusBadRequest, errorResponse{Erro: "cargo_invalido"}
	case errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest, errorResponse{Erro: "categoria_invalida"}
	case errors.Is(err, domain.ErrInvalidUpload):
		return http.StatusBadRequest, errorResponse{Erro: "upload_invalido"}
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, errorResponse{Erro: "carrinho_vazio"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Erro: "credenciais_invalidas"}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Erro: "nao_autenticado"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Erro: "acesso_negado"}
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, errorResponse{Erro: "produto_nao_encontrado"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Erro: "usuario_nao_encontrado"}
	case errors.Is(err, domain.ErrBannerNotFound):
		return http.StatusNotFound, errorResponse{Erro: "banner_nao_encontrado"}
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, errorResponse{Erro: "email_ja_cadastrado"}
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, errorResponse{Erro: "muitas_tentativas"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Erro: "erro_interno"}
}
