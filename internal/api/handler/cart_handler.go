package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pokeshop/storefront/internal/api/metrics"
	apimw "github.com/pokeshop/storefront/internal/api/middleware"
	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// CartHandler handles the session-scoped cart. Add and Remove run behind
// EnsureSession so an anonymous visitor gets a cart on first use.
type CartHandler struct {
	cart ports.CartService
}

func NewCartHandler(cart ports.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type removeFromCartRequest struct {
	// Pointer so a missing index is distinguishable from index 0.
	Index *int `json:"index" validate:"required"`
}

type checkoutResponse struct {
	OK    bool    `json:"ok"`
	Itens int     `json:"itens"`
	Total float64 `json:"total"`
}

// View handles GET /api/cart. A client with no session sees an empty cart.
func (h *CartHandler) View(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cart.View(apimw.CurrentSession(c)))
}

// Add handles POST /api/cart/add.
func (h *CartHandler) Add(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "productId nao enviado")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "productId nao enviado")
	}

	if err := h.cart.Add(c.Request().Context(), apimw.CurrentSession(c), req.ProductID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Remove handles POST /api/cart/remove — positional removal. The client
// re-fetches the cart after every mutation to keep its indices valid.
func (h *CartHandler) Remove(c echo.Context) error {
	var req removeFromCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "index nao enviado")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "index nao enviado")
	}

	if err := h.cart.Remove(c.Request().Context(), apimw.CurrentSession(c), *req.Index); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Checkout handles POST /api/cart/checkout.
//
// @Summary      Checkout the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  checkoutResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/cart/checkout [post]
func (h *CartHandler) Checkout(c echo.Context) error {
	s := apimw.CurrentSession(c)
	if !s.Authenticated() {
		return domain.ErrUnauthenticated
	}

	receipt, err := h.cart.Checkout(c.Request().Context(), s)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues(checkoutResult(err)).Inc()
		return err
	}

	metrics.CheckoutsTotal.WithLabelValues("ok").Inc()
	metrics.UnitsSoldTotal.Add(float64(receipt.Itens))
	return c.JSON(http.StatusOK, checkoutResponse{OK: true, Itens: receipt.Itens, Total: receipt.Total})
}

func checkoutResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domain.ErrOutOfStock):
		return "out_of_stock"
	case errors.Is(err, domain.ErrProductGone):
		return "product_missing"
	default:
		return "error"
	}
}
