package ports

import (
	"context"

	"github.com/pokeshop/storefront/internal/core/domain"
)

// CartService mutates a session-scoped cart. Mutations persist the session
// so the caller sees the new state on the next request.
type CartService interface {
	// View returns the cart lines in insertion order; empty when no cart
	// exists yet.
	View(s *domain.Session) []domain.CartLine
	// Add appends a line for the product, denormalized at current catalog
	// values. Fails with domain.ErrProductNotFound when the id is unknown.
	Add(ctx context.Context, s *domain.Session, productID string) error
	// Remove drops the line at the given position. Out-of-bounds indices
	// are a no-op, not an error.
	Remove(ctx context.Context, s *domain.Session, index int) error
	// Checkout validates every line, then decrements stock by one unit per
	// line and clears the cart.
	Checkout(ctx context.Context, s *domain.Session) (*domain.Receipt, error)
}
