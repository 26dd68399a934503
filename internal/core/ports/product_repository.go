package ports

import (
	"context"

	"github.com/pokeshop/storefront/internal/core/domain"
)

// ProductRepository defines persistence operations for catalog items.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	// DecrementStock atomically subtracts n units, refusing to go below
	// zero. Returns domain.ErrOutOfStock when stock is insufficient and
	// domain.ErrProductNotFound when the product is gone.
	DecrementStock(ctx context.Context, id string, n int) error
}
