package ports

import (
	"context"

	"github.com/pokeshop/storefront/internal/core/domain"
)

// BannerRepository defines persistence operations for promotional banners.
// Both listings are ordered by ordem ascending.
type BannerRepository interface {
	FindActive(ctx context.Context) ([]*domain.Banner, error)
	FindAll(ctx context.Context) ([]*domain.Banner, error)
	FindByID(ctx context.Context, id string) (*domain.Banner, error)
	Create(ctx context.Context, b *domain.Banner) (*domain.Banner, error)
	Update(ctx context.Context, b *domain.Banner) error
	Delete(ctx context.Context, id string) error
}
