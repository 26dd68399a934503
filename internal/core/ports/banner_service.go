package ports

import (
	"context"

	"github.com/pokeshop/storefront/internal/core/domain"
)

// BannerInput carries banner create/update fields. On create Imagem is
// required; on update a nil Imagem keeps the current file. Ordem and Ativo
// are pointers so an absent form field leaves the stored value alone.
type BannerInput struct {
	Imagem *FileUpload
	Ordem  *int
	Ativo  *bool
}

type BannerService interface {
	// ListActive returns only active banners, for the public storefront.
	ListActive(ctx context.Context) ([]*domain.Banner, error)
	// ListAll includes inactive banners, for the admin screen.
	ListAll(ctx context.Context) ([]*domain.Banner, error)
	Create(ctx context.Context, input BannerInput) (*domain.Banner, error)
	Update(ctx context.Context, id string, input BannerInput) (*domain.Banner, error)
	Delete(ctx context.Context, id string) error
}
