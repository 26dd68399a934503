package ports

import (
	"context"

	"github.com/pokeshop/storefront/internal/core/domain"
)

// ProductInput carries raw multipart form values into the catalog service.
// Preco and Estoque arrive as strings and are coerced; invalid or missing
// numeric input becomes 0 rather than an error.
type ProductInput struct {
	Nome      string
	Preco     string
	Estoque   string
	Categoria string
	Descricao string
	Imagem    *FileUpload // optional
}

type CatalogService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	ListCategories() []string
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
