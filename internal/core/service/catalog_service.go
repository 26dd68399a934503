package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// CatalogService implements product CRUD, including the image lifecycle:
// a product's stored file is replaced or removed together with the record,
// with deletion failures logged and swallowed.
type CatalogService struct {
	products ports.ProductRepository
	files    ports.FileStore
	logger   zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, files ports.FileStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, files: files, logger: logger}
}

func (s *CatalogService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *CatalogService) ListCategories() []string {
	return domain.Categories()
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	if input.Nome == "" {
		return nil, domain.ErrMissingFields
	}
	if !domain.ValidCategory(input.Categoria) {
		return nil, domain.ErrInvalidCategory
	}

	product := &domain.Product{
		Nome:      input.Nome,
		Preco:     coercePrice(input.Preco),
		Estoque:   coerceStock(input.Estoque),
		Categoria: input.Categoria,
		Descricao: input.Descricao,
		CriadoEm:  time.Now().UTC(),
	}

	if input.Imagem != nil {
		path, err := s.files.Save(*input.Imagem)
		if err != nil {
			return nil, err
		}
		product.Imagem = path
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		s.removeFile(product.Imagem)
		return nil, err
	}
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, input ports.ProductInput) (*domain.Product, error) {
	if !domain.ValidCategory(input.Categoria) {
		return nil, domain.ErrInvalidCategory
	}

	current, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &domain.Product{
		ID:        current.ID,
		Nome:      input.Nome,
		Preco:     coercePrice(input.Preco),
		Estoque:   coerceStock(input.Estoque),
		Categoria: input.Categoria,
		Descricao: input.Descricao,
		Imagem:    current.Imagem,
		CriadoEm:  current.CriadoEm,
	}
	if updated.Nome == "" {
		updated.Nome = current.Nome
	}

	if input.Imagem != nil {
		path, err := s.files.Save(*input.Imagem)
		if err != nil {
			return nil, err
		}
		updated.Imagem = path
	}

	if err := s.products.Update(ctx, updated); err != nil {
		return nil, err
	}

	// The old file is orphaned once the record points elsewhere.
	if input.Imagem != nil && current.Imagem != "" {
		s.removeFile(current.Imagem)
	}
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.removeFile(product.Imagem)
	return s.products.Delete(ctx, id)
}

// removeFile is best-effort cleanup: a leftover file on disk is preferable
// to failing the record-level operation.
func (s *CatalogService) removeFile(path string) {
	if path == "" {
		return
	}
	if err := s.files.Remove(path); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove image file")
	}
}

// coercePrice parses a form price, defaulting invalid or missing input to 0
// and truncating to two decimals.
func coercePrice(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return domain.RoundPrice(v)
}

// coerceStock parses a form stock count, defaulting invalid, missing or
// negative input to 0.
func coerceStock(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
