package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// BannerService implements promotional banner CRUD with the same
// best-effort image lifecycle as the catalog.
type BannerService struct {
	banners ports.BannerRepository
	files   ports.FileStore
	logger  zerolog.Logger
}

func NewBannerService(banners ports.BannerRepository, files ports.FileStore, logger zerolog.Logger) *BannerService {
	return &BannerService{banners: banners, files: files, logger: logger}
}

func (s *BannerService) ListActive(ctx context.Context) ([]*domain.Banner, error) {
	return s.banners.FindActive(ctx)
}

func (s *BannerService) ListAll(ctx context.Context) ([]*domain.Banner, error) {
	return s.banners.FindAll(ctx)
}

func (s *BannerService) Create(ctx context.Context, input ports.BannerInput) (*domain.Banner, error) {
	if input.Imagem == nil {
		return nil, domain.ErrMissingFields
	}

	path, err := s.files.Save(*input.Imagem)
	if err != nil {
		return nil, err
	}

	banner := &domain.Banner{
		Imagem:   path,
		Ativo:    true,
		CriadoEm: time.Now().UTC(),
	}
	if input.Ordem != nil {
		banner.Ordem = *input.Ordem
	}
	if input.Ativo != nil {
		banner.Ativo = *input.Ativo
	}

	created, err := s.banners.Create(ctx, banner)
	if err != nil {
		s.removeFile(path)
		return nil, err
	}
	return created, nil
}

func (s *BannerService) Update(ctx context.Context, id string, input ports.BannerInput) (*domain.Banner, error) {
	current, err := s.banners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImage := ""
	if input.Imagem != nil {
		path, err := s.files.Save(*input.Imagem)
		if err != nil {
			return nil, err
		}
		oldImage = current.Imagem
		current.Imagem = path
	}
	if input.Ordem != nil {
		current.Ordem = *input.Ordem
	}
	if input.Ativo != nil {
		current.Ativo = *input.Ativo
	}

	if err := s.banners.Update(ctx, current); err != nil {
		return nil, err
	}
	s.removeFile(oldImage)
	return current, nil
}

func (s *BannerService) Delete(ctx context.Context, id string) error {
	banner, err := s.banners.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.removeFile(banner.Imagem)
	return s.banners.Delete(ctx, id)
}

func (s *BannerService) removeFile(path string) {
	if path == "" {
		return
	}
	if err := s.files.Remove(path); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove banner file")
	}
}
