package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pokeshop/storefront/internal/api/metrics"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// BannerHandler handles the promotional carousel. The public listing only
// shows active banners; the admin listing and all mutations are staff-gated
// by the route table.
type BannerHandler struct {
	banners ports.BannerService
}

func NewBannerHandler(banners ports.BannerService) *BannerHandler {
	return &BannerHandler{banners: banners}
}

// List handles GET /api/banners — active banners ordered for display.
func (h *BannerHandler) List(c echo.Context) error {
	banners, err := h.banners.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, banners)
}

// ListAll handles GET /api/banners/all — includes inactive banners.
func (h *BannerHandler) ListAll(c echo.Context) error {
	banners, err := h.banners.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, banners)
}

// Create handles POST /api/banners — multipart form, image required.
func (h *BannerHandler) Create(c echo.Context) error {
	input, closeFile, err := bindBannerInput(c)
	if err != nil {
		return err
	}
	if closeFile != nil {
		defer closeFile()
	}

	banner, err := h.banners.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	metrics.ImageUploadsTotal.WithLabelValues("banner").Inc()
	return c.JSON(http.StatusCreated, banner)
}

// Update handles PUT /api/banners/:id — any of image, ordem and ativo may
// change; absent fields keep their stored values.
func (h *BannerHandler) Update(c echo.Context) error {
	input, closeFile, err := bindBannerInput(c)
	if err != nil {
		return err
	}
	if closeFile != nil {
		defer closeFile()
	}

	banner, err := h.banners.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	if input.Imagem != nil {
		metrics.ImageUploadsTotal.WithLabelValues("banner").Inc()
	}
	return c.JSON(http.StatusOK, banner)
}

// Delete handles DELETE /api/banners/:id.
func (h *BannerHandler) Delete(c echo.Context) error {
	if err := h.banners.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

func bindBannerInput(c echo.Context) (ports.BannerInput, func() error, error) {
	var input ports.BannerInput

	if raw := c.FormValue("ordem"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			input.Ordem = &v
		}
	}
	if raw := c.FormValue("ativo"); raw != "" {
		v := raw == "true"
		input.Ativo = &v
	}

	upload, file, err := formFileUpload(c, "imagem")
	if err != nil {
		return input, nil, err
	}
	input.Imagem = upload
	if file != nil {
		return input, file.Close, nil
	}
	return input, nil, nil
}
