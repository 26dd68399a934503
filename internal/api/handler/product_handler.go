package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pokeshop/storefront/internal/api/metrics"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// ProductHandler handles catalog reads (public) and product administration
// (staff only; the route table applies the guard).
type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /api/products — the full catalog, unfiltered.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Categories handles GET /api/products/tipos — the fixed category list.
func (h *ProductHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.ListCategories())
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.catalog.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /api/products — multipart form with an optional
// `imagem` file field.
//
// @Summary      Create a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  domain.Product
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	input, closeFile, err := h.bindInput(c)
	if err != nil {
		return err
	}
	if closeFile != nil {
		defer closeFile()
	}

	product, err := h.catalog.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	if input.Imagem != nil {
		metrics.ImageUploadsTotal.WithLabelValues("product").Inc()
	}
	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /api/products/:id. Uploading a new image replaces and
// deletes the previous file.
func (h *ProductHandler) Update(c echo.Context) error {
	input, closeFile, err := h.bindInput(c)
	if err != nil {
		return err
	}
	if closeFile != nil {
		defer closeFile()
	}

	product, err := h.catalog.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	if input.Imagem != nil {
		metrics.ImageUploadsTotal.WithLabelValues("product").Inc()
	}
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /api/products/:id, removing the stored image file
// along with the record.
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

func (h *ProductHandler) bindInput(c echo.Context) (ports.ProductInput, func() error, error) {
	input := ports.ProductInput{
		Nome:      c.FormValue("nome"),
		Preco:     c.FormValue("preco"),
		Estoque:   c.FormValue("estoque"),
		Categoria: c.FormValue("categoria"),
		Descricao: c.FormValue("descricao"),
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
