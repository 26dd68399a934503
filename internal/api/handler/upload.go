package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pokeshop/storefront/internal/core/ports"
)

// formFileUpload extracts an optional multipart file field. It returns
// (nil, nil, nil) when the field is absent; the caller must close the
// returned file after the service call consumed it.
func formFileUpload(c echo.Context, field string) (*ports.FileUpload, multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		// echo wraps missing-field errors from the multipart reader too
		return nil, nil, nil
	}

	src, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}

	return &ports.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      src,
	}, src, nil
}
