// Package storage implements the upload capability on the local
// filesystem: store(binary) -> server-relative path, best-effort remove.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// MaxUploadSize is the ceiling for a single image upload.
const MaxUploadSize = 5 << 20 // 5 MiB

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// DiskStore writes uploads under root and serves them back as paths below
// urlPrefix (e.g. /uploads). Generated filenames are uuid-based, so
// concurrent uploads never collide.
type DiskStore struct {
	root      string
	urlPrefix string
}

func NewDiskStore(root, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &DiskStore{root: root, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Save validates the upload and writes it under a generated filename,
// returning the server-relative path.
func (d *DiskStore) Save(upload ports.FileUpload) (string, error) {
	if upload.Size > MaxUploadSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidUpload, MaxUploadSize)
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: extension %q not allowed", domain.ErrInvalidUpload, ext)
	}
	if ct := upload.ContentType; ct != "" && !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%w: content type %q not allowed", domain.ErrInvalidUpload, ct)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(d.root, name))
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer dst.Close()

	// LimitReader guards against a lying Content-Length.
	written, err := io.Copy(dst, io.LimitReader(upload.Reader, MaxUploadSize+1))
	if err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	if written > MaxUploadSize {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidUpload, MaxUploadSize)
	}

	return d.urlPrefix + "/" + name, nil
}

// Remove deletes a previously stored file given its server-relative path.
// Paths outside the store's prefix are ignored.
func (d *DiskStore) Remove(p string) error {
	name := path.Base(strings.TrimPrefix(p, d.urlPrefix+"/"))
	if name == "" || name == "." || name == "/" {
		return nil
	}
	if err := os.Remove(filepath.Join(d.root, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove file: %w", err)
	}
	return nil
}

// Root returns the directory uploads are written to, for static serving.
func (d *DiskStore) Root() string { return d.root }
