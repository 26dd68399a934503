package ports

import "io"

// FileUpload carries an incoming multipart file into the service layer.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// FileStore stores uploaded binaries and returns a server-relative path
// the frontend can fetch. Implementations reject non-image content and
// uploads over the size ceiling with domain.ErrInvalidUpload.
type FileStore interface {
	Save(upload FileUpload) (string, error)
	// Remove deletes a previously stored file. Callers treat failures as
	// best-effort cleanup: log and continue.
	Remove(path string) error
}
