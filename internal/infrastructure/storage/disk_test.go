package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

func testStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir(), "/uploads/")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func upload(name, contentType, body string) ports.FileUpload {
	return ports.FileUpload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Reader:      strings.NewReader(body),
	}
}

func TestSaveWritesFileAndReturnsPath(t *testing.T) {
	store := testStore(t)

	p, err := store.Save(upload("pikachu.PNG", "image/png", "fake-png-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(p, "/uploads/") || !strings.HasSuffix(p, ".png") {
		t.Fatalf("unexpected path %q", p)
	}
	if strings.Contains(p, "pikachu") {
		t.Fatalf("stored name must not reuse the client filename: %q", p)
	}

	name := strings.TrimPrefix(p, "/uploads/")
	data, err := os.ReadFile(filepath.Join(store.Root(), name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "fake-png-bytes" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store := testStore(t)

	a, err := store.Save(upload("same.png", "image/png", "a"))
	if err != nil {
		t.Fatalf("save a: %v", err)
	}
	b, err := store.Save(upload("same.png", "image/png", "b"))
	if err != nil {
		t.Fatalf("save b: %v", err)
	}
	if a == b {
		t.Fatal("two uploads of the same filename must not collide")
	}
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	store := testStore(t)

	for _, name := range []string{"script.exe", "page.html", "noext"} {
		_, err := store.Save(upload(name, "image/png", "x"))
		if !errors.Is(err, domain.ErrInvalidUpload) {
			t.Errorf("%s: expected ErrInvalidUpload, got %v", name, err)
		}
	}
}

func TestSaveRejectsNonImageContentType(t *testing.T) {
	store := testStore(t)

	_, err := store.Save(upload("fine.png", "text/html", "x"))
	if !errors.Is(err, domain.ErrInvalidUpload) {
		t.Fatalf("expected ErrInvalidUpload, got %v", err)
	}
}

func TestSaveRejectsOversizedDeclaredSize(t *testing.T) {
	store := testStore(t)

	u := upload("big.png", "image/png", "x")
	u.Size = MaxUploadSize + 1
	if _, err := store.Save(u); !errors.Is(err, domain.ErrInvalidUpload) {
		t.Fatalf("expected ErrInvalidUpload, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	store := testStore(t)

	p, err := store.Save(upload("ball.png", "image/png", "x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Remove(p); err != nil {
		t.Fatalf("remove: %v", err)
	}
	name := strings.TrimPrefix(p, "/uploads/")
	if _, err := os.Stat(filepath.Join(store.Root(), name)); !os.IsNotExist(err) {
		t.Fatal("file should be gone")
	}

	// Removing it again is not an error.
	if err := store.Remove(p); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestRemoveIgnoresTraversal(t *testing.T) {
	store := testStore(t)

	marker := filepath.Join(store.Root(), "..", "marker.txt")
	if err := os.WriteFile(marker, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	if err := store.Remove("/uploads/../marker.txt"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatal("path traversal must not escape the upload dir")
	}
}
