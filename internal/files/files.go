package files

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrFileEmpty is returned when no file was uploaded.
	ErrFileEmpty = errors.New("file is empty")
	// ErrImageNotFound is returned when a stored image name does not resolve.
	ErrImageNotFound = errors.New("image not found")
)

var validExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
}

// extension returns the subtype of the part's declared content type.
func extension(header *multipart.FileHeader) string {
	contentType := header.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	_, subtype, found := strings.Cut(strings.TrimSpace(contentType), "/")
	if !found {
		return ""
	}
	return strings.ToLower(subtype)
}

// Filter reports whether the upload is an accepted image. Unsupported types
// are rejected without an error.
func Filter(header *multipart.FileHeader) (bool, error) {
	if header == nil {
		return false, ErrFileEmpty
	}
	_, ok := validExtensions[extension(header)]
	return ok, nil
}

// NewName returns a fresh stored name keeping the upload's extension.
func NewName(header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", ErrFileEmpty
	}
	return fmt.Sprintf("%s.%s", uuid.NewString(), extension(header)), nil
}

// Store keeps uploaded product images on local disk.
type Store struct {
	dir     string
	hostAPI string
}

// NewStore creates the upload directory if needed.
func NewStore(dir, hostAPI string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir, hostAPI: strings.TrimRight(hostAPI, "/")}, nil
}

// Save writes the upload under a fresh name and returns its public URL.
func (s *Store) Save(header *multipart.FileHeader) (string, error) {
	name, err := NewName(header)
	if err != nil {
		return "", err
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return s.URL(name), nil
}

// URL is the public address a stored image is served from.
func (s *Store) URL(name string) string {
	return fmt.Sprintf("%s/files/product/%s", s.hostAPI, name)
}

// Path resolves a stored image name to a file on disk.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ErrImageNotFound
	}
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", ErrImageNotFound
	}
	return path, nil
}
