package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidPath = errors.New("invalid file path")
)

// FileStorage stores attendance photos and archived report workbooks.
type FileStorage interface {
	// Upload writes the content under key and returns the stored key
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)

	// Download opens a stored file; ErrNotFound when missing
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	Delete(ctx context.Context, key string) error

	// URL returns the public URL of a stored key
	URL(key string) string

	Exists(ctx context.Context, key string) (bool, error)
}
