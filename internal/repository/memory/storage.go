package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/storage"
)

// Storage is a map-backed storage.FileStorage.
type Storage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewStorage() *Storage {
	return &Storage{files: map[string][]byte{}}
}

func (s *Storage) Upload(_ context.Context, r io.Reader, key string, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	return key, nil
}

func (s *Storage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	return nil
}

func (s *Storage) URL(key string) string {
	return "http://files.test/" + key
}

func (s *Storage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[key]
	return ok, nil
}

// Keys lists stored keys.
func (s *Storage) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.files))
	for k := range s.files {
		keys = append(keys, k)
	}
	return keys
}
