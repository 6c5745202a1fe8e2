package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"pet-lost-found/internal/ports/images"
)

var ErrObjectNotFound = errors.New("object not found")

// ImageStore guarda los bytes en memoria. Para dev y tests.
type ImageStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string
}

var _ images.Store = (*ImageStore)(nil)

func NewImageStore() *ImageStore {
	return &ImageStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (s *ImageStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = buf.Bytes()
	s.types[key] = contentType
	return nil
}

func (s *ImageStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return ErrObjectNotFound
	}
	delete(s.objects, key)
	delete(s.types, key)
	return nil
}

func (s *ImageStore) URL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[key]; !ok {
		return "", ErrObjectNotFound
	}
	return "memory://" + key, nil
}

// Has indica si existe el objeto.
func (s *ImageStore) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}
