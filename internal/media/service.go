package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"townkeeper/internal/catalog"
)

const cacheTTL = 30 * time.Minute

type Service struct {
	s3Client *S3Client

	mu    sync.Mutex
	cache map[string]cachedImage
}

type cachedImage struct {
	data        []byte
	contentType string
	cachedAt    time.Time
}

func NewService(s3Client *S3Client) *Service {
	return &Service{
		s3Client: s3Client,
		cache:    make(map[string]cachedImage),
	}
}

// GetEntityImageData returns the artwork for an entity, falling back to the
// category default and finally a placeholder so the endpoint never 500s on
// a missing asset.
func (s *Service) GetEntityImageData(ctx context.Context, category catalog.Category, name string) ([]byte, string, error) {
	key, ok := s.EntityImageFilename(category, name)
	if !ok {
		return nil, "", fmt.Errorf("entity name not found: %s", name)
	}

	if data, contentType, ok := s.cachedData(key); ok {
		return data, contentType, nil
	}

	body, contentType, err := s.s3Client.GetObject(ctx, key)
	if err != nil {
		log.Printf("⚠️ Entity image %s not found, trying category default", key)

		fallbackKey := fmt.Sprintf("%s/default.png", category)
		body, contentType, err = s.s3Client.GetObject(ctx, fallbackKey)
		if err != nil {
			log.Printf("❌ Even %s not found, using placeholder", fallbackKey)
			return s.getDefaultPlaceholder(), "image/jpeg", nil
		}
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read entity image data: %w", err)
	}

	s.storeCache(key, data, contentType)
	return data, contentType, nil
}

// GetImageData fetches a raw asset by key, with cache.
func (s *Service) GetImageData(ctx context.Context, key string) ([]byte, string, error) {
	if data, contentType, ok := s.cachedData(key); ok {
		return data, contentType, nil
	}

	body, contentType, err := s.s3Client.GetObject(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get image: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image data: %w", err)
	}

	s.storeCache(key, data, contentType)
	return data, contentType, nil
}

func (s *Service) cachedData(key string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cached, ok := s.cache[key]
	if !ok {
		return nil, "", false
	}
	if time.Since(cached.cachedAt) >= cacheTTL {
		delete(s.cache, key)
		return nil, "", false
	}
	return cached.data, cached.contentType, true
}

func (s *Service) storeCache(key string, data []byte, contentType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cachedImage{data: data, contentType: contentType, cachedAt: time.Now()}
}

// CleanupCache drops expired entries.
func (s *Service) CleanupCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for key, cached := range s.cache {
		if now.Sub(cached.cachedAt) > cacheTTL {
			delete(s.cache, key)
		}
	}
}

// getDefaultPlaceholder returns a 1x1 pixel JPEG.
func (s *Service) getDefaultPlaceholder() []byte {
	return []byte{
		0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00, 0x01, 0x01, 0x01, 0x00, 0x48,
		0x00, 0x48, 0x00, 0x00, 0xFF, 0xDB, 0x00, 0x43, 0x00, 0x08, 0x06, 0x06, 0x07, 0x06, 0x05, 0x08,
		0x07, 0x07, 0x07, 0x09, 0x09, 0x08, 0x0A, 0x0C, 0x14, 0x0D, 0x0C, 0x0B, 0x0B, 0x0C, 0x19, 0x12,
		0x13, 0x0F, 0x14, 0x1D, 0x1A, 0x1F, 0x1E, 0x1D, 0x1A, 0x1C, 0x1C, 0x20, 0x24, 0x2E, 0x27, 0x20,
		0x22, 0x2C, 0x23, 0x1C, 0x1C, 0x28, 0x37, 0x29, 0x2C, 0x30, 0x31, 0x34, 0x34, 0x34, 0x1F, 0x27,
		0x39, 0x3D, 0x38, 0x32, 0x3C, 0x2E, 0x33, 0x34, 0x32, 0xFF, 0xC0, 0x00, 0x11, 0x08, 0x00, 0x01,
		0x00, 0x01, 0x01, 0x01, 0x11, 0x00, 0x02, 0x11, 0x01, 0x03, 0x11, 0x01, 0xFF, 0xC4, 0x00, 0x14,
		0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x08, 0xFF, 0xC4, 0x00, 0x14, 0x10, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xDA, 0x00, 0x0C, 0x03, 0x01, 0x00, 0x02,
		0x11, 0x03, 0x11, 0x00, 0x3F, 0x00, 0x8A, 0xFF, 0xD9,
	}
}
