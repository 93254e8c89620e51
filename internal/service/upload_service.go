package service

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperr "himti/internal/errors"
	"himti/internal/metrics"
	"himti/internal/storage"
)

const (
	MaxUploadSize     = 5 << 20
	compressThreshold = 3 << 20
	uploadFolder      = "himti-api"
)

var uploadTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var contentTypeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageCompressor re-encodes an image into a smaller payload.
type ImageCompressor interface {
	Compress(data []byte) ([]byte, string, error)
}

// UploadService stores media files and returns their public URL.
type UploadService interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type uploadService struct {
	store      storage.Storage
	compressor ImageCompressor
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// NewUploadService creates a new upload service. m may be nil.
func NewUploadService(store storage.Storage, compressor ImageCompressor, m *metrics.Metrics, log *zap.Logger) UploadService {
	return &uploadService{store: store, compressor: compressor, metrics: m, log: log}
}

func (s *uploadService) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperr.BadRequest("No file uploaded")
	}
	if len(data) > MaxUploadSize {
		return "", apperr.BadRequest("File too large. Maximum size is 5MB")
	}
	contentType, ok := uploadTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", apperr.BadRequest("Only jpg, jpeg, png, gif and webp files are allowed")
	}
	if sniffed := http.DetectContentType(data); !strings.HasPrefix(sniffed, "image/") {
		return "", apperr.BadRequest("File content is not an image")
	}

	if len(data) > compressThreshold {
		data, contentType = s.shrink(filename, data, contentType)
	}

	key := storage.Key(uploadFolder, uuid.NewString()+contentTypeExt[contentType])
	url, err := s.store.Put(ctx, key, data, contentType)
	s.metrics.ObserveUpload(len(data), err)
	if err != nil {
		s.log.Error("store upload", zap.String("key", key), zap.Error(err))
		return "", apperr.Internal("Failed to upload file", err)
	}
	return url, nil
}

// shrink compresses data, keeping the original whenever compression fails or does not help.
func (s *uploadService) shrink(filename string, data []byte, contentType string) ([]byte, string) {
	compressed, compressedType, err := s.compressor.Compress(data)
	if err != nil {
		s.log.Warn("image compression failed, storing original", zap.String("file", filename), zap.Error(err))
		return data, contentType
	}
	if len(compressed) >= len(data) {
		return data, contentType
	}
	s.log.Info("image compressed",
		zap.String("file", filename),
		zap.Int("original_bytes", len(data)),
		zap.Int("compressed_bytes", len(compressed)),
	)
	return compressed, compressedType
}
