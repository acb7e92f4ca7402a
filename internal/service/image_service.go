package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/repository/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"
)

const (
	MaxImageSize   = 5 * 1024 * 1024 // 5MB
	MinImageWidth  = 50
	MinImageHeight = 50
	// MaxImagePixels bounds width*height before a full decode
	MaxImagePixels = 40_000_000
	ThumbnailWidth = 200
	DisplayWidth   = 800
	JPEGQuality    = 85

	// PresignedURLExpiry is how long image links handed to clients stay valid
	PresignedURLExpiry = time.Hour
)

var (
	ErrImageTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidImageFormat        = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrImageTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrImageDimensionsTooLarge   = errors.New("image dimensions too large. Maximum 40 megapixels")
	ErrInvalidImageData          = errors.New("invalid image data")
	ErrImageStorageNotConfigured = errors.New("image storage not configured")
)

// AllowedImageFormats maps supported MIME types to a canonical extension
var AllowedImageFormats = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// AllowedExtensions maps extensions to content types
var AllowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ImageVariants are the stored renditions of every upload, smallest first
var ImageVariants = []struct {
	Name     string
	MaxWidth int
}{
	{"thumb", ThumbnailWidth},
	{"display", DisplayWidth},
	{"original", 0}, // 0 means keep original size
}

// ImageService handles image processing and storage
type ImageService struct {
	storage storage.ImageRepository
}

// NewImageService creates a new ImageService
func NewImageService(storage storage.ImageRepository) *ImageService {
	return &ImageService{storage: storage}
}

// IsEnabled indicates whether uploads/deletes are supported (storage configured).
func (s *ImageService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// ValidateImage validates image format and size
func (s *ImageService) ValidateImage(data []byte, filename string) error {
	_, err := s.validateAndDecode(data, filename)
	return err
}

// validateAndDecode validates the image and returns the decoded image
func (s *ImageService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return nil, ErrInvalidImageFormat
	}

	// Header only; a small file can declare a huge canvas
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImageData
	}
	if cfg.Width < MinImageWidth || cfg.Height < MinImageHeight {
		return nil, ErrImageTooSmall
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, ErrImageDimensionsTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImageData
	}

	return img, nil
}

// DecodeDataURL decodes a data:image/...;base64 URL into bytes and a filename
// carrying the matching extension
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(dataURL), "data:")
	if !ok {
		return nil, "", ErrInvalidImageFormat
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrInvalidImageFormat
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", ErrInvalidImageFormat
	}
	ext, ok := AllowedImageFormats[strings.ToLower(mime)]
	if !ok {
		return nil, "", ErrInvalidImageFormat
	}

	// base64 inflates by 4/3; reject oversized payloads before decoding
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageSize+3 {
		return nil, "", ErrImageTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrInvalidImageData
	}
	return data, "upload" + ext, nil
}

// ProcessAndUpload resizes an item image and uploads all variants.
// It returns the base path the variants were stored under.
func (s *ImageService) ProcessAndUpload(ctx context.Context, userID, itemID uuid.UUID, data []byte, filename string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrImageStorageNotConfigured
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return "", err
	}

	basePath := storage.ItemImageBasePath(userID, itemID)
	var uploaded []string

	for _, variant := range ImageVariants {
		var processed image.Image
		if variant.MaxWidth > 0 && img.Bounds().Dx() > variant.MaxWidth {
			// Resize maintaining aspect ratio
			processed = imaging.Resize(img, variant.MaxWidth, 0, imaging.Lanczos)
		} else {
			processed = img
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			s.cleanup(ctx, uploaded)
			return "", fmt.Errorf("failed to encode image: %w", err)
		}

		objectPath := storage.VariantPath(basePath, variant.Name)
		if _, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
			s.cleanup(ctx, uploaded)
			return "", fmt.Errorf("failed to upload %s variant: %w", variant.Name, err)
		}
		uploaded = append(uploaded, objectPath)
	}

	return basePath, nil
}

// cleanup removes variants uploaded during a failed operation
func (s *ImageService) cleanup(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	if err := s.storage.DeleteMany(ctx, paths); err != nil {
		log.Warn().Err(err).Int("objects", len(paths)).Msg("Failed to clean up partial upload")
	}
}

// DeleteAllVariants removes every variant of the given images in one batch.
// Empty base paths are skipped.
func (s *ImageService) DeleteAllVariants(ctx context.Context, basePaths ...string) error {
	objects := make([]string, 0, len(basePaths)*len(ImageVariants))
	for _, basePath := range basePaths {
		if basePath == "" {
			continue
		}
		for _, variant := range ImageVariants {
			objects = append(objects, storage.VariantPath(basePath, variant.Name))
		}
	}
	if len(objects) == 0 {
		return nil
	}
	if !s.IsEnabled() {
		return ErrImageStorageNotConfigured
	}

	if err := s.storage.DeleteMany(ctx, objects); err != nil {
		return fmt.Errorf("failed to delete image variants: %w", err)
	}
	return nil
}

// URLs returns presigned links for the variants under basePath
func (s *ImageService) URLs(ctx context.Context, basePath string) (*domain.ImageURLs, error) {
	if basePath == "" || !s.IsEnabled() {
		return nil, nil
	}

	urls := make(map[string]string, len(ImageVariants))
	for _, variant := range ImageVariants {
		u, err := s.storage.GeneratePresignedURL(ctx, storage.VariantPath(basePath, variant.Name), PresignedURLExpiry)
		if err != nil {
			return nil, err
		}
		urls[variant.Name] = u
	}

	return &domain.ImageURLs{
		Thumbnail: urls["thumb"],
		Display:   urls["display"],
		Original:  urls["original"],
	}, nil
}

// GetContentType returns the content type for a file extension
func GetContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := AllowedExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// IsValidImageFormat checks if a content type is a valid image format
func IsValidImageFormat(contentType string) bool {
	_, ok := AllowedImageFormats[contentType]
	return ok
}
