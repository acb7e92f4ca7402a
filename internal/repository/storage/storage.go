package storage

import (
	"context"
	"fmt"

	"github.com/dafibh/wishflow/wishflow-backend/internal/config"
)

// New builds the image repository selected by STORAGE_DRIVER.
// It returns nil, nil when no driver is configured; image endpoints then answer 503.
func New(ctx context.Context, cfg *config.Config) (ImageRepository, error) {
	switch cfg.StorageDriver {
	case "":
		return nil, nil
	case config.StorageDriverS3:
		repo, err := NewS3ImageRepository(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.StorageDriverMinIO:
		repo, err := NewMinIOImageRepository(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
