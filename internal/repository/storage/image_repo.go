package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageRepository defines the interface for image storage operations.
// Objects are private; clients read them through presigned URLs.
type ImageRepository interface {
	// Upload stores data under objectPath and returns the object path
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	// DeleteMany removes objects in as few round trips as the backend allows.
	// Missing objects are not an error.
	DeleteMany(ctx context.Context, objectPaths []string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// MinIOImageRepository implements ImageRepository using MinIO
type MinIOImageRepository struct {
	client     *minio.Client
	bucketName string
}

// NewMinIOImageRepository creates a new MinIO image repository
func NewMinIOImageRepository(ctx context.Context, cfg config.MinIOConfig) (*MinIOImageRepository, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	repo := &MinIOImageRepository{
		client:     client,
		bucketName: cfg.BucketName,
	}

	if err := repo.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

// ensureBucket creates the bucket if it doesn't exist. The bucket stays private.
func (r *MinIOImageRepository) ensureBucket(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := r.client.MakeBucket(ctx, r.bucketName, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload uploads data to MinIO storage and returns the object path
func (r *MinIOImageRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	body, size, err := sizedBody(data, size)
	if err != nil {
		return "", err
	}

	_, err = r.client.PutObject(ctx, r.bucketName, objectPath, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return objectPath, nil
}

// Delete removes an object from MinIO storage
func (r *MinIOImageRepository) Delete(ctx context.Context, objectPath string) error {
	err := r.client.RemoveObject(ctx, r.bucketName, objectPath, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// DeleteMany streams the paths through the multi-object delete API
func (r *MinIOImageRepository) DeleteMany(ctx context.Context, objectPaths []string) error {
	paths := uniquePaths(objectPaths)
	if len(paths) == 0 {
		return nil
	}

	objects := make(chan minio.ObjectInfo, len(paths))
	for _, p := range paths {
		objects <- minio.ObjectInfo{Key: p}
	}
	close(objects)

	var errs []error
	for res := range r.client.RemoveObjects(ctx, r.bucketName, objects, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("delete %s: %w", res.ObjectName, res.Err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to delete %d of %d objects: %w", len(errs), len(paths), errors.Join(errs...))
	}
	return nil
}

// GeneratePresignedURL generates a presigned URL for temporary access
func (r *MinIOImageRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	presignedURL, err := r.client.PresignedGetObject(ctx, r.bucketName, objectPath, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return presignedURL.String(), nil
}

// ItemImageBasePath returns a fresh base path for an item image.
// Variants are stored as <base>_<variant>.jpg.
func ItemImageBasePath(userID, itemID uuid.UUID) string {
	return path.Join("users", userID.String(), "items", itemID.String(), uuid.New().String())
}

// VariantPath returns the object path of one variant of an image
func VariantPath(basePath, variant string) string {
	return basePath + "_" + variant + ".jpg"
}

// sizedBody buffers data when its size is unknown; both backends need a length
func sizedBody(data io.Reader, size int64) (io.Reader, int64, error) {
	if size >= 0 {
		return data, size, nil
	}
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read data: %w", err)
	}
	return bytes.NewReader(buf), int64(len(buf)), nil
}

// uniquePaths drops blanks and duplicates, keeping order
func uniquePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
