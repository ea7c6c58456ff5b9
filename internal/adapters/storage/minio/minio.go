package minio

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"imgstudio/internal/config"
	"imgstudio/internal/core/domain"
	"io"
	"log/slog"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for S3 compatible object storage. In production it talks to
// Cloud Storage through the interoperability endpoint with HMAC keys.
type Adapter struct {
	client *minio.Client
	config config.StorageConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// SignedURL generates a time limited read url for a gs:// uri
func (a *Adapter) SignedURL(ctx context.Context, uri string) (string, error) {
	bucket, key, err := domain.ParseStorageURI(uri)
	if err != nil {
		return "", err
	}

	signedURL, err := a.client.PresignedGetObject(ctx, bucket, key, a.config.SignedURLExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s: %w", uri, err)
	}
	return signedURL.String(), nil
}

// Download reads a whole object and returns it base64 encoded
func (a *Adapter) Download(ctx context.Context, uri string) (string, error) {
	bucket, key, err := domain.ParseStorageURI(uri)
	if err != nil {
		return "", err
	}

	object, err := a.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", a.mapError(uri, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return "", a.mapError(uri, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Upload writes data under destination in the configured bucket and returns its gs:// uri
func (a *Adapter) Upload(ctx context.Context, data []byte, destination string, contentType string) (string, error) {
	_, err := a.client.PutObject(ctx, a.config.Bucket, destination, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	a.logger.Info("object uploaded",
		slog.String("key", destination),
		slog.String("bucket", a.config.Bucket),
		slog.Int("size", len(data)))

	return domain.StorageURI(a.config.Bucket, destination), nil
}

// Delete deletes an object from storage
func (a *Adapter) Delete(ctx context.Context, uri string) error {
	bucket, key, err := domain.ParseStorageURI(uri)
	if err != nil {
		return err
	}

	if err := a.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return a.mapError(uri, err)
	}

	a.logger.Info("object deleted",
		slog.String("key", key),
		slog.String("bucket", bucket))

	return nil
}

func (a *Adapter) mapError(uri string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", domain.ErrObjectNotFound, uri)
	}
	return fmt.Errorf("storage request for %s failed: %w", uri, err)
}
