package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"pitchdeck/internal/config"
)

// Storage keeps asset blobs. Object names are opaque to callers.
type Storage interface {
	Upload(ctx context.Context, kind, fileName, contentType string, file io.Reader, size int64) (string, string, error)
	Delete(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.MinIO.BucketName, err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.MinIO.BucketName, err)
		}
		log.Info().Str("bucket", cfg.MinIO.BucketName).Msg("created asset bucket")
	}

	return &MinIOClient{
		client:    client,
		bucket:    cfg.MinIO.BucketName,
		publicURL: strings.TrimSuffix(cfg.MinIO.PublicURL, "/"),
	}, nil
}

func (m *MinIOClient) Upload(ctx context.Context, kind, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	now := time.Now()
	objectName := buildObjectName(kind, fileName, now)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"asset-kind":        kind,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("upload to minio: %w", err)
	}

	return objectName, objectURL(m.publicURL, m.bucket, objectName), nil
}

func (m *MinIOClient) Delete(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("delete from minio: %w", err)
	}
	return nil
}

// buildObjectName lays objects out as <kind>/<year>/<month>/<uuid><ext>.
func buildObjectName(kind, fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if kind == "" {
		kind = "file"
	}

	return fmt.Sprintf("%s/%d/%02d/%s%s",
		kind,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		ext)
}

func objectURL(publicURL, bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", publicURL, bucket, objectName)
}
