package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const archivePrefix = "documents"

// Storage keeps a copy of each processed source file.
type Storage interface {
	Archive(ctx context.Context, key, filePath string) error
	Remove(ctx context.Context, key string) error
}

type s3Archive struct {
	client     *minio.Client
	bucketName string
}

func NewS3Storage(ctx context.Context, cfg *config.Config) (Storage, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	if err := ensureBucket(ctx, client, cfg.S3BucketName); err != nil {
		return nil, err
	}

	return &s3Archive{
		client:     client,
		bucketName: cfg.S3BucketName,
	}, nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}

	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// ObjectKey is where the archived copy of fileName lives.
func ObjectKey(fileName string) string {
	return path.Join(archivePrefix, fileName)
}

// Archive streams the file at filePath into the bucket under key.
func (s *s3Archive) Archive(ctx context.Context, key, filePath string) error {
	_, err := s.client.FPutObject(ctx, s.bucketName, key, filePath, minio.PutObjectOptions{
		ContentType:  "application/pdf",
		UserMetadata: map[string]string{"source-path": filePath},
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", filePath, err)
	}

	return nil
}

// Remove deletes the archived object. A missing object is not an error.
func (s *s3Archive) Remove(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}

	return nil
}
