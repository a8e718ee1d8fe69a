package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Uploader stores a file in object storage and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// MinioUploader implements Uploader against a MinIO / S3-compatible bucket
type MinioUploader struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

// MinioConfig holds the connection settings for the object store
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioUploader creates an Uploader backed by MinIO
func NewMinioUploader(cfg MinioConfig) (*MinioUploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}
	log.Println("Object storage client initialized.")
	return &MinioUploader{
		client:   client,
		endpoint: cfg.Endpoint,
		bucket:   cfg.Bucket,
		useSSL:   cfg.UseSSL,
	}, nil
}

// Upload stores the object and returns its URL
func (u *MinioUploader) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, u.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if u.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, u.endpoint, u.bucket, objectName), nil
}

// ObjectName builds a storage key scoped to the uploading user.
func ObjectName(userID uint, filename string) string {
	return fmt.Sprintf("%d/%d__%s", userID, time.Now().UnixNano(), strings.ReplaceAll(filename, " ", "_"))
}
