package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"socialfeed/internal/config"
)

// Storage issues presigned upload URLs; clients PUT image bytes directly to
// the object store, so uploads never transit this server.
type Storage interface {
	IssueUploadURL(ctx context.Context, key string) (string, error)
}

type MinIOClient struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating MinIO client: %w", err)
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

func (m *MinIOClient) IssueUploadURL(ctx context.Context, key string) (string, error) {
	url, err := m.client.PresignedPutObject(ctx, m.cfg.MinIO.BucketName, key, m.cfg.MinIO.URLExpiry)
	if err != nil {
		return "", fmt.Errorf("error presigning upload for %s: %w", key, err)
	}

	return url.String(), nil
}
