package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"stockfeed/importer/internal/config"
	"stockfeed/importer/internal/domain"
)

const catalogContentType = "text/csv"

// Uploader delivers the finished catalog export to the object store.
type Uploader interface {
	Upload(ctx context.Context, objectKey string, data []byte) error
}

type storeUploader struct {
	client *miniogo.Client
	bucket string
}

// NewUploader creates the object-store uploader, or a no-op when the store
// is not configured for this deployment.
func NewUploader(cfg config.StoreConfig) (Uploader, error) {
	if !cfg.Enabled {
		log.Info("Catalog upload disabled (object store not configured)")
		return &noopUploader{}, nil
	}

	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	return &storeUploader{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Upload writes the object, overwriting any previous run's artifact under
// the same key.
func (u *storeUploader) Upload(ctx context.Context, objectKey string, data []byte) error {
	_, err := u.client.PutObject(
		ctx,
		u.bucket,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		miniogo.PutObjectOptions{ContentType: catalogContentType},
	)
	if err != nil {
		return fmt.Errorf("%w: failed to upload %s: %v", domain.ErrDeliver, objectKey, err)
	}

	log.Infof("✅ Uploaded %s (%d bytes)", objectKey, len(data))
	return nil
}

// ObjectKey builds the supplier-namespaced object path for an export file.
func ObjectKey(basePath, supplier, fileName string) string {
	return path.Join(basePath, supplier, fileName)
}

type noopUploader struct{}

func (u *noopUploader) Upload(_ context.Context, objectKey string, _ []byte) error {
	log.Debugf("Skipping upload of %s, object store disabled", objectKey)
	return nil
}
