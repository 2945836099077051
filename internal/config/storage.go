package config

import (
	"context"
	"log"

	"bu-ethesis/internal/adapters/storage"
)

// OpenAttachmentStore builds the configured attachment backend
func OpenAttachmentStore(ctx context.Context, cfg *Config) (storage.Store, error) {
	if cfg.Storage.Backend == "s3" {
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			Endpoint:  cfg.Storage.S3Endpoint,
			AccessKey: cfg.Storage.S3AccessKey,
			SecretKey: cfg.Storage.S3SecretKey,
			Prefix:    cfg.Storage.S3Prefix,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("✅ Attachment store: s3://%s/%s", cfg.Storage.S3Bucket, cfg.Storage.S3Prefix)
		return store, nil
	}

	store, err := storage.NewLocalStore(cfg.Upload.Dir)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Attachment store: %s", store.Dir())
	return store, nil
}
