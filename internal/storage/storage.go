package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/reslink/internal/config"
)

// ObjectMetadata is what a backend knows about a stored file.
type ObjectMetadata struct {
	Size         int64
	ContentType  string
	LastModified time.Time
	ETag         string
}

// Object is one direct child of a listed prefix. Folders carry no metadata.
type Object struct {
	Name     string
	Metadata *ObjectMetadata
}

// IsFolder reports whether the entry should be descended into.
func (o Object) IsFolder() bool {
	return o.Metadata == nil
}

// ObjectStorage lists the direct children of a prefix ("" is the bucket root).
type ObjectStorage interface {
	List(ctx context.Context, prefix string) ([]Object, error)
}

// New builds the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStorage, error) {
	switch cfg.Backend {
	case config.BackendS3:
		return NewS3Storage(S3Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			UseSSL:    cfg.UseSSL,
		})
	case config.BackendDrive:
		return NewDriveStorage(ctx, DriveConfig{
			CredentialsJSON: cfg.DriveCredentialsJSON,
			RootFolderID:    cfg.DriveRootFolderID,
		})
	case config.BackendFS:
		return NewFSStorage(cfg.FSRoot)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
