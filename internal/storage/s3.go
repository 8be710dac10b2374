package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config encapsulates the connection info for an S3-compatible bucket.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// S3Storage implements ObjectStorage for S3-compatible services.
type S3Storage struct {
	client *minio.Client
	bucket string
}

// NewS3Storage builds an S3Storage backed by minio-go.
func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("s3 credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket must be provided")
	}

	// minio wants a bare host; the scheme decides Secure when present
	endpoint := strings.TrimPrefix(cfg.Endpoint, "//")
	secure := cfg.UseSSL
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = strings.TrimPrefix(endpoint, "https://")
		secure = true
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = strings.TrimPrefix(endpoint, "http://")
		secure = false
	}
	endpoint = strings.TrimSuffix(endpoint, "/")

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	return &S3Storage{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// List returns the objects and common prefixes directly under prefix.
func (s *S3Storage) List(ctx context.Context, prefix string) ([]Object, error) {
	listPrefix := strings.Trim(prefix, "/")
	if listPrefix != "" {
		listPrefix += "/"
	}

	objectsCh := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    listPrefix,
		Recursive: false,
	})

	results := make([]Object, 0)
	for obj := range objectsCh {
		if obj.Err != nil {
			return nil, fmt.Errorf("s3 list %s failed: %w", listPrefix, obj.Err)
		}
		if entry, ok := objectFromS3(listPrefix, obj); ok {
			results = append(results, entry)
		}
	}
	return results, nil
}

// objectFromS3 maps a listing entry to an Object. Common prefixes come back
// with a trailing slash and no etag; zero-byte placeholders for the listed
// prefix itself are dropped.
func objectFromS3(listPrefix string, obj minio.ObjectInfo) (Object, bool) {
	rel := strings.TrimPrefix(obj.Key, listPrefix)
	if rel == "" || rel == "/" {
		return Object{}, false
	}

	if strings.HasSuffix(rel, "/") {
		return Object{Name: strings.TrimSuffix(rel, "/")}, true
	}

	return Object{
		Name: rel,
		Metadata: &ObjectMetadata{
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
			ETag:         obj.ETag,
		},
	}, true
}

var _ ObjectStorage = (*S3Storage)(nil)
