package storage

import (
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectFromS3(t *testing.T) {
	modified := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	folder, ok := objectFromS3("resources/", minio.ObjectInfo{Key: "resources/Software Engineering/"})
	require.True(t, ok)
	assert.Equal(t, "Software Engineering", folder.Name)
	assert.True(t, folder.IsFolder())

	file, ok := objectFromS3("resources/", minio.ObjectInfo{
		Key:          "resources/x.pdf",
		Size:         2048,
		ETag:         "abc",
		LastModified: modified,
	})
	require.True(t, ok)
	assert.Equal(t, "x.pdf", file.Name)
	require.False(t, file.IsFolder())
	assert.Equal(t, int64(2048), file.Metadata.Size)
	assert.Equal(t, "abc", file.Metadata.ETag)
	assert.Equal(t, modified, file.Metadata.LastModified)

	_, ok = objectFromS3("resources/", minio.ObjectInfo{Key: "resources/"})
	assert.False(t, ok, "placeholder for the listed prefix must be dropped")
}

func TestNewS3StorageValidation(t *testing.T) {
	_, err := NewS3Storage(S3Config{AccessKey: "a", SecretKey: "b", Bucket: "c"})
	assert.EqualError(t, err, "s3 endpoint must be provided")

	_, err = NewS3Storage(S3Config{Endpoint: "localhost:9000", Bucket: "c"})
	assert.EqualError(t, err, "s3 credentials must be provided")

	_, err = NewS3Storage(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	assert.EqualError(t, err, "s3 bucket must be provided")

	s, err := NewS3Storage(S3Config{Endpoint: "https://project.example.com/", AccessKey: "a", SecretKey: "b", Bucket: "resources"})
	require.NoError(t, err)
	assert.Equal(t, "resources", s.bucket)
	assert.Equal(t, "project.example.com", s.client.EndpointURL().Host)
	assert.Equal(t, "https", s.client.EndpointURL().Scheme)
}
