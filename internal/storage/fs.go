package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// FSStorage serves a directory tree as a bucket. Directories are folders.
type FSStorage struct {
	fs afero.Fs
}

// NewFSStorage roots an FSStorage at dir on the local disk.
func NewFSStorage(dir string) (*FSStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("fs root must be provided")
	}
	osFs := afero.NewOsFs()
	ok, err := afero.DirExists(osFs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat fs root %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("fs root %s is not a directory", dir)
	}
	return NewFSStorageFrom(afero.NewBasePathFs(osFs, dir)), nil
}

// NewFSStorageFrom wraps an existing afero filesystem.
func NewFSStorageFrom(fs afero.Fs) *FSStorage {
	return &FSStorage{fs: fs}
}

// List returns the entries of the directory at prefix, sorted by name. A
// missing directory lists as empty, like an unused S3 prefix.
func (s *FSStorage) List(ctx context.Context, prefix string) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := strings.Trim(prefix, "/")
	if dir == "" {
		dir = "/"
	}

	infos, err := afero.ReadDir(s.fs, dir)
	if errors.Is(err, os.ErrNotExist) {
		return []Object{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fs list %s failed: %w", dir, err)
	}

	results := make([]Object, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			results = append(results, Object{Name: info.Name()})
			continue
		}
		results = append(results, Object{
			Name: info.Name(),
			Metadata: &ObjectMetadata{
				Size:         info.Size(),
				ContentType:  mime.TypeByExtension(path.Ext(info.Name())),
				LastModified: info.ModTime(),
			},
		})
	}
	return results, nil
}

var _ ObjectStorage = (*FSStorage)(nil)
