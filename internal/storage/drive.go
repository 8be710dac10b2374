package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const driveFolderMimeType = "application/vnd.google-apps.folder"

// DriveConfig points the Drive backend at a service account and a root folder.
type DriveConfig struct {
	CredentialsJSON string
	RootFolderID    string
}

// DriveStorage implements ObjectStorage over a Google Drive folder tree. Path
// segments are folder names below RootFolderID. Drive allows sibling folders
// with the same name; they are merged into one path.
type DriveStorage struct {
	srv       *drive.Service
	rootID    string
	folderIDs map[string][]string
}

// NewDriveStorage authenticates with the service account in cfg. When opts are
// given they replace the credentials entirely.
func NewDriveStorage(ctx context.Context, cfg DriveConfig, opts ...option.ClientOption) (*DriveStorage, error) {
	if len(opts) == 0 {
		// Parse credentials from JSON
		jwt, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJSON), drive.DriveReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse drive credentials: %w", err)
		}
		opts = []option.ClientOption{option.WithHTTPClient(jwt.Client(ctx))}
	}

	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create drive client: %w", err)
	}

	rootID := cfg.RootFolderID
	if rootID == "" {
		rootID = "root"
	}

	return &DriveStorage{
		srv:       srv,
		rootID:    rootID,
		folderIDs: map[string][]string{"": {rootID}},
	}, nil
}

// List returns the non-trashed children of every folder at prefix. A child
// folder name appears once however many folders carry it. A missing prefix
// lists as empty.
func (s *DriveStorage) List(ctx context.Context, prefix string) ([]Object, error) {
	prefix = strings.Trim(prefix, "/")
	parentIDs, err := s.findFolders(ctx, prefix)
	if err != nil {
		return nil, err
	}

	results := make([]Object, 0)
	children := make(map[string][]string)
	for _, parentID := range parentIDs {
		err = s.srv.Files.List().
			Q(fmt.Sprintf("'%s' in parents and trashed=false", escapeDriveQuery(parentID))).
			Fields("nextPageToken, files(id, name, mimeType, modifiedTime, size, md5Checksum)").
			Pages(ctx, func(page *drive.FileList) error {
				for _, f := range page.Files {
					if f.MimeType == driveFolderMimeType {
						childPath := path.Join(prefix, f.Name)
						if _, seen := children[childPath]; !seen {
							results = append(results, Object{Name: f.Name})
						}
						children[childPath] = append(children[childPath], f.Id)
						continue
					}
					results = append(results, Object{
						Name: f.Name,
						Metadata: &ObjectMetadata{
							Size:         f.Size,
							ContentType:  f.MimeType,
							LastModified: parseDriveTime(f.ModifiedTime),
							ETag:         f.Md5Checksum,
						},
					})
				}
				return nil
			})
		if err != nil {
			return nil, fmt.Errorf("drive list %q failed: %w", prefix, err)
		}
	}

	for childPath, ids := range children {
		s.folderIDs[childPath] = ids
	}
	return results, nil
}

// findFolders resolves a slash separated folder path to the ids of every
// folder it names, reusing IDs learned from earlier listings. A path that does
// not exist resolves to no ids.
func (s *DriveStorage) findFolders(ctx context.Context, folderPath string) ([]string, error) {
	if ids, ok := s.folderIDs[folderPath]; ok {
		return ids, nil
	}

	currentPath := ""
	currentIDs := []string{s.rootID}
	for _, folder := range strings.Split(folderPath, "/") {
		if folder == "" {
			continue
		}
		currentPath = path.Join(currentPath, folder)
		if ids, ok := s.folderIDs[currentPath]; ok {
			currentIDs = ids
			continue
		}

		var next []string
		for _, parentID := range currentIDs {
			err := s.srv.Files.List().
				Q(fmt.Sprintf("'%s' in parents and name='%s' and mimeType='%s' and trashed=false",
					escapeDriveQuery(parentID), escapeDriveQuery(folder), driveFolderMimeType)).
				Fields("nextPageToken, files(id, name)").
				Pages(ctx, func(page *drive.FileList) error {
					for _, f := range page.Files {
						next = append(next, f.Id)
					}
					return nil
				})
			if err != nil {
				return nil, fmt.Errorf("error finding drive folder %s: %w", currentPath, err)
			}
		}
		if len(next) == 0 {
			return nil, nil
		}

		currentIDs = next
		s.folderIDs[currentPath] = next
	}

	return currentIDs, nil
}

func escapeDriveQuery(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}

func parseDriveTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

var _ ObjectStorage = (*DriveStorage)(nil)
