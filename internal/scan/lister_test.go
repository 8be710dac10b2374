package scan

import (
	"context"
	"errors"
	"path"
	"sort"
	"strings"
	"testing"

	"github.com/andresuchdata/reslink/internal/storage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// treeStore serves a fixed folder tree: keys are prefixes, values children.
type treeStore struct {
	tree  map[string][]storage.Object
	calls []string
	fail  map[string]error
}

func (s *treeStore) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	s.calls = append(s.calls, prefix)
	if err := s.fail[prefix]; err != nil {
		return nil, err
	}
	return s.tree[prefix], nil
}

func folder(name string) storage.Object {
	return storage.Object{Name: name}
}

func file(name string) storage.Object {
	return storage.Object{Name: name, Metadata: &storage.ObjectMetadata{Size: 1}}
}

func TestListFilesDepthFirstOrder(t *testing.T) {
	store := &treeStore{tree: map[string][]storage.Object{
		"resources": {
			folder("a"),
			file("top.pdf"),
			folder("b"),
		},
		"resources/a": {
			file("a1.pdf"),
			folder("deep"),
			file("a2.pdf"),
		},
		"resources/a/deep": {
			file("d.pdf"),
		},
		"resources/b": {
			file("b.pdf"),
		},
	}}

	files, err := NewLister(store, 0).ListFiles(context.Background(), "resources")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"resources/a/a1.pdf",
		"resources/a/deep/d.pdf",
		"resources/a/a2.pdf",
		"resources/top.pdf",
		"resources/b/b.pdf",
	}, files)
	assert.Equal(t, []string{"resources", "resources/a", "resources/a/deep", "resources/b"}, store.calls)
}

func TestListFilesFiltersNonPDFAndFolders(t *testing.T) {
	store := &treeStore{tree: map[string][]storage.Object{
		"": {
			file("notes.txt"),
			file("scan.PDF"),
			file("lecture.pdf"),
			folder("empty.pdf"),
			file("archive.pdf.zip"),
		},
	}}

	files, err := NewLister(store, 0).ListFiles(context.Background(), "")
	require.NoError(t, err)

	// root listing joins without a leading slash; a folder named *.pdf is descended, not returned
	assert.Equal(t, []string{"lecture.pdf"}, files)
	assert.Equal(t, []string{"", "empty.pdf"}, store.calls)
}

func TestListFilesPropagatesBackendError(t *testing.T) {
	boom := errors.New("permission denied")
	store := &treeStore{
		tree: map[string][]storage.Object{
			"resources": {folder("a"), file("x.pdf")},
		},
		fail: map[string]error{"resources/a": boom},
	}

	files, err := NewLister(store, 0).ListFiles(context.Background(), "resources")
	assert.Nil(t, files)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `failed to list "resources/a"`)
}

func TestListFilesMaxDepth(t *testing.T) {
	store := &treeStore{tree: map[string][]storage.Object{
		"r":     {folder("a"), file("r.pdf")},
		"r/a":   {folder("b"), file("a.pdf")},
		"r/a/b": {file("b.pdf")},
	}}

	files, err := NewLister(store, 1).ListFiles(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, []string{"r/a/a.pdf", "r/r.pdf"}, files)
	assert.NotContains(t, store.calls, "r/a/b")
}

func TestListFilesRestartable(t *testing.T) {
	store := &treeStore{tree: map[string][]storage.Object{
		"resources": {file("x.pdf")},
	}}
	l := NewLister(store, 0)

	first, err := l.ListFiles(context.Background(), "resources/")
	require.NoError(t, err)
	second, err := l.ListFiles(context.Background(), "resources")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// Every .pdf leaf of a random-ish tree on afero comes back, nothing else does.
func TestListFilesMatchesTreeOnFS(t *testing.T) {
	mem := afero.NewMemMapFs()
	paths := []string{
		"resources/Software Engineering/400/First/CSC401/notes/lecture1.pdf",
		"resources/Software Engineering/400/First/CSC401/notes/lecture2.pdf",
		"resources/Software Engineering/400/First/CSC401/notes/outline.docx",
		"resources/Software Engineering/400/First/CSC402/past_questions/2023.pdf",
		"resources/Software Engineering/400/First/CSC402/videos/intro.mp4",
		"resources/x.pdf",
		"resources/readme.md",
	}
	require.NoError(t, mem.MkdirAll("resources/Software Engineering/400/Second", 0o755))
	for _, p := range paths {
		require.NoError(t, mem.MkdirAll(path.Dir(p), 0o755))
		require.NoError(t, afero.WriteFile(mem, p, []byte("x"), 0o644))
	}

	files, err := NewLister(storage.NewFSStorageFrom(mem), 0).ListFiles(context.Background(), "resources")
	require.NoError(t, err)

	var want []string
	for _, p := range paths {
		if strings.HasSuffix(p, ".pdf") {
			want = append(want, p)
		}
	}
	sort.Strings(want)
	sort.Strings(files)
	assert.Equal(t, want, files)
}
