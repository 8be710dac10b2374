// Package scan walks a bucket and collects the files the linker cares about.
package scan

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/reslink/internal/storage"
	"github.com/rs/zerolog/log"
)

// FileSuffix selects the leaves returned by ListFiles.
const FileSuffix = ".pdf"

// Lister enumerates files below a prefix using an explicit worklist.
type Lister struct {
	store    storage.ObjectStorage
	maxDepth int
}

// NewLister creates a Lister. maxDepth bounds how many folder levels below the
// starting prefix are opened; 0 means no bound.
func NewLister(store storage.ObjectStorage, maxDepth int) *Lister {
	return &Lister{store: store, maxDepth: maxDepth}
}

type workItem struct {
	path   string
	folder bool
	depth  int
}

// ListFiles returns the full path of every file under prefix whose name ends
// in FileSuffix, in depth-first listing order.
func (l *Lister) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.Trim(prefix, "/")

	files := make([]string, 0)
	stack := []workItem{{path: prefix, folder: true}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !item.folder {
			files = append(files, item.path)
			continue
		}

		if l.maxDepth > 0 && item.depth > l.maxDepth {
			log.Warn().Str("prefix", item.path).Int("max_depth", l.maxDepth).Msg("Depth limit reached, folder not scanned")
			continue
		}

		log.Info().Str("prefix", item.path).Msg("Scanning")
		children, err := l.store.List(ctx, item.path)
		if err != nil {
			return nil, fmt.Errorf("failed to list %q: %w", item.path, err)
		}

		// push in reverse so siblings pop in listing order
		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			childPath := joinPath(item.path, child.Name)
			switch {
			case child.IsFolder():
				stack = append(stack, workItem{path: childPath, folder: true, depth: item.depth + 1})
			case strings.HasSuffix(childPath, FileSuffix):
				stack = append(stack, workItem{path: childPath})
			}
		}
	}

	return files, nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
