// Package flatten collapses the pinned sidebar graph into the two-level
// Space → Folder → Bookmark structure the exporter renders.
package flatten

import (
	"github.com/sidebird/arcmark/internal/model"
	"github.com/sidebird/arcmark/internal/sidebar"
)

const (
	untitledBookmark = "Untitled"
	untitledFolder   = "Untitled Folder"
)

// Options controls flattening policy.
type Options struct {
	// SkipEmptyFolders prunes top-level folders that hold no bookmarks
	// after flattening. Off by default: empty folders are kept for
	// structural fidelity.
	SkipEmptyFolders bool
}

// Flatten walks every space's pinned root list in source order and emits
// one model.Space per sidebar space. Bookmarks nested inside sub-folders
// merge into their top-level ancestor folder, in traversal order;
// sub-folder titles are discarded. Spaces with nothing pinned are still
// emitted so the output always enumerates all spaces.
func Flatten(sb *sidebar.Sidebar, opts Options) []model.Space {
	spaces := make([]model.Space, 0, len(sb.Spaces))
	for _, sp := range sb.Spaces {
		spaces = append(spaces, flattenSpace(sb, sp, opts))
	}
	return spaces
}

func flattenSpace(sb *sidebar.Sidebar, sp sidebar.Space, opts Options) model.Space {
	out := model.Space{
		Title:     sp.Title,
		Folders:   []model.Folder{},
		Bookmarks: []model.Bookmark{},
	}

	// Guards against cycles and duplicate parentage: an id already seen
	// in this space is skipped silently.
	visited := make(map[string]bool)

	for _, id := range sp.RootIDs {
		item, ok := sb.Items[id]
		if !ok || visited[id] {
			continue
		}
		visited[id] = true

		switch item.Kind() {
		case sidebar.KindBookmark:
			out.Bookmarks = append(out.Bookmarks, bookmarkFor(item))
		case sidebar.KindFolder:
			folder := model.Folder{
				Title:     folderTitle(item),
				Bookmarks: []model.Bookmark{},
			}
			collect(sb, item.ChildIDs, visited, &folder)
			if opts.SkipEmptyFolders && len(folder.Bookmarks) == 0 {
				continue
			}
			out.Folders = append(out.Folders, folder)
		}
	}
	return out
}

// collect appends descendant bookmarks to the open top-level folder,
// descending through sub-folders transparently.
func collect(sb *sidebar.Sidebar, ids []string, visited map[string]bool, folder *model.Folder) {
	for _, id := range ids {
		item, ok := sb.Items[id]
		if !ok || visited[id] {
			continue
		}
		visited[id] = true

		switch item.Kind() {
		case sidebar.KindBookmark:
			folder.Bookmarks = append(folder.Bookmarks, bookmarkFor(item))
		case sidebar.KindFolder:
			collect(sb, item.ChildIDs, visited, folder)
		}
	}
}

// bookmarkFor builds the output bookmark. Kind guarantees a non-empty URL;
// the title falls back to the URL, then a placeholder.
func bookmarkFor(item *sidebar.Item) model.Bookmark {
	title := item.Title
	if title == "" {
		title = item.URL
	}
	if title == "" {
		title = untitledBookmark
	}
	return model.Bookmark{Title: title, URL: item.URL}
}

func folderTitle(item *sidebar.Item) string {
	if item.Title == "" {
		return untitledFolder
	}
	return item.Title
}
