package model

// Space mirrors one Arc workspace: its folders followed by the bookmarks
// pinned directly at the space root.
type Space struct {
	Title     string     `json:"title"`
	Folders   []Folder   `json:"folders"`
	Bookmarks []Bookmark `json:"bookmarks"` // standalone, no enclosing folder
}

// AllBookmarks returns every bookmark in the space, folder contents first,
// in display order.
func (s Space) AllBookmarks() []Bookmark {
	var result []Bookmark
	for _, f := range s.Folders {
		result = append(result, f.Bookmarks...)
	}
	result = append(result, s.Bookmarks...)
	return result
}

// BookmarkCount returns the number of bookmarks in the space.
func (s Space) BookmarkCount() int {
	count := len(s.Bookmarks)
	for _, f := range s.Folders {
		count += len(f.Bookmarks)
	}
	return count
}

// Count totals folders and bookmarks across spaces, for export summaries.
func Count(spaces []Space) (folders, bookmarks int) {
	for _, s := range spaces {
		folders += len(s.Folders)
		bookmarks += s.BookmarkCount()
	}
	return folders, bookmarks
}
