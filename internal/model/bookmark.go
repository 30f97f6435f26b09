package model

// Bookmark is a single exportable pinned item.
type Bookmark struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Folder groups bookmarks under a space. After flattening a folder never
// contains other folders; nested sidebar folders are merged into their
// top-level ancestor.
type Folder struct {
	Title     string     `json:"title"`
	Bookmarks []Bookmark `json:"bookmarks"`
}
