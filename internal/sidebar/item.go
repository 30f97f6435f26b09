package sidebar

// Kind classifies a sidebar item once its fields have been normalized.
type Kind int

const (
	// KindUnknown marks items that are neither bookmarks nor folders
	// (tab groups, split views, items with no URL and no children).
	KindUnknown Kind = iota
	KindBookmark
	KindFolder
)

// Item is one node of the sidebar graph, normalized from the loosely-typed
// source records. ChildIDs order is significant: it defines display order.
type Item struct {
	ID       string
	Title    string
	URL      string
	ParentID string
	ChildIDs []string

	// IsList records an explicit data.list marker in the source; folders
	// keep it even when they have no children.
	IsList bool
}

// Kind infers the item's role. A non-empty URL always wins: an item that
// somehow carries both a URL and children is a bookmark, never both.
func (it *Item) Kind() Kind {
	switch {
	case it.URL != "":
		return KindBookmark
	case it.IsList || len(it.ChildIDs) > 0:
		return KindFolder
	default:
		return KindUnknown
	}
}

// Space is one workspace with a reference to its pinned partition.
// Items under the unpinned (ephemeral tabs) partition are never included.
type Space struct {
	ID       string
	Title    string
	PinnedID string   // id of the pinned container item, "" if none
	RootIDs  []string // ordered root children of the pinned container
}
