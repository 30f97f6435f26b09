package flatten

import (
	"reflect"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/sidebird/arcmark/internal/model"
	"github.com/sidebird/arcmark/internal/sidebar"
)

// graph builds a Sidebar directly; loader tests cover JSON decoding.
func graph(spaces []sidebar.Space, items ...*sidebar.Item) *sidebar.Sidebar {
	index := make(map[string]*sidebar.Item, len(items))
	for _, it := range items {
		index[it.ID] = it
	}
	return &sidebar.Sidebar{Spaces: spaces, Items: index}
}

func bookmark(id, title, url string) *sidebar.Item {
	return &sidebar.Item{ID: id, Title: title, URL: url}
}

func folder(id, title string, children ...string) *sidebar.Item {
	return &sidebar.Item{ID: id, Title: title, ChildIDs: children, IsList: true}
}

func TestFlatten_SpaceScenario(t *testing.T) {
	// Space "Work": folder "Docs" holding one bookmark, then a standalone
	// bookmark at the space root.
	sb := graph(
		[]sidebar.Space{{ID: "s1", Title: "Work", RootIDs: []string{"f1", "b2"}}},
		folder("f1", "Docs", "b1"),
		bookmark("b1", "Spec", "https://a.test"),
		bookmark("b2", "Home", "https://b.test"),
	)

	spaces := Flatten(sb, Options{})

	want := []model.Space{{
		Title: "Work",
		Folders: []model.Folder{{
			Title:     "Docs",
			Bookmarks: []model.Bookmark{{Title: "Spec", URL: "https://a.test"}},
		}},
		Bookmarks: []model.Bookmark{{Title: "Home", URL: "https://b.test"}},
	}}
	assert.DeepEqual(t, spaces, want)
}

func TestFlatten_DepthCollapsing(t *testing.T) {
	// A bookmark three folders deep lands in the top-level folder's list;
	// no intermediate folder titles survive anywhere.
	sb := graph(
		[]sidebar.Space{{ID: "s1", Title: "Work", RootIDs: []string{"top"}}},
		folder("top", "Top", "b1", "mid"),
		folder("mid", "Middle", "deep"),
		folder("deep", "Deep", "b2"),
		bookmark("b1", "First", "https://1.test"),
		bookmark("b2", "Buried", "https://2.test"),
	)

	spaces := Flatten(sb, Options{})

	assert.Equal(t, len(spaces[0].Folders), 1)
	top := spaces[0].Folders[0]
	assert.Equal(t, top.Title, "Top")
	assert.DeepEqual(t, top.Bookmarks, []model.Bookmark{
		{Title: "First", URL: "https://1.test"},
		{Title: "Buried", URL: "https://2.test"},
	})
}

func TestFlatten_CycleGuard(t *testing.T) {
	// A folder whose children include its own ancestor must not loop;
	// the duplicate is skipped silently.
	sb := graph(
		[]sidebar.Space{{ID: "s1", Title: "Work", RootIDs: []string{"top"}}},
		folder("top", "Top", "sub"),
		folder("sub", "Sub", "b1", "top"),
		bookmark("b1", "Only", "https://only.test"),
	)

	spaces := Flatten(sb, Options{})

	assert.Equal(t, len(spaces[0].Folders), 1)
	assert.Equal(t, len(spaces[0].Folders[0].Bookmarks), 1)
}

func TestFlatten_NoDuplicateBookmarks(t *testing.T) {
	// Shared parentage: one bookmark reachable from two folders appears
	// exactly once.
	sb := graph(
		[]sidebar.Space{{ID: "s1", Title: "Work", RootIDs: []string{"f1", "f2"}}},
		folder("f1", "A", "shared"),
		folder("f2", "B", "shared"),
		bookmark("shared", "Shared", "https://s.test"),
	)

	spaces := Flatten(sb, Options{})

	total := 0
	for _, f := range spaces[0].Folders {
		total += len(f.Bookmarks)
	}
	assert.Equal(t, total, 1)
	assert.Equal(t, len(spaces[0].Folders), 2) // empty twin folder kept
}

func TestFlatten_EmptySpaceStillEmitted(t *testing.T) {
	sb := graph([]sidebar.Space{
		{ID: "s1", Title: "Empty"},
		{ID: "s2", Title: "Also Empty", RootIDs: []string{"missing-id"}},
	})

	spaces := Flatten(sb, Options{})

	assert.Equal(t, len(spaces), 2)
	for _, s := range spaces {
		assert.Equal(t, len(s.Folders), 0)
		assert.Equal(t, len(s.Bookmarks), 0)
	}
}

func TestFlatten_URLlessBookmarkExcluded(t *testing.T) {
	sb := graph(
		[]sidebar.Space{{ID: "s1", Title: "Work", RootIDs: []string{"b1", "b2"}}},
		bookmark("b1", "No URL", ""),
		bookmark("b2", "Kept", "https://kept.test"),
	)

	spaces := Flatten(sb, Options{})

	assert.DeepEqual(t, spaces[0].Bookmarks, []model.Bookmark{
		{Title: "Kept", URL: "https://kept.test"},
	})
}

func TestFlatten_TitleFallbacks(t *testing.T) {
	sb := graph(
		[]sidebar.Space{{ID: "s1", Title: "Work", RootIDs: []string{"f1", "b1"}}},
		folder("f1", ""),
		bookmark("b1", "", "https://untitled.test"),
	)

	spaces := Flatten(sb, Options{})

	assert.Equal(t, spaces[0].Folders[0].Title, "Untitled Folder")
	assert.Equal(t, spaces[0].Bookmarks[0].Title, "https://untitled.test")
}

func TestFlatten_EmptyFolderPolicy(t *testing.T) {
	// A top-level folder holding only an empty sub-folder is empty after
	// flattening: kept by default, pruned with SkipEmptyFolders.
	build := func() *sidebar.Sidebar {
		return graph(
			[]sidebar.Space{{ID: "s1", Title: "Work", RootIDs: []string{"top", "full"}}},
			folder("top", "Hollow", "sub"),
			folder("sub", "Inner"),
			folder("full", "Full", "b1"),
			bookmark("b1", "Kept", "https://kept.test"),
		)
	}

	kept := Flatten(build(), Options{})
	assert.Equal(t, len(kept[0].Folders), 2)
	assert.Equal(t, kept[0].Folders[0].Title, "Hollow")

	pruned := Flatten(build(), Options{SkipEmptyFolders: true})
	assert.Equal(t, len(pruned[0].Folders), 1)
	assert.Equal(t, pruned[0].Folders[0].Title, "Full")
}

func TestFlatten_AmbiguousNodeIsBookmark(t *testing.T) {
	sb := graph(
		[]sidebar.Space{{ID: "s1", Title: "Work", RootIDs: []string{"both"}}},
		&sidebar.Item{ID: "both", Title: "Both", URL: "https://both.test", ChildIDs: []string{"child"}},
		bookmark("child", "Child", "https://child.test"),
	)

	spaces := Flatten(sb, Options{})

	assert.Equal(t, len(spaces[0].Folders), 0)
	assert.DeepEqual(t, spaces[0].Bookmarks, []model.Bookmark{
		{Title: "Both", URL: "https://both.test"},
	})
}

func TestFlatten_Deterministic(t *testing.T) {
	sb := graph(
		[]sidebar.Space{{ID: "s1", Title: "Work", RootIDs: []string{"f1", "b2", "f2"}}},
		folder("f1", "A", "b1"),
		folder("f2", "B"),
		bookmark("b1", "One", "https://1.test"),
		bookmark("b2", "Two", "https://2.test"),
	)

	first := Flatten(sb, Options{})
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(Flatten(sb, Options{}), first) {
			t.Fatal("expected identical output on repeated runs")
		}
	}
}
