package storage

import (
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/sidebird/arcmark/internal/model"
)

func testLibrary(t *testing.T) *Library {
	t.Helper()
	library, err := NewLibrary(filepath.Join(t.TempDir(), "library.db"))
	assert.NilError(t, err)
	t.Cleanup(func() { library.Close() })
	return library
}

func testSpaces() []model.Space {
	return []model.Space{{
		Title: "Work",
		Folders: []model.Folder{{
			Title:     "Docs",
			Bookmarks: []model.Bookmark{{Title: "Spec", URL: "https://a.test"}},
		}},
		Bookmarks: []model.Bookmark{{Title: "Home", URL: "https://b.test"}},
	}}
}

func TestLibrary_ArchiveAndList(t *testing.T) {
	library := testLibrary(t)

	added, skipped, err := library.Archive(testSpaces())
	assert.NilError(t, err)
	assert.Equal(t, added, 2)
	assert.Equal(t, skipped, 0)

	entries, err := library.List()
	assert.NilError(t, err)
	assert.Equal(t, len(entries), 2)

	// Folder bookmarks come before standalone ones, locations recorded
	assert.Equal(t, entries[0].Title, "Spec")
	assert.Equal(t, entries[0].Space, "Work")
	assert.Equal(t, entries[0].Folder, "Docs")
	assert.Equal(t, entries[1].Title, "Home")
	assert.Equal(t, entries[1].Folder, "")

	for _, e := range entries {
		assert.Assert(t, e.ID != "", "expected generated id")
		assert.Assert(t, !e.ArchivedAt.IsZero(), "expected archive timestamp")
	}
}

func TestLibrary_ArchiveSkipsDuplicateURLs(t *testing.T) {
	library := testLibrary(t)

	_, _, err := library.Archive(testSpaces())
	assert.NilError(t, err)

	added, skipped, err := library.Archive(testSpaces())
	assert.NilError(t, err)
	assert.Equal(t, added, 0)
	assert.Equal(t, skipped, 2)

	entries, err := library.List()
	assert.NilError(t, err)
	assert.Equal(t, len(entries), 2)
}

func TestLibrary_HasURL(t *testing.T) {
	library := testLibrary(t)

	_, _, err := library.Archive(testSpaces())
	assert.NilError(t, err)

	found, err := library.HasURL("https://a.test")
	assert.NilError(t, err)
	assert.Assert(t, found)

	missing, err := library.HasURL("https://nope.test")
	assert.NilError(t, err)
	assert.Assert(t, !missing)
}

func TestLibrary_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")

	library, err := NewLibrary(path)
	assert.NilError(t, err)
	_, _, err = library.Archive(testSpaces())
	assert.NilError(t, err)
	assert.NilError(t, library.Close())

	reopened, err := NewLibrary(path)
	assert.NilError(t, err)
	defer reopened.Close()

	entries, err := reopened.List()
	assert.NilError(t, err)
	assert.Equal(t, len(entries), 2)
}
