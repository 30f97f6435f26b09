package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/sidebird/arcmark/internal/model"
	"github.com/sidebird/arcmark/internal/storage"
)

// Entry is one searchable bookmark with its location in the hierarchy.
type Entry struct {
	Title string
	URL   string
	Path  string // "Space" or "Space / Folder"
}

// Result represents a fuzzy search match.
type Result struct {
	Entry          Entry
	MatchedIndexes []int
	Score          int
}

// entryTitles implements fuzzy.Source for entry slices.
type entryTitles []Entry

func (e entryTitles) String(i int) string {
	return e[i].Title
}

func (e entryTitles) Len() int {
	return len(e)
}

// Collect flattens spaces into searchable entries in display order.
func Collect(spaces []model.Space) []Entry {
	var entries []Entry
	for _, space := range spaces {
		for _, folder := range space.Folders {
			for _, b := range folder.Bookmarks {
				entries = append(entries, Entry{
					Title: b.Title,
					URL:   b.URL,
					Path:  space.Title + " / " + folder.Title,
				})
			}
		}
		for _, b := range space.Bookmarks {
			entries = append(entries, Entry{
				Title: b.Title,
				URL:   b.URL,
				Path:  space.Title,
			})
		}
	}
	return entries
}

// CollectLibrary converts archived library entries into searchable entries.
func CollectLibrary(archived []storage.Entry) []Entry {
	entries := make([]Entry, len(archived))
	for i, a := range archived {
		path := a.Space
		if a.Folder != "" {
			path += " / " + a.Folder
		}
		entries[i] = Entry{Title: a.Title, URL: a.URL, Path: path}
	}
	return entries
}

// Fuzzy searches entries by title using fuzzy matching.
// Returns results sorted by match score (best first).
func Fuzzy(entries []Entry, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, entryTitles(entries))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Entry:          entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
