package importer

import (
	"strings"
	"testing"
)

const sampleExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Arc Bookmarks</TITLE>
<H1>Arc Bookmarks</H1>
<DL><p>
    <DT><H3>Work</H3>
    <DL><p>
        <DT><H3>Docs</H3>
        <DL><p>
            <DT><A HREF="https://a.test">Spec</A>
        </DL><p>
        <DT><A HREF="https://b.test">Home</A>
    </DL><p>
    <DT><H3>Personal</H3>
    <DL><p>
    </DL><p>
</DL><p>
`

func TestParseHTMLBookmarks_TwoLevelStructure(t *testing.T) {
	spaces, err := ParseHTMLBookmarks(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(spaces) != 2 {
		t.Fatalf("expected 2 spaces, got %d", len(spaces))
	}

	work := spaces[0]
	if work.Title != "Work" {
		t.Errorf("expected space 'Work', got %q", work.Title)
	}
	if len(work.Folders) != 1 || work.Folders[0].Title != "Docs" {
		t.Fatalf("expected one folder 'Docs', got %+v", work.Folders)
	}
	if len(work.Folders[0].Bookmarks) != 1 || work.Folders[0].Bookmarks[0].URL != "https://a.test" {
		t.Errorf("expected Spec bookmark in Docs, got %+v", work.Folders[0].Bookmarks)
	}
	if len(work.Bookmarks) != 1 || work.Bookmarks[0].Title != "Home" {
		t.Errorf("expected standalone 'Home', got %+v", work.Bookmarks)
	}

	personal := spaces[1]
	if personal.Title != "Personal" || len(personal.Folders) != 0 || len(personal.Bookmarks) != 0 {
		t.Errorf("expected empty 'Personal' space, got %+v", personal)
	}
}

func TestParseHTMLBookmarks_DeepNestingCollapses(t *testing.T) {
	// A browser-exported file may nest deeper than two levels; everything
	// below folder depth merges into the enclosing folder.
	input := `<DL><p>
	  <DT><H3>Space</H3>
	  <DL><p>
	    <DT><H3>Folder</H3>
	    <DL><p>
	      <DT><A HREF="https://one.test">One</A>
	      <DT><H3>Nested</H3>
	      <DL><p>
	        <DT><A HREF="https://two.test">Two</A>
	      </DL><p>
	    </DL><p>
	  </DL><p>
	</DL><p>`

	spaces, err := ParseHTMLBookmarks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(spaces) != 1 || len(spaces[0].Folders) != 1 {
		t.Fatalf("expected one space with one folder, got %+v", spaces)
	}
	folder := spaces[0].Folders[0]
	if folder.Title != "Folder" {
		t.Errorf("expected folder 'Folder', got %q", folder.Title)
	}
	if len(folder.Bookmarks) != 2 {
		t.Fatalf("expected nested bookmark collapsed into folder, got %+v", folder.Bookmarks)
	}
	if folder.Bookmarks[1].URL != "https://two.test" {
		t.Errorf("expected traversal order preserved, got %+v", folder.Bookmarks)
	}
}

func TestParseHTMLBookmarks_SkipsAnchorsWithoutHref(t *testing.T) {
	input := `<DL><p>
	  <DT><H3>Space</H3>
	  <DL><p>
	    <DT><A>No href</A>
	    <DT><A HREF="">Empty href</A>
	    <DT><A HREF="https://ok.test"></A>
	  </DL><p>
	</DL><p>`

	spaces, err := ParseHTMLBookmarks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(spaces[0].Bookmarks) != 1 {
		t.Fatalf("expected only the anchor with a URL, got %+v", spaces[0].Bookmarks)
	}
	// Empty anchor text falls back to the URL
	if spaces[0].Bookmarks[0].Title != "https://ok.test" {
		t.Errorf("expected URL as title fallback, got %q", spaces[0].Bookmarks[0].Title)
	}
}

func TestParseHTMLBookmarks_AnchorsOutsideFolders(t *testing.T) {
	input := `<DL><p>
	  <DT><A HREF="https://stray.test">Stray</A>
	</DL><p>`

	spaces, err := ParseHTMLBookmarks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(spaces) != 1 || spaces[0].Title != "Imported" {
		t.Fatalf("expected synthetic 'Imported' space, got %+v", spaces)
	}
	if len(spaces[0].Bookmarks) != 1 || spaces[0].Bookmarks[0].Title != "Stray" {
		t.Errorf("expected stray bookmark captured, got %+v", spaces[0].Bookmarks)
	}
}

func TestParseHTMLBookmarks_EmptyDocument(t *testing.T) {
	spaces, err := ParseHTMLBookmarks(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spaces) != 0 {
		t.Errorf("expected no spaces, got %+v", spaces)
	}
}
