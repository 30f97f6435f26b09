package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sidebird/arcmark/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/arc-bookmarks-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("arc-bookmarks-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders flattened spaces to Netscape bookmark HTML. All
// spaces group under a single root folder so any browser imports them as
// one unit. Zero spaces still yields a complete, importable document.
func ExportHTML(spaces []model.Space, rootTitle string) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	fmt.Fprintf(&b, "<TITLE>%s</TITLE>\n", html.EscapeString(rootTitle))
	fmt.Fprintf(&b, "<H1>%s</H1>\n", html.EscapeString(rootTitle))
	b.WriteString("<DL><p>\n")

	for _, space := range spaces {
		writeSpace(&b, space)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeSpace emits one space as a sub-folder: its folders first, then the
// standalone bookmarks, in source order.
func writeSpace(b *strings.Builder, space model.Space) {
	fmt.Fprintf(b, "    <DT><H3>%s</H3>\n", html.EscapeString(space.Title))
	b.WriteString("    <DL><p>\n")

	for _, folder := range space.Folders {
		fmt.Fprintf(b, "        <DT><H3>%s</H3>\n", html.EscapeString(folder.Title))
		b.WriteString("        <DL><p>\n")
		for _, bookmark := range folder.Bookmarks {
			writeBookmark(b, bookmark, 3)
		}
		b.WriteString("        </DL><p>\n")
	}

	for _, bookmark := range space.Bookmarks {
		writeBookmark(b, bookmark, 2)
	}

	b.WriteString("    </DL><p>\n")
}

func writeBookmark(b *strings.Builder, bookmark model.Bookmark, indent int) {
	prefix := strings.Repeat("    ", indent)
	fmt.Fprintf(b, "%s<DT><A HREF=\"%s\">%s</A>\n",
		prefix,
		html.EscapeString(bookmark.URL),
		html.EscapeString(bookmark.Title),
	)
}
