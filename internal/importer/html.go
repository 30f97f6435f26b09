package importer

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/sidebird/arcmark/internal/model"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML back into flattened
// spaces. Top-level folders become spaces, second-level folders become
// their folders, and anything nested deeper collapses into the enclosing
// folder — the inverse of the exporter's two-level layout. Anchors outside
// any folder are grouped under an implicit "Imported" space.
func ParseHTMLBookmarks(r io.Reader) ([]model.Space, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	p := &parser{}
	p.walk(doc)
	p.closeSpace()
	return p.spaces, nil
}

type parser struct {
	spaces []model.Space
	space  *model.Space
	folder *model.Folder

	// pendingTitle holds the last H3 text; the DL that follows decides
	// whether it opens a space, a folder, or collapses transparently.
	pendingTitle string
	hasPending   bool
}

func (p *parser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "h3":
			p.pendingTitle = textContent(n)
			p.hasPending = true
			return // don't recurse into H3

		case "a":
			p.addBookmark(n)
			return // don't recurse into A

		case "dl":
			p.enterList(n)
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

// enterList opens a space or folder for a DL preceded by an H3, processes
// the DL's children, then closes what it opened. The outermost DL and any
// DL nested below folder depth pass through transparently.
func (p *parser) enterList(n *html.Node) {
	opened := 0
	if p.hasPending {
		title := p.pendingTitle
		p.hasPending = false
		switch {
		case p.space == nil:
			p.space = &model.Space{
				Title:     title,
				Folders:   []model.Folder{},
				Bookmarks: []model.Bookmark{},
			}
			opened = 1
		case p.folder == nil:
			p.folder = &model.Folder{
				Title:     title,
				Bookmarks: []model.Bookmark{},
			}
			opened = 2
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}

	switch opened {
	case 1:
		p.closeSpace()
	case 2:
		p.space.Folders = append(p.space.Folders, *p.folder)
		p.folder = nil
	}
}

func (p *parser) addBookmark(n *html.Node) {
	href := attr(n, "href")
	if href == "" {
		return
	}
	title := textContent(n)
	if title == "" {
		title = href
	}
	bookmark := model.Bookmark{Title: title, URL: href}

	switch {
	case p.folder != nil:
		p.folder.Bookmarks = append(p.folder.Bookmarks, bookmark)
	case p.space != nil:
		p.space.Bookmarks = append(p.space.Bookmarks, bookmark)
	default:
		// Anchor before any folder heading: collect under a synthetic
		// space so nothing is lost.
		p.space = &model.Space{
			Title:     "Imported",
			Folders:   []model.Folder{},
			Bookmarks: []model.Bookmark{bookmark},
		}
	}
}

func (p *parser) closeSpace() {
	if p.space != nil {
		p.spaces = append(p.spaces, *p.space)
		p.space = nil
	}
}

// textContent returns the trimmed text content of a node.
func textContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// attr returns the value of an attribute, case-insensitive.
func attr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, a := range n.Attr {
		if strings.ToLower(a.Key) == key {
			return a.Val
		}
	}
	return ""
}
