package sidebar

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrParse means the input is not well-formed JSON. Fatal.
	ErrParse = errors.New("sidebar: malformed json")

	// ErrSchemaMismatch means the JSON parses but holds no recognizable
	// sidebar containers. Callers may continue with an empty sidebar and
	// still produce a valid (empty) bookmark file.
	ErrSchemaMismatch = errors.New("sidebar: no sidebar containers found")
)

// Sidebar is the normalized pinned-items graph: all spaces in source order
// plus the full id→item index.
type Sidebar struct {
	Spaces []Space
	Items  map[string]*Item

	// itemOrder preserves source order of item records, used to resolve
	// root lists when a pinned container has no explicit child list.
	itemOrder []string
}

// flexID accepts an id as either a JSON string or a number; ids are opaque
// and handled as strings throughout.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexID(n.String())
		return nil
	}
	// Unexpected shapes (null, objects) become empty ids and the record
	// is dropped later rather than failing the whole load.
	*f = ""
	return nil
}

// Raw shapes for the versioned wrapper document. Unknown fields are
// ignored everywhere for forward compatibility.
type rawDocument struct {
	Sidebar struct {
		Containers []json.RawMessage `json:"containers"`
	} `json:"sidebar"`
}

type rawContainer struct {
	Spaces []json.RawMessage `json:"spaces"`
	Items  []json.RawMessage `json:"items"`
}

type rawSpace struct {
	ID           flexID `json:"id"`
	Title        string `json:"title"`
	ContainerIDs []any  `json:"containerIDs"`
}

type rawItem struct {
	ID          flexID   `json:"id"`
	Title       string   `json:"title"`
	ParentID    flexID   `json:"parentID"`
	ChildrenIDs []flexID `json:"childrenIds"`
	Data        struct {
		Tab *struct {
			SavedTitle string `json:"savedTitle"`
			SavedURL   string `json:"savedURL"`
		} `json:"tab"`
		List json.RawMessage `json:"list"`
	} `json:"data"`
}

// Load parses raw StorableSidebar.json bytes into a normalized Sidebar.
//
// The source nests the real data inside versioned wrapper objects; every
// container carrying spaces or items contributes, any missing key counts
// as "no data" rather than an error. The items array alternates id strings
// with item objects — only elements decoding to objects with ids are kept,
// first occurrence wins on duplicate ids.
func Load(data []byte) (*Sidebar, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(doc.Sidebar.Containers) == 0 {
		return nil, ErrSchemaMismatch
	}

	sb := &Sidebar{Items: make(map[string]*Item)}
	for _, raw := range doc.Sidebar.Containers {
		var container rawContainer
		if err := json.Unmarshal(raw, &container); err != nil {
			continue
		}
		sb.addItems(container.Items)
		sb.addSpaces(container.Spaces)
	}

	if len(sb.Spaces) == 0 && len(sb.Items) == 0 {
		return nil, ErrSchemaMismatch
	}

	for i := range sb.Spaces {
		sb.Spaces[i].RootIDs = sb.rootIDs(sb.Spaces[i].PinnedID)
	}
	return sb, nil
}

// addItems indexes every element of an items array that decodes to an
// item record with an id.
func (sb *Sidebar) addItems(raws []json.RawMessage) {
	for _, raw := range raws {
		var ri rawItem
		if err := json.Unmarshal(raw, &ri); err != nil {
			continue
		}
		id := string(ri.ID)
		if id == "" {
			continue
		}
		if _, exists := sb.Items[id]; exists {
			continue
		}

		item := &Item{
			ID:       id,
			Title:    ri.Title,
			ParentID: string(ri.ParentID),
			IsList:   len(ri.Data.List) > 0 && string(ri.Data.List) != "null",
		}
		for _, child := range ri.ChildrenIDs {
			if child != "" {
				item.ChildIDs = append(item.ChildIDs, string(child))
			}
		}
		if ri.Data.Tab != nil {
			item.URL = ri.Data.Tab.SavedURL
			if item.Title == "" {
				item.Title = ri.Data.Tab.SavedTitle
			}
		}

		sb.Items[id] = item
		sb.itemOrder = append(sb.itemOrder, id)
	}
}

// addSpaces collects space records, resolving each space's pinned
// partition from its containerIDs list. The list interleaves partition
// markers with container ids: the element following "pinned" names the
// pinned container; the "unpinned" partition holds ephemeral open tabs
// and is excluded from export.
func (sb *Sidebar) addSpaces(raws []json.RawMessage) {
	for i, raw := range raws {
		var rs rawSpace
		if err := json.Unmarshal(raw, &rs); err != nil {
			continue
		}
		if rs.Title == "" && string(rs.ID) == "" {
			continue
		}

		space := Space{
			ID:    string(rs.ID),
			Title: rs.Title,
		}
		if space.Title == "" {
			space.Title = "Space " + strconv.Itoa(i+1)
		}
		for j, entry := range rs.ContainerIDs {
			marker, ok := entry.(string)
			if !ok || marker != "pinned" || j+1 >= len(rs.ContainerIDs) {
				continue
			}
			if id, ok := rs.ContainerIDs[j+1].(string); ok {
				space.PinnedID = id
			}
		}
		sb.Spaces = append(sb.Spaces, space)
	}
}

// rootIDs resolves the ordered root children of a pinned container. The
// container item's own child list is authoritative; when the container has
// no record of its own, items pointing at it via parentID are collected in
// source order instead.
func (sb *Sidebar) rootIDs(pinnedID string) []string {
	if pinnedID == "" {
		return nil
	}
	if container, ok := sb.Items[pinnedID]; ok && len(container.ChildIDs) > 0 {
		return container.ChildIDs
	}
	var roots []string
	for _, id := range sb.itemOrder {
		if sb.Items[id].ParentID == pinnedID {
			roots = append(roots, id)
		}
	}
	return roots
}
