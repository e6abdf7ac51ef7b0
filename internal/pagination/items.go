package pagination

// ItemType distinguishes page indicators from truncation markers.
type ItemType string

const (
	ItemPage     ItemType = "page"
	ItemEllipsis ItemType = "ellipsis"
)

// Item is one entry of the gap-annotated page view.
type Item struct {
	Type    ItemType `json:"type"`
	Page    int      `json:"page,omitempty"`
	Current bool     `json:"current,omitempty"`
}

// Items returns the window as consumers lay it out: previous edge pages, a
// marker when truncated, the middle pages, a marker when truncated, then
// the next edge pages. Page numbers are strictly ascending.
func (w Window) Items() []Item {
	n := len(w.PreviousPages) + len(w.MiddlePages) + len(w.NextPages) + 2
	items := make([]Item, 0, n)

	items = w.appendPages(items, w.PreviousPages)
	if w.IsPreviousTruncable {
		items = append(items, Item{Type: ItemEllipsis})
	}
	items = w.appendPages(items, w.MiddlePages)
	if w.IsNextTruncable {
		items = append(items, Item{Type: ItemEllipsis})
	}
	items = w.appendPages(items, w.NextPages)

	return items
}

func (w Window) appendPages(items []Item, pages []int) []Item {
	for _, page := range pages {
		items = append(items, Item{
			Type:    ItemPage,
			Page:    page,
			Current: page == w.CurrentPage,
		})
	}
	return items
}

// Sequence returns the same view as Items flattened to page numbers, with
// Ellipsis (-1) at truncation marker positions.
func (w Window) Sequence() []int {
	items := w.Items()
	seq := make([]int, len(items))
	for i, item := range items {
		if item.Type == ItemEllipsis {
			seq[i] = Ellipsis
			continue
		}
		seq[i] = item.Page
	}
	return seq
}
