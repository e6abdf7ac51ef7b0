// Package pagination computes the page layout of a paginated navigation
// control: which page numbers to show at the edges, which to show around the
// current page, and where truncation markers belong.
package pagination

import "slices"

// Ellipsis marks a truncation marker position in Window.Sequence.
const Ellipsis = -1

// Params are the inputs of one page-window computation.
type Params struct {
	CurrentPage             int `json:"current_page"`
	TotalPages              int `json:"total_pages"`
	EdgePageCount           int `json:"edge_page_count"`
	MiddlePagesSiblingCount int `json:"middle_pages_sibling_count"`
}

// Normalize applies the input policy: negative counts become 0 and the
// current page is clamped into [1, TotalPages] (0 when there are no pages).
// Edge and sibling counts larger than TotalPages are capped, which does not
// change the resulting window.
func (p Params) Normalize() Params {
	p.TotalPages = max(p.TotalPages, 0)
	p.EdgePageCount = min(max(p.EdgePageCount, 0), p.TotalPages)
	p.MiddlePagesSiblingCount = min(max(p.MiddlePagesSiblingCount, 0), p.TotalPages)

	if p.TotalPages == 0 {
		p.CurrentPage = 0
	} else {
		p.CurrentPage = min(max(p.CurrentPage, 1), p.TotalPages)
	}
	return p
}

// Window is the derived page layout for one set of Params.
type Window struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`

	Pages         []int `json:"pages"`
	PreviousPages []int `json:"previous_pages"`
	MiddlePages   []int `json:"middle_pages"`
	NextPages     []int `json:"next_pages"`

	IsPreviousTruncable bool `json:"is_previous_truncable"`
	IsNextTruncable     bool `json:"is_next_truncable"`
	HasPreviousPage     bool `json:"has_previous_page"`
	HasNextPage         bool `json:"has_next_page"`

	// Boundary conditions: the middle window was pinned to the first or
	// last page because there was no room to center it.
	IsReachedToFirst bool `json:"is_reached_to_first"`
	IsReachedToLast  bool `json:"is_reached_to_last"`
}

// Compute returns the page window for the given inputs.
func Compute(currentPage, totalPages, edgePageCount, middlePagesSiblingCount int) Window {
	return ComputeParams(Params{
		CurrentPage:             currentPage,
		TotalPages:              totalPages,
		EdgePageCount:           edgePageCount,
		MiddlePagesSiblingCount: middlePagesSiblingCount,
	})
}

// ComputeParams returns the page window for p. Out-of-range input is
// normalized first (see Params.Normalize), so the result always stays
// within [1, TotalPages].
func ComputeParams(p Params) Window {
	p = p.Normalize()

	w := Window{
		CurrentPage:   p.CurrentPage,
		TotalPages:    p.TotalPages,
		Pages:         make([]int, p.TotalPages),
		PreviousPages: []int{},
		MiddlePages:   []int{},
		NextPages:     []int{},
	}
	if p.TotalPages == 0 {
		return w
	}

	for i := range w.Pages {
		w.Pages[i] = i + 1
	}

	total := p.TotalPages
	current := p.CurrentPage
	siblings := p.MiddlePagesSiblingCount

	w.IsReachedToFirst = current <= siblings
	w.IsReachedToLast = current+siblings >= total

	size := min(2*siblings+1, total)
	switch {
	case w.IsReachedToFirst:
		w.MiddlePages = slices.Clone(w.Pages[:size])
	case w.IsReachedToLast:
		w.MiddlePages = slices.Clone(w.Pages[total-size:])
	default:
		w.MiddlePages = slices.Clone(w.Pages[current-siblings-1 : current+siblings])
	}

	first := w.MiddlePages[0]
	last := w.MiddlePages[len(w.MiddlePages)-1]

	if !w.IsReachedToFirst && first > 1 {
		for _, page := range w.Pages[:p.EdgePageCount] {
			if page < first {
				w.PreviousPages = append(w.PreviousPages, page)
			}
		}
	}

	if !w.IsReachedToLast && last < total {
		for _, page := range w.Pages[total-p.EdgePageCount:] {
			if page > last {
				w.NextPages = append(w.NextPages, page)
			}
		}
	}

	if n := len(w.PreviousPages); n > 0 {
		w.IsPreviousTruncable = first > w.PreviousPages[n-1]+1
	}
	if len(w.NextPages) > 0 {
		w.IsNextTruncable = last+1 < w.NextPages[0]
	}

	w.HasPreviousPage = current > 1
	w.HasNextPage = current < total

	return w
}

// PreviousPage returns the page a "previous" control navigates to. It is the
// current page itself when there is no previous page.
func (w Window) PreviousPage() int {
	if w.HasPreviousPage {
		return w.CurrentPage - 1
	}
	return w.CurrentPage
}

// NextPage returns the page a "next" control navigates to. It is the current
// page itself when there is no next page.
func (w Window) NextPage() int {
	if w.HasNextPage {
		return w.CurrentPage + 1
	}
	return w.CurrentPage
}
