package pagination

// DefaultPerPage is used when a caller passes a non-positive page size.
const DefaultPerPage = 20

// DefaultMaxTotalPages is the page count limit the server and CLI apply
// unless configured otherwise. Computing a window allocates one int per page.
const DefaultMaxTotalPages = 100000

// Data contains pagination information for display alongside a Window.
type Data struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
	PrevPage    int  `json:"prev_page"`
	NextPage    int  `json:"next_page"`
}

// TotalPagesFor returns how many pages totalItems fill at perPage items per
// page.
func TotalPagesFor(totalItems, perPage int) int {
	if totalItems <= 0 {
		return 0
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	pages := totalItems / perPage
	if totalItems%perPage != 0 {
		pages++
	}
	return pages
}

// NewData builds Data for a list of totalItems shown perPage at a time.
func NewData(currentPage, totalItems, perPage int) Data {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	totalItems = max(totalItems, 0)

	p := Params{
		CurrentPage: currentPage,
		TotalPages:  TotalPagesFor(totalItems, perPage),
	}.Normalize()

	d := Data{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		PerPage:     perPage,
		Total:       totalItems,
		HasPrevious: p.CurrentPage > 1,
		HasNext:     p.CurrentPage < p.TotalPages,
		PrevPage:    p.CurrentPage,
		NextPage:    p.CurrentPage,
	}
	if d.HasPrevious {
		d.PrevPage = p.CurrentPage - 1
	}
	if d.HasNext {
		d.NextPage = p.CurrentPage + 1
	}
	return d
}
