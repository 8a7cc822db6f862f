// Package paginator holds the page/limit query of list endpoints and the
// metadata returned with each page.
package paginator

const (
	DefaultPage  = 1
	DefaultLimit = 15
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// PaginateQuery is the page/limit pair of a list request. Page is 1-indexed.
type PaginateQuery struct {
	Page  int   `json:"page" form:"page"`
	Limit int64 `json:"limit" form:"limit"`
}

// Adjust replaces out-of-range values with defaults and caps Limit at MaxLimit.
func (q *PaginateQuery) Adjust() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	switch {
	case q.Limit < 1:
		q.Limit = DefaultLimit
	case q.Limit > MaxLimit:
		q.Limit = MaxLimit
	}
}

// Offset is the number of rows to skip. Call Adjust first.
func (q PaginateQuery) Offset() int64 {
	return int64(q.Page-1) * q.Limit
}

// Paginator describes one page of a result set.
type Paginator struct {
	Total       int64
	Count       int64
	PerPage     int64
	CurrentPage int
}

// New builds the metadata of the page q selected out of total rows.
func New(q PaginateQuery, total int64, count int) Paginator {
	return Paginator{
		Total:       total,
		Count:       int64(count),
		PerPage:     q.Limit,
		CurrentPage: q.Page,
	}
}

func (p Paginator) TotalPages() int {
	if p.Total <= 0 || p.PerPage <= 0 {
		return 0
	}
	return int((p.Total + p.PerPage - 1) / p.PerPage)
}

func (p Paginator) HasNextPage() bool {
	return p.CurrentPage < p.TotalPages()
}

func (p Paginator) HasPreviousPage() bool {
	return p.CurrentPage > 1
}

// PaginatorResponse is the JSON form of a Paginator.
type PaginatorResponse struct {
	Total       int64 `json:"total"`
	Count       int64 `json:"count"`
	PerPage     int64 `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

func (p Paginator) ToResponse() PaginatorResponse {
	return PaginatorResponse{
		Total:       p.Total,
		Count:       p.Count,
		PerPage:     p.PerPage,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages(),
		HasNext:     p.HasNextPage(),
		HasPrev:     p.HasPreviousPage(),
	}
}
