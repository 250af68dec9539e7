// Package pagination slices ordered collections into 1-based pages.
package pagination

// DefaultPerPage is the page size used when the caller does not specify one.
const DefaultPerPage = 30

// Page is one page of an ordered collection plus the metadata the
// controller needs to render pagination links.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	PerPage     int
	TotalPages  int
	TotalCount  int64
	HasNext     bool
	HasPrev     bool
}

// Normalize clamps page and perPage to usable values. Pages are 1-based;
// anything below 1 means page 1. A non-positive perPage falls back to
// DefaultPerPage.
func Normalize(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// Offset returns the SQL offset for a page.
func Offset(page, perPage int) int {
	page, perPage = Normalize(page, perPage)
	return (page - 1) * perPage
}

// Paginate slices an in-memory ordered collection. Requesting a page past
// the end yields an empty page, not an error.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	page, perPage = Normalize(page, perPage)

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return FromOffset(items[start:end], int64(len(items)), page, perPage)
}

// FromOffset builds a Page from items already sliced by the store
// (LIMIT/OFFSET) and the total count of the underlying collection.
func FromOffset[T any](items []T, total int64, page, perPage int) Page[T] {
	page, perPage = Normalize(page, perPage)

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return Page[T]{
		Items:       items,
		CurrentPage: page,
		PerPage:     perPage,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1 && totalPages > 0,
	}
}
