package watchpager

import (
	"github.com/samber/lo"
)

// TotalCountColumn is the alias of the row count computed over the whole
// filtered relation.
const TotalCountColumn = "total_count"

// PageRowColumn marks rows that belong to the page. It is NULL on the single
// row returned for a page past the end of the relation.
const PageRowColumn = "page_row"

// Row is one (row, total) pair returned by a paginated round trip. Total is
// the same for every row of the response.
type Row[T any] struct {
	Item    T     `gorm:"embedded"`
	Total   int64 `gorm:"column:total_count"`
	Present bool  `gorm:"column:page_row"`
}

// Page is a generic paginated result container.
type Page[T any] struct {
	// Results page elements, in query order.
	Results []T `json:"results"`
	// Page 1-indexed page number.
	Page int `json:"page"`
	// TotalPages number of pages of the filtered relation.
	TotalPages int64 `json:"total_pages"`
	// TotalResults number of rows of the filtered relation, before slicing.
	TotalResults int64 `json:"total_results"`
}

// TotalPages returns ceil(total / perPage). Zero rows is zero pages.
func TotalPages(total int64, perPage int) int64 {
	if total <= 0 {
		return 0
	}

	size := int64(NormalizePerPage(perPage))

	return (total + size - 1) / size
}

// Assemble turns the pairs of one round trip into a Page.
func Assemble[T any](rows []Row[T], page int, perPage int) *Page[T] {
	return AssembleMap(rows, page, perPage, func(item T) T { return item })
}

// AssembleMap is like Assemble but maps every row with fn, preserving order.
// Rows that are not Present only carry the total.
func AssembleMap[R any, T any](rows []Row[R], page int, perPage int, fn func(R) T) *Page[T] {
	var total int64
	if first, ok := lo.First(rows); ok {
		total = first.Total
	}

	results := make([]T, 0, len(rows))
	for _, row := range rows {
		if !row.Present {
			continue
		}
		results = append(results, fn(row.Item))
	}

	return &Page[T]{
		Results:      results,
		Page:         NormalizePage(page),
		TotalPages:   TotalPages(total, perPage),
		TotalResults: total,
	}
}
