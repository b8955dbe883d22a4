// Package paging slices already-fetched result sets for display.
// Pages are 0-based and always clamped into range.
package paging

// Page is one slice of a result set
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
}

// TotalPages returns ceil(total/pageSize)
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage keeps page within [0, totalPages-1]; with no pages it is 0
func ClampPage(page, totalPages int) int {
	if page < 0 || totalPages == 0 {
		return 0
	}
	if page > totalPages-1 {
		return totalPages - 1
	}
	return page
}

// Offset returns the first item index of a clamped page
func Offset(page, pageSize int) int {
	return page * pageSize
}

// Paginate returns the requested page of items after clamping
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)
	totalPages := TotalPages(total, pageSize)
	page = ClampPage(page, totalPages)

	start := Offset(page, pageSize)
	end := start + pageSize
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Total:      total,
	}
}
