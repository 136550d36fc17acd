package feed

// Page is one window of an ordered listing. Number is 1-indexed and always
// within [1, PageCount] by construction.
type Page[T any] struct {
	Items     []T  `json:"items"`
	Number    int  `json:"number"`
	PageCount int  `json:"page_count"`
	Total     int  `json:"total"`
	HasNext   bool `json:"has_next"`
	HasPrev   bool `json:"has_prev"`
}

// Paginate slices an already-ordered listing into fixed-size pages. The boundary
// policy: a page number below 1 means the first page, one past the last valid
// page means the last page. An empty listing still has one (empty) page, so the
// caller never gets an out-of-range condition to handle.
func Paginate[T any](items []T, number, size int) Page[T] {
	if size < 1 {
		size = 1
	}
	total := len(items)
	pageCount := (total + size - 1) / size
	if pageCount < 1 {
		pageCount = 1
	}
	if number < 1 {
		number = 1
	}
	if number > pageCount {
		number = pageCount
	}

	start := (number - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:     items[start:end],
		Number:    number,
		PageCount: pageCount,
		Total:     total,
		HasNext:   number < pageCount,
		HasPrev:   number > 1,
	}
}
