package pagination

// PageSize is the results page size used by every listing.
const PageSize = 20

type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"page"`
	Size       int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_previous"`
}

// Paginate slices items for a 1-based page number. Pages below 1 are
// treated as 1; pages past the end come back empty.
func Paginate[T any](items []T, number, size int) Page[T] {
	if size <= 0 {
		size = PageSize
	}
	if number < 1 {
		number = 1
	}

	total := len(items)
	totalPages := (total + size - 1) / size

	// Past the last page the window is empty; checking first keeps huge page
	// numbers from overflowing the offset.
	start, end := total, total
	if number <= totalPages {
		start = (number - 1) * size
		end = min(start+size, total)
	}

	return Page[T]{
		Items:      items[start:end:end],
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1 && totalPages > 0,
	}
}
