// Package pager implements client-side pagination for list views: the
// backend returns whole lists and the client slices them per page.
package pager

// Ellipsis marks a collapsed run of pages in a page selector.
const Ellipsis = -1

// TotalPages returns the page count for n items, never less than 1.
func TotalPages(n, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	pages := (n + perPage - 1) / perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// Clamp forces page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Slice returns the items visible on the given page. The requested page
// is clamped, so out-of-range requests return the first or last page
// instead of panicking. The result aliases the input slice.
func Slice[T any](items []T, page, perPage int) []T {
	if perPage <= 0 || len(items) == 0 {
		return nil
	}
	page = Clamp(page, TotalPages(len(items), perPage))
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Visible returns the page numbers to render in a page selector, with
// Ellipsis markers where runs are collapsed. window is the maximum
// number of entries (pages plus ellipses) and must be at least 3 for
// the collapsed form to make sense.
//
// When collapsing, the selector keeps the first and last page visible
// and shows floor((window-3)/2) neighbors on each side of the current
// page, anchoring left or right near the boundaries.
func Visible(current, totalPages, window int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	current = Clamp(current, totalPages)

	if window >= totalPages {
		pages := make([]int, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	var pages []int
	switch {
	case current <= (window+1)/2:
		// Left-anchored: 1 .. window-1, ellipsis, last.
		end := window - 1
		if end > totalPages-1 {
			end = totalPages - 1
		}
		for i := 1; i <= end; i++ {
			pages = append(pages, i)
		}
		pages = append(pages, Ellipsis, totalPages)

	case current >= totalPages-window/2:
		// Right-anchored: 1, ellipsis, totalPages-window+2 .. last.
		start := totalPages - window + 2
		if start < 2 {
			start = 2
		}
		pages = append(pages, 1)
		if start > 2 {
			pages = append(pages, Ellipsis)
		}
		for i := start; i <= totalPages; i++ {
			pages = append(pages, i)
		}

	default:
		// Centered window around the current page.
		offset := (window - 3) / 2
		start := current - offset
		end := current + offset
		pages = append(pages, 1)
		if start > 2 {
			pages = append(pages, Ellipsis)
		}
		for i := start; i <= end; i++ {
			pages = append(pages, i)
		}
		if end < totalPages-1 {
			pages = append(pages, Ellipsis)
		}
		pages = append(pages, totalPages)
	}
	return pages
}
