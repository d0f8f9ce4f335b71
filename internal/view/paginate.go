package view

// Window is one page of a collection.
type Window struct {
	Page      int // effective 1-based page after clamping
	PageCount int // always at least 1

	// Start and End are the half-open slice bounds of the page.
	Start, End int

	// RangeStart and RangeEnd are the 1-based inclusive bounds shown to the
	// user. Both are 0 for an empty collection.
	RangeStart, RangeEnd int
}

// Len returns the number of rows on the page.
func (w Window) Len() int { return w.End - w.Start }

// Paginate computes the window for page currentPage of n items. Out of
// range pages are clamped into [1, PageCount]. A non-positive pageSize is
// treated as 1.
func Paginate(n, pageSize, currentPage int) Window {
	if pageSize < 1 {
		pageSize = 1
	}
	if n < 0 {
		n = 0
	}
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}

	page := currentPage
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}

	w := Window{Page: page, PageCount: pages, Start: start, End: end}
	if end > start {
		w.RangeStart = start + 1
		w.RangeEnd = end
	}
	return w
}

// PageOf slices records to the requested page. The returned slice shares
// records' backing array.
func PageOf(records []Record, pageSize, currentPage int) ([]Record, Window) {
	w := Paginate(len(records), pageSize, currentPage)
	return records[w.Start:w.End:w.End], w
}
