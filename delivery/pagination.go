package delivery

import (
	"strconv"

	"neksoft-admin/delivery/model"
)

// pageWindow is how many page-number links are shown at once.
const pageWindow = 5

// Pager tracks the current page and the total page count for a listing.
type Pager struct {
	Page       int
	TotalPages int
}

// NewPager builds a Pager from the server total. TotalPages is never below 1
// and Page is clamped to [1, TotalPages].
func NewPager(page, total, pageSize int) Pager {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	p := Pager{TotalPages: totalPages}
	p.Page = p.Clamp(page)
	return p
}

// Clamp limits page to the valid range.
func (p Pager) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if page > p.TotalPages {
		return p.TotalPages
	}
	return page
}

// Prev returns the previous page and whether it exists.
func (p Pager) Prev() (int, bool) {
	if p.Page <= 1 {
		return 1, false
	}
	return p.Page - 1, true
}

// Next returns the next page and whether it exists.
func (p Pager) Next() (int, bool) {
	if p.Page >= p.TotalPages {
		return p.TotalPages, false
	}
	return p.Page + 1, true
}

// Window returns up to pageWindow page numbers centred on the current page.
func (p Pager) Window() []int {
	start := p.Page - pageWindow/2
	if start < 1 {
		start = 1
	}
	end := start + pageWindow - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - pageWindow + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// View converts the Pager into template data.
func (p Pager) View() model.Pagination {
	prev, hasPrev := p.Prev()
	next, hasNext := p.Next()
	return model.Pagination{
		Page:       p.Page,
		TotalPages: p.TotalPages,
		HasPrev:    hasPrev,
		PrevPage:   prev,
		HasNext:    hasNext,
		NextPage:   next,
		Pages:      p.Window(),
	}
}

// parsePage reads a page query value. Anything that is not a positive
// integer is page 1.
func parsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
