package records

import (
	"strconv"

	"github.com/mmcdole/pictable/internal/domain"
)

// AllRows is the page size sentinel meaning "show every visible row"
const AllRows = -1

// DefaultPageSize matches the smallest option of DefaultPageSizes
const DefaultPageSize = 5

// DefaultPageSizes are the rows-per-page choices offered to the user
var DefaultPageSizes = []int{5, 10, 25, AllRows}

// ValidPageSize reports whether n is a usable page size
func ValidPageSize(n int) bool {
	return n > 0 || n == AllRows
}

// PageSizeLabel renders a page size for pickers and footers
func PageSizeLabel(n int) string {
	if n == AllRows {
		return "All"
	}
	return strconv.Itoa(n)
}

// PageView is one page of the visible projection
type PageView struct {
	Rows       []domain.Record
	Count      int // number of visible records
	TotalPages int
	Page       int
	PageSize   int
	Padding    int // blank rows that keep the table height stable on a short page
	First      int // index of Rows[0] within the visible projection
}

// Paginate slices visible into the requested page. Out of range pages
// produce an empty slice rather than an error.
func Paginate(visible []domain.Record, page, pageSize int) PageView {
	count := len(visible)
	view := PageView{
		Count:    count,
		Page:     page,
		PageSize: pageSize,
	}

	if pageSize == AllRows || pageSize <= 0 {
		view.Rows = append([]domain.Record(nil), visible...)
		if count > 0 {
			view.TotalPages = 1
		}
		return view
	}

	view.TotalPages = (count + pageSize - 1) / pageSize
	view.Padding = max(0, (page+1)*pageSize-count)

	start := page * pageSize
	if page < 0 || start >= count {
		view.Rows = []domain.Record{}
		view.First = min(max(start, 0), count)
		return view
	}
	end := min(start+pageSize, count)

	view.Rows = append([]domain.Record(nil), visible[start:end]...)
	view.First = start
	return view
}

// CanPrev reports whether first/prev navigation is enabled
func (v PageView) CanPrev() bool {
	return v.Page > 0
}

// CanNext reports whether next/last navigation is enabled
func (v PageView) CanNext() bool {
	return v.Page < v.TotalPages-1
}

// LastPage is the index of the final page, 0 for an empty projection
func (v PageView) LastPage() int {
	return max(0, v.TotalPages-1)
}

// Range returns the 1-based inclusive row range shown, e.g. 6 and 10 for
// the second page of five. Both are 0 when the page is empty.
func (v PageView) Range() (from, to int) {
	if len(v.Rows) == 0 {
		return 0, 0
	}
	return v.First + 1, v.First + len(v.Rows)
}
