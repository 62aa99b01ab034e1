// Package records holds the in-memory photo dataset and every transition
// applied to it: loading, album and title filtering, deletion, pagination
// and detail selection.
//
// Store is a value. Each transition returns a new Store and never mutates a
// slice that an older value can still observe, so a Bubble Tea model can hold
// it directly.
package records

import (
	"github.com/mmcdole/pictable/internal/domain"
)

// Status is the lifecycle of the one-shot dataset fetch
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

// String returns a lowercase name for logs
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Store owns the full dataset and its visible projection.
// visible is always Project(full, filter, query).
type Store struct {
	full      []domain.Record
	visible   []domain.Record
	filter    domain.AlbumFilter
	query     string
	page      int
	pageSize  int
	selection Selection
	status    Status
	err       error
	dropped   int
}

// New creates an empty store. Invalid page sizes fall back to DefaultPageSize.
func New(pageSize int) Store {
	if !ValidPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	return Store{
		full:     []domain.Record{},
		visible:  []domain.Record{},
		pageSize: pageSize,
	}
}

// === Loading ===

// Loading marks the fetch as in flight
func (s Store) Loading() Store {
	s.status = StatusLoading
	s.err = nil
	return s
}

// Load replaces the dataset wholesale. Duplicate ids are dropped, keeping the
// first occurrence, so ids stay unique.
func (s Store) Load(records []domain.Record) Store {
	s.full, s.dropped = dedupe(records)
	s.status = StatusReady
	s.err = nil
	s.page = 0
	s.selection = s.selection.Clear()
	return s.reproject()
}

// LoadFailed records a fetch failure. The dataset is left as it was.
func (s Store) LoadFailed(err error) Store {
	s.status = StatusFailed
	s.err = err
	return s
}

// === Filtering ===

// ApplyFilter restricts the visible projection to one album (or none) and
// returns to the first page
func (s Store) ApplyFilter(f domain.AlbumFilter) Store {
	s.filter = f
	s.page = 0
	return s.reproject()
}

// ApplyFilterValue applies a picker value; anything but a positive integer
// clears the album filter
func (s Store) ApplyFilterValue(value string) Store {
	return s.ApplyFilter(domain.ParseAlbumFilter(value))
}

// SetQuery restricts the visible projection to titles fuzzily matching q
func (s Store) SetQuery(q string) Store {
	s.query = q
	s.page = 0
	return s.reproject()
}

// === Deletion ===

// Remove drops the record with id from the full dataset and re-derives the
// visible projection from the active filter. Unknown ids are a no-op.
func (s Store) Remove(id int) Store {
	full, found := without(s.full, id)
	if !found {
		return s
	}
	s.full = full

	if r, ok := s.selection.Selected(); ok && r.ID == id {
		s.selection = s.selection.Clear()
	}

	s = s.reproject()
	s.page = min(s.page, s.Page().LastPage())
	return s
}

// reproject is the only place visible is assigned after construction
func (s Store) reproject() Store {
	s.visible = Project(s.full, s.filter, s.query)
	return s
}

// === Pagination ===

// Page returns the current page, recomputed from the visible projection
func (s Store) Page() PageView {
	return Paginate(s.visible, s.page, s.pageSize)
}

// PageIndex returns the zero-based current page
func (s Store) PageIndex() int {
	return s.page
}

// PageSize returns rows per page, or AllRows
func (s Store) PageSize() int {
	return s.pageSize
}

// SetPageSize changes rows per page and returns to the first page.
// Invalid sizes are ignored.
func (s Store) SetPageSize(n int) Store {
	if !ValidPageSize(n) {
		return s
	}
	s.pageSize = n
	s.page = 0
	return s
}

// SetPage jumps to page p, clamped to the existing pages
func (s Store) SetPage(p int) Store {
	s.page = min(max(p, 0), s.Page().LastPage())
	return s
}

// FirstPage moves to page 0 when not already there
func (s Store) FirstPage() Store {
	if !s.Page().CanPrev() {
		return s
	}
	s.page = 0
	return s
}

// PrevPage moves back one page when possible
func (s Store) PrevPage() Store {
	if !s.Page().CanPrev() {
		return s
	}
	s.page--
	return s
}

// NextPage moves forward one page when possible
func (s Store) NextPage() Store {
	if !s.Page().CanNext() {
		return s
	}
	s.page++
	return s
}

// LastPage moves to the final page when not already there
func (s Store) LastPage() Store {
	view := s.Page()
	if !view.CanNext() {
		return s
	}
	s.page = view.LastPage()
	return s
}

// === Detail selection ===

// OpenDetail opens the detail modal for id. Unknown ids are ignored.
func (s Store) OpenDetail(id int) Store {
	r, ok := s.Lookup(id)
	if !ok {
		return s
	}
	s.selection = s.selection.Open(r)
	return s
}

// CloseDetail hides the detail modal
func (s Store) CloseDetail() Store {
	s.selection = s.selection.Close()
	return s
}

// Selection returns the detail selection state
func (s Store) Selection() Selection {
	return s.selection
}

// === Accessors ===

// Full returns a copy of the full dataset
func (s Store) Full() []domain.Record {
	return append([]domain.Record(nil), s.full...)
}

// Visible returns a copy of the visible projection
func (s Store) Visible() []domain.Record {
	return append([]domain.Record(nil), s.visible...)
}

// Len is the size of the full dataset
func (s Store) Len() int {
	return len(s.full)
}

// VisibleLen is the size of the visible projection
func (s Store) VisibleLen() int {
	return len(s.visible)
}

// Lookup finds a record of the full dataset by id
func (s Store) Lookup(id int) (domain.Record, bool) {
	for _, r := range s.full {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Record{}, false
}

// Filter returns the active album filter
func (s Store) Filter() domain.AlbumFilter {
	return s.filter
}

// Query returns the active title query
func (s Store) Query() string {
	return s.query
}

// Status returns the fetch lifecycle state
func (s Store) Status() Status {
	return s.status
}

// Err returns the last fetch error, if the fetch failed
func (s Store) Err() error {
	return s.err
}

// Dropped is the number of duplicate ids discarded by the last Load
func (s Store) Dropped() int {
	return s.dropped
}
