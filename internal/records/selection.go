package records

import "github.com/mmcdole/pictable/internal/domain"

// Selection tracks the record inspected in the detail modal.
// Close keeps the record around until the next Open.
type Selection struct {
	record domain.Record
	has    bool
	open   bool
}

// Open selects r and shows the detail modal
func (s Selection) Open(r domain.Record) Selection {
	return Selection{record: r, has: true, open: true}
}

// Close hides the detail modal
func (s Selection) Close() Selection {
	s.open = false
	return s
}

// Clear forgets the selected record entirely
func (s Selection) Clear() Selection {
	return Selection{}
}

// Selected returns the most recently opened record, if any
func (s Selection) Selected() (domain.Record, bool) {
	return s.record, s.has
}

// IsOpen reports whether the detail modal is showing
func (s Selection) IsOpen() bool {
	return s.open
}
