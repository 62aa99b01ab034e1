package records

import (
	"github.com/mmcdole/pictable/internal/domain"
	"github.com/mmcdole/pictable/internal/search"
)

// Project returns the records of full that pass the album filter and the
// title query, in their original order. The result never aliases full.
func Project(full []domain.Record, filter domain.AlbumFilter, query string) []domain.Record {
	visible := make([]domain.Record, 0, len(full))
	for _, r := range full {
		if filter.Matches(r) && search.Matches(query, r.Title) {
			visible = append(visible, r)
		}
	}
	return visible
}

// dedupe drops records whose id was already seen; the first occurrence wins
func dedupe(records []domain.Record) ([]domain.Record, int) {
	seen := make(map[int]struct{}, len(records))
	out := make([]domain.Record, 0, len(records))
	dropped := 0
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			dropped++
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out, dropped
}

// without returns a copy of records minus the one with id
func without(records []domain.Record, id int) ([]domain.Record, bool) {
	out := make([]domain.Record, 0, len(records))
	found := false
	for _, r := range records {
		if r.ID == id {
			found = true
			continue
		}
		out = append(out, r)
	}
	return out, found
}
