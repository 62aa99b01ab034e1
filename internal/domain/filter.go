package domain

import (
	"strconv"
	"strings"
)

// AlbumFilter is an optional album id restriction.
// The zero value is inactive and matches every record.
type AlbumFilter struct {
	ID     int
	Active bool
}

// NoAlbumFilter returns a filter that matches everything
func NoAlbumFilter() AlbumFilter {
	return AlbumFilter{}
}

// AlbumFilterFor returns a filter restricted to exactly one album id.
// Unlike ParseAlbumFilter it accepts 0, so an album numbered 0 stays reachable.
func AlbumFilterFor(id int) AlbumFilter {
	return AlbumFilter{ID: id, Active: true}
}

// ParseAlbumFilter converts a picker value into a filter.
// "0", empty, negative and non-numeric input all mean "no filter".
func ParseAlbumFilter(value string) AlbumFilter {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return NoAlbumFilter()
	}
	return AlbumFilterFor(n)
}

// Matches reports whether the record passes the filter
func (f AlbumFilter) Matches(r Record) bool {
	return !f.Active || r.AlbumID == f.ID
}

// String returns "all" for an inactive filter, otherwise the album id
func (f AlbumFilter) String() string {
	if !f.Active {
		return "all"
	}
	return strconv.Itoa(f.ID)
}
