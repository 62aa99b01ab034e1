package domain

import "fmt"

// Record is one photo entry of the fetched dataset
type Record struct {
	ID           int    // Unique within the dataset, stable for the session
	AlbumID      int    // Grouping key, used by the album filter
	Title        string // Display title
	URL          string // Full-size image URL
	ThumbnailURL string // Thumbnail image URL
}

// Label returns a short human readable identifier for status lines
func (r Record) Label() string {
	return fmt.Sprintf("#%d %s", r.ID, r.Title)
}
