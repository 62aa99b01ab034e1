package tui

import (
	"github.com/mmcdole/pictable/internal/domain"
	"github.com/mmcdole/pictable/internal/preview"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// RecordsLoadedMsg carries the fetched dataset
type RecordsLoadedMsg struct {
	Records []domain.Record
}

// RecordsFailedMsg signals that the dataset fetch failed
type RecordsFailedMsg struct {
	Err error
}

// PreviewsLoadedMsg carries rendered thumbnails keyed by record id
type PreviewsLoadedMsg struct {
	Previews map[int]preview.Preview
}

// ViewerLaunchedMsg signals that an external viewer was started
type ViewerLaunchedMsg struct {
	Record domain.Record
}

// TickMsg drives the loading spinner
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
