package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pictable/internal/domain"
	"github.com/mmcdole/pictable/internal/preview"
)

// PreviewFetcher renders thumbnails for a batch of records
type PreviewFetcher interface {
	Prefetch(ctx context.Context, records []domain.Record) map[int]preview.Preview
}

// ViewerLauncher opens an image URL outside the terminal
type ViewerLauncher interface {
	Launch(url string) error
}

// Command factories for async operations

// FetchRecordsCmd loads the dataset once
func FetchRecordsCmd(src domain.RecordSource, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		records, err := src.FetchRecords(ctx)
		if err != nil {
			return RecordsFailedMsg{Err: err}
		}
		return RecordsLoadedMsg{Records: records}
	}
}

// PrefetchPreviewsCmd renders thumbnails for records in the background.
// Every requested id is reported, so none stays pending when the batch is
// cut short.
func PrefetchPreviewsCmd(p PreviewFetcher, records []domain.Record, timeout time.Duration) tea.Cmd {
	if p == nil || len(records) == 0 {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		results := p.Prefetch(ctx, records)
		if results == nil {
			results = make(map[int]preview.Preview, len(records))
		}
		for _, r := range records {
			if _, ok := results[r.ID]; ok {
				continue
			}
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			results[r.ID] = preview.Preview{RecordID: r.ID, Err: err}
		}
		return PreviewsLoadedMsg{Previews: results}
	}
}

// OpenImageCmd launches the external viewer for a record's full-size image
func OpenImageCmd(l ViewerLauncher, rec domain.Record) tea.Cmd {
	return func() tea.Msg {
		if err := l.Launch(rec.URL); err != nil {
			return ErrMsg{Err: err, Context: "opening image"}
		}
		return ViewerLaunchedMsg{Record: rec}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
