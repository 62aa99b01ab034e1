package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/pictable/internal/records"
	"github.com/mmcdole/pictable/internal/tui/styles"
)

// viewOptions selects what a non-interactive run prints
type viewOptions struct {
	album    string
	query    string
	page     int // one-based
	pageSize int
}

// applyView runs the same Store transitions the TUI would
func applyView(store records.Store, opts viewOptions) records.Store {
	store = store.SetPageSize(opts.pageSize)
	store = store.ApplyFilterValue(opts.album)
	store = store.SetQuery(opts.query)
	return store.SetPage(opts.page - 1)
}

// renderPage draws the current page as a bordered table plus a summary line
func renderPage(store records.Store, width int) string {
	view := store.Page()

	titleWidth := max(width-24, 10)
	rows := make([][]string, 0, len(view.Rows))
	for _, r := range view.Rows {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.AlbumID),
			styles.Truncate(r.Title, titleWidth),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.DimStyle).
		Headers("ID", "Album", "Title").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.AccentStyle.Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	summary := fmt.Sprintf("page %d/%d, %d records", view.Page+1, max(view.TotalPages, 1), view.Count)
	if f := store.Filter(); f.Active {
		summary += ", album " + f.String()
	}
	if q := store.Query(); q != "" {
		summary += fmt.Sprintf(", title ~ %q", q)
	}

	return t.String() + "\n" + summary
}
