package components

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pictable/internal/domain"
	"github.com/mmcdole/pictable/internal/tui/styles"
)

// Fixed column widths; the title column takes the rest
const (
	idColumnWidth    = 6
	albumColumnWidth = 7
	minTitleWidth    = 10
	tableHeaderLines = 2 // header row plus its bottom border
	cellPadding      = 2 // table.DefaultStyles pads each cell by one on both sides
)

// RecordTable shows one page of records
type RecordTable struct {
	table   table.Model
	records []domain.Record
	padding int
	width   int
	height  int // maximum body height available
}

// NewRecordTable creates an empty table using the given row key bindings
func NewRecordTable(keys table.KeyMap) RecordTable {
	t := table.New(
		table.WithColumns(recordColumns(0)),
		table.WithFocused(true),
		table.WithKeyMap(keys),
		table.WithStyles(styles.TableStyles()),
	)
	return RecordTable{table: t}
}

// recordColumns lays out columns for a total width
func recordColumns(width int) []table.Column {
	titleWidth := width - idColumnWidth - albumColumnWidth - 3*cellPadding
	if titleWidth < minTitleWidth {
		titleWidth = minTitleWidth
	}
	return []table.Column{
		{Title: "ID", Width: idColumnWidth},
		{Title: "Album", Width: albumColumnWidth},
		{Title: "Title", Width: titleWidth},
	}
}

// SetSize sets the outer width and the maximum height, header included
func (t *RecordTable) SetSize(width, height int) {
	t.width = width
	t.height = max(height-tableHeaderLines, 1)
	t.table.SetColumns(recordColumns(width))
	t.table.SetWidth(width)
	t.resize()
}

// SetRows replaces the page. padding blank lines keep a short last page as
// tall as a full one.
func (t *RecordTable) SetRows(records []domain.Record, padding int) {
	t.records = records
	t.padding = padding

	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{strconv.Itoa(r.ID), strconv.Itoa(r.AlbumID), r.Title}
	}
	t.table.SetRows(rows)

	if t.table.Cursor() >= len(rows) {
		t.table.SetCursor(max(len(rows)-1, 0))
	}
	t.resize()
}

func (t *RecordTable) resize() {
	body := len(t.records) + t.padding
	if t.height > 0 {
		body = min(body, t.height)
	}
	t.table.SetHeight(max(body, 1))
}

// ResetCursor moves the cursor to the first row
func (t *RecordTable) ResetCursor() {
	t.table.SetCursor(0)
}

// Cursor returns the row index within the page
func (t RecordTable) Cursor() int {
	return t.table.Cursor()
}

// SelectedRecord returns the record under the cursor
func (t RecordTable) SelectedRecord() (domain.Record, bool) {
	i := t.table.Cursor()
	if i < 0 || i >= len(t.records) {
		return domain.Record{}, false
	}
	return t.records[i], true
}

// Len returns the number of rows on the page
func (t RecordTable) Len() int {
	return len(t.records)
}

// Update forwards row movement keys to the table
func (t RecordTable) Update(msg tea.Msg) (RecordTable, tea.Cmd) {
	var cmd tea.Cmd
	t.table, cmd = t.table.Update(msg)
	return t, cmd
}

// View renders the table
func (t RecordTable) View() string {
	return t.table.View()
}
