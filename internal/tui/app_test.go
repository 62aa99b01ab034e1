package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pictable/internal/domain"
	"github.com/mmcdole/pictable/internal/preview"
	"github.com/mmcdole/pictable/internal/records"
)

type fakeSource struct {
	records []domain.Record
	err     error
}

func (f fakeSource) FetchRecords(ctx context.Context) ([]domain.Record, error) {
	return f.records, f.err
}

type fakePreviews struct {
	art map[int]string
}

func (f fakePreviews) Prefetch(ctx context.Context, recs []domain.Record) map[int]preview.Preview {
	out := make(map[int]preview.Preview)
	for _, r := range recs {
		if art, ok := f.art[r.ID]; ok {
			out[r.ID] = preview.Preview{RecordID: r.ID, Art: art}
		}
	}
	return out
}

type fakeLauncher struct {
	urls *[]string
}

func (f fakeLauncher) Launch(url string) error {
	*f.urls = append(*f.urls, url)
	return nil
}

func makeRecords(albums ...int) []domain.Record {
	out := make([]domain.Record, len(albums))
	for i, a := range albums {
		out[i] = domain.Record{
			ID:           i + 1,
			AlbumID:      a,
			Title:        "photo " + strconv.Itoa(i+1),
			URL:          "https://example.test/600/" + strconv.Itoa(i+1),
			ThumbnailURL: "https://example.test/150/" + strconv.Itoa(i+1),
		}
	}
	return out
}

// twelve records across albums 1 and 2
func twelve() []domain.Record {
	return makeRecords(1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = update(t, m, msg)
	}
	return m
}

func loadedModel(t *testing.T, opts Options, recs []domain.Record) Model {
	t.Helper()
	opts.Logger = discardLogger()
	if opts.Source == nil {
		opts.Source = fakeSource{records: recs}
	}
	m := NewModel(opts)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, RecordsLoadedMsg{Records: recs})
	return m
}

func TestFetchRecordsCmd(t *testing.T) {
	recs := makeRecords(1, 2)
	msg := FetchRecordsCmd(fakeSource{records: recs}, 0)()
	loaded, ok := msg.(RecordsLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want RecordsLoadedMsg", msg)
	}
	if len(loaded.Records) != 2 {
		t.Errorf("got %d records, want 2", len(loaded.Records))
	}

	boom := errors.New("boom")
	msg = FetchRecordsCmd(fakeSource{err: boom}, 0)()
	failed, ok := msg.(RecordsFailedMsg)
	if !ok {
		t.Fatalf("got %T, want RecordsFailedMsg", msg)
	}
	if !errors.Is(failed.Err, boom) {
		t.Errorf("got error %v, want %v", failed.Err, boom)
	}
}

func TestNewModelStartsLoading(t *testing.T) {
	m := NewModel(Options{Source: fakeSource{}, Logger: discardLogger()})
	if m.Store.Status() != records.StatusLoading {
		t.Errorf("status = %v, want loading", m.Store.Status())
	}
	if m.Init() == nil {
		t.Error("Init returned no command")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if !strings.Contains(m.View(), "Fetching photos") {
		t.Error("loading view does not mention the fetch")
	}
}

func TestLoadedShowsFirstPage(t *testing.T) {
	m := loadedModel(t, Options{}, twelve())

	if got := m.Table.Len(); got != 5 {
		t.Errorf("table rows = %d, want 5", got)
	}
	if m.Pager.TotalPages != 3 || m.Pager.Page != 0 {
		t.Errorf("pager = %d/%d, want page 0 of 3", m.Pager.Page, m.Pager.TotalPages)
	}
	if !strings.Contains(m.View(), "1-5 of 12") {
		t.Error("view is missing the range label")
	}
}

func TestPageKeys(t *testing.T) {
	m := loadedModel(t, Options{}, twelve())

	tests := []struct {
		key      string
		wantPage int
		wantRows int
	}{
		{"h", 0, 5}, // disabled at the first page
		{"l", 1, 5},
		{"L", 2, 2},
		{"l", 2, 2}, // disabled at the last page
		{"h", 1, 5},
		{"H", 0, 5},
	}

	for _, tt := range tests {
		m = press(t, m, tt.key)
		if got := m.Store.PageIndex(); got != tt.wantPage {
			t.Errorf("after %q page = %d, want %d", tt.key, got, tt.wantPage)
		}
		if got := m.Table.Len(); got != tt.wantRows {
			t.Errorf("after %q rows = %d, want %d", tt.key, got, tt.wantRows)
		}
	}
}

func TestDeleteSelectedRow(t *testing.T) {
	m := loadedModel(t, Options{}, twelve())

	m = press(t, m, "j", "x")

	if _, ok := m.Store.Lookup(2); ok {
		t.Error("record 2 still present after delete")
	}
	if m.Store.Len() != 11 {
		t.Errorf("len = %d, want 11", m.Store.Len())
	}
	if !strings.Contains(m.StatusMsg, "#2") {
		t.Errorf("status = %q, want mention of #2", m.StatusMsg)
	}
	if m.Table.Len() != 5 {
		t.Errorf("table rows = %d, want a full page of 5", m.Table.Len())
	}
}

func TestDeleteLastRowOfLastPageClampsPage(t *testing.T) {
	m := loadedModel(t, Options{}, makeRecords(1, 1, 1, 1, 1, 1))

	m = press(t, m, "L")
	if m.Store.PageIndex() != 1 {
		t.Fatalf("page = %d, want 1", m.Store.PageIndex())
	}

	m = press(t, m, "x")
	if m.Store.PageIndex() != 0 {
		t.Errorf("page = %d, want 0 after emptying the last page", m.Store.PageIndex())
	}
	if m.Table.Len() != 5 {
		t.Errorf("table rows = %d, want 5", m.Table.Len())
	}
}

func TestDetailOpenClose(t *testing.T) {
	m := loadedModel(t, Options{}, twelve())

	m = press(t, m, "enter")
	if !m.Store.Selection().IsOpen() || !m.Detail.IsVisible() {
		t.Fatal("detail did not open")
	}
	if !strings.Contains(m.View(), "photo 1") {
		t.Error("detail view is missing the title")
	}

	m = press(t, m, "esc")
	if m.Store.Selection().IsOpen() || m.Detail.IsVisible() {
		t.Error("detail did not close")
	}
	if rec, ok := m.Store.Selection().Selected(); !ok || rec.ID != 1 {
		t.Errorf("selection after close = %v %v, want record 1 retained", rec.ID, ok)
	}
}

func TestDeleteFromDetailClosesIt(t *testing.T) {
	m := loadedModel(t, Options{}, twelve())

	m = press(t, m, "enter", "x")

	if m.Detail.IsVisible() || m.Store.Selection().IsOpen() {
		t.Error("detail still open after deleting its record")
	}
	if _, ok := m.Store.Selection().Selected(); ok {
		t.Error("selection not cleared")
	}
	if _, ok := m.Store.Lookup(1); ok {
		t.Error("record 1 still present")
	}
}

func TestAlbumPicker(t *testing.T) {
	m := loadedModel(t, Options{}, twelve())

	m = press(t, m, "a")
	if !m.AlbumPicker.IsVisible() {
		t.Fatal("album picker did not open")
	}

	// All albums -> Album 1 -> Album 2
	m = press(t, m, "j", "j", "enter")
	if f := m.Store.Filter(); !f.Active || f.ID != 2 {
		t.Fatalf("filter = %+v, want album 2", f)
	}
	if m.Store.VisibleLen() != 6 {
		t.Errorf("visible = %d, want 6", m.Store.VisibleLen())
	}
	if !strings.Contains(m.View(), "album 2") {
		t.Error("header is missing the album badge")
	}

	// Back to "All albums" restores the full dataset
	m = press(t, m, "a", "g", "enter")
	if m.Store.Filter().Active {
		t.Error("filter still active after choosing all albums")
	}
	if m.Store.VisibleLen() != m.Store.Len() {
		t.Errorf("visible = %d, want %d", m.Store.VisibleLen(), m.Store.Len())
	}
}

func TestAlbumPickerEscKeepsFilter(t *testing.T) {
	m := loadedModel(t, Options{}, twelve())

	m = press(t, m, "a", "j", "esc")
	if m.AlbumPicker.IsVisible() {
		t.Error("picker still visible")
	}
	if m.Store.Filter().Active {
		t.Error("esc applied a filter")
	}
}

func TestPageSizePicker(t *testing.T) {
	m := loadedModel(t, Options{}, twelve())

	m = press(t, m, "l", "p", "j", "enter")

	if m.Store.PageSize() != 10 {
		t.Errorf("page size = %d, want 10", m.Store.PageSize())
	}
	if m.Store.PageIndex() != 0 {
		t.Errorf("page = %d, want reset to 0", m.Store.PageIndex())
	}
	if m.Table.Len() != 10 {
		t.Errorf("table rows = %d, want 10", m.Table.Len())
	}

	m = press(t, m, "p", "G", "enter")
	if m.Store.PageSize() != records.AllRows {
		t.Errorf("page size = %d, want AllRows", m.Store.PageSize())
	}
	if m.Table.Len() != 12 {
		t.Errorf("table rows = %d, want 12", m.Table.Len())
	}
}

func TestTitleQuery(t *testing.T) {
	m := loadedModel(t, Options{}, twelve())

	m = press(t, m, "/", "1", "2")
	if m.Store.Query() != "12" {
		t.Fatalf("query = %q, want %q", m.Store.Query(), "12")
	}
	if m.Store.VisibleLen() != 1 {
		t.Errorf("visible = %d, want 1", m.Store.VisibleLen())
	}

	m = press(t, m, "enter")
	if m.QueryInput.IsVisible() {
		t.Error("input still visible after enter")
	}
	if m.Store.Query() != "12" {
		t.Error("enter dropped the query")
	}

	// esc outside the modal clears the query
	m = press(t, m, "esc")
	if m.Store.Query() != "" || m.Store.VisibleLen() != 12 {
		t.Errorf("query = %q visible = %d, want cleared", m.Store.Query(), m.Store.VisibleLen())
	}
}

func TestRetryAfterFailure(t *testing.T) {
	m := NewModel(Options{Source: fakeSource{}, Logger: discardLogger()})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	// r does nothing while the first fetch is in flight
	m = press(t, m, "r")
	if m.Store.Status() != records.StatusLoading {
		t.Fatalf("status = %v, want loading", m.Store.Status())
	}

	m, _ = update(t, m, RecordsFailedMsg{Err: domain.ErrSourceUnreachable})
	if m.Store.Status() != records.StatusFailed {
		t.Fatalf("status = %v, want failed", m.Store.Status())
	}
	if !strings.Contains(m.View(), "to retry") {
		t.Error("failure view has no retry hint")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.Store.Status() != records.StatusLoading {
		t.Errorf("status = %v, want loading after retry", m.Store.Status())
	}
	if cmd == nil {
		t.Error("retry issued no command")
	}
}

func TestPreviewsReachDetail(t *testing.T) {
	opts := Options{Previews: fakePreviews{art: map[int]string{1: "ART-1"}}}
	m := loadedModel(t, opts, twelve())

	m = press(t, m, "enter")
	if strings.Contains(m.Detail.View(), "ART-1") {
		t.Fatal("preview shown before it arrived")
	}
	if !strings.Contains(m.Detail.View(), "loading preview") {
		t.Error("detail does not show the pending preview")
	}

	m, _ = update(t, m, PreviewsLoadedMsg{Previews: map[int]preview.Preview{
		1: {RecordID: 1, Art: "ART-1"},
		2: {RecordID: 2, Err: preview.ErrNoImage},
	}})
	if !strings.Contains(m.Detail.View(), "ART-1") {
		t.Error("detail is missing the preview art")
	}
	if len(m.pending) != 3 {
		t.Errorf("pending = %d, want 3 of the first page", len(m.pending))
	}
}

func TestPrefetchPreviewsCmdReportsEveryRecord(t *testing.T) {
	recs := makeRecords(1, 1)
	cmd := PrefetchPreviewsCmd(fakePreviews{art: map[int]string{1: "ART"}}, recs, previewTimeout)
	msg, ok := cmd().(PreviewsLoadedMsg)
	if !ok {
		t.Fatal("command did not return PreviewsLoadedMsg")
	}
	if len(msg.Previews) != 2 {
		t.Fatalf("got %d previews, want 2", len(msg.Previews))
	}
	if msg.Previews[2].Err == nil {
		t.Error("missing preview has no error")
	}

	if PrefetchPreviewsCmd(nil, recs, previewTimeout) != nil {
		t.Error("nil fetcher produced a command")
	}
}

func TestOpenImage(t *testing.T) {
	var urls []string
	m := loadedModel(t, Options{Launcher: fakeLauncher{urls: &urls}}, twelve())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if cmd == nil {
		t.Fatal("no command for open")
	}
	msg := cmd()
	if _, ok := msg.(ViewerLaunchedMsg); !ok {
		t.Fatalf("got %T, want ViewerLaunchedMsg", msg)
	}
	if len(urls) != 1 || urls[0] != "https://example.test/600/1" {
		t.Errorf("launched %v", urls)
	}

	m, _ = update(t, m, msg)
	if !strings.Contains(m.StatusMsg, "#1") {
		t.Errorf("status = %q", m.StatusMsg)
	}
}

func TestHelpToggle(t *testing.T) {
	m := loadedModel(t, Options{}, twelve())

	m = press(t, m, "?")
	if m.State != StateHelp {
		t.Fatal("help did not open")
	}
	if !strings.Contains(m.View(), "first page") {
		t.Error("help view is missing page bindings")
	}

	// keys are swallowed while help is open
	m = press(t, m, "x", "?")
	if m.State != StateBrowsing {
		t.Error("help did not close")
	}
	if m.Store.Len() != 12 {
		t.Error("delete ran while help was open")
	}
}

func TestRangeLabel(t *testing.T) {
	recs := twelve()
	tests := []struct {
		name string
		view records.PageView
		want string
	}{
		{"first page", records.Paginate(recs, 0, 5), "1-5 of 12"},
		{"last page", records.Paginate(recs, 2, 5), "11-12 of 12"},
		{"all rows", records.Paginate(recs, 0, records.AllRows), "1-12 of 12"},
		{"empty", records.Paginate(nil, 0, 5), "0 of 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rangeLabel(tt.view); got != tt.want {
				t.Errorf("rangeLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
