package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pictable/internal/domain"
	"github.com/mmcdole/pictable/internal/records"
	"github.com/mmcdole/pictable/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Handle state-specific keys
	if m.State == StateHelp {
		if key.Matches(msg, m.keys.Escape, m.keys.Help, m.keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.Store.Query() != "" {
			return m.setQuery("")
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		if m.Store.Status() != records.StatusFailed {
			return m, nil
		}
		m.Store = m.Store.Loading()
		m.syncKeys()
		m.logger.Info("retrying fetch")
		return m, tea.Batch(
			FetchRecordsCmd(m.source, m.fetchTimeout),
			TickCmd(spinnerInterval),
		)

	case key.Matches(msg, m.keys.PrevPage):
		return m.movePage(m.Store.PrevPage())

	case key.Matches(msg, m.keys.NextPage):
		return m.movePage(m.Store.NextPage())

	case key.Matches(msg, m.keys.FirstPage):
		return m.movePage(m.Store.FirstPage())

	case key.Matches(msg, m.keys.LastPage):
		return m.movePage(m.Store.LastPage())

	case key.Matches(msg, m.keys.Open):
		if rec, ok := m.Table.SelectedRecord(); ok {
			return m.openDetail(rec)
		}
		return m, nil

	case key.Matches(msg, m.keys.View):
		if rec, ok := m.Table.SelectedRecord(); ok {
			return m, m.openImage(rec)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if rec, ok := m.Table.SelectedRecord(); ok {
			return m.deleteRecord(rec)
		}
		return m, nil

	case key.Matches(msg, m.keys.Album):
		if m.Store.Status() == records.StatusReady {
			m.AlbumPicker.Show(albumOptions(), activeAlbum(m.Store.Filter()))
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		if m.Store.Status() == records.StatusReady {
			m.QueryInput.Show("Filter titles", m.Store.Query())
		}
		return m, nil

	case key.Matches(msg, m.keys.PageSize):
		m.SizePicker.Show(pageSizeOptions(m.pageSizes), m.Store.PageSize())
		return m, nil
	}

	// Row movement goes to the table
	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

// routeToModal sends keys to whichever modal is open
func (m Model) routeToModal(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case m.Detail.IsVisible():
		switch {
		case key.Matches(msg, m.keys.Escape, m.keys.Open, m.keys.Quit):
			m.Store = m.Store.CloseDetail()
			m.Detail.Hide()
			return true, m, nil
		case key.Matches(msg, m.keys.Delete):
			newModel, cmd := m.deleteRecord(m.Detail.Record())
			return true, newModel, cmd
		case key.Matches(msg, m.keys.View):
			return true, m, m.openImage(m.Detail.Record())
		}
		return true, m, nil

	case m.AlbumPicker.IsVisible():
		handled, sel := m.AlbumPicker.HandleKey(msg.String())
		if sel != nil {
			// The picker speaks the "0 means all" vocabulary of the album field
			m.Store = m.Store.ApplyFilterValue(strconv.Itoa(sel.Value))
			m.logger.Debug("album filter applied", "filter", m.Store.Filter().String(), "visible", m.Store.VisibleLen())
			m.Table.ResetCursor()
			m.syncTable()
			return true, m, m.prefetchPage()
		}
		return handled, m, nil

	case m.SizePicker.IsVisible():
		handled, sel := m.SizePicker.HandleKey(msg.String())
		if sel != nil {
			m.Store = m.Store.SetPageSize(sel.Value)
			m.Table.ResetCursor()
			m.syncTable()
			return true, m, m.prefetchPage()
		}
		return handled, m, nil

	case m.QueryInput.IsVisible():
		var cmd tea.Cmd
		var result components.InputResult
		m.QueryInput, cmd, result = m.QueryInput.Update(msg)
		switch result {
		case components.InputChanged:
			newModel, prefetch := m.setQuery(m.QueryInput.Value())
			return true, newModel, tea.Batch(cmd, prefetch)
		case components.InputCancelled:
			newModel, prefetch := m.setQuery("")
			return true, newModel, prefetch
		}
		return true, m, cmd
	}

	return false, m, nil
}

// movePage installs a store whose page may have moved
func (m Model) movePage(next records.Store) (tea.Model, tea.Cmd) {
	if next.PageIndex() == m.Store.PageIndex() {
		return m, nil
	}
	m.Store = next
	m.Table.ResetCursor()
	m.syncTable()
	return m, m.prefetchPage()
}

func (m Model) setQuery(q string) (Model, tea.Cmd) {
	m.Store = m.Store.SetQuery(q)
	m.Table.ResetCursor()
	m.syncTable()
	return m, m.prefetchPage()
}

func (m Model) openDetail(rec domain.Record) (tea.Model, tea.Cmd) {
	m.Store = m.Store.OpenDetail(rec.ID)
	if !m.Store.Selection().IsOpen() {
		return m, nil
	}

	m.Detail.Show(rec, m.Store.Query())
	if p, ok := m.Previews[rec.ID]; ok {
		m.Detail.SetPreview(p)
		return m, nil
	}
	if m.previews == nil {
		return m, nil
	}

	m.Detail.SetPreviewLoading()
	if m.pending[rec.ID] {
		return m, nil
	}
	return m, m.requestPreviews([]domain.Record{rec})
}

func (m Model) openImage(rec domain.Record) tea.Cmd {
	if m.launcher == nil {
		return func() tea.Msg {
			return StatusMsg{Message: "No image viewer configured", IsError: true}
		}
	}
	return OpenImageCmd(m.launcher, rec)
}

func (m Model) deleteRecord(rec domain.Record) (tea.Model, tea.Cmd) {
	m.Store = m.Store.Remove(rec.ID)
	m.syncTable()
	m.logger.Info("record deleted", "id", rec.ID, "remaining", m.Store.Len())

	m.StatusMsg = "Deleted " + rec.Label()
	m.StatusIsErr = false
	return m, tea.Batch(ClearStatusCmd(3*time.Second), m.prefetchPage())
}

// albumOptions lists albums 0..maxAlbumOption; 0 stands for every album
func albumOptions() []components.Option {
	opts := make([]components.Option, 0, maxAlbumOption+1)
	opts = append(opts, components.Option{Label: "All albums", Value: 0})
	for id := 1; id <= maxAlbumOption; id++ {
		opts = append(opts, components.Option{Label: "Album " + strconv.Itoa(id), Value: id})
	}
	return opts
}

func activeAlbum(f domain.AlbumFilter) int {
	if !f.Active {
		return 0
	}
	return f.ID
}

func pageSizeOptions(sizes []int) []components.Option {
	opts := make([]components.Option, 0, len(sizes))
	for _, n := range sizes {
		if !records.ValidPageSize(n) {
			continue
		}
		opts = append(opts, components.Option{Label: records.PageSizeLabel(n), Value: n})
	}
	return opts
}
