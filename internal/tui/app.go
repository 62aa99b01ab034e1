package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pictable/internal/domain"
	"github.com/mmcdole/pictable/internal/preview"
	"github.com/mmcdole/pictable/internal/records"
	"github.com/mmcdole/pictable/internal/tui/components"
	"github.com/mmcdole/pictable/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

const (
	// Header, pager line and footer
	ChromeHeight = 3

	spinnerInterval     = 100 * time.Millisecond
	defaultFetchTimeout = 30 * time.Second
	previewTimeout      = 20 * time.Second

	// Upper bound of thumbnails requested for one page
	maxPrefetch = 25

	// Highest album offered by the album picker
	maxAlbumOption = 100
)

// Options wires the model to its collaborators
type Options struct {
	Source       domain.RecordSource
	Previews     PreviewFetcher // nil disables thumbnails
	Launcher     ViewerLauncher // nil disables opening images
	PageSize     int
	PageSizes    []int
	FetchTimeout time.Duration
	Logger       *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Dataset and every transition applied to it
	Store records.Store

	// Collaborators
	source       domain.RecordSource
	previews     PreviewFetcher
	launcher     ViewerLauncher
	logger       *slog.Logger
	fetchTimeout time.Duration
	pageSizes    []int
	keys         KeyMap

	// UI Components
	Table       components.RecordTable
	Pager       paginator.Model
	Help        help.Model
	AlbumPicker components.OptionModal
	SizePicker  components.OptionModal
	QueryInput  components.InputModal
	Detail      components.DetailModal

	// Rendered thumbnails by record id, and ids with a render in flight
	Previews map[int]preview.Preview
	pending  map[int]bool

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates a new application model. The fetch starts in Init.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if len(opts.PageSizes) == 0 {
		opts.PageSizes = records.DefaultPageSizes
	}

	keys := DefaultKeyMap()

	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.ArabicFormat = "page %d/%d"

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	return Model{
		State:        StateBrowsing,
		Store:        records.New(opts.PageSize).Loading(),
		source:       opts.Source,
		previews:     opts.Previews,
		launcher:     opts.Launcher,
		logger:       opts.Logger,
		fetchTimeout: opts.FetchTimeout,
		pageSizes:    opts.PageSizes,
		keys:         keys,
		Table:        components.NewRecordTable(keys.TableKeyMap()),
		Pager:        pager,
		Help:         h,
		AlbumPicker:  components.NewOptionModal("Album"),
		SizePicker:   components.NewOptionModal("Rows per page"),
		QueryInput:   components.NewInputModal("part of a title..."),
		Detail:       components.NewDetailModal(),
		Previews:     make(map[int]preview.Preview),
		pending:      make(map[int]bool),
	}
}

// Init issues the one-shot dataset fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		FetchRecordsCmd(m.source, m.fetchTimeout),
		TickCmd(spinnerInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		if m.Store.Status() != records.StatusLoading {
			return m, nil
		}
		m.SpinnerFrame++
		return m, TickCmd(spinnerInterval)

	case RecordsLoadedMsg:
		m.Store = m.Store.Load(msg.Records)
		m.syncKeys()
		m.Table.ResetCursor()
		m.syncTable()
		m.logger.Info("records loaded", "count", m.Store.Len(), "duplicates", m.Store.Dropped())

		var cmds []tea.Cmd
		if n := m.Store.Dropped(); n > 0 {
			m.StatusMsg = fmt.Sprintf("Dropped %d duplicate records", n)
			m.StatusIsErr = false
			cmds = append(cmds, ClearStatusCmd(3*time.Second))
		}
		cmds = append(cmds, m.prefetchPage())
		return m, tea.Batch(cmds...)

	case RecordsFailedMsg:
		m.Store = m.Store.LoadFailed(msg.Err)
		m.syncKeys()
		m.logger.Error("fetching records failed", "error", msg.Err)
		return m, nil

	case PreviewsLoadedMsg:
		for id, p := range msg.Previews {
			m.Previews[id] = p
			delete(m.pending, id)
			if m.Detail.IsVisible() {
				m.Detail.SetPreview(p)
			}
		}
		return m, nil

	case ViewerLaunchedMsg:
		m.StatusMsg = "Opened " + msg.Record.Label()
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case ErrMsg:
		m.logger.Error(msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// syncKeys enables retry only after a failed fetch
func (m *Model) syncKeys() {
	m.keys.Retry.SetEnabled(m.Store.Status() == records.StatusFailed)
}

// syncTable pushes the current page into the table, pager and detail modal
func (m *Model) syncTable() {
	view := m.Store.Page()
	m.Table.SetRows(view.Rows, view.Padding)
	m.Pager.TotalPages = max(view.TotalPages, 1)
	m.Pager.Page = view.Page

	if !m.Store.Selection().IsOpen() {
		m.Detail.Hide()
	}
}

// prefetchPage requests thumbnails for rows of the current page that have none
func (m *Model) prefetchPage() tea.Cmd {
	if m.previews == nil {
		return nil
	}

	var batch []domain.Record
	for _, r := range m.Store.Page().Rows {
		if len(batch) == maxPrefetch {
			break
		}
		if _, ok := m.Previews[r.ID]; ok || m.pending[r.ID] {
			continue
		}
		batch = append(batch, r)
	}
	return m.requestPreviews(batch)
}

func (m *Model) requestPreviews(batch []domain.Record) tea.Cmd {
	if m.previews == nil || len(batch) == 0 {
		return nil
	}
	for _, r := range batch {
		m.pending[r.ID] = true
	}
	return PrefetchPreviewsCmd(m.previews, batch, previewTimeout)
}
