package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pictable/internal/domain"
	"github.com/mmcdole/pictable/internal/preview"
	"github.com/mmcdole/pictable/internal/search"
	"github.com/mmcdole/pictable/internal/tui/styles"
)

// previewState tracks the thumbnail shown in the detail modal
type previewState int

const (
	previewNone previewState = iota // previews disabled
	previewLoading
	previewReady
	previewFailed
)

// DetailModal shows every field of one record plus its thumbnail
type DetailModal struct {
	visible bool
	record  domain.Record
	query   string
	art     string
	state   previewState
	width   int
}

// NewDetailModal creates a hidden detail modal
func NewDetailModal() DetailModal {
	return DetailModal{}
}

// Show displays rec. query highlights matched title characters.
func (d *DetailModal) Show(rec domain.Record, query string) {
	d.visible = true
	d.record = rec
	d.query = query
	d.art = ""
	d.state = previewNone
}

// Hide dismisses the modal
func (d *DetailModal) Hide() {
	d.visible = false
}

// IsVisible returns whether the modal is shown
func (d DetailModal) IsVisible() bool {
	return d.visible
}

// Record returns the record on display
func (d DetailModal) Record() domain.Record {
	return d.record
}

// SetPreviewLoading marks the thumbnail as being fetched
func (d *DetailModal) SetPreviewLoading() {
	d.state = previewLoading
}

// SetPreview installs a rendered thumbnail if it belongs to the record shown
func (d *DetailModal) SetPreview(p preview.Preview) {
	if p.RecordID != d.record.ID {
		return
	}
	if p.Err != nil {
		d.state = previewFailed
		d.art = ""
		return
	}
	d.state = previewReady
	d.art = p.Art
}

// SetWidth bounds the modal to the terminal width
func (d *DetailModal) SetWidth(width int) {
	d.width = width
}

// View renders the modal
func (d DetailModal) View() string {
	if !d.visible {
		return ""
	}

	contentWidth := 56
	if d.width > 0 {
		contentWidth = min(contentWidth, d.width-8)
	}
	contentWidth = max(contentWidth, 20)

	var b strings.Builder

	title := styles.Highlight(d.record.Title, search.Highlight(d.query, d.record.Title), styles.TitleStyle)
	b.WriteString(lipgloss.NewStyle().Width(contentWidth).Render(title))
	b.WriteString("\n\n")

	b.WriteString(field("ID", strconv.Itoa(d.record.ID), contentWidth))
	b.WriteString(field("Album", strconv.Itoa(d.record.AlbumID), contentWidth))
	b.WriteString(field("URL", d.record.URL, contentWidth))
	b.WriteString(field("Thumbnail", d.record.ThumbnailURL, contentWidth))

	switch d.state {
	case previewLoading:
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("loading preview..."))
		b.WriteString("\n")
	case previewFailed:
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("preview unavailable"))
		b.WriteString("\n")
	case previewReady:
		b.WriteString("\n")
		b.WriteString(d.art)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hint("o", "open") + "  " + hint("x", "delete") + "  " + hint("esc", "close"))

	return styles.ModalStyle.Render(b.String())
}

func field(label, value string, width int) string {
	valueWidth := width - lipgloss.Width(styles.FieldLabelStyle.Render(""))
	return styles.FieldLabelStyle.Render(label) +
		styles.SubtitleStyle.Render(styles.Truncate(value, valueWidth)) + "\n"
}

func hint(key, desc string) string {
	return styles.HelpKeyStyle.Render(key) + " " + styles.HelpDescStyle.Render(desc)
}
