// Package preview turns photo thumbnails into half-block terminal art.
package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

// ErrNoImage is returned for records without a thumbnail URL
var ErrNoImage = errors.New("record has no image")

const (
	defaultTimeout = 10 * time.Second
	maxImageBytes  = 8 << 20

	// upper half block: foreground paints the top pixel, background the bottom one
	halfBlock = "▀"
)

// Renderer fetches images and renders them into a fixed cell box
type Renderer struct {
	cols       int
	rows       int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRenderer creates a renderer producing art at most cols wide and rows tall
func NewRenderer(cols, rows int, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		cols: max(cols, 1),
		rows: max(rows, 1),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Render downloads url and returns it as terminal art
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", ErrNoImage
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Debug("preview fetch failed", "url", url, "error", err)
		return "", fmt.Errorf("fetching preview: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching preview: unexpected status code: %d", resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", fmt.Errorf("decoding preview: %w", err)
	}

	return RenderImage(img, r.cols, r.rows), nil
}

// RenderImage scales img into cols x rows cells, keeping its aspect ratio.
// Each cell covers two vertical pixels.
func RenderImage(img image.Image, cols, rows int) string {
	scaled := resize.Thumbnail(uint(cols), uint(rows*2), img, resize.Bilinear)
	b := scaled.Bounds()

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hexColor(scaled.At(x, y))
			bottom := top
			if y+1 < b.Max.Y {
				bottom = hexColor(scaled.At(x, y+1))
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(halfBlock))
		}
	}
	return sb.String()
}

func hexColor(c color.Color) string {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
