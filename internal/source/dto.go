package source

import (
	"log/slog"

	"github.com/mmcdole/pictable/internal/domain"
)

// photoDTO is one element of the photos endpoint response
type photoDTO struct {
	AlbumID      int    `json:"albumId"`
	ID           int    `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// mapPhotos converts response elements to domain records, skipping entries
// without a usable id
func mapPhotos(photos []photoDTO, logger *slog.Logger) []domain.Record {
	records := make([]domain.Record, 0, len(photos))
	skipped := 0
	for _, p := range photos {
		if p.ID <= 0 {
			skipped++
			continue
		}
		records = append(records, domain.Record{
			ID:           p.ID,
			AlbumID:      p.AlbumID,
			Title:        p.Title,
			URL:          p.URL,
			ThumbnailURL: p.ThumbnailURL,
		})
	}
	if skipped > 0 {
		logger.Warn("skipped photos without id", "count", skipped)
	}
	return records
}
