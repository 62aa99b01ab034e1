package preview

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/mmcdole/pictable/internal/domain"
)

// Preview is the rendered thumbnail of one record
type Preview struct {
	RecordID int
	Art      string
	Err      error
}

// Prefetcher renders thumbnails for a batch of records on a bounded pool
type Prefetcher struct {
	renderer *Renderer
	pool     pond.Pool
	logger   *slog.Logger
}

// NewPrefetcher creates a prefetcher running at most workers downloads at once
func NewPrefetcher(renderer *Renderer, workers int, logger *slog.Logger) *Prefetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prefetcher{
		renderer: renderer,
		pool:     pond.NewPool(max(workers, 1)),
		logger:   logger,
	}
}

// Prefetch renders every record's thumbnail. A failed record keeps its error
// in Preview.Err; records skipped because ctx ended are absent from the map.
func (p *Prefetcher) Prefetch(ctx context.Context, records []domain.Record) map[int]Preview {
	var mu sync.Mutex
	results := make(map[int]Preview, len(records))

	group := p.pool.NewGroupContext(ctx)
	for _, rec := range records {
		rec := rec // per-iteration copy; go.mod targets go1.21 loop semantics
		group.Submit(func() {
			art, err := p.renderer.Render(ctx, rec.ThumbnailURL)
			mu.Lock()
			results[rec.ID] = Preview{RecordID: rec.ID, Art: art, Err: err}
			mu.Unlock()
		})
	}

	if err := group.Wait(); err != nil {
		p.logger.Debug("preview prefetch interrupted", "error", err)
	}

	mu.Lock()
	defer mu.Unlock()
	failed := 0
	for _, pv := range results {
		if pv.Err != nil {
			failed++
		}
	}
	p.logger.Debug("prefetched previews", "requested", len(records), "rendered", len(results)-failed, "failed", failed)
	return results
}

// Close stops the pool after queued work finishes
func (p *Prefetcher) Close() {
	p.pool.StopAndWait()
}
