package domain

import "context"

// RecordSource fetches the full record list in one request.
// Implemented by the HTTP client in internal/source.
type RecordSource interface {
	FetchRecords(ctx context.Context) ([]Record, error)
}
