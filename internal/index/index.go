package index

import (
	"context"

	"github.com/starford/folio/internal/models"
)

// ContentIndex defines the interface for the body-text search mirror.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type ContentIndex interface {
	Replace(ctx context.Context, articles []models.Article) error
	SearchContent(ctx context.Context, query string, limit int) ([]SearchResult, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// Verify *DB satisfies ContentIndex at compile time.
var _ ContentIndex = (*DB)(nil)
