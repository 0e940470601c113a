// Package porter moves review catalogs in and out of the store: identity-free
// exports for portability, and a strictly sanitized import path for
// externally sourced batches.
package porter

import (
	"context"
	"fmt"
	"time"

	"github.com/chrislg212/bigbackliving-sub000/internal/store"
)

// Pipeline is the bulk import/export pipeline.
type Pipeline struct {
	store store.Store
}

// New creates a pipeline over the given store.
func New(st store.Store) *Pipeline {
	return &Pipeline{store: st}
}

// ExportedReview is a review with its identity stripped so the document can
// be re-imported elsewhere as new records.
type ExportedReview struct {
	store.Review
	ID int64 `json:"-"`
}

// ExportDoc is the portable review catalog.
type ExportDoc struct {
	Reviews    []ExportedReview `json:"reviews"`
	ExportedAt time.Time        `json:"exportedAt"`
}

// Export produces the full review catalog without identity fields.
func (p *Pipeline) Export(ctx context.Context) (*ExportDoc, error) {
	reviews, err := p.store.ListReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("export reviews: %w", err)
	}

	out := make([]ExportedReview, len(reviews))
	for i, r := range reviews {
		out[i] = ExportedReview{Review: r}
	}
	return &ExportDoc{Reviews: out, ExportedAt: time.Now().UTC()}, nil
}
