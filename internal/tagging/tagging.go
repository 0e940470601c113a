// Package tagging maintains the many-to-many associations between reviews
// and their classification taxonomies.
package tagging

import (
	"context"
	"fmt"

	"github.com/chrislg212/bigbackliving-sub000/internal/store"
)

// Engine applies tag-set mutations with replace semantics.
type Engine struct {
	store store.Store
}

// New creates a tagging engine over the given store.
func New(st store.Store) *Engine {
	return &Engine{store: st}
}

// Tags returns the full taxonomy entities a review is tagged with. Order is
// undefined.
func (e *Engine) Tags(ctx context.Context, reviewID int64, tax store.Taxonomy) ([]store.Taxon, error) {
	return e.store.TaggedTaxa(ctx, reviewID, tax)
}

// SetTags makes the review's tag set in one taxonomy exactly equal the given
// ids (deduplicated). Only the symmetric difference against the current set
// is written, so repeating a call is zero row churn, and the diff lands in a
// single transaction so a failure leaves the prior set intact. Unknown review
// or entity ids are left to the foreign-key constraints.
func (e *Engine) SetTags(ctx context.Context, reviewID int64, tax store.Taxonomy, ids []int64) error {
	desired := make(map[int64]bool, len(ids))
	for _, id := range ids {
		desired[id] = true
	}

	current, err := e.store.TaggedIDs(ctx, reviewID, tax)
	if err != nil {
		return fmt.Errorf("set tags: %w", err)
	}
	have := make(map[int64]bool, len(current))
	for _, id := range current {
		have[id] = true
	}

	var toRemove []int64
	for _, id := range current {
		if !desired[id] {
			toRemove = append(toRemove, id)
		}
	}
	var toAdd []int64
	for id := range desired {
		if !have[id] {
			toAdd = append(toAdd, id)
		}
	}

	if err := e.store.ReplaceTags(ctx, reviewID, tax, toRemove, toAdd); err != nil {
		return fmt.Errorf("set tags: %w", err)
	}
	return nil
}
