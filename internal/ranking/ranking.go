// Package ranking maintains the ordered membership of top-ten lists. Ranks
// within a list must always be the contiguous range 1..N.
package ranking

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrislg212/bigbackliving-sub000/internal/store"
)

// MaxItems is the membership cap of a single list.
const MaxItems = 10

var (
	// ErrListFull rejects a replacement with more than MaxItems entries.
	ErrListFull = errors.New("list exceeds ten items")
	// ErrBadRanks rejects a rank array that is not exactly 1..N.
	ErrBadRanks = errors.New("ranks must be contiguous from 1 with no duplicates")
	// ErrDuplicateReview rejects a review appearing twice in one list.
	ErrDuplicateReview = errors.New("review appears more than once in list")
)

// Engine validates and applies list mutations.
type Engine struct {
	store store.Store
}

// New creates a ranking engine over the given store.
func New(st store.Store) *Engine {
	return &Engine{store: st}
}

// Items returns a list's items joined against full reviews, rank ascending.
// The list must exist.
func (e *Engine) Items(ctx context.Context, listID int64) ([]store.ListItem, error) {
	if _, err := e.store.GetTopTenList(ctx, listID); err != nil {
		return nil, err
	}
	return e.store.ListItems(ctx, listID)
}

// Replace swaps the entire membership of a list for the given ordered set.
// The submitted ranks must form exactly 1..N with no duplicates and N must
// not exceed MaxItems; otherwise the call is rejected outright and the prior
// state is untouched. The write itself is transactional, so no reader ever
// observes a half-replaced list.
func (e *Engine) Replace(ctx context.Context, listID int64, items []store.ListItemInput) error {
	if err := ValidateRanks(items); err != nil {
		return err
	}
	if _, err := e.store.GetTopTenList(ctx, listID); err != nil {
		return err
	}
	if err := e.store.ReplaceListItems(ctx, listID, items); err != nil {
		return fmt.Errorf("replace list %d items: %w", listID, err)
	}
	return nil
}

// ValidateRanks checks the contiguity, capacity, and uniqueness invariants
// of a submitted item array without touching storage.
func ValidateRanks(items []store.ListItemInput) error {
	if len(items) > MaxItems {
		return ErrListFull
	}

	seenRank := make(map[int]bool, len(items))
	seenReview := make(map[int64]bool, len(items))
	for _, it := range items {
		if it.Rank < 1 || it.Rank > len(items) || seenRank[it.Rank] {
			return ErrBadRanks
		}
		seenRank[it.Rank] = true
		if seenReview[it.ReviewID] {
			return ErrDuplicateReview
		}
		seenReview[it.ReviewID] = true
	}
	// len(items) distinct values in [1, len(items)] is exactly 1..N.
	return nil
}
