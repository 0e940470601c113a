package ranking

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrislg212/bigbackliving-sub000/internal/store"
)

func TestValidateRanks(t *testing.T) {
	items := func(ranks ...int) []store.ListItemInput {
		out := make([]store.ListItemInput, len(ranks))
		for i, r := range ranks {
			out[i] = store.ListItemInput{ReviewID: int64(100 + i), Rank: r}
		}
		return out
	}

	tests := []struct {
		name    string
		items   []store.ListItemInput
		wantErr error
	}{
		{"empty", nil, nil},
		{"single", items(1), nil},
		{"full ten", items(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), nil},
		{"out of order is fine", items(3, 1, 2), nil},
		{"eleven items", items(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11), ErrListFull},
		{"zero rank", items(0, 1), ErrBadRanks},
		{"negative rank", items(-1, 1), ErrBadRanks},
		{"gap", items(1, 3), ErrBadRanks},
		{"duplicate rank", items(1, 1), ErrBadRanks},
		{"rank above count", items(1, 5), ErrBadRanks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRanks(tt.items)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRanksDuplicateReview(t *testing.T) {
	err := ValidateRanks([]store.ListItemInput{
		{ReviewID: 7, Rank: 1},
		{ReviewID: 7, Rank: 2},
	})
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestValidateRanksRandomPermutations(t *testing.T) {
	// Any permutation of 1..N over distinct reviews is valid.
	rng := rand.New(rand.NewSource(1))
	for n := 1; n <= MaxItems; n++ {
		ranks := rng.Perm(n)
		items := make([]store.ListItemInput, n)
		for i, r := range ranks {
			items[i] = store.ListItemInput{ReviewID: int64(i + 1), Rank: r + 1}
		}
		assert.NoError(t, ValidateRanks(items), "n=%d", n)
	}
}

func setup(t *testing.T) (*Engine, *store.SQLiteStore, *store.TopTenList, []int64) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	var reviewIDs []int64
	for i := 0; i < 12; i++ {
		r := &store.Review{
			Slug: fmt.Sprintf("spot-%d", i), Name: fmt.Sprintf("Spot %d", i),
			Cuisine: "Italian", Location: "SoHo", Rating: 4, Excerpt: "x", PriceRange: "$$",
		}
		require.NoError(t, st.CreateReview(ctx, r))
		reviewIDs = append(reviewIDs, r.ID)
	}

	list := &store.TopTenList{Slug: "date-night", Name: "Date Night"}
	require.NoError(t, st.CreateTopTenList(ctx, list))
	return New(st), st, list, reviewIDs
}

func members(ids []int64, ranks ...int) []store.ListItemInput {
	out := make([]store.ListItemInput, len(ranks))
	for i, r := range ranks {
		out[i] = store.ListItemInput{ReviewID: ids[i], Rank: r}
	}
	return out
}

func TestReplaceAndItems(t *testing.T) {
	eng, _, list, ids := setup(t)
	ctx := context.Background()

	require.NoError(t, eng.Replace(ctx, list.ID, members(ids, 2, 1, 3)))

	items, err := eng.Items(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, it := range items {
		assert.Equal(t, i+1, it.Rank)
	}
	assert.Equal(t, ids[1], items[0].Review.ID, "rank 1 first")
}

func TestReplaceSwapKeepsContiguity(t *testing.T) {
	eng, _, list, ids := setup(t)
	ctx := context.Background()

	require.NoError(t, eng.Replace(ctx, list.ID, members(ids, 1, 2, 3)))

	// Swap an entry: the fourth review takes rank 2, the old rank 2 leaves.
	swapped := []store.ListItemInput{
		{ReviewID: ids[0], Rank: 1},
		{ReviewID: ids[3], Rank: 2},
		{ReviewID: ids[2], Rank: 3},
	}
	require.NoError(t, eng.Replace(ctx, list.ID, swapped))

	items, err := eng.Items(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, ids[3], items[1].Review.ID)
}

func TestReplaceRandomMutationsMatchModel(t *testing.T) {
	// Drive the stored list and an in-memory model through the same random
	// add/remove/swap sequence, checking after every step that the stored
	// ranks are exactly 1..N in the model's order.
	eng, _, list, ids := setup(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	// model[i] holds the review at rank i+1.
	var model []int64

	toItems := func(m []int64) []store.ListItemInput {
		out := make([]store.ListItemInput, len(m))
		for i, id := range m {
			out[i] = store.ListItemInput{ReviewID: id, Rank: i + 1}
		}
		return out
	}
	absent := func() []int64 {
		in := make(map[int64]bool, len(model))
		for _, id := range model {
			in[id] = true
		}
		var out []int64
		for _, id := range ids {
			if !in[id] {
				out = append(out, id)
			}
		}
		return out
	}

	for step := 0; step < 200; step++ {
		switch rng.Intn(3) {
		case 0: // add at the tail
			free := absent()
			if len(model) == MaxItems || len(free) == 0 {
				continue
			}
			model = append(model, free[rng.Intn(len(free))])
		case 1: // remove, closing the gap
			if len(model) == 0 {
				continue
			}
			k := rng.Intn(len(model))
			model = append(model[:k], model[k+1:]...)
		case 2: // swap adjacent
			if len(model) < 2 {
				continue
			}
			k := rng.Intn(len(model) - 1)
			model[k], model[k+1] = model[k+1], model[k]
		}

		require.NoError(t, eng.Replace(ctx, list.ID, toItems(model)), "step %d", step)

		items, err := eng.Items(ctx, list.ID)
		require.NoError(t, err)
		require.Len(t, items, len(model), "step %d", step)
		for i, it := range items {
			require.Equal(t, i+1, it.Rank, "step %d", step)
			require.Equal(t, model[i], it.Review.ID, "step %d rank %d", step, i+1)
		}
	}
}

func TestReplaceRejectionLeavesPriorState(t *testing.T) {
	eng, _, list, ids := setup(t)
	ctx := context.Background()

	require.NoError(t, eng.Replace(ctx, list.ID, members(ids, 1, 2)))

	tests := []struct {
		name    string
		items   []store.ListItemInput
		wantErr error
	}{
		{"too many", members(ids, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11), ErrListFull},
		{"gap in ranks", members(ids, 1, 3), ErrBadRanks},
		{"duplicate review", []store.ListItemInput{
			{ReviewID: ids[5], Rank: 1}, {ReviewID: ids[5], Rank: 2},
		}, ErrDuplicateReview},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, eng.Replace(ctx, list.ID, tt.items), tt.wantErr)

			items, err := eng.Items(ctx, list.ID)
			require.NoError(t, err)
			require.Len(t, items, 2, "prior membership untouched")
			assert.Equal(t, ids[0], items[0].Review.ID)
			assert.Equal(t, ids[1], items[1].Review.ID)
		})
	}
}

func TestReplaceUnknownList(t *testing.T) {
	eng, _, _, ids := setup(t)
	err := eng.Replace(context.Background(), 99999, members(ids, 1))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestItemsUnknownList(t *testing.T) {
	eng, _, _, _ := setup(t)
	_, err := eng.Items(context.Background(), 99999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReplaceEmptyClearsList(t *testing.T) {
	eng, _, list, ids := setup(t)
	ctx := context.Background()

	require.NoError(t, eng.Replace(ctx, list.ID, members(ids, 1, 2, 3)))
	require.NoError(t, eng.Replace(ctx, list.ID, nil))

	items, err := eng.Items(ctx, list.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
