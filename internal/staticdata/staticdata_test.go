package staticdata

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrislg212/bigbackliving-sub000/internal/store"
)

func seededStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	r := &store.Review{
		Slug: "lucali", Name: "Lucali", Cuisine: "Pizza", Location: "Carroll Gardens",
		Rating: 5, Excerpt: "Worth the wait.", PriceRange: "$$",
	}
	require.NoError(t, st.CreateReview(ctx, r))

	cuisine := &store.Taxon{Slug: "pizza", Name: "Pizza"}
	require.NoError(t, st.CreateCuisine(ctx, cuisine))
	require.NoError(t, st.InsertTags(ctx, r.ID, store.TaxonomyCuisine, []int64{cuisine.ID}))

	list := &store.TopTenList{Slug: "best-pizza", Name: "Best Pizza"}
	require.NoError(t, st.CreateTopTenList(ctx, list))
	require.NoError(t, st.ReplaceListItems(ctx, list.ID, []store.ListItemInput{
		{ReviewID: r.ID, Rank: 1},
	}))

	require.NoError(t, st.UpsertPageHeader(ctx, &store.PageHeader{Page: "home", Title: "Big Back Living"}))
	return st
}

func TestBuild(t *testing.T) {
	st := seededStore(t)

	c, err := Build(context.Background(), st)
	require.NoError(t, err)

	require.Len(t, c.Reviews, 1)
	assert.Equal(t, "lucali", c.Reviews[0].Slug)
	require.Len(t, c.Reviews[0].Cuisines, 1)
	assert.Equal(t, "pizza", c.Reviews[0].Cuisines[0].Slug)

	require.Len(t, c.Lists, 1)
	require.Len(t, c.Lists[0].Items, 1)
	assert.Equal(t, 1, c.Lists[0].Items[0].Rank)

	require.Len(t, c.PageHeaders, 1)
	assert.False(t, c.GeneratedAt.IsZero())
}

func TestSnapshotRoundTrip(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()

	built, err := Build(ctx, st)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "static.json")
	require.NoError(t, built.WriteFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Reviews, 1)
	assert.Equal(t, built.Reviews[0].Slug, loaded.Reviews[0].Slug)
	assert.Len(t, loaded.Lists, 1)
}

func TestOpenModes(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()

	live, err := Open(ctx, st, ModeLive, "")
	require.NoError(t, err)
	assert.Len(t, live.Reviews, 1)

	// Empty mode defaults to live.
	defaulted, err := Open(ctx, st, "", "")
	require.NoError(t, err)
	assert.Len(t, defaulted.Reviews, 1)

	path := filepath.Join(t.TempDir(), "static.json")
	require.NoError(t, live.WriteFile(path))
	snap, err := Open(ctx, st, ModeSnapshot, path)
	require.NoError(t, err)
	assert.Len(t, snap.Reviews, 1)

	_, err = Open(ctx, st, "bogus", "")
	assert.Error(t, err)

	_, err = Open(ctx, st, ModeSnapshot, "/nonexistent.json")
	assert.Error(t, err)
}
