// Package staticdata assembles the read-only site catalog used by static
// deployments. The catalog is built once at startup, from either the live
// store or a frozen snapshot file, and never mutated afterwards.
package staticdata

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/chrislg212/bigbackliving-sub000/internal/store"
)

// ModeLive and ModeSnapshot select where the catalog comes from.
const (
	ModeLive     = "live"
	ModeSnapshot = "snapshot"
)

// ReviewWithTags is a review joined with its tag sets in every taxonomy.
type ReviewWithTags struct {
	store.Review
	Cuisines           []store.Taxon `json:"cuisines"`
	NYCCategories      []store.Taxon `json:"nycCategories"`
	LocationCategories []store.Taxon `json:"locationCategories"`
}

// ListWithItems is a top-ten list joined with its ordered items.
type ListWithItems struct {
	store.TopTenList
	Items []store.ListItem `json:"items"`
}

// Catalog is the complete site content snapshot.
type Catalog struct {
	Reviews            []ReviewWithTags         `json:"reviews"`
	Cuisines           []store.Taxon            `json:"cuisines"`
	NYCCategories      []store.Taxon            `json:"nycCategories"`
	Regions            []store.Taxon            `json:"regions"`
	LocationCategories []store.LocationCategory `json:"locationCategories"`
	Lists              []ListWithItems          `json:"topTenLists"`
	SocialSettings     []store.SocialSetting    `json:"socialSettings"`
	SocialEmbeds       []store.SocialEmbed      `json:"socialEmbeds"`
	PageHeaders        []store.PageHeader       `json:"pageHeaders"`
	GeneratedAt        time.Time                `json:"generatedAt"`
}

// Open returns the catalog for the configured mode: queried from the live
// store, or read from the frozen snapshot at path.
func Open(ctx context.Context, st store.Store, mode, path string) (*Catalog, error) {
	switch mode {
	case "", ModeLive:
		return Build(ctx, st)
	case ModeSnapshot:
		return LoadFile(path)
	default:
		return nil, fmt.Errorf("unknown static data mode %q", mode)
	}
}

// Build assembles a catalog from the live store.
func Build(ctx context.Context, st store.Store) (*Catalog, error) {
	c := &Catalog{GeneratedAt: time.Now().UTC()}

	reviews, err := st.ListReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	for _, r := range reviews {
		rt := ReviewWithTags{Review: r}
		if rt.Cuisines, err = st.TaggedTaxa(ctx, r.ID, store.TaxonomyCuisine); err != nil {
			return nil, fmt.Errorf("build catalog: %w", err)
		}
		if rt.NYCCategories, err = st.TaggedTaxa(ctx, r.ID, store.TaxonomyNYCCategory); err != nil {
			return nil, fmt.Errorf("build catalog: %w", err)
		}
		if rt.LocationCategories, err = st.TaggedTaxa(ctx, r.ID, store.TaxonomyLocationCategory); err != nil {
			return nil, fmt.Errorf("build catalog: %w", err)
		}
		c.Reviews = append(c.Reviews, rt)
	}

	if c.Cuisines, err = st.ListCuisines(ctx); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	if c.NYCCategories, err = st.ListNYCCategories(ctx); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	if c.Regions, err = st.ListRegions(ctx); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	if c.LocationCategories, err = st.ListLocationCategories(ctx, 0); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	lists, err := st.ListTopTenLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	for _, l := range lists {
		items, err := st.ListItems(ctx, l.ID)
		if err != nil {
			return nil, fmt.Errorf("build catalog: %w", err)
		}
		c.Lists = append(c.Lists, ListWithItems{TopTenList: l, Items: items})
	}

	if c.SocialSettings, err = st.ListSocialSettings(ctx); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	if c.SocialEmbeds, err = st.ListSocialEmbeds(ctx); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	if c.PageHeaders, err = st.ListPageHeaders(ctx); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	return c, nil
}

// LoadFile reads a frozen catalog written by WriteFile.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return &c, nil
}

// WriteFile freezes the catalog to disk for static deployment.
func (c *Catalog) WriteFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}
