package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// The three flat taxonomies share a column layout, so their CRUD methods
// delegate to table-parameterized helpers. Table names are compile-time
// constants, never caller input.
const (
	tableCuisines           = "cuisines"
	tableNYCCategories      = "nyc_categories"
	tableRegions            = "regions"
	tableLocationCategories = "location_categories"
)

func (s *SQLiteStore) ListCuisines(ctx context.Context) ([]Taxon, error) {
	return s.listTaxa(ctx, tableCuisines)
}

func (s *SQLiteStore) GetCuisine(ctx context.Context, id int64) (*Taxon, error) {
	return s.getTaxon(ctx, tableCuisines, "id", id)
}

func (s *SQLiteStore) GetCuisineBySlug(ctx context.Context, slug string) (*Taxon, error) {
	return s.getTaxon(ctx, tableCuisines, "slug", slug)
}

func (s *SQLiteStore) CreateCuisine(ctx context.Context, t *Taxon) error {
	return s.createTaxon(ctx, tableCuisines, t)
}

func (s *SQLiteStore) UpdateCuisine(ctx context.Context, id int64, p TaxonPatch) (*Taxon, error) {
	return s.updateTaxon(ctx, tableCuisines, id, p)
}

func (s *SQLiteStore) DeleteCuisine(ctx context.Context, id int64) (bool, error) {
	return s.deleteRow(ctx, "DELETE FROM cuisines WHERE id = ?", id)
}

func (s *SQLiteStore) ListNYCCategories(ctx context.Context) ([]Taxon, error) {
	return s.listTaxa(ctx, tableNYCCategories)
}

func (s *SQLiteStore) GetNYCCategory(ctx context.Context, id int64) (*Taxon, error) {
	return s.getTaxon(ctx, tableNYCCategories, "id", id)
}

func (s *SQLiteStore) GetNYCCategoryBySlug(ctx context.Context, slug string) (*Taxon, error) {
	return s.getTaxon(ctx, tableNYCCategories, "slug", slug)
}

func (s *SQLiteStore) CreateNYCCategory(ctx context.Context, t *Taxon) error {
	return s.createTaxon(ctx, tableNYCCategories, t)
}

func (s *SQLiteStore) UpdateNYCCategory(ctx context.Context, id int64, p TaxonPatch) (*Taxon, error) {
	return s.updateTaxon(ctx, tableNYCCategories, id, p)
}

func (s *SQLiteStore) DeleteNYCCategory(ctx context.Context, id int64) (bool, error) {
	return s.deleteRow(ctx, "DELETE FROM nyc_categories WHERE id = ?", id)
}

func (s *SQLiteStore) ListRegions(ctx context.Context) ([]Taxon, error) {
	return s.listTaxa(ctx, tableRegions)
}

func (s *SQLiteStore) GetRegion(ctx context.Context, id int64) (*Taxon, error) {
	return s.getTaxon(ctx, tableRegions, "id", id)
}

func (s *SQLiteStore) GetRegionBySlug(ctx context.Context, slug string) (*Taxon, error) {
	return s.getTaxon(ctx, tableRegions, "slug", slug)
}

func (s *SQLiteStore) CreateRegion(ctx context.Context, t *Taxon) error {
	return s.createTaxon(ctx, tableRegions, t)
}

func (s *SQLiteStore) UpdateRegion(ctx context.Context, id int64, p TaxonPatch) (*Taxon, error) {
	return s.updateTaxon(ctx, tableRegions, id, p)
}

func (s *SQLiteStore) DeleteRegion(ctx context.Context, id int64) (bool, error) {
	return s.deleteRow(ctx, "DELETE FROM regions WHERE id = ?", id)
}

// ListLocationCategories returns all location categories, optionally filtered
// to one owning region (regionID > 0).
func (s *SQLiteStore) ListLocationCategories(ctx context.Context, regionID int64) ([]LocationCategory, error) {
	query := "SELECT * FROM location_categories"
	var args []any
	if regionID > 0 {
		query += " WHERE region_id = ?"
		args = append(args, regionID)
	}
	query += " ORDER BY name"

	var cats []LocationCategory
	if err := s.db.SelectContext(ctx, &cats, query, args...); err != nil {
		return nil, fmt.Errorf("list location categories: %w", err)
	}
	return cats, nil
}

func (s *SQLiteStore) GetLocationCategory(ctx context.Context, id int64) (*LocationCategory, error) {
	return s.getLocationCategory(ctx, "SELECT * FROM location_categories WHERE id = ?", id)
}

func (s *SQLiteStore) GetLocationCategoryBySlug(ctx context.Context, slug string) (*LocationCategory, error) {
	return s.getLocationCategory(ctx, "SELECT * FROM location_categories WHERE slug = ?", slug)
}

func (s *SQLiteStore) getLocationCategory(ctx context.Context, query string, arg any) (*LocationCategory, error) {
	var lc LocationCategory
	err := s.db.GetContext(ctx, &lc, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get location category %v: %w", arg, err)
	}
	return &lc, nil
}

func (s *SQLiteStore) CreateLocationCategory(ctx context.Context, lc *LocationCategory) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO location_categories (slug, name, description, image, region_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, lc.Slug, lc.Name, lc.Description, lc.Image, lc.RegionID, now, now)
	if err != nil {
		return fmt.Errorf("create location category %s: %w", lc.Slug, err)
	}
	lc.ID, _ = res.LastInsertId()
	lc.CreatedAt, lc.UpdatedAt = now, now
	return nil
}

func (s *SQLiteStore) UpdateLocationCategory(ctx context.Context, id int64, p LocationCategoryPatch) (*LocationCategory, error) {
	sets, args := taxonSets(p.TaxonPatch)
	if p.RegionID != nil {
		sets = append(sets, "region_id = ?")
		args = append(args, *p.RegionID)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE location_categories SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("update location category %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetLocationCategory(ctx, id)
}

func (s *SQLiteStore) DeleteLocationCategory(ctx context.Context, id int64) (bool, error) {
	return s.deleteRow(ctx, "DELETE FROM location_categories WHERE id = ?", id)
}

func (s *SQLiteStore) listTaxa(ctx context.Context, table string) ([]Taxon, error) {
	var taxa []Taxon
	if err := s.db.SelectContext(ctx, &taxa, "SELECT * FROM "+table+" ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return taxa, nil
}

func (s *SQLiteStore) getTaxon(ctx context.Context, table, col string, arg any) (*Taxon, error) {
	var t Taxon
	err := s.db.GetContext(ctx, &t, "SELECT * FROM "+table+" WHERE "+col+" = ?", arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %v: %w", table, arg, err)
	}
	return &t, nil
}

func (s *SQLiteStore) createTaxon(ctx context.Context, table string, t *Taxon) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO `+table+` (slug, name, description, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.Slug, t.Name, t.Description, t.Image, now, now)
	if err != nil {
		return fmt.Errorf("create %s %s: %w", table, t.Slug, err)
	}
	t.ID, _ = res.LastInsertId()
	t.CreatedAt, t.UpdatedAt = now, now
	return nil
}

func (s *SQLiteStore) updateTaxon(ctx context.Context, table string, id int64, p TaxonPatch) (*Taxon, error) {
	sets, args := taxonSets(p)
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE "+table+" SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", table, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.getTaxon(ctx, table, "id", id)
}

func taxonSets(p TaxonPatch) ([]string, []any) {
	var sets []string
	var args []any
	if p.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *p.Slug)
	}
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Image != nil {
		sets = append(sets, "image = ?")
		args = append(args, *p.Image)
	}
	return sets, args
}
