package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type taxonomyMapping struct {
	join      string
	entityCol string
	entity    string
}

// taxonomyTables maps a taxonomy to its join table and entity table. The map
// is the only place join SQL identifiers come from; unknown taxonomies fail
// before any query is built.
var taxonomyTables = map[Taxonomy]taxonomyMapping{
	TaxonomyCuisine:          {join: "review_cuisines", entityCol: "cuisine_id", entity: tableCuisines},
	TaxonomyNYCCategory:      {join: "review_nyc_categories", entityCol: "category_id", entity: tableNYCCategories},
	TaxonomyLocationCategory: {join: "review_location_categories", entityCol: "category_id", entity: tableLocationCategories},
}

func taxonomyTable(tax Taxonomy) (taxonomyMapping, error) {
	t, ok := taxonomyTables[tax]
	if !ok {
		return t, fmt.Errorf("unknown taxonomy %q", tax)
	}
	return t, nil
}

// TaggedIDs returns the entity ids a review is tagged with in one taxonomy.
func (s *SQLiteStore) TaggedIDs(ctx context.Context, reviewID int64, tax Taxonomy) ([]int64, error) {
	t, err := taxonomyTable(tax)
	if err != nil {
		return nil, err
	}

	var ids []int64
	query := "SELECT " + t.entityCol + " FROM " + t.join + " WHERE review_id = ?"
	if err := s.db.SelectContext(ctx, &ids, query, reviewID); err != nil {
		return nil, fmt.Errorf("tagged ids review %d %s: %w", reviewID, tax, err)
	}
	return ids, nil
}

// TaggedTaxa returns the full entities a review is tagged with in one
// taxonomy. Order is undefined.
func (s *SQLiteStore) TaggedTaxa(ctx context.Context, reviewID int64, tax Taxonomy) ([]Taxon, error) {
	t, err := taxonomyTable(tax)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT e.id, e.slug, e.name, e.description, e.image, e.created_at, e.updated_at
		FROM ` + t.entity + ` e
		JOIN ` + t.join + ` j ON j.` + t.entityCol + ` = e.id
		WHERE j.review_id = ?`

	var taxa []Taxon
	if err := s.db.SelectContext(ctx, &taxa, query, reviewID); err != nil {
		return nil, fmt.Errorf("tagged taxa review %d %s: %w", reviewID, tax, err)
	}
	return taxa, nil
}

// InsertTags adds join rows for the given entity ids. Existing pairs are a
// caller error; the composite primary key is the backstop.
func (s *SQLiteStore) InsertTags(ctx context.Context, reviewID int64, tax Taxonomy, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	t, err := taxonomyTable(tax)
	if err != nil {
		return err
	}

	query := "INSERT INTO " + t.join + " (review_id, " + t.entityCol + ") VALUES (?, ?)"
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, query, reviewID, id); err != nil {
			return fmt.Errorf("tag review %d with %s %d: %w", reviewID, tax, id, err)
		}
	}
	return nil
}

// DeleteTags removes join rows for the given entity ids.
func (s *SQLiteStore) DeleteTags(ctx context.Context, reviewID int64, tax Taxonomy, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	t, err := taxonomyTable(tax)
	if err != nil {
		return err
	}

	query := "DELETE FROM " + t.join + " WHERE review_id = ? AND " + t.entityCol + " = ?"
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, query, reviewID, id); err != nil {
			return fmt.Errorf("untag review %d from %s %d: %w", reviewID, tax, id, err)
		}
	}
	return nil
}

// ReplaceTags applies a tag-set diff in one transaction, so a rejected insert
// never leaves the set with the removals applied but the additions missing.
func (s *SQLiteStore) ReplaceTags(ctx context.Context, reviewID int64, tax Taxonomy, remove, add []int64) error {
	if len(remove) == 0 && len(add) == 0 {
		return nil
	}
	t, err := taxonomyTable(tax)
	if err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		del := "DELETE FROM " + t.join + " WHERE review_id = ? AND " + t.entityCol + " = ?"
		for _, id := range remove {
			if _, err := tx.ExecContext(ctx, del, reviewID, id); err != nil {
				return fmt.Errorf("untag review %d from %s %d: %w", reviewID, tax, id, err)
			}
		}
		ins := "INSERT INTO " + t.join + " (review_id, " + t.entityCol + ") VALUES (?, ?)"
		for _, id := range add {
			if _, err := tx.ExecContext(ctx, ins, reviewID, id); err != nil {
				return fmt.Errorf("tag review %d with %s %d: %w", reviewID, tax, id, err)
			}
		}
		return nil
	})
}
