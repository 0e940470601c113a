package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

func (s *SQLiteStore) ListTopTenLists(ctx context.Context) ([]TopTenList, error) {
	var lists []TopTenList
	if err := s.db.SelectContext(ctx, &lists, "SELECT * FROM top_ten_lists ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list top ten lists: %w", err)
	}
	return lists, nil
}

func (s *SQLiteStore) GetTopTenList(ctx context.Context, id int64) (*TopTenList, error) {
	return s.getTopTenList(ctx, "SELECT * FROM top_ten_lists WHERE id = ?", id)
}

func (s *SQLiteStore) GetTopTenListBySlug(ctx context.Context, slug string) (*TopTenList, error) {
	return s.getTopTenList(ctx, "SELECT * FROM top_ten_lists WHERE slug = ?", slug)
}

func (s *SQLiteStore) getTopTenList(ctx context.Context, query string, arg any) (*TopTenList, error) {
	var l TopTenList
	err := s.db.GetContext(ctx, &l, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get top ten list %v: %w", arg, err)
	}
	return &l, nil
}

func (s *SQLiteStore) CreateTopTenList(ctx context.Context, l *TopTenList) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO top_ten_lists (slug, name, description, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, l.Slug, l.Name, l.Description, l.Image, now, now)
	if err != nil {
		return fmt.Errorf("create top ten list %s: %w", l.Slug, err)
	}
	l.ID, _ = res.LastInsertId()
	l.CreatedAt, l.UpdatedAt = now, now
	return nil
}

func (s *SQLiteStore) UpdateTopTenList(ctx context.Context, id int64, p TaxonPatch) (*TopTenList, error) {
	sets, args := taxonSets(p)
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE top_ten_lists SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("update top ten list %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetTopTenList(ctx, id)
}

func (s *SQLiteStore) DeleteTopTenList(ctx context.Context, id int64) (bool, error) {
	return s.deleteRow(ctx, "DELETE FROM top_ten_lists WHERE id = ?", id)
}

// ListItems returns a list's items joined against full review rows, ordered
// by rank ascending.
func (s *SQLiteStore) ListItems(ctx context.Context, listID int64) ([]ListItem, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT r.*, i.rank AS item_rank
		FROM top_ten_list_items i
		JOIN reviews r ON r.id = i.review_id
		WHERE i.list_id = ?
		ORDER BY i.rank
	`, listID)
	if err != nil {
		return nil, fmt.Errorf("list items %d: %w", listID, err)
	}
	defer rows.Close()

	var items []ListItem
	for rows.Next() {
		var row struct {
			Review
			ItemRank int `db:"item_rank"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("scan list item: %w", err)
		}
		decodeReviewLists(&row.Review)
		items = append(items, ListItem{Review: row.Review, Rank: row.ItemRank})
	}
	return items, rows.Err()
}

// ReplaceListItems swaps a list's membership for the provided set in one
// transaction, so readers never observe a partially written list. Rank
// validation is the ranking engine's job; the unique constraints here are
// the storage-level backstop.
func (s *SQLiteStore) ReplaceListItems(ctx context.Context, listID int64, items []ListItemInput) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM top_ten_list_items WHERE list_id = ?", listID); err != nil {
			return fmt.Errorf("clear list %d: %w", listID, err)
		}
		for _, it := range items {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO top_ten_list_items (list_id, review_id, rank) VALUES (?, ?, ?)",
				listID, it.ReviewID, it.Rank)
			if err != nil {
				return fmt.Errorf("insert list %d item %d: %w", listID, it.ReviewID, err)
			}
		}
		return nil
	})
}
