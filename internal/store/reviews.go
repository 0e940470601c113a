package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

func (s *SQLiteStore) ListReviews(ctx context.Context) ([]Review, error) {
	var reviews []Review
	if err := s.db.SelectContext(ctx, &reviews, "SELECT * FROM reviews ORDER BY created_at DESC"); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	for i := range reviews {
		decodeReviewLists(&reviews[i])
	}
	return reviews, nil
}

func (s *SQLiteStore) GetReview(ctx context.Context, id int64) (*Review, error) {
	return s.getReview(ctx, "SELECT * FROM reviews WHERE id = ?", id)
}

func (s *SQLiteStore) GetReviewBySlug(ctx context.Context, slug string) (*Review, error) {
	return s.getReview(ctx, "SELECT * FROM reviews WHERE slug = ?", slug)
}

func (s *SQLiteStore) getReview(ctx context.Context, query string, arg any) (*Review, error) {
	var r Review
	err := s.db.GetContext(ctx, &r, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review %v: %w", arg, err)
	}
	decodeReviewLists(&r)
	return &r, nil
}

func (s *SQLiteStore) ReviewSlugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM reviews WHERE slug = ?", slug); err != nil {
		return false, fmt.Errorf("check slug %s: %w", slug, err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) CreateReview(ctx context.Context, r *Review) error {
	highlightsJSON, _ := json.Marshal(emptyIfNil(r.Highlights))
	mustTryJSON, _ := json.Marshal(emptyIfNil(r.MustTry))

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (slug, name, cuisine, location, rating, excerpt, image, price_range, full_review, highlights, atmosphere, must_try, visit_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.Slug, r.Name, r.Cuisine, r.Location, r.Rating, r.Excerpt, r.Image,
		r.PriceRange, r.FullReview, string(highlightsJSON), r.Atmosphere,
		string(mustTryJSON), r.VisitDate, now, now)
	if err != nil {
		return fmt.Errorf("create review %s: %w", r.Slug, err)
	}
	r.ID, _ = res.LastInsertId()
	r.CreatedAt, r.UpdatedAt = now, now
	return nil
}

func (s *SQLiteStore) UpdateReview(ctx context.Context, id int64, p ReviewPatch) (*Review, error) {
	var sets []string
	var args []any

	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if p.Slug != nil {
		set("slug", *p.Slug)
	}
	if p.Name != nil {
		set("name", *p.Name)
	}
	if p.Cuisine != nil {
		set("cuisine", *p.Cuisine)
	}
	if p.Location != nil {
		set("location", *p.Location)
	}
	if p.Rating != nil {
		set("rating", *p.Rating)
	}
	if p.Excerpt != nil {
		set("excerpt", *p.Excerpt)
	}
	if p.Image != nil {
		set("image", *p.Image)
	}
	if p.PriceRange != nil {
		set("price_range", *p.PriceRange)
	}
	if p.FullReview != nil {
		set("full_review", *p.FullReview)
	}
	if p.Highlights != nil {
		b, _ := json.Marshal(emptyIfNil(*p.Highlights))
		set("highlights", string(b))
	}
	if p.Atmosphere != nil {
		set("atmosphere", *p.Atmosphere)
	}
	if p.MustTry != nil {
		b, _ := json.Marshal(emptyIfNil(*p.MustTry))
		set("must_try", string(b))
	}
	if p.VisitDate != nil {
		set("visit_date", *p.VisitDate)
	}

	set("updated_at", time.Now().UTC())
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, "UPDATE reviews SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("update review %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetReview(ctx, id)
}

func (s *SQLiteStore) DeleteReview(ctx context.Context, id int64) (bool, error) {
	ok, err := s.deleteRow(ctx, "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete review %d: %w", id, err)
	}
	return ok, nil
}

func decodeReviewLists(r *Review) {
	json.Unmarshal([]byte(r.HighlightsJSON), &r.Highlights)
	json.Unmarshal([]byte(r.MustTryJSON), &r.MustTry)
}

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
