package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup or mutation targets a row that does
// not exist. Handlers map it to a 404, never to a 500.
var ErrNotFound = errors.New("not found")

// Taxonomy identifies one of the independent classification dimensions a
// review can be tagged with.
type Taxonomy string

const (
	TaxonomyCuisine          Taxonomy = "cuisine"
	TaxonomyNYCCategory      Taxonomy = "nyc-category"
	TaxonomyLocationCategory Taxonomy = "location-category"
)

// Store is the persistence interface.
type Store interface {
	ListReviews(ctx context.Context) ([]Review, error)
	GetReview(ctx context.Context, id int64) (*Review, error)
	GetReviewBySlug(ctx context.Context, slug string) (*Review, error)
	ReviewSlugExists(ctx context.Context, slug string) (bool, error)
	CreateReview(ctx context.Context, r *Review) error
	UpdateReview(ctx context.Context, id int64, p ReviewPatch) (*Review, error)
	DeleteReview(ctx context.Context, id int64) (bool, error)

	ListCuisines(ctx context.Context) ([]Taxon, error)
	GetCuisine(ctx context.Context, id int64) (*Taxon, error)
	GetCuisineBySlug(ctx context.Context, slug string) (*Taxon, error)
	CreateCuisine(ctx context.Context, t *Taxon) error
	UpdateCuisine(ctx context.Context, id int64, p TaxonPatch) (*Taxon, error)
	DeleteCuisine(ctx context.Context, id int64) (bool, error)

	ListNYCCategories(ctx context.Context) ([]Taxon, error)
	GetNYCCategory(ctx context.Context, id int64) (*Taxon, error)
	GetNYCCategoryBySlug(ctx context.Context, slug string) (*Taxon, error)
	CreateNYCCategory(ctx context.Context, t *Taxon) error
	UpdateNYCCategory(ctx context.Context, id int64, p TaxonPatch) (*Taxon, error)
	DeleteNYCCategory(ctx context.Context, id int64) (bool, error)

	ListRegions(ctx context.Context) ([]Taxon, error)
	GetRegion(ctx context.Context, id int64) (*Taxon, error)
	GetRegionBySlug(ctx context.Context, slug string) (*Taxon, error)
	CreateRegion(ctx context.Context, t *Taxon) error
	UpdateRegion(ctx context.Context, id int64, p TaxonPatch) (*Taxon, error)
	DeleteRegion(ctx context.Context, id int64) (bool, error)

	ListLocationCategories(ctx context.Context, regionID int64) ([]LocationCategory, error)
	GetLocationCategory(ctx context.Context, id int64) (*LocationCategory, error)
	GetLocationCategoryBySlug(ctx context.Context, slug string) (*LocationCategory, error)
	CreateLocationCategory(ctx context.Context, lc *LocationCategory) error
	UpdateLocationCategory(ctx context.Context, id int64, p LocationCategoryPatch) (*LocationCategory, error)
	DeleteLocationCategory(ctx context.Context, id int64) (bool, error)

	TaggedIDs(ctx context.Context, reviewID int64, tax Taxonomy) ([]int64, error)
	TaggedTaxa(ctx context.Context, reviewID int64, tax Taxonomy) ([]Taxon, error)
	InsertTags(ctx context.Context, reviewID int64, tax Taxonomy, ids []int64) error
	DeleteTags(ctx context.Context, reviewID int64, tax Taxonomy, ids []int64) error
	ReplaceTags(ctx context.Context, reviewID int64, tax Taxonomy, remove, add []int64) error

	ListTopTenLists(ctx context.Context) ([]TopTenList, error)
	GetTopTenList(ctx context.Context, id int64) (*TopTenList, error)
	GetTopTenListBySlug(ctx context.Context, slug string) (*TopTenList, error)
	CreateTopTenList(ctx context.Context, l *TopTenList) error
	UpdateTopTenList(ctx context.Context, id int64, p TaxonPatch) (*TopTenList, error)
	DeleteTopTenList(ctx context.Context, id int64) (bool, error)
	ListItems(ctx context.Context, listID int64) ([]ListItem, error)
	ReplaceListItems(ctx context.Context, listID int64, items []ListItemInput) error

	ListContactSubmissions(ctx context.Context) ([]ContactSubmission, error)
	CreateContactSubmission(ctx context.Context, c *ContactSubmission) error
	MarkContactRead(ctx context.Context, id int64) (bool, error)
	DeleteContactSubmission(ctx context.Context, id int64) (bool, error)

	ListSocialSettings(ctx context.Context) ([]SocialSetting, error)
	UpsertSocialSetting(ctx context.Context, s *SocialSetting) error
	ListSocialEmbeds(ctx context.Context) ([]SocialEmbed, error)
	CreateSocialEmbed(ctx context.Context, e *SocialEmbed) error
	UpdateSocialEmbed(ctx context.Context, id int64, p SocialEmbedPatch) (*SocialEmbed, error)
	DeleteSocialEmbed(ctx context.Context, id int64) (bool, error)

	GetPageHeader(ctx context.Context, page string) (*PageHeader, error)
	ListPageHeaders(ctx context.Context) ([]PageHeader, error)
	UpsertPageHeader(ctx context.Context, h *PageHeader) error

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations. The pragmas ride the DSN
// so every pooled connection gets them; the join tables and list items rely
// on foreign_keys for cascading deletes.
func New(path string) (*SQLiteStore, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// inTx runs fn inside a transaction, rolling back on error.
func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// deleteRow is the shared shape of all delete methods: report whether a row
// actually went away so callers can distinguish "removed" from "already gone".
func (s *SQLiteStore) deleteRow(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
