package porter

import (
	"context"
	"errors"
	"strings"

	"github.com/goccy/go-json"

	"github.com/chrislg212/bigbackliving-sub000/internal/validation"
)

// MaxBatchSize is the record cap of a single import batch.
const MaxBatchSize = 100

var (
	// ErrNotArray rejects a payload whose reviews field is not a JSON array.
	ErrNotArray = errors.New("import payload must be an array of reviews")
	// ErrBatchTooLarge rejects a batch above MaxBatchSize outright.
	ErrBatchTooLarge = errors.New("import batch exceeds 100 records")
)

// forbiddenKeys are record keys that indicate a prototype-pollution payload.
// A record carrying one is skipped whole.
var forbiddenKeys = []string{"__proto__", "constructor", "prototype"}

// Skip records why one import record was not created.
type Skip struct {
	Slug   string `json:"slug"`
	Reason string `json:"reason"`
}

// Result is the per-batch import report, returned to the caller for display.
type Result struct {
	Imported    int     `json:"imported"`
	Skipped     int     `json:"skipped"`
	Slugs       []Skip  `json:"skippedSlugs"`
	ImportedIDs []int64 `json:"importedIds"`
}

// Import processes an untrusted review batch. Each record is sanitized,
// validated against the normal create schema, and created on its own; a bad
// record is counted and skipped, never aborting the batch. The only
// batch-level rejections are a non-array payload and the size cap.
func (p *Pipeline) Import(ctx context.Context, raw json.RawMessage) (*Result, error) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, ErrNotArray
	}

	var records []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, ErrNotArray
	}
	if len(records) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	res := &Result{Slugs: []Skip{}, ImportedIDs: []int64{}}
	for _, rec := range records {
		p.importOne(ctx, rec, res)
	}
	return res, nil
}

func (p *Pipeline) importOne(ctx context.Context, rec map[string]json.RawMessage, res *Result) {
	skip := func(slug, reason string) {
		res.Skipped++
		res.Slugs = append(res.Slugs, Skip{Slug: slug, Reason: reason})
	}

	for _, key := range forbiddenKeys {
		if _, ok := rec[key]; ok {
			skip(rawString(rec["slug"]), "forbidden key")
			return
		}
	}

	name := rawString(rec["name"])
	slug := rawString(rec["slug"])
	if slug == "" {
		slug = Slugify(name)
	}
	slug = SanitizeSlug(slug)
	if slug == "" {
		skip("", "empty slug")
		return
	}

	exists, err := p.store.ReviewSlugExists(ctx, slug)
	if err != nil {
		skip(slug, "storage error")
		return
	}
	if exists {
		skip(slug, "slug already exists")
		return
	}

	// Allow-list copy: only the named fields leave the raw record, everything
	// else is dropped on the floor.
	in := validation.ReviewInput{
		Slug:       slug,
		Name:       SanitizeText(name),
		Cuisine:    SanitizeText(rawString(rec["cuisine"])),
		Location:   SanitizeText(rawString(rec["location"])),
		Excerpt:    SanitizeText(rawString(rec["excerpt"])),
		PriceRange: SanitizeText(rawString(rec["priceRange"])),
		FullReview: SanitizeText(rawString(rec["fullReview"])),
		Atmosphere: SanitizeText(rawString(rec["atmosphere"])),
		Image:      SanitizeImageURL(rawString(rec["image"])),
		VisitDate:  SanitizeVisitDate(rawString(rec["visitDate"])),
		Highlights: SanitizeStringList(rec["highlights"]),
		MustTry:    SanitizeStringList(rec["mustTry"]),
	}
	if rating, ok := SanitizeRating(rec["rating"]); ok {
		in.Rating = rating
	}

	if err := validation.Validate(in); err != nil {
		skip(slug, err.Error())
		return
	}

	review := in.Review()
	if err := p.store.CreateReview(ctx, review); err != nil {
		skip(slug, "storage error")
		return
	}

	res.Imported++
	res.ImportedIDs = append(res.ImportedIDs, review.ID)
}

// rawString decodes a JSON string value, returning "" for anything else.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
