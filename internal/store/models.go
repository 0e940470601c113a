package store

import "time"

// Review is a published restaurant review.
type Review struct {
	ID             int64     `db:"id" json:"id"`
	Slug           string    `db:"slug" json:"slug"`
	Name           string    `db:"name" json:"name"`
	Cuisine        string    `db:"cuisine" json:"cuisine"`
	Location       string    `db:"location" json:"location"`
	Rating         float64   `db:"rating" json:"rating"`
	Excerpt        string    `db:"excerpt" json:"excerpt"`
	Image          string    `db:"image" json:"image,omitempty"`
	PriceRange     string    `db:"price_range" json:"priceRange"`
	FullReview     string    `db:"full_review" json:"fullReview,omitempty"`
	HighlightsJSON string    `db:"highlights" json:"-"`
	Highlights     []string  `db:"-" json:"highlights,omitempty"`
	Atmosphere     string    `db:"atmosphere" json:"atmosphere,omitempty"`
	MustTryJSON    string    `db:"must_try" json:"-"`
	MustTry        []string  `db:"-" json:"mustTry,omitempty"`
	VisitDate      string    `db:"visit_date" json:"visitDate,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// ReviewPatch holds the fields of a partial review update. Nil fields are
// left untouched.
type ReviewPatch struct {
	Slug       *string
	Name       *string
	Cuisine    *string
	Location   *string
	Rating     *float64
	Excerpt    *string
	Image      *string
	PriceRange *string
	FullReview *string
	Highlights *[]string
	Atmosphere *string
	MustTry    *[]string
	VisitDate  *string
}

// Taxon is a named classification node: a cuisine, an NYC eats category, or
// a region. All three taxonomies share this shape.
type Taxon struct {
	ID          int64     `db:"id" json:"id"`
	Slug        string    `db:"slug" json:"slug"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Image       string    `db:"image" json:"image,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// TaxonPatch holds a partial taxon update.
type TaxonPatch struct {
	Slug        *string
	Name        *string
	Description *string
	Image       *string
}

// LocationCategory is a taxon owned by a region.
type LocationCategory struct {
	Taxon
	RegionID int64 `db:"region_id" json:"regionId"`
}

// LocationCategoryPatch holds a partial location-category update.
type LocationCategoryPatch struct {
	TaxonPatch
	RegionID *int64
}

// TopTenList is a curated, ordered collection of up to ten reviews.
type TopTenList struct {
	ID          int64     `db:"id" json:"id"`
	Slug        string    `db:"slug" json:"slug"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Image       string    `db:"image" json:"image,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ListItem is one entry of a top-ten list joined against its review.
type ListItem struct {
	Review Review `json:"review"`
	Rank   int    `json:"rank"`
}

// ListItemInput is the caller-supplied membership of a list.
type ListItemInput struct {
	ReviewID int64 `json:"reviewId"`
	Rank     int   `json:"rank"`
}

// ContactSubmission is an inbox record from the public contact form.
// Read uses the 0|1 integer convention of the underlying table.
type ContactSubmission struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Message   string    `db:"message" json:"message"`
	Read      int       `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SocialSetting is the per-platform link configuration, keyed by platform.
type SocialSetting struct {
	Platform  string    `db:"platform" json:"platform"`
	URL       string    `db:"url" json:"url"`
	Handle    string    `db:"handle" json:"handle,omitempty"`
	Enabled   bool      `db:"enabled" json:"enabled"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// SocialEmbed is an embedded post, ordered by SortOrder within a platform.
type SocialEmbed struct {
	ID        int64     `db:"id" json:"id"`
	Platform  string    `db:"platform" json:"platform"`
	EmbedHTML string    `db:"embed_html" json:"embedHtml"`
	SortOrder int       `db:"sort_order" json:"sortOrder"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SocialEmbedPatch holds a partial embed update.
type SocialEmbedPatch struct {
	Platform  *string
	EmbedHTML *string
	SortOrder *int
}

// PageHeader is the hero configuration of a site page, keyed by page name.
type PageHeader struct {
	Page      string    `db:"page" json:"page"`
	Title     string    `db:"title" json:"title"`
	Subtitle  string    `db:"subtitle" json:"subtitle,omitempty"`
	Image     string    `db:"image" json:"image,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
