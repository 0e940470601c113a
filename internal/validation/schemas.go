package validation

import "github.com/chrislg212/bigbackliving-sub000/internal/store"

// ReviewInput is the trusted shape of a review create. The same schema gates
// admin creates and bulk imports, so only name and rating are hard
// requirements; everything else is filled in later from the admin panel.
type ReviewInput struct {
	Slug       string   `json:"slug" validate:"omitempty,slugchars,max=100"`
	Name       string   `json:"name" validate:"required,max=200"`
	Cuisine    string   `json:"cuisine" validate:"omitempty,max=100"`
	Location   string   `json:"location" validate:"omitempty,max=200"`
	Rating     float64  `json:"rating" validate:"required,gte=1,lte=5"`
	Excerpt    string   `json:"excerpt" validate:"omitempty,max=10000"`
	Image      string   `json:"image" validate:"omitempty,max=2000"`
	PriceRange string   `json:"priceRange" validate:"omitempty,max=10"`
	FullReview string   `json:"fullReview" validate:"omitempty,max=10000"`
	Highlights []string `json:"highlights" validate:"omitempty,max=20,dive,max=500"`
	Atmosphere string   `json:"atmosphere" validate:"omitempty,max=10000"`
	MustTry    []string `json:"mustTry" validate:"omitempty,max=20,dive,max=500"`
	VisitDate  string   `json:"visitDate" validate:"omitempty,max=50"`
}

// Review converts the validated input into a store row.
func (in ReviewInput) Review() *store.Review {
	return &store.Review{
		Slug:       in.Slug,
		Name:       in.Name,
		Cuisine:    in.Cuisine,
		Location:   in.Location,
		Rating:     in.Rating,
		Excerpt:    in.Excerpt,
		Image:      in.Image,
		PriceRange: in.PriceRange,
		FullReview: in.FullReview,
		Highlights: in.Highlights,
		Atmosphere: in.Atmosphere,
		MustTry:    in.MustTry,
		VisitDate:  in.VisitDate,
	}
}

// ReviewPatchInput is the shape of a partial review update. Nil fields are
// left untouched.
type ReviewPatchInput struct {
	Slug       *string   `json:"slug" validate:"omitempty,slugchars,max=100"`
	Name       *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Cuisine    *string   `json:"cuisine" validate:"omitempty,min=1,max=100"`
	Location   *string   `json:"location" validate:"omitempty,min=1,max=200"`
	Rating     *float64  `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Excerpt    *string   `json:"excerpt" validate:"omitempty,min=1,max=10000"`
	Image      *string   `json:"image" validate:"omitempty,max=2000"`
	PriceRange *string   `json:"priceRange" validate:"omitempty,min=1,max=10"`
	FullReview *string   `json:"fullReview" validate:"omitempty,max=10000"`
	Highlights *[]string `json:"highlights" validate:"omitempty,max=20,dive,max=500"`
	Atmosphere *string   `json:"atmosphere" validate:"omitempty,max=10000"`
	MustTry    *[]string `json:"mustTry" validate:"omitempty,max=20,dive,max=500"`
	VisitDate  *string   `json:"visitDate" validate:"omitempty,max=50"`
}

// Patch converts the validated input into a store patch.
func (in ReviewPatchInput) Patch() store.ReviewPatch {
	return store.ReviewPatch{
		Slug:       in.Slug,
		Name:       in.Name,
		Cuisine:    in.Cuisine,
		Location:   in.Location,
		Rating:     in.Rating,
		Excerpt:    in.Excerpt,
		Image:      in.Image,
		PriceRange: in.PriceRange,
		FullReview: in.FullReview,
		Highlights: in.Highlights,
		Atmosphere: in.Atmosphere,
		MustTry:    in.MustTry,
		VisitDate:  in.VisitDate,
	}
}

// TaxonInput is the create shape shared by cuisines, NYC categories, regions,
// and top-ten lists.
type TaxonInput struct {
	Slug        string `json:"slug" validate:"omitempty,slugchars,max=100"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=10000"`
	Image       string `json:"image" validate:"omitempty,max=2000"`
}

// TaxonPatchInput is the partial-update shape for taxon-like entities.
type TaxonPatchInput struct {
	Slug        *string `json:"slug" validate:"omitempty,slugchars,max=100"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	Image       *string `json:"image" validate:"omitempty,max=2000"`
}

// Patch converts the validated input into a store patch.
func (in TaxonPatchInput) Patch() store.TaxonPatch {
	return store.TaxonPatch{
		Slug:        in.Slug,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
	}
}

// LocationCategoryInput is the create shape for location categories.
type LocationCategoryInput struct {
	TaxonInput
	RegionID int64 `json:"regionId" validate:"required,gt=0"`
}

// LocationCategoryPatchInput is the partial-update shape for location
// categories.
type LocationCategoryPatchInput struct {
	TaxonPatchInput
	RegionID *int64 `json:"regionId" validate:"omitempty,gt=0"`
}

// ListItemsInput is the bulk-replace body of a top-ten list's membership.
// An empty items array clears the list.
type ListItemsInput struct {
	Items []store.ListItemInput `json:"items"`
}

// TagIDsInput carries the desired tag set of a review in one taxonomy. Both
// key spellings of the admin panel are accepted.
type TagIDsInput struct {
	CuisineIDs  []int64 `json:"cuisineIds"`
	CategoryIDs []int64 `json:"categoryIds"`
}

// IDs returns whichever id list the client supplied.
func (in TagIDsInput) IDs() []int64 {
	if in.CuisineIDs != nil {
		return in.CuisineIDs
	}
	return in.CategoryIDs
}

// ContactInput is the public contact form body.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Message string `json:"message" validate:"required,max=10000"`
}

// SocialSettingInput is the per-platform social link upsert body.
type SocialSettingInput struct {
	URL     string `json:"url" validate:"omitempty,max=2000"`
	Handle  string `json:"handle" validate:"omitempty,max=200"`
	Enabled bool   `json:"enabled"`
}

// SocialEmbedInput is the create shape of a social embed.
type SocialEmbedInput struct {
	Platform  string `json:"platform" validate:"required,max=50"`
	EmbedHTML string `json:"embedHtml" validate:"required,max=20000"`
	SortOrder int    `json:"sortOrder" validate:"gte=0"`
}

// SocialEmbedPatchInput is the partial-update shape of a social embed.
type SocialEmbedPatchInput struct {
	Platform  *string `json:"platform" validate:"omitempty,min=1,max=50"`
	EmbedHTML *string `json:"embedHtml" validate:"omitempty,min=1,max=20000"`
	SortOrder *int    `json:"sortOrder" validate:"omitempty,gte=0"`
}

// Patch converts the validated input into a store patch.
func (in SocialEmbedPatchInput) Patch() store.SocialEmbedPatch {
	return store.SocialEmbedPatch{
		Platform:  in.Platform,
		EmbedHTML: in.EmbedHTML,
		SortOrder: in.SortOrder,
	}
}

// PageHeaderInput is the per-page header upsert body.
type PageHeaderInput struct {
	Title    string `json:"title" validate:"required,max=500"`
	Subtitle string `json:"subtitle" validate:"omitempty,max=2000"`
	Image    string `json:"image" validate:"omitempty,max=2000"`
}
