package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chrislg212/bigbackliving-sub000/internal/porter"
	"github.com/chrislg212/bigbackliving-sub000/internal/store"
	"github.com/chrislg212/bigbackliving-sub000/internal/validation"
)

func (s *Server) handleListCuisines(w http.ResponseWriter, r *http.Request) {
	taxa, err := s.store.ListCuisines(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taxa)
}

func (s *Server) handleGetCuisine(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.GetCuisineBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateCuisine(w http.ResponseWriter, r *http.Request) {
	s.createTaxon(w, r, s.store.GetCuisineBySlug, s.store.CreateCuisine)
}

func (s *Server) handleUpdateCuisine(w http.ResponseWriter, r *http.Request) {
	s.updateTaxon(w, r, s.store.UpdateCuisine)
}

func (s *Server) handleDeleteCuisine(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.store.DeleteCuisine)
}

func (s *Server) handleListNYCCategories(w http.ResponseWriter, r *http.Request) {
	taxa, err := s.store.ListNYCCategories(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taxa)
}

func (s *Server) handleGetNYCCategory(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.GetNYCCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateNYCCategory(w http.ResponseWriter, r *http.Request) {
	s.createTaxon(w, r, s.store.GetNYCCategoryBySlug, s.store.CreateNYCCategory)
}

func (s *Server) handleUpdateNYCCategory(w http.ResponseWriter, r *http.Request) {
	s.updateTaxon(w, r, s.store.UpdateNYCCategory)
}

func (s *Server) handleDeleteNYCCategory(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.store.DeleteNYCCategory)
}

func (s *Server) handleListRegions(w http.ResponseWriter, r *http.Request) {
	taxa, err := s.store.ListRegions(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taxa)
}

// handleGetRegion returns the region with the location categories it owns.
func (s *Server) handleGetRegion(w http.ResponseWriter, r *http.Request) {
	region, err := s.store.GetRegionBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cats, err := s.store.ListLocationCategories(r.Context(), region.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if cats == nil {
		cats = []store.LocationCategory{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"region":             region,
		"locationCategories": cats,
	})
}

func (s *Server) handleCreateRegion(w http.ResponseWriter, r *http.Request) {
	s.createTaxon(w, r, s.store.GetRegionBySlug, s.store.CreateRegion)
}

func (s *Server) handleUpdateRegion(w http.ResponseWriter, r *http.Request) {
	s.updateTaxon(w, r, s.store.UpdateRegion)
}

func (s *Server) handleDeleteRegion(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.store.DeleteRegion)
}

func (s *Server) handleListLocationCategories(w http.ResponseWriter, r *http.Request) {
	var regionID int64
	if v := r.URL.Query().Get("region"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "invalid region filter")
			return
		}
		regionID = id
	}

	cats, err := s.store.ListLocationCategories(r.Context(), regionID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleGetLocationCategory(w http.ResponseWriter, r *http.Request) {
	lc, err := s.store.GetLocationCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lc)
}

func (s *Server) handleCreateLocationCategory(w http.ResponseWriter, r *http.Request) {
	var in validation.LocationCategoryInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	slug, ok := s.resolveTaxonSlug(w, r, in.Slug, in.Name, func(ctx context.Context, slug string) error {
		_, err := s.store.GetLocationCategoryBySlug(ctx, slug)
		return err
	})
	if !ok {
		return
	}

	if _, err := s.store.GetRegion(r.Context(), in.RegionID); err != nil {
		s.fail(w, r, err)
		return
	}

	lc := &store.LocationCategory{
		Taxon: store.Taxon{
			Slug:        slug,
			Name:        in.Name,
			Description: in.Description,
			Image:       in.Image,
		},
		RegionID: in.RegionID,
	}
	if err := s.store.CreateLocationCategory(r.Context(), lc); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, lc)
}

func (s *Server) handleUpdateLocationCategory(w http.ResponseWriter, r *http.Request) {
	id := urlID(w, r)
	if id == 0 {
		return
	}

	var in validation.LocationCategoryPatchInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	patch := store.LocationCategoryPatch{TaxonPatch: in.TaxonPatchInput.Patch(), RegionID: in.RegionID}
	lc, err := s.store.UpdateLocationCategory(r.Context(), id, patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lc)
}

func (s *Server) handleDeleteLocationCategory(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.store.DeleteLocationCategory)
}

// createTaxon is the shared create path of the flat taxonomies.
func (s *Server) createTaxon(
	w http.ResponseWriter,
	r *http.Request,
	bySlug func(context.Context, string) (*store.Taxon, error),
	create func(context.Context, *store.Taxon) error,
) {
	var in validation.TaxonInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	slug, ok := s.resolveTaxonSlug(w, r, in.Slug, in.Name, func(ctx context.Context, slug string) error {
		_, err := bySlug(ctx, slug)
		return err
	})
	if !ok {
		return
	}

	t := &store.Taxon{
		Slug:        slug,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
	}
	if err := create(r.Context(), t); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// resolveTaxonSlug derives and uniqueness-checks a slug for a create. A false
// return means the response is already written.
func (s *Server) resolveTaxonSlug(
	w http.ResponseWriter,
	r *http.Request,
	slug, name string,
	lookup func(context.Context, string) error,
) (string, bool) {
	if slug == "" {
		slug = porter.SanitizeSlug(porter.Slugify(name))
	}
	if slug == "" {
		writeError(w, http.StatusBadRequest, "could not derive a slug from name")
		return "", false
	}

	err := lookup(r.Context(), slug)
	if err == nil {
		writeError(w, http.StatusConflict, "slug already exists")
		return "", false
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.fail(w, r, err)
		return "", false
	}
	return slug, true
}

func (s *Server) updateTaxon(
	w http.ResponseWriter,
	r *http.Request,
	update func(context.Context, int64, store.TaxonPatch) (*store.Taxon, error),
) {
	id := urlID(w, r)
	if id == 0 {
		return
	}

	var in validation.TaxonPatchInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	t, err := update(r.Context(), id, in.Patch())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteByID(
	w http.ResponseWriter,
	r *http.Request,
	del func(context.Context, int64) (bool, error),
) {
	id := urlID(w, r)
	if id == 0 {
		return
	}

	removed, err := del(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
