package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chrislg212/bigbackliving-sub000/internal/porter"
	"github.com/chrislg212/bigbackliving-sub000/internal/store"
	"github.com/chrislg212/bigbackliving-sub000/internal/validation"
)

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.store.ListReviews(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	review, err := s.store.GetReviewBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var in validation.ReviewInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	if in.Slug == "" {
		in.Slug = porter.SanitizeSlug(porter.Slugify(in.Name))
	}
	if in.Slug == "" {
		writeError(w, http.StatusBadRequest, "could not derive a slug from name")
		return
	}

	exists, err := s.store.ReviewSlugExists(r.Context(), in.Slug)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "a review with this slug already exists")
		return
	}

	review := in.Review()
	if err := s.store.CreateReview(r.Context(), review); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	id := urlID(w, r)
	if id == 0 {
		return
	}

	var in validation.ReviewPatchInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	review, err := s.store.UpdateReview(r.Context(), id, in.Patch())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	id := urlID(w, r)
	if id == 0 {
		return
	}

	removed, err := s.store.DeleteReview(r.Context(), id)
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

// handleGetTags serves the tag set of a review in one taxonomy.
func (s *Server) handleGetTags(tax store.Taxonomy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlID(w, r)
		if id == 0 {
			return
		}
		if _, err := s.store.GetReview(r.Context(), id); err != nil {
			s.fail(w, r, err)
			return
		}

		taxa, err := s.tagging.Tags(r.Context(), id, tax)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if taxa == nil {
			taxa = []store.Taxon{}
		}
		writeJSON(w, http.StatusOK, taxa)
	}
}

// handleSetTags replaces the tag set of a review in one taxonomy.
func (s *Server) handleSetTags(tax store.Taxonomy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlID(w, r)
		if id == 0 {
			return
		}

		var in validation.TagIDsInput
		if !s.decodeValid(w, r, &in) {
			return
		}
		if _, err := s.store.GetReview(r.Context(), id); err != nil {
			s.fail(w, r, err)
			return
		}

		if err := s.tagging.SetTags(r.Context(), id, tax, in.IDs()); err != nil {
			s.fail(w, r, err)
			return
		}

		taxa, err := s.tagging.Tags(r.Context(), id, tax)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if taxa == nil {
			taxa = []store.Taxon{}
		}
		writeJSON(w, http.StatusOK, taxa)
	}
}
