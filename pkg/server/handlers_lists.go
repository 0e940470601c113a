package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chrislg212/bigbackliving-sub000/internal/store"
	"github.com/chrislg212/bigbackliving-sub000/internal/validation"
)

func (s *Server) handleListTopTenLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.store.ListTopTenLists(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// handleGetTopTenList returns the list and its ordered items in one document.
func (s *Server) handleGetTopTenList(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.GetTopTenListBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	items, err := s.store.ListItems(r.Context(), list.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if items == nil {
		items = []store.ListItem{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"list":  list,
		"items": items,
	})
}

func (s *Server) handleCreateTopTenList(w http.ResponseWriter, r *http.Request) {
	var in validation.TaxonInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	slug, ok := s.resolveTaxonSlug(w, r, in.Slug, in.Name, func(ctx context.Context, slug string) error {
		_, err := s.store.GetTopTenListBySlug(ctx, slug)
		return err
	})
	if !ok {
		return
	}

	list := &store.TopTenList{
		Slug:        slug,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
	}
	if err := s.store.CreateTopTenList(r.Context(), list); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (s *Server) handleUpdateTopTenList(w http.ResponseWriter, r *http.Request) {
	id := urlID(w, r)
	if id == 0 {
		return
	}

	var in validation.TaxonPatchInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	list, err := s.store.UpdateTopTenList(r.Context(), id, in.Patch())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteTopTenList(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.store.DeleteTopTenList)
}

// handleReplaceListItems swaps the whole membership of a list for the
// submitted ordered set.
func (s *Server) handleReplaceListItems(w http.ResponseWriter, r *http.Request) {
	id := urlID(w, r)
	if id == 0 {
		return
	}

	var in validation.ListItemsInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	if err := s.ranking.Replace(r.Context(), id, in.Items); err != nil {
		s.fail(w, r, err)
		return
	}

	items, err := s.store.ListItems(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if items == nil {
		items = []store.ListItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
