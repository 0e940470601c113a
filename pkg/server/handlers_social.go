package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chrislg212/bigbackliving-sub000/internal/store"
	"github.com/chrislg212/bigbackliving-sub000/internal/validation"
)

func (s *Server) handleListSocialSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.ListSocialSettings(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleUpsertSocialSetting creates or replaces the row for one platform.
func (s *Server) handleUpsertSocialSetting(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")
	if platform == "" || len(platform) > 50 {
		writeError(w, http.StatusBadRequest, "invalid platform")
		return
	}

	var in validation.SocialSettingInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	setting := &store.SocialSetting{
		Platform: platform,
		URL:      in.URL,
		Handle:   in.Handle,
		Enabled:  in.Enabled,
	}
	if err := s.store.UpsertSocialSetting(r.Context(), setting); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

func (s *Server) handleListSocialEmbeds(w http.ResponseWriter, r *http.Request) {
	embeds, err := s.store.ListSocialEmbeds(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, embeds)
}

func (s *Server) handleCreateSocialEmbed(w http.ResponseWriter, r *http.Request) {
	var in validation.SocialEmbedInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	embed := &store.SocialEmbed{
		Platform:  in.Platform,
		EmbedHTML: in.EmbedHTML,
		SortOrder: in.SortOrder,
	}
	if err := s.store.CreateSocialEmbed(r.Context(), embed); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, embed)
}

func (s *Server) handleUpdateSocialEmbed(w http.ResponseWriter, r *http.Request) {
	id := urlID(w, r)
	if id == 0 {
		return
	}

	var in validation.SocialEmbedPatchInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	embed, err := s.store.UpdateSocialEmbed(r.Context(), id, in.Patch())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, embed)
}

func (s *Server) handleDeleteSocialEmbed(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.store.DeleteSocialEmbed)
}

func (s *Server) handleListPageHeaders(w http.ResponseWriter, r *http.Request) {
	headers, err := s.store.ListPageHeaders(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, headers)
}

func (s *Server) handleGetPageHeader(w http.ResponseWriter, r *http.Request) {
	h, err := s.store.GetPageHeader(r.Context(), chi.URLParam(r, "page"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// handleUpsertPageHeader creates or replaces the header of one page.
func (s *Server) handleUpsertPageHeader(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")
	if page == "" || len(page) > 100 {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}

	var in validation.PageHeaderInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	h := &store.PageHeader{
		Page:     page,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Image:    in.Image,
	}
	if err := s.store.UpsertPageHeader(r.Context(), h); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}
