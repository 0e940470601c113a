package server

import (
	"context"
	"net/http"
	"time"

	"github.com/chrislg212/bigbackliving-sub000/internal/store"
	"github.com/chrislg212/bigbackliving-sub000/internal/validation"
	"github.com/chrislg212/bigbackliving-sub000/pkg/notify"
)

// handleCreateContact is the public contact form endpoint.
func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var in validation.ContactInput
	if !s.decodeValid(w, r, &in) {
		return
	}

	sub := &store.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}
	if err := s.store.CreateContactSubmission(r.Context(), sub); err != nil {
		s.fail(w, r, err)
		return
	}

	if s.notify.HasNotifiers() {
		go s.notifyContact(sub)
	}

	writeJSON(w, http.StatusCreated, sub)
}

// notifyContact broadcasts a new submission to the configured destinations.
// Delivery failures are logged, never surfaced to the form.
func (s *Server) notifyContact(sub *store.ContactSubmission) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.notify.Broadcast(ctx, &notify.Notification{
		Name:       sub.Name,
		Email:      sub.Email,
		Message:    sub.Message,
		ReceivedAt: sub.CreatedAt,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("submission_id", sub.ID).Msg("contact notification failed")
	}
}

func (s *Server) handleListContact(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.ListContactSubmissions(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (s *Server) handleMarkContactRead(w http.ResponseWriter, r *http.Request) {
	id := urlID(w, r)
	if id == 0 {
		return
	}

	updated, err := s.store.MarkContactRead(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.store.DeleteContactSubmission)
}
