package server

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

func (s *Server) handleExportReviews(w http.ResponseWriter, r *http.Request) {
	doc, err := s.porter.Export(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleImportReviews(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reviews json.RawMessage `json:"reviews"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.porter.Import(r.Context(), body.Reviews)
	if err != nil {
		// Batch-level rejections are caller errors, not server failures.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":      fmt.Sprintf("imported %d reviews, skipped %d", res.Imported, res.Skipped),
		"imported":     res.Imported,
		"skipped":      res.Skipped,
		"skippedSlugs": res.Slugs,
	})
}

// handleStaticData serves the read-only site catalog.
func (s *Server) handleStaticData(w http.ResponseWriter, r *http.Request) {
	catalog := s.Catalog()
	if catalog == nil {
		writeError(w, http.StatusNotFound, "static data not configured")
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}
