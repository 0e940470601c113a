// Package server provides the HTTP API over the store and the content
// engines.
package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chrislg212/bigbackliving-sub000/internal/porter"
	"github.com/chrislg212/bigbackliving-sub000/internal/ranking"
	"github.com/chrislg212/bigbackliving-sub000/internal/staticdata"
	"github.com/chrislg212/bigbackliving-sub000/internal/store"
	"github.com/chrislg212/bigbackliving-sub000/internal/tagging"
	"github.com/chrislg212/bigbackliving-sub000/pkg/notify"
)

// Server provides the HTTP API.
type Server struct {
	store       store.Store
	tagging     *tagging.Engine
	ranking     *ranking.Engine
	porter      *porter.Pipeline
	notify      *notify.Manager
	log         zerolog.Logger
	port        int
	adminToken  string
	corsOrigins []string

	catalogMu sync.RWMutex
	catalog   *staticdata.Catalog
}

// Options configures a Server beyond its collaborators.
type Options struct {
	Port        int
	AdminToken  string
	CORSOrigins []string
	Notify      *notify.Manager
}

// New creates a new HTTP server.
func New(st store.Store, catalog *staticdata.Catalog, log zerolog.Logger, opts Options) *Server {
	if opts.Port == 0 {
		opts.Port = 8080
	}
	return &Server{
		store:       st,
		tagging:     tagging.New(st),
		ranking:     ranking.New(st),
		porter:      porter.New(st),
		notify:      opts.Notify,
		catalog:     catalog,
		log:         log,
		port:        opts.Port,
		adminToken:  opts.AdminToken,
		corsOrigins: opts.CORSOrigins,
	}
}

// Catalog returns the current site catalog, which may be swapped by a
// background refresh.
func (s *Server) Catalog() *staticdata.Catalog {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()
	return s.catalog
}

// SetCatalog replaces the served site catalog.
func (s *Server) SetCatalog(c *staticdata.Catalog) {
	s.catalogMu.Lock()
	s.catalog = c
	s.catalogMu.Unlock()
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/reviews", s.handleListReviews)
		r.Get("/reviews/{slug}", s.handleGetReview)
		r.Get("/reviews/{id}/cuisines", s.handleGetTags(store.TaxonomyCuisine))
		r.Get("/reviews/{id}/nyc-categories", s.handleGetTags(store.TaxonomyNYCCategory))
		r.Get("/reviews/{id}/location-categories", s.handleGetTags(store.TaxonomyLocationCategory))

		r.Get("/cuisines", s.handleListCuisines)
		r.Get("/cuisines/{slug}", s.handleGetCuisine)
		r.Get("/nyc-categories", s.handleListNYCCategories)
		r.Get("/nyc-categories/{slug}", s.handleGetNYCCategory)
		r.Get("/regions", s.handleListRegions)
		r.Get("/regions/{slug}", s.handleGetRegion)
		r.Get("/location-categories", s.handleListLocationCategories)
		r.Get("/location-categories/{slug}", s.handleGetLocationCategory)

		r.Get("/top-ten-lists", s.handleListTopTenLists)
		r.Get("/top-ten-lists/{slug}", s.handleGetTopTenList)

		r.Get("/social-settings", s.handleListSocialSettings)
		r.Get("/social-embeds", s.handleListSocialEmbeds)
		r.Get("/page-headers", s.handleListPageHeaders)
		r.Get("/page-headers/{page}", s.handleGetPageHeader)

		r.Get("/static-data", s.handleStaticData)

		r.Post("/contact", s.handleCreateContact)

		// Mutating surface; bearer-gated when an admin token is configured.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Post("/reviews", s.handleCreateReview)
			r.Patch("/reviews/{id}", s.handleUpdateReview)
			r.Delete("/reviews/{id}", s.handleDeleteReview)
			r.Put("/reviews/{id}/cuisines", s.handleSetTags(store.TaxonomyCuisine))
			r.Put("/reviews/{id}/nyc-categories", s.handleSetTags(store.TaxonomyNYCCategory))
			r.Put("/reviews/{id}/location-categories", s.handleSetTags(store.TaxonomyLocationCategory))

			r.Post("/cuisines", s.handleCreateCuisine)
			r.Patch("/cuisines/{id}", s.handleUpdateCuisine)
			r.Delete("/cuisines/{id}", s.handleDeleteCuisine)
			r.Post("/nyc-categories", s.handleCreateNYCCategory)
			r.Patch("/nyc-categories/{id}", s.handleUpdateNYCCategory)
			r.Delete("/nyc-categories/{id}", s.handleDeleteNYCCategory)
			r.Post("/regions", s.handleCreateRegion)
			r.Patch("/regions/{id}", s.handleUpdateRegion)
			r.Delete("/regions/{id}", s.handleDeleteRegion)
			r.Post("/location-categories", s.handleCreateLocationCategory)
			r.Patch("/location-categories/{id}", s.handleUpdateLocationCategory)
			r.Delete("/location-categories/{id}", s.handleDeleteLocationCategory)

			r.Post("/top-ten-lists", s.handleCreateTopTenList)
			r.Patch("/top-ten-lists/{id}", s.handleUpdateTopTenList)
			r.Delete("/top-ten-lists/{id}", s.handleDeleteTopTenList)
			r.Put("/top-ten-lists/{id}/items", s.handleReplaceListItems)

			r.Get("/export/reviews", s.handleExportReviews)
			r.Post("/import/reviews", s.handleImportReviews)

			r.Get("/contact", s.handleListContact)
			r.Patch("/contact/{id}/read", s.handleMarkContactRead)
			r.Delete("/contact/{id}", s.handleDeleteContact)

			r.Put("/social-settings/{platform}", s.handleUpsertSocialSetting)
			r.Post("/social-embeds", s.handleCreateSocialEmbed)
			r.Patch("/social-embeds/{id}", s.handleUpdateSocialEmbed)
			r.Delete("/social-embeds/{id}", s.handleDeleteSocialEmbed)

			r.Put("/page-headers/{page}", s.handleUpsertPageHeader)
		})
	})

	return r
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info().Str("addr", addr).Msg("server listening")
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger tags every request with an id and logs its outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// requireAdmin enforces the bearer token on mutating routes when one is
// configured. An empty token keeps the API open, matching the original
// deployment's behavior for local use.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken != "" && r.Header.Get("Authorization") != "Bearer "+s.adminToken {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
