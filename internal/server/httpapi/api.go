// Package httpapi exposes the server over a JSON HTTP API. Handlers stay
// thin: they decode, call the services, and map sentinel errors to status
// codes; all domain logic lives below.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/ssrdocs/internal/logging"
	"github.com/dmitrijs2005/ssrdocs/internal/server/services"
)

// API bundles the services behind the HTTP surface. Catalog is nil when the
// server runs without a database; the admin endpoints then answer 503.
type API struct {
	users    *services.UserService
	progress *services.ProgressService
	catalog  *services.CatalogService
	logger   logging.Logger
}

func New(users *services.UserService, progress *services.ProgressService, catalog *services.CatalogService, logger logging.Logger) *API {
	return &API{users: users, progress: progress, catalog: catalog, logger: logger}
}

// Router builds the route tree.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", a.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", a.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(a.withSession)

			r.Get("/projects", a.handleProjects)
			r.Get("/progress", a.handleBatchProgress)
			r.Get("/progress/export", a.handleSummaryExport)
			r.Get("/progress/pending", a.handlePendingExport)
			r.Get("/projects/{code}/progress", a.handleProgress)
			r.Get("/projects/{code}/files", a.handleFiles)
			r.Get("/files/{id}/content", a.handleDownload)

			r.Group(func(r chi.Router) {
				r.Use(a.requireAdmin)
				r.Get("/catalog", a.handleCatalogList)
				r.Put("/catalog", a.handleCatalogReplace)
			})
		})
	})

	return r
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
