package delivery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the dashboard's routes on top of deps.
func NewRouter(deps AppDependencies) http.Handler {
	r := chi.NewRouter()

	h := &HTTPEndpoint{
		app:    deps,
		logger: deps.Logger(),
	}

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	// --- Static File Server ---
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFiles())))

	// --- Public Routes ---
	r.Get("/", h.homeHandler)
	r.Get("/healthz", h.healthHandler)

	// --- Authentication Routes ---
	r.Group(func(r chi.Router) {
		r.Get("/login", h.loginHandler)
		r.Post("/login", h.loginSubmitHandler)
		r.Get("/logout", h.logoutHandler)
		r.Post("/logout", h.logoutSubmitHandler)
	})

	// --- Protected Routes ---
	r.Group(func(r chi.Router) {
		r.Use(deps.SessionMiddleware)
		r.Get("/data", h.listHandler)
		r.Get("/data/{id}", h.detailHandler)
	})

	r.NotFound(h.notFoundHandler)

	return r
}
