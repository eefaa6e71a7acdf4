package delivery

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"neksoft-admin/delivery/model"
)

// HTTPEndpoint holds a reference to the core application dependencies.
type HTTPEndpoint struct {
	app    AppDependencies
	logger *slog.Logger

	// lastPages is the page count of the most recent listing with a
	// server-reported total, or 0 before the first one.
	lastPages atomic.Int64
}

// page builds the common page data. The navbar is shown everywhere except
// the home and login pages.
func (h *HTTPEndpoint) page(w http.ResponseWriter, r *http.Request, title string) model.Page {
	show := r.URL.Path != "/" && r.URL.Path != "/login"
	nav := model.Nav{Show: show}
	if show {
		nav.OperatorName = h.app.Settings().OperatorName
		nav.CSRFToken = csrfToken(w, r, h.app.Settings().CookieSecure)
	}
	return model.Page{Title: title, Nav: nav}
}

// render executes the named page template into a buffer first, so a template
// failure can still produce a clean 500.
func (h *HTTPEndpoint) render(w http.ResponseWriter, r *http.Request, status int, name, tmpl string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates[name].ExecuteTemplate(&buf, tmpl, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to execute template", "page", name, "template", tmpl, "error", err)
		http.Error(w, "Could not render the page.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.DebugContext(r.Context(), "failed to write response", "error", err)
	}
}

// homeHandler renders the public landing page.
func (h *HTTPEndpoint) homeHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "home", "layout", h.page(w, r, "Welcome"))
}

// notFoundHandler renders the error page for unknown routes.
func (h *HTTPEndpoint) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}

func (h *HTTPEndpoint) renderError(w http.ResponseWriter, r *http.Request, status int, reason string) {
	if reason == "" {
		reason = "An unexpected error occurred."
	}
	data := model.ErrorPage{
		Page:   h.page(w, r, "Error"),
		Reason: reason,
	}
	h.render(w, r, status, "error", "layout", data)
}

func isHTMXRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// orPlaceholder returns value, or placeholder when value is blank.
func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
