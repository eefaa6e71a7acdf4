package delivery

import (
	"net/http"
)

// logoutSubmitHandler handles the navbar Sign Out form.
func (h *HTTPEndpoint) logoutSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		h.renderError(w, r, http.StatusForbidden, "Your form expired. Please try again.")
		return
	}
	h.logoutHandler(w, r)
}

// logoutHandler deletes the stored token and returns to the login page.
func (h *HTTPEndpoint) logoutHandler(w http.ResponseWriter, r *http.Request) {
	h.app.EndSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
