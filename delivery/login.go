package delivery

import (
	"errors"
	"net/http"
	"strings"

	"neksoft-admin/backend"
	"neksoft-admin/delivery/model"
)

const (
	msgLoginFailed   = "Login failed"
	msgLoginError    = "An error occurred."
	msgMissingFields = "Email and password are required."
	msgFormExpired   = "Your form expired. Please try again."
)

// renderLoginForm is a helper to render the login UI.
func (h *HTTPEndpoint) renderLoginForm(w http.ResponseWriter, r *http.Request, status int, identifier, message string) {
	data := model.LoginPage{
		Page:       h.page(w, r, "Login"),
		CSRFToken:  csrfToken(w, r, h.app.Settings().CookieSecure),
		Identifier: identifier,
		Message:    message,
	}
	h.render(w, r, status, "login", "layout", data)
}

// loginHandler handles the GET request for the login page.
func (h *HTTPEndpoint) loginHandler(w http.ResponseWriter, r *http.Request) {
	if h.app.HasSession(r) {
		http.Redirect(w, r, "/data", http.StatusSeeOther)
		return
	}
	h.renderLoginForm(w, r, http.StatusOK, "", "")
}

// loginSubmitHandler handles the POST request from the login form.
func (h *HTTPEndpoint) loginSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginForm(w, r, http.StatusBadRequest, "", msgLoginError)
		return
	}

	identifier := strings.TrimSpace(r.PostForm.Get("identifier"))
	secret := r.PostForm.Get("password")

	if !validateCSRF(r) {
		h.renderLoginForm(w, r, http.StatusForbidden, identifier, msgFormExpired)
		return
	}
	if identifier == "" || secret == "" {
		h.renderLoginForm(w, r, http.StatusBadRequest, identifier, msgMissingFields)
		return
	}

	token, err := h.app.BusinessAPI().Login(r.Context(), identifier, secret)
	if err != nil {
		var loginErr *backend.LoginError
		if errors.As(err, &loginErr) {
			h.logger.InfoContext(r.Context(), "login rejected", "status", loginErr.Status)
			h.renderLoginForm(w, r, http.StatusUnauthorized, identifier, loginErr.Message)
			return
		}
		h.logger.ErrorContext(r.Context(), "login request failed", "error", err)
		h.renderLoginForm(w, r, http.StatusBadGateway, identifier, msgLoginError)
		return
	}

	if err := h.app.StartSession(r.Context(), w, token); err != nil {
		h.logger.WarnContext(r.Context(), "login returned an unusable token", "error", err)
		h.renderLoginForm(w, r, http.StatusUnauthorized, identifier, msgLoginFailed)
		return
	}

	h.logger.InfoContext(r.Context(), "operator logged in")
	http.Redirect(w, r, "/data", http.StatusSeeOther)
}
