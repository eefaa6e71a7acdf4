package app

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// tokenContextKey is the key used to store the session token in the request context.
const tokenContextKey contextKey = "session_token"

// SessionMiddleware lets a request through only when it carries a usable
// session token. Anything else is sent to the login page before the handler,
// and so before any backend call, runs.
func (a *App) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := a.Sessions.Token(r)
		if !ok {
			if _, err := r.Cookie(SessionCookieName); err == nil {
				a.Sessions.Clear(w)
			}
			redirectToLogin(w, r)
			return
		}

		if _, err := a.Inspector.Inspect(r.Context(), token); err != nil {
			a.logger.InfoContext(r.Context(), "session rejected", "reason", err, "path", r.URL.Path)
			a.Sessions.Clear(w)
			redirectToLogin(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), tokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromContext returns the session token placed by SessionMiddleware.
func (a *App) TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok && token != ""
}

// redirectToLogin sends a 303 to /login, or an HX-Redirect header when htmx
// made the request so the whole page navigates instead of a fragment swap.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if strings.EqualFold(r.Header.Get("HX-Request"), "true") {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
