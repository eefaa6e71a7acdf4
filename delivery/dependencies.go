package delivery

import (
	"context"
	"log/slog"
	"net/http"

	"neksoft-admin/backend"
)

// BusinessAPI is the remote business admin API as the handlers use it.
type BusinessAPI interface {
	Login(ctx context.Context, identifier, secret string) (string, error)
	ListBusinesses(ctx context.Context, token string, page, count int) (backend.Page, error)
	GetBusiness(ctx context.Context, token, id string) (backend.Detail, error)
}

// Settings are the display settings the handlers need.
type Settings struct {
	PageSize     int
	OperatorName string
	CookieSecure bool
}

// AppDependencies defines the contract that the delivery layer (HTTP handlers)
// expects from the core application layer.
type AppDependencies interface {
	BusinessAPI() BusinessAPI
	Settings() Settings
	Logger() *slog.Logger

	// SessionMiddleware protects routes that need a session token.
	SessionMiddleware(next http.Handler) http.Handler
	TokenFromContext(ctx context.Context) (string, bool)

	StartSession(ctx context.Context, w http.ResponseWriter, token string) error
	EndSession(w http.ResponseWriter)
	HasSession(r *http.Request) bool
}
