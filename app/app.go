package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"neksoft-admin/backend"
	"neksoft-admin/delivery"
)

var _ delivery.AppDependencies = (*App)(nil)

// App holds the dashboard's dependencies: the backend client, the session
// store, the token inspector and the router built on top of them.
type App struct {
	Config    *Config
	Backend   *backend.Client
	Sessions  *SessionStore
	Inspector *Inspector
	Router    http.Handler

	logger *slog.Logger
}

// New wires an App from cfg.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (*App, error) {
	if cfg.SessionSecret == "" {
		logger.Warn("DASHBOARD_SESSION_SECRET is empty, using a random key; sessions end on restart")
	}
	sessions, err := NewSessionStore(cfg.SessionSecret, cfg.CookieSecure)
	if err != nil {
		return nil, err
	}

	inspector, err := NewInspector(ctx, cfg.JWKSURL)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Backend:   backend.NewClient(cfg.APIBaseURL, cfg.RequestTimeout),
		Sessions:  sessions,
		Inspector: inspector,
		logger:    logger,
	}
	a.Router = delivery.NewRouter(a)
	return a, nil
}

// NewLogger builds the process logger for the given format ("json" or "text").
func NewLogger(format string) *slog.Logger {
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

// Start serves the dashboard until ctx is cancelled, then drains in-flight
// requests for up to ten seconds.
func (a *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.ListenAddr,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      a.Config.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.Config.ListenAddr, "api_base_url", a.Config.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.logger.Info("shutdown complete")
	return nil
}

// The methods below satisfy delivery.AppDependencies.

func (a *App) BusinessAPI() delivery.BusinessAPI {
	return a.Backend
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) Settings() delivery.Settings {
	return delivery.Settings{
		PageSize:     a.Config.PageSize,
		OperatorName: a.Config.OperatorName,
		CookieSecure: a.Config.CookieSecure,
	}
}

// StartSession stores token after reading its expiry.
func (a *App) StartSession(ctx context.Context, w http.ResponseWriter, token string) error {
	info, err := a.Inspector.Inspect(ctx, token)
	if err != nil {
		return err
	}
	return a.Sessions.Save(w, token, info.ExpiresAt)
}

// EndSession deletes the stored token.
func (a *App) EndSession(w http.ResponseWriter) {
	a.Sessions.Clear(w)
}

// HasSession reports whether r carries a usable session token.
func (a *App) HasSession(r *http.Request) bool {
	token, ok := a.Sessions.Token(r)
	if !ok {
		return false
	}
	_, err := a.Inspector.Inspect(r.Context(), token)
	return err == nil
}
