package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/eventboard/internal/config"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, the event store, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// New builds the application from an already loaded configuration.
func New(cfg config.Application) (*Application, error) {
	r := mux.NewRouter()

	// Build dependencies (store, handlers, views...)
	deps, err := BuildDependencies(cfg)
	if err != nil {
		return nil, err
	}

	// Middleware chain
	SetupMiddleware(r)

	views, err := CSRFProtection(cfg.Csrf, deps.Shell)
	if err != nil {
		return nil, err
	}

	// Routes
	RegisterRoutes(r, deps, views)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}, nil
}

// Handler exposes the root handler, mostly for tests.
func (a *Application) Handler() http.Handler {
	return a.router
}

// Run starts the HTTP server and blocks.
func (a *Application) Run() error {
	log.Infof("Starting %s on %s", a.cfg.Title, a.srv.Addr)
	err := a.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (a *Application) Shutdown(ctx context.Context) error {
	log.Info("Shutting down server")
	return a.srv.Shutdown(ctx)
}
