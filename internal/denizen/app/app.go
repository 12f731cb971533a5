package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	httpapi "github.com/kotoed/denizen/internal/denizen/http"
	"github.com/kotoed/denizen/internal/denizen/service"
	"github.com/kotoed/denizen/internal/denizen/store"
	"github.com/kotoed/denizen/internal/denizen/store/drivers/sqlite"
	"github.com/kotoed/denizen/pkg/cryptox"
	"github.com/kotoed/denizen/pkg/httpx"
	"github.com/kotoed/denizen/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the denizen service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	denizenService *service.DenizenService

	server   *http.Server
	router   *httpapi.Router
	listener net.Listener
}

// New creates a new Application instance with all dependencies initialized.
// The listener is bound immediately so Addr is valid before Run.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "denizen-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.denizenService = &service.DenizenService{Store: app.db}
	app.initHTTP()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", app.cfg.Port))
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to listen: %w", err)
	}
	app.listener = ln

	return app, nil
}

// Addr returns the address the server listens on.
func (app *Application) Addr() string {
	return app.listener.Addr().String()
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("denizen service starting", "addr", app.Addr(), "version", BuildVersion)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.server.Serve(app.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutdown requested", "cause", context.Cause(gctx))
		return app.Shutdown()
	})

	return g.Wait()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down denizen service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("denizen service stopped")
	return nil
}

// dsn builds the modernc sqlite DSN; in-memory databases are passed through.
func dsn(file string) string {
	if file == ":memory:" || strings.HasPrefix(file, "file:") {
		return file
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", file)
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(dsn(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		httpx.NewMetrics("denizen"),
		app.logger,
	)
	router.DenizenService = app.denizenService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
