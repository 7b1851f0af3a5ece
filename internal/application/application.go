package application

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/lets-plot-settings/internal/api"
	"github.com/eugenenazirov/lets-plot-settings/internal/config"
	"github.com/eugenenazirov/lets-plot-settings/internal/settings"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	resolver *settings.Resolver
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// NewResolver builds the settings resolver for the given configuration.
// Explicit settings from the configuration sit above LETS_PLOT_* variables.
func NewResolver(cfg config.Config, logger *zap.Logger, opts ...settings.Option) *settings.Resolver {
	base := []settings.Option{
		settings.WithExplicit(cfg.Settings...),
		settings.WithLogger(logger.Named("settings")),
	}
	return settings.New(append(base, opts...)...)
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, resolver *settings.Resolver, logger *zap.Logger) *App {
	handler := api.NewHandler(resolver)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		resolver: resolver,
		handler:  handler,
		router:   apiRouter,
		logger:   logger,
		server:   NewServer(cfg, BuildRootHandler(apiRouter)),
	}
}

// BuildRootHandler mounts the API and redirects the root path to the settings listing.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/api/settings", http.StatusFound)
	}))
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening",
			zap.String("addr", a.server.Addr),
			zap.Stringer("mode", a.resolver.Mode()),
			zap.String("version", a.resolver.Version()),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Resolver returns the settings resolver used by the application.
func (a *App) Resolver() *settings.Resolver {
	return a.resolver
}
