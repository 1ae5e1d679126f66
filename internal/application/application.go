package application

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/scrapbin/internal/api"
	"github.com/eugenenazirov/scrapbin/internal/config"
	"github.com/eugenenazirov/scrapbin/internal/storage"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	store   storage.Store
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application with all dependencies from the resolved
// configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store, err := newStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open paste store: %w", err)
	}

	handler := api.NewHandler(store, cfg)
	router := api.NewRouter(handler, logger,
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithTimeout(cfg.HTTPTimeout),
	)

	server := &http.Server{
		Addr:              cfg.Addr.String(),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	return &App{
		store:   store,
		handler: handler,
		router:  router,
		logger:  logger,
		server:  server,
	}, nil
}

// newStore opens the paste store selected by the resolved storage location.
func newStore(location config.StorageLocation) (storage.Store, error) {
	switch location.Kind {
	case config.StorageFile:
		return storage.NewFileStore(location.Path)
	case config.StorageMemory:
		return storage.NewMemoryStore(), nil
	default:
		return nil, errors.New("unknown storage kind")
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
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
