package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/scrapbin/internal/application"
	"github.com/eugenenazirov/scrapbin/internal/config"
	"github.com/eugenenazirov/scrapbin/internal/logging"
)

const shutdownGracePeriod = 10 * time.Second

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("scrapbin", "Minimal paste service with expiring, optionally password-protected pastes")
	configFile := kingpinApp.Flag("config", "Path to YAML file supplying SCRAPBIN_* settings").String()
	addressFlag := kingpinApp.Flag("address", "Bind address as ip:port, overrides "+config.VarAddressPort).String()
	titleFlag := kingpinApp.Flag("title", "Page title, overrides "+config.VarTitle).String()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	provider, err := buildProvider(*configFile, *addressFlag, *titleFlag)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration sources: %v", err))
	}

	cfg, err := config.New(provider).Resolve()
	if err != nil {
		panic(fmt.Sprintf("failed to resolve configuration: %v", err))
	}

	logger, err := logging.New()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), shutdownGracePeriod, logger)
}

// buildProvider layers the configuration sources: flag overrides beat the
// environment, which beats the optional YAML file.
func buildProvider(configFile, address, title string) (config.Provider, error) {
	overrides := config.MapProvider{}
	if address != "" {
		overrides[config.VarAddressPort] = address
	}
	if title != "" {
		overrides[config.VarTitle] = title
	}

	layers := config.Layered{overrides, config.EnvProvider{}}
	if configFile != "" {
		fileProvider, err := config.NewFileProvider(configFile)
		if err != nil {
			return nil, err
		}
		layers = append(layers, fileProvider)
	}

	return layers, nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
