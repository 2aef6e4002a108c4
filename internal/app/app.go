package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mastermind/pkg/config"
	"mastermind/pkg/generate"
	"mastermind/pkg/logger"
	"mastermind/pkg/store"
)

// App encapsulates the server components and lifecycle.
type App struct {
	eff       config.EffectiveConfigResult
	version   string
	commit    string
	buildDate string

	gen *generate.Generator

	srv *http.Server
}

// New initializes resources that do not require a running context (DB,
// Groq client, generator). It does not start the HTTP server or the
// autogen scheduler; call Run to start those and block until shutdown.
func New(eff config.EffectiveConfigResult, version, commit, buildDate string) (*App, error) {
	if err := validateConfig(eff); err != nil {
		return nil, err
	}

	client, err := generate.NewGroqClient(
		eff.Config.Groq.APIKey,
		eff.Config.Groq.BaseURL,
		eff.Config.Groq.Model,
	)
	if err != nil {
		return nil, fmt.Errorf("groq client: %w", err)
	}

	if err := store.Open(eff.DBPath); err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", eff.DBPath, err)
	}

	return &App{
		eff:       eff,
		version:   version,
		commit:    commit,
		buildDate: buildDate,
		gen:       generate.NewGenerator(client),
	}, nil
}

// Run starts the autogen scheduler (if enabled) and the HTTP server, and
// blocks until ctx is canceled or a fatal server error occurs.
func (a *App) Run(ctx context.Context) error {
	a.printBanner()

	cancelAutogen, err := a.startAutogen(ctx)
	if err != nil {
		return err
	}
	defer cancelAutogen()

	errCh := a.startHTTP(ctx)

	select {
	case <-ctx.Done():
		a.shutdown()
		return nil
	case err := <-errCh:
		return err
	}
}

func (a *App) shutdown() {
	if a.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(ctx); err != nil {
			logger.Warn("http_shutdown_error", "error", err)
		}
	}
	if err := store.Close(); err != nil {
		logger.Warn("store_close_error", "error", err)
	}
}
