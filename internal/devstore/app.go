package devstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/docsession/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// App runs the emulator as a standalone HTTP server.
type App struct {
	config *Config
	logger logging.Logger
	server *http.Server
}

func NewApp(c *Config) *App {
	logger := logging.New(os.Stdout, c.LogLevel).With("component", "devstore")
	h := NewHandler(NewStore(), c.APIKey, logger)

	return &App{
		config: c,
		logger: logger,
		server: &http.Server{
			Addr:              c.RunAddr,
			Handler:           h.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "listening", "addr", app.config.RunAddr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	app.logger.Info(shutdownCtx, "shutting down")
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
