package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// shutdownTimeout bounds how long in-flight requests get after a signal.
const shutdownTimeout = 15 * time.Second

// Start serves HTTP until ctx is cancelled, then shuts down gracefully and
// closes the app's resources.
func (app *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", app.Config.HTTP.Port),
		Handler:           app.Router(),
		ReadTimeout:       app.Config.HTTP.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      app.Config.HTTP.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.InfoContext(ctx, "Starting HTTP server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		app.Close()
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return app.shutdown(srv)
}

func (app *App) shutdown(srv *http.Server) error {
	app.Logger.Info("Shutting down application")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(ctx)
	if err != nil {
		app.Logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	}
	app.Close()
	app.Logger.Info("Application shut down gracefully")
	return err
}
