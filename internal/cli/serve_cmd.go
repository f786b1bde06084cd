package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/httpapi"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.ValidateServe(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app, newServer(app))
		},
	}
	cmd.Flags().StringVar(&app.Config.Addr, "addr", app.Config.Addr, "listen address")
	return cmd
}

func newServer(app *App) *http.Server {
	if app.Config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := httpapi.NewHandler(httpapi.Deps{
		Attendance:  app.Attendance,
		Reports:     app.Reports,
		Employees:   app.Employees,
		Auth:        app.Auth,
		Tokens:      app.Tokens,
		Logger:      app.Logger.With("component", "http"),
		CORSOrigins: app.Config.CORSOrigins,
		Now:         app.now,
	})
	return httpapi.NewServer(app.Config.Addr, handler)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests
// for at most the configured shutdown timeout.
func serve(ctx context.Context, app *App, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("listening", "addr", srv.Addr, "db_driver", app.Dialect.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	app.Logger.Info("shutting down", "timeout", app.Config.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
