package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"mis-dashboard/internal/api"
	"mis-dashboard/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the published datasets over HTTP",
		Long: `serve exposes the published datasets and a report trigger over HTTP.
With --date an initial report cycle runs before the server starts accepting
requests; a failed initial cycle is logged and the server starts with empty data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dashboard, closeFn, err := a.newDashboard()
			if err != nil {
				return err
			}
			defer closeFn()

			if date != "" {
				reportDate, err := usecase.ParseReportDate(date)
				if err != nil {
					return err
				}
				_ = dashboard.RunReport(cmd.Context(), reportDate, usecase.LogNotifier{Logger: a.logger})
			}

			handler := api.NewHandler(dashboard, a.logger)
			srv := &http.Server{
				Addr:         a.cfg.Server.Addr,
				Handler:      api.NewRouter(handler, a.cfg.Server.AllowedOrigins),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 2 * time.Minute,
				IdleTimeout:  60 * time.Second,
			}
			return serve(cmd.Context(), srv, a)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&date, "date", "", "report date to load at startup (YYYY-MM-DD or YYYYMMDD)")
	return cmd
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, a *app) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
