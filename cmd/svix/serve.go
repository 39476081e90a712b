package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/etf-svix/internal/config"
	"github.com/dgnsrekt/etf-svix/internal/data"
	"github.com/dgnsrekt/etf-svix/internal/server"
)

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve SVIX estimates over HTTP from stored chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if port == "" {
				port = cfg.Server.Port
			}
			if err := config.ValidateRunConfig(nil, cfg.Engine); err != nil {
				return err
			}

			engine, err := newEngine(cfg.Engine, logger)
			if err != nil {
				return err
			}

			store := data.NewCSVStore(cfg.Output.Directory, logger)
			srv := server.NewServer(store, engine, cfg.Engine.RiskFreeRate, logger)

			router, err := server.NewRouter(srv, logger)
			if err != nil {
				return fmt.Errorf("creating router: %w", err)
			}

			httpServer := &http.Server{
				Addr:         ":" + port,
				Handler:      router,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
			}

			logger.Info("configuration loaded",
				zap.String("port", port),
				zap.String("dataDir", cfg.Output.Directory),
				zap.String("dayCount", engine.DayCounter().Name()),
				zap.Float64("riskFreeRate", cfg.Engine.RiskFreeRate),
			)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("starting server", zap.String("addr", httpServer.Addr))
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down server...")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer shutdownCancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return err
			}

			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default from server.port)")

	return cmd
}
