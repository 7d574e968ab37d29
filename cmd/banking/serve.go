package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/go-banking/internal/config"
	"github.com/deppfellow/go-banking/internal/handler"
	"github.com/deppfellow/go-banking/internal/router"
	"github.com/deppfellow/go-banking/internal/service"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	log := a.server.Logger

	if a.cfg.Database.AutoMigrate {
		if err := a.migrate(ctx); err != nil {
			a.close(ctx)
			return err
		}
	}
	if a.cfg.Database.SeedDemoData {
		if err := a.seed(ctx); err != nil {
			a.close(ctx)
			return err
		}
	}

	services, err := service.NewServices(a.server, a.repos)
	if err != nil {
		a.close(ctx)
		return err
	}

	if err := a.server.StartBackground(); err != nil {
		a.close(ctx)
		return err
	}

	r := router.NewRouter(a.server, handler.NewHandlers(a.server, services))
	a.server.SetupHTTPServer(r)

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	err = a.server.Shutdown(shutdownCtx)
	a.server.LoggerService.Shutdown()
	if err != nil {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
