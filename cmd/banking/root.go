package main

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-banking/internal/config"
	"github.com/deppfellow/go-banking/internal/database"
	"github.com/deppfellow/go-banking/internal/database/seed"
	"github.com/deppfellow/go-banking/internal/logger"
	"github.com/deppfellow/go-banking/internal/repository"
	"github.com/deppfellow/go-banking/internal/server"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "banking",
	Short: "Customers, checking accounts and account operations over HTTP",
	Long: `banking serves the account opening and account operation API.

Commands:
  serve    - Start the HTTP server (default)
  migrate  - Apply the database schema
  seed     - Insert the demo customers and accounts into an empty store

Configuration is read from BANKING_* environment variables and .env.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// app is what every command needs before it can do its work.
type app struct {
	cfg    *config.Config
	server *server.Server
	repos  *repository.Repositories
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}

	return &app{
		cfg:    cfg,
		server: srv,
		repos:  repository.NewRepositories(srv.DB.DB),
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.server.Close(ctx); err != nil {
		a.server.Logger.Error().Err(err).Msg("failed to release resources")
	}
	a.server.LoggerService.Shutdown()
}

func (a *app) migrate(ctx context.Context) error {
	return database.Migrate(ctx, a.server.Logger, a.cfg, a.server.DB, repository.Models()...)
}

func (a *app) seed(ctx context.Context) error {
	_, err := seed.Demo(ctx, a.repos, a.server.Logger, seed.DemoData)
	return err
}
