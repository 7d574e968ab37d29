// Package server holds the application container.
//
// Server owns the lifecycle of the configuration, the loggers, the
// database, the optional Redis client and job queue, the health checker
// and the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/go-banking/internal/config"
	"github.com/deppfellow/go-banking/internal/database"
	"github.com/deppfellow/go-banking/internal/lib/health"
	"github.com/deppfellow/go-banking/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/go-banking/internal/logger"
)

const (
	CheckDatabase = "database"
	CheckRedis    = "redis"
)

type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	// Redis and Job are nil when no Redis address is configured.
	Redis   *redis.Client
	Job     *job.JobService
	Health  *health.Checker
	Monitor *health.Monitor

	httpServer *http.Server
}

// New opens the database and, when configured, Redis and the job queue.
// The job workers are started separately once their handlers are wired.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}

	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Address,
		})

		if loggerService.GetApplication() != nil {
			redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Redis is optional at startup; the queue retries once it is back.
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
		}

		server.Redis = redisClient
		server.Job = job.NewJobService(logger, cfg)
	} else {
		logger.Info().Msg("no redis address configured, booking events are recorded in-process")
	}

	server.setupHealth()

	return server, nil
}

func (s *Server) setupHealth() {
	hc := s.Config.Observability.HealthChecks
	s.Health = health.NewChecker(s.Config.Primary.Env, hc.Timeout, s.LoggerService)

	if slices.Contains(hc.Checks, CheckDatabase) {
		s.Health.Register(CheckDatabase, true, s.DB.Ping)
	}
	if slices.Contains(hc.Checks, CheckRedis) && s.Redis != nil {
		s.Health.Register(CheckRedis, false, func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		})
	}

	if hc.Enabled {
		s.Monitor = health.NewMonitor(s.Health, hc.Interval, s.Logger)
	}
}

// StartBackground starts the job workers and the health monitor.
func (s *Server) StartBackground() error {
	if s.Job != nil {
		if err := s.Job.Start(); err != nil {
			return fmt.Errorf("failed to start job server: %w", err)
		}
	}

	if s.Monitor != nil {
		if err := s.Monitor.Start(); err != nil {
			return err
		}
	}

	return nil
}

func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("database", s.Config.Database.Driver).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then stops the background work and closes the connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	return s.Close(ctx)
}

// Close releases everything but the HTTP server. The CLI commands that do
// not serve use it directly.
func (s *Server) Close(ctx context.Context) error {
	if s.Monitor != nil {
		select {
		case <-s.Monitor.Stop().Done():
		case <-ctx.Done():
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.Error().Err(err).Msg("failed to close redis client")
		}
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
