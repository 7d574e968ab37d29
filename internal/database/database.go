// Package database opens the relational store behind the repositories.
//
// Two drivers are supported:
//   - memory: an in-process SQLite database that lives as long as the process
//   - postgres: a pgx connection pool with query tracing, used through gorm
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/deppfellow/go-banking/internal/config"
	loggerConfig "github.com/deppfellow/go-banking/internal/logger"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database holds the gorm handle. Pool is only set for postgres.
type Database struct {
	DB     *gorm.DB
	Pool   *pgxpool.Pool
	Driver string
	log    *zerolog.Logger
}

// multiTracer fans pgx query traces out to several tracers, since
// ConnConfig has a single Tracer slot.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

const DatabasePingTimeout = 10

// New opens the database selected by cfg.Database.Driver and pings it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	gormConfig := &gorm.Config{
		Logger:         loggerConfig.NewGormLogger(*logger, cfg.Observability.Logging.SlowQueryThreshold),
		TranslateError: true,
	}

	var (
		database *Database
		err      error
	)

	if cfg.Database.IsMemory() {
		database, err = openMemory(gormConfig)
	} else {
		database, err = openPostgres(cfg, logger, loggerService, gormConfig)
	}
	if err != nil {
		return nil, err
	}

	database.Driver = cfg.Database.Driver
	database.log = logger

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", cfg.Database.Driver).Msg("connected to the database")

	return database, nil
}

// MemoryDSN names a private in-memory SQLite database with foreign keys on.
func MemoryDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
}

// OpenMemory opens an in-memory store. Tests use it directly.
func OpenMemory(gormConfig *gorm.Config) (*Database, error) {
	database, err := openMemory(gormConfig)
	if err != nil {
		return nil, err
	}
	database.Driver = config.DriverMemory
	nop := zerolog.Nop()
	database.log = &nop
	return database, nil
}

func openMemory(gormConfig *gorm.Config) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(MemoryDSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access in-memory database: %w", err)
	}
	// SQLite serialises writers; one connection keeps transactions from
	// failing with SQLITE_BUSY instead of waiting.
	sqlDB.SetMaxOpenConns(1)

	return &Database{DB: db}, nil
}

// DSN builds the postgres connection URL with the password escaped.
func DSN(cfg config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.User,
		url.QueryEscape(cfg.Password),
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}

func openPostgres(
	cfg *config.Config,
	logger *zerolog.Logger,
	loggerService *loggerConfig.LoggerService,
	gormConfig *gorm.Config,
) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(DSN(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	if loggerService.GetApplication() != nil {
		pgxPoolConfig.ConnConfig.Tracer = nrpgx5.NewTracer()
	}

	// SQL logging is noisy, so only locally.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(globalLevel)),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		}

		if pgxPoolConfig.ConnConfig.Tracer != nil {
			pgxPoolConfig.ConnConfig.Tracer = &multiTracer{
				tracers: []any{pgxPoolConfig.ConnConfig.Tracer, localTracer},
			}
		} else {
			pgxPoolConfig.ConnConfig.Tracer = localTracer
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to open gorm on pgx pool: %w", err)
	}

	return &Database{DB: db, Pool: pool}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection and, for postgres, the pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection")

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}

	if db.Pool != nil {
		db.Pool.Close()
	}
	return nil
}
