// Package health checks the service's dependencies.
//
// A Checker runs named checks with a timeout and reports each result. It
// backs the /status endpoint and the periodic Monitor.
package health

import (
	"context"
	"sync"
	"time"

	loggerPkg "github.com/deppfellow/go-banking/internal/logger"
	"github.com/rs/zerolog"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckFunc returns nil when the dependency is reachable.
type CheckFunc func(ctx context.Context) error

type check struct {
	name     string
	required bool
	fn       CheckFunc
}

type CheckResult struct {
	Status       Status `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
	Required     bool   `json:"required"`
}

type Report struct {
	Status      Status                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

type Checker struct {
	mu     sync.RWMutex
	checks []check

	environment   string
	timeout       time.Duration
	loggerService *loggerPkg.LoggerService
}

func NewChecker(environment string, timeout time.Duration, loggerService *loggerPkg.LoggerService) *Checker {
	return &Checker{
		environment:   environment,
		timeout:       timeout,
		loggerService: loggerService,
	}
}

// Register adds a check. A failing required check makes the report
// unhealthy; optional checks are only reported.
func (c *Checker) Register(name string, required bool, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checks = append(c.checks, check{name: name, required: required, fn: fn})
}

// Run executes all checks concurrently.
func (c *Checker) Run(ctx context.Context, logger zerolog.Logger) Report {
	start := time.Now()

	c.mu.RLock()
	checks := append([]check(nil), c.checks...)
	c.mu.RUnlock()

	report := Report{
		Status:      StatusHealthy,
		Timestamp:   start.UTC(),
		Environment: c.environment,
		Checks:      make(map[string]CheckResult, len(checks)),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, chk := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()

			res := c.runCheck(ctx, logger, chk)

			mu.Lock()
			defer mu.Unlock()
			report.Checks[chk.name] = res
			if res.Status == StatusUnhealthy && chk.required {
				report.Status = StatusUnhealthy
			}
		}()
	}
	wg.Wait()

	if !report.Healthy() {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		c.loggerService.RecordCustomEvent("HealthCheckError", map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
	}

	return report
}

func (c *Checker) runCheck(ctx context.Context, logger zerolog.Logger, chk check) CheckResult {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	checkStart := time.Now()
	err := chk.fn(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", chk.name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		c.loggerService.RecordCustomEvent("HealthCheckError", map[string]any{
			"check_type":       chk.name,
			"operation":        "health_check",
			"error_type":       chk.name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return CheckResult{
			Status:       StatusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
			Required:     chk.required,
		}
	}

	logger.Debug().
		Str("check", chk.name).
		Dur("response_time", elapsed).
		Msg("health check passed")

	return CheckResult{
		Status:       StatusHealthy,
		ResponseTime: elapsed.String(),
		Required:     chk.required,
	}
}
