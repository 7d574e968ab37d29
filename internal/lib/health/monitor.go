package health

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Monitor runs the checker on a fixed interval so outages show up in the
// logs without anyone polling /status.
type Monitor struct {
	cron     *cron.Cron
	checker  *Checker
	interval time.Duration
	logger   zerolog.Logger
}

func NewMonitor(checker *Checker, interval time.Duration, logger *zerolog.Logger) *Monitor {
	monitorLogger := logger.With().Str("component", "health_monitor").Logger()
	c := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(&monitorLogger))))

	return &Monitor{
		cron:     c,
		checker:  checker,
		interval: interval,
		logger:   monitorLogger,
	}
}

// Start schedules the checks and starts the scheduler.
func (m *Monitor) Start() error {
	schedule := fmt.Sprintf("@every %s", m.interval)
	if _, err := m.cron.AddFunc(schedule, m.runChecks); err != nil {
		return fmt.Errorf("failed to schedule health monitor: %w", err)
	}

	m.logger.Info().Str("schedule", schedule).Msg("scheduled health monitor")
	m.cron.Start()
	return nil
}

// Stop stops the scheduler. The returned context is done once any running
// check run has finished.
func (m *Monitor) Stop() context.Context {
	return m.cron.Stop()
}

func (m *Monitor) runChecks() {
	report := m.checker.Run(context.Background(), m.logger)
	if report.Healthy() {
		m.logger.Debug().Msg("dependencies healthy")
	}
}
