package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_AllHealthy(t *testing.T) {
	checker := NewChecker("test", time.Second, nil)
	checker.Register("database", true, func(ctx context.Context) error { return nil })

	report := checker.Run(context.Background(), zerolog.Nop())

	assert.True(t, report.Healthy())
	assert.Equal(t, "test", report.Environment)
	require.Contains(t, report.Checks, "database")
	assert.Equal(t, StatusHealthy, report.Checks["database"].Status)
	assert.Empty(t, report.Checks["database"].Error)
}

func TestChecker_RequiredFailure(t *testing.T) {
	checker := NewChecker("test", time.Second, nil)
	checker.Register("database", true, func(ctx context.Context) error { return errors.New("connection refused") })
	checker.Register("redis", false, func(ctx context.Context) error { return nil })

	report := checker.Run(context.Background(), zerolog.Nop())

	assert.False(t, report.Healthy())
	assert.Equal(t, StatusUnhealthy, report.Checks["database"].Status)
	assert.Equal(t, "connection refused", report.Checks["database"].Error)
	assert.Equal(t, StatusHealthy, report.Checks["redis"].Status)
}

func TestChecker_OptionalFailure(t *testing.T) {
	checker := NewChecker("test", time.Second, nil)
	checker.Register("database", true, func(ctx context.Context) error { return nil })
	checker.Register("redis", false, func(ctx context.Context) error { return errors.New("no route") })

	report := checker.Run(context.Background(), zerolog.Nop())

	assert.True(t, report.Healthy())
	assert.Equal(t, StatusUnhealthy, report.Checks["redis"].Status)
	assert.False(t, report.Checks["redis"].Required)
}

func TestChecker_Timeout(t *testing.T) {
	checker := NewChecker("test", 20*time.Millisecond, nil)
	checker.Register("slow", true, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	report := checker.Run(context.Background(), zerolog.Nop())

	assert.False(t, report.Healthy())
	assert.Contains(t, report.Checks["slow"].Error, "deadline exceeded")
}

func TestMonitor_RunsChecks(t *testing.T) {
	var calls atomic.Int32

	checker := NewChecker("test", time.Second, nil)
	checker.Register("database", true, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	logger := zerolog.Nop()
	monitor := NewMonitor(checker, time.Second, &logger)
	require.NoError(t, monitor.Start())
	t.Cleanup(func() { <-monitor.Stop().Done() })

	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
