package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicker_RunsImmediatelyAndStops(t *testing.T) {
	var calls atomic.Int32
	job := func(context.Context, time.Time) int {
		calls.Add(1)
		return 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	tk := NewTicker("backups", 10*time.Millisecond, job, nil)
	tk.Start(ctx)

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	tk.Wait()

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no hay barridos tras cancelar")
}

func TestTicker_SurvivesPanic(t *testing.T) {
	var calls atomic.Int32
	job := func(context.Context, time.Time) int {
		if calls.Add(1) == 1 {
			panic("boom")
		}
		return 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tk := NewTicker("backups", 5*time.Millisecond, job, nil)
	tk.Start(ctx)

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestNewTicker_DefaultInterval(t *testing.T) {
	tk := NewTicker("x", 0, func(context.Context, time.Time) int { return 0 }, nil)
	assert.Equal(t, time.Hour, tk.interval)
}
