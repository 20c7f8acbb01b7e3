package scheduler

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

func TestScheduler_RunOnStart(t *testing.T) {
	logger := zerolog.Nop()
	ran := make(chan struct{}, 1)
	s := New(&logger, Task{
		Name:       "purge",
		Interval:   time.Hour,
		RunOnStart: true,
		Run: func(context.Context) error {
			ran <- struct{}{}
			return nil
		},
	})
	require.NoError(t, s.Start())

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run on start")
	}
	assert.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_RunsOnInterval(t *testing.T) {
	logger := zerolog.Nop()
	var runs atomic.Int32
	s := New(&logger, Task{
		Name:     "tick",
		Interval: time.Second,
		Run: func(context.Context) error {
			runs.Add(1)
			return errors.New("errors are logged, not fatal")
		},
	})
	require.NoError(t, s.Start())
	defer func() { _ = s.Stop(context.Background()) }()

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_RecoversPanics(t *testing.T) {
	logger := zerolog.Nop()
	after := make(chan struct{}, 1)
	s := New(&logger,
		Task{Name: "boom", Interval: time.Hour, RunOnStart: true, Run: func(context.Context) error { panic("boom") }},
		Task{Name: "ok", Interval: time.Hour, RunOnStart: true, Run: func(context.Context) error {
			after <- struct{}{}
			return nil
		}},
	)
	require.NoError(t, s.Start())

	select {
	case <-after:
	case <-time.After(2 * time.Second):
		t.Fatal("healthy task did not run")
	}
	assert.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_SkipsDisabledTasks(t *testing.T) {
	logger := zerolog.Nop()
	s := New(&logger, Task{Name: "off", Interval: 0, RunOnStart: true, Run: func(context.Context) error {
		t.Error("disabled task ran")
		return nil
	}})
	require.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
	assert.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_StopCancelsTaskContext(t *testing.T) {
	logger := zerolog.Nop()
	started := make(chan struct{})
	s := New(&logger, Task{Name: "long", Interval: time.Hour, RunOnStart: true, Run: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}})
	require.NoError(t, s.Start())
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
