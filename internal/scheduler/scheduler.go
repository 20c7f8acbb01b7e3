package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Task is a periodic unit of maintenance work.
type Task struct {
	Name       string
	Interval   time.Duration
	RunOnStart bool
	Run        func(ctx context.Context) error
}

// Scheduler runs tasks on fixed intervals. Runs of the same task never overlap
// and a panicking run is recovered and logged.
type Scheduler struct {
	cron   *cron.Cron
	log    cronLogger
	logger zerolog.Logger
	tasks  []Task

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Scheduler for the given tasks. Tasks with a non-positive interval are skipped.
func New(logger *zerolog.Logger, tasks ...Task) *Scheduler {
	l := logger.With().Str("component", "scheduler").Logger()
	cl := cronLogger{logger: l}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
		),
		log:    cl,
		logger: l,
		tasks:  tasks,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start registers every task and starts the cron loop.
func (s *Scheduler) Start() error {
	for _, t := range s.tasks {
		if t.Interval <= 0 || t.Run == nil {
			s.logger.Warn().Str("task", t.Name).Msg("task disabled")
			continue
		}
		// The chain is applied here so the start-up run shares the overlap guard.
		job := cron.NewChain(cron.Recover(s.log), cron.SkipIfStillRunning(s.log)).Then(s.wrap(t))
		if _, err := s.cron.AddJob(fmt.Sprintf("@every %s", t.Interval), job); err != nil {
			return fmt.Errorf("scheduler: register %s: %w", t.Name, err)
		}
		if t.RunOnStart {
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				job.Run()
			}()
		}
		s.logger.Info().Str("task", t.Name).Dur("interval", t.Interval).Msg("task scheduled")
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for running tasks, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	cronDone := s.cron.Stop()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) wrap(t Task) cron.Job {
	return cron.FuncJob(func() {
		start := time.Now()
		if err := t.Run(s.ctx); err != nil {
			s.logger.Error().Err(err).Str("task", t.Name).Msg("task failed")
			return
		}
		s.logger.Debug().Str("task", t.Name).Dur("took", time.Since(start)).Msg("task finished")
	})
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
