// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package schedule runs the domain check periodically for watch mode.
package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

// ErrInvalidInterval indicates a non-positive interval.
var ErrInvalidInterval = errors.New("schedule: interval must be positive")

// Task is one run of the periodic job. It receives the watcher's context.
type Task func(ctx context.Context)

// Watcher runs a Task immediately and then at a fixed interval. Runs never
// overlap; a run still in progress when the next is due causes that tick to
// be skipped.
type Watcher struct {
	scheduler gocron.Scheduler
	log       logger.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a Watcher. The job is registered but does not run until
// [Watcher.Start] is called.
//
// Parameters:
//   - interval: Time between runs
//   - task: Work to perform on every run
//   - log: Optional logger for lifecycle messages
//
// Returns:
//   - *Watcher: The watcher
//   - error: [ErrInvalidInterval] or a scheduler construction error
func New(interval time.Duration, task Task, log logger.Logger) (*Watcher, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{scheduler: s, log: log, ctx: ctx, cancel: cancel}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { task(w.ctx) }),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("tls-cert-expiry-check"),
	)
	if err != nil {
		cancel()
		_ = s.Shutdown()
		return nil, err
	}

	return w, nil
}

// Start begins the processing loop.
func (w *Watcher) Start() {
	w.logln("Starting certificate expiry watcher...")
	w.scheduler.Start()
}

// Stop cancels the running task's context and halts the loop, waiting for
// the running task to return.
func (w *Watcher) Stop() error {
	w.logln("Stopping certificate expiry watcher...")
	w.cancel()
	return w.scheduler.Shutdown()
}

// Run starts the watcher and blocks until ctx is done, then stops it.
func (w *Watcher) Run(ctx context.Context) error {
	w.Start()
	<-ctx.Done()
	return w.Stop()
}

func (w *Watcher) logln(msg string) {
	if w.log != nil {
		w.log.Println(msg)
	}
}
