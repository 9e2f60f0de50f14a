/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package scheduler runs named periodic tasks, one supervised goroutine each.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
)

var (
	ErrTaskNameRequired    = errors.New("task name is required")
	ErrTaskIntervalInvalid = errors.New("task interval must be positive")
	ErrTaskHandlerRequired = errors.New("task handler is required")
	ErrTaskDuplicate       = errors.New("task already registered")
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskPanicked        = errors.New("task panicked")
	ErrRunnerStarted       = errors.New("runner already started")
	ErrNoTasks             = errors.New("no tasks registered")
)

// Handler is one invocation of a task. The logger is scoped to the task.
type Handler func(ctx context.Context, log logger.Logger) error

// Task is a periodic job. The first run happens after InitialDelay, then
// every Interval. Runs of the same task never overlap; ticks that fire while
// a run is in progress are dropped.
type Task struct {
	Name         string
	InitialDelay time.Duration
	Interval     time.Duration
	Handler      Handler
}

func (t *Task) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrTaskNameRequired
	}

	if t.Interval <= 0 {
		return fmt.Errorf("%w: %s", ErrTaskIntervalInvalid, t.Name)
	}

	if t.Handler == nil {
		return fmt.Errorf("%w: %s", ErrTaskHandlerRequired, t.Name)
	}

	return nil
}

// Runner owns the registered tasks.
type Runner struct {
	clock  Clock
	logger logger.Logger

	mu      sync.Mutex
	tasks   []Task
	started bool
}

type Option func(*Runner)

// WithClock overrides the time source, mainly for tests.
func WithClock(c Clock) Option {
	return func(r *Runner) {
		if c != nil {
			r.clock = c
		}
	}
}

func NewRunner(log logger.Logger, opts ...Option) *Runner {
	if log == nil {
		log = logger.NewTestLogger()
	}

	r := &Runner{
		clock:  realClock{},
		logger: log,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a task. It must be called before Run.
func (r *Runner) Register(task Task) error {
	if err := task.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrRunnerStarted
	}

	for i := range r.tasks {
		if r.tasks[i].Name == task.Name {
			return fmt.Errorf("%w: %s", ErrTaskDuplicate, task.Name)
		}
	}

	r.tasks = append(r.tasks, task)

	return nil
}

// Run starts every task and blocks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()

		return ErrRunnerStarted
	}

	r.started = true
	tasks := append([]Task(nil), r.tasks...)
	r.mu.Unlock()

	if len(tasks) == 0 {
		return ErrNoTasks
	}

	g, gctx := errgroup.WithContext(ctx)

	for i := range tasks {
		task := tasks[i]

		g.Go(func() error {
			r.loop(gctx, task)

			return nil
		})
	}

	return g.Wait()
}

// RunOnce invokes the named task immediately and returns its result.
func (r *Runner) RunOnce(ctx context.Context, name string) error {
	r.mu.Lock()

	var (
		task  Task
		found bool
	)

	for i := range r.tasks {
		if r.tasks[i].Name == name {
			task, found = r.tasks[i], true

			break
		}
	}
	r.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}

	return r.invoke(ctx, task, r.taskLogger(task))
}

func (r *Runner) taskLogger(task Task) logger.Logger {
	return logger.Wrap(r.logger.With().Str("component", "scheduler").Str("task", task.Name).Logger())
}

func (r *Runner) loop(ctx context.Context, task Task) {
	log := r.taskLogger(task)

	log.Info().
		Dur("initial_delay", task.InitialDelay).
		Dur("interval", task.Interval).
		Msg("Scheduled task")

	if task.InitialDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-r.clock.After(task.InitialDelay):
		}
	}

	r.runAndLog(ctx, task, log)

	ticker := r.clock.Ticker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stopped task")

			return
		case <-ticker.Chan():
			r.runAndLog(ctx, task, log)
		}
	}
}

func (r *Runner) runAndLog(ctx context.Context, task Task, log logger.Logger) {
	if ctx.Err() != nil {
		return
	}

	start := r.clock.Now()

	if err := r.invoke(ctx, task, log); err != nil {
		log.Error().Err(err).Dur("duration", r.clock.Now().Sub(start)).Msg("task failed")

		return
	}

	log.Debug().Dur("duration", r.clock.Now().Sub(start)).Msg("task completed")
}

// invoke runs the handler, turning a panic into ErrTaskPanicked.
func (*Runner) invoke(ctx context.Context, task Task, log logger.Logger) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Interface("panic", rec).
				Str("stack", string(debug.Stack())).
				Msg("task panicked")

			err = fmt.Errorf("%w: %v", ErrTaskPanicked, rec)
		}
	}()

	return task.Handler(ctx, log)
}
