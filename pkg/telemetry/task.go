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

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
	"github.com/jacklcz/spacex-sdatamanager/pkg/scheduler"
)

const (
	TaskName            = "telemetry-report"
	DefaultInterval     = time.Hour
	DefaultInitialDelay = 5 * time.Minute
)

var ErrAssemblerRequired = errors.New("telemetry: assembler is required")

// Outcome is how a tick ended.
type Outcome string

const (
	OutcomeSkippedNoEndpoint     Outcome = "skipped_no_endpoint"
	OutcomeSkippedStorageOffline Outcome = "skipped_storage_offline"
	OutcomeDelivered             Outcome = "delivered"
	OutcomeDeliveryFailed        Outcome = "delivery_failed"
	OutcomeCollectFailed         Outcome = "collect_failed"
)

// TaskState is the phase a tick is in.
type TaskState int32

const (
	TaskStateIdle TaskState = iota
	TaskStateChecking
	TaskStateCollecting
	TaskStateDelivering
)

func (s TaskState) String() string {
	switch s {
	case TaskStateIdle:
		return "idle"
	case TaskStateChecking:
		return "checking"
	case TaskStateCollecting:
		return "collecting"
	case TaskStateDelivering:
		return "delivering"
	default:
		return fmt.Sprintf("TaskState(%d)", int32(s))
	}
}

// ReportTask builds and delivers one telemetry report per tick.
type ReportTask struct {
	config    *models.NormalizedConfig
	assembler *Assembler
	sink      Sink
	mirror    Sink
	logger    logger.Logger

	now             func() time.Time
	newReportID     func() string
	collectTimeout  time.Duration
	deliveryTimeout time.Duration
	meterProvider   metric.MeterProvider
	metrics         *taskMetrics

	state atomic.Int32
}

type TaskOption func(*ReportTask)

// WithMirror also publishes every delivered report to s. Mirror failures are
// logged and never change the tick outcome.
func WithMirror(s Sink) TaskOption {
	return func(t *ReportTask) {
		t.mirror = s
	}
}

func WithTaskClock(now func() time.Time) TaskOption {
	return func(t *ReportTask) {
		if now != nil {
			t.now = now
		}
	}
}

func WithReportIDFunc(f func() string) TaskOption {
	return func(t *ReportTask) {
		if f != nil {
			t.newReportID = f
		}
	}
}

func WithMeterProvider(mp metric.MeterProvider) TaskOption {
	return func(t *ReportTask) {
		t.meterProvider = mp
	}
}

// WithTimeouts bounds collection and delivery. Zero keeps the default.
func WithTimeouts(collect, delivery time.Duration) TaskOption {
	return func(t *ReportTask) {
		if collect > 0 {
			t.collectTimeout = collect
		}

		if delivery > 0 {
			t.deliveryTimeout = delivery
		}
	}
}

// NewReportTask wires the task. sink may be nil when no endpoint is
// configured; such ticks are skipped with a warning.
func NewReportTask(cfg *models.NormalizedConfig, assembler *Assembler, sink Sink, log logger.Logger, opts ...TaskOption) (*ReportTask, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	if assembler == nil {
		return nil, ErrAssemblerRequired
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	collectTimeout := cfg.Telemetry.CollectTimeout.Std()
	if collectTimeout <= 0 {
		collectTimeout = models.DefaultCollectTimeout
	}

	t := &ReportTask{
		config:          cfg,
		assembler:       assembler,
		sink:            sink,
		logger:          log,
		now:             time.Now,
		newReportID:     func() string { return uuid.New().String() },
		collectTimeout:  collectTimeout,
		deliveryTimeout: DefaultDeliveryTimeout,
	}

	for _, opt := range opts {
		opt(t)
	}

	t.metrics = newTaskMetrics(t.meterProvider)

	return t, nil
}

// State reports the phase of the tick in progress, or idle.
func (t *ReportTask) State() TaskState {
	return TaskState(t.state.Load())
}

func (t *ReportTask) setState(s TaskState) {
	t.state.Store(int32(s))
}

// SchedulerTask registers the report under its fixed name and cadence.
func (t *ReportTask) SchedulerTask() scheduler.Task {
	return scheduler.Task{
		Name:         TaskName,
		InitialDelay: DefaultInitialDelay,
		Interval:     DefaultInterval,
		Handler:      t.Handle,
	}
}

// Handle is the scheduler entry point. It logs through the scheduler's
// task logger for the duration of the tick.
func (t *ReportTask) Handle(ctx context.Context, log logger.Logger) error {
	_, err := t.tick(ctx, log)

	return err
}

// Tick runs one report cycle. Only collection errors are returned;
// skips and delivery failures end the tick with a nil error.
func (t *ReportTask) Tick(ctx context.Context) (Outcome, error) {
	return t.tick(ctx, t.logger)
}

func (t *ReportTask) tick(ctx context.Context, log logger.Logger) (Outcome, error) {
	defer t.setState(TaskStateIdle)

	t.setState(TaskStateChecking)

	if strings.TrimSpace(t.config.Telemetry.EndPoint) == "" || t.sink == nil {
		log.Warn().Msg("telemetry endpoint not configured, skip report")
		t.metrics.recordTick(ctx, OutcomeSkippedNoEndpoint)

		return OutcomeSkippedNoEndpoint, nil
	}

	t.setState(TaskStateCollecting)

	report, err := t.collect(ctx)
	if err != nil {
		t.metrics.recordTick(ctx, OutcomeCollectFailed)

		return OutcomeCollectFailed, fmt.Errorf("failed to collect telemetry: %w", err)
	}

	if !report.StorageOnline() {
		log.Info().Msg("not report to telemetry, storager is offline")
		t.metrics.recordTick(ctx, OutcomeSkippedStorageOffline)

		return OutcomeSkippedStorageOffline, nil
	}

	t.setState(TaskStateDelivering)

	outcome := t.deliver(ctx, log, t.newReportID(), report)
	t.metrics.recordTick(ctx, outcome)

	return outcome, nil
}

func (t *ReportTask) collect(ctx context.Context) (*models.TelemetryReport, error) {
	collectCtx, cancel := context.WithTimeout(ctx, t.collectTimeout)
	defer cancel()

	start := t.now()
	report, err := t.assembler.Assemble(collectCtx, models.NewReportWindow(start))
	t.metrics.recordCollect(ctx, t.now().Sub(start), err == nil)

	return report, err
}

func (t *ReportTask) deliver(ctx context.Context, log logger.Logger, reportID string, report *models.TelemetryReport) Outcome {
	deliverCtx, cancel := context.WithTimeout(ctx, t.deliveryTimeout)
	defer cancel()

	log.Info().
		Str("report_id", reportID).
		Interface("stats", report).
		Msg("reporting stats to telemetry")

	outcome := OutcomeDelivered

	delivery, err := t.sink.Deliver(deliverCtx, reportID, report)
	if err != nil {
		log.Warn().Err(err).Str("report_id", reportID).Msg("telemetry report failed")

		outcome = OutcomeDeliveryFailed
	} else {
		log.Info().
			Str("report_id", reportID).
			Int("status", delivery.StatusCode).
			Str("response", delivery.Body).
			Msg("telemetry response")
	}

	if t.mirror != nil {
		mirrorCtx, cancelMirror := context.WithTimeout(ctx, t.deliveryTimeout)
		defer cancelMirror()

		if _, err := t.mirror.Deliver(mirrorCtx, reportID, report); err != nil {
			log.Warn().Err(err).Str("report_id", reportID).Msg("telemetry mirror publish failed")
			t.metrics.recordMirrorFailure(ctx)
		}
	}

	return outcome
}
