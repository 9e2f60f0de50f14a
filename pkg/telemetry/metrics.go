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
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName               = "sdatamanager.telemetry"
	metricTicksTotal        = "telemetry_report_ticks_total"
	metricCollectDuration   = "telemetry_report_collect_duration_seconds"
	metricMirrorFailedTotal = "telemetry_report_mirror_failures_total"
)

type taskMetrics struct {
	ticks          metric.Int64Counter
	collect        metric.Float64Histogram
	mirrorFailures metric.Int64Counter
}

func newTaskMetrics(provider metric.MeterProvider) *taskMetrics {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}

	meter := provider.Meter(meterName)
	m := &taskMetrics{}

	ticks, err := meter.Int64Counter(
		metricTicksTotal,
		metric.WithDescription("Telemetry report ticks by outcome"),
	)
	if err != nil {
		otel.Handle(err)
	}
	m.ticks = ticks

	hist, err := meter.Float64Histogram(
		metricCollectDuration,
		metric.WithDescription("Time spent collecting and assembling a telemetry report"),
		metric.WithUnit("s"),
	)
	if err != nil {
		otel.Handle(err)
	}
	m.collect = hist

	mirror, err := meter.Int64Counter(
		metricMirrorFailedTotal,
		metric.WithDescription("Telemetry reports that could not be mirrored to NATS"),
	)
	if err != nil {
		otel.Handle(err)
	}
	m.mirrorFailures = mirror

	return m
}

func (m *taskMetrics) recordTick(ctx context.Context, outcome Outcome) {
	if m == nil || m.ticks == nil {
		return
	}

	m.ticks.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))
}

func (m *taskMetrics) recordCollect(ctx context.Context, d time.Duration, success bool) {
	if m == nil || m.collect == nil {
		return
	}

	m.collect.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.Bool("success", success)))
}

func (m *taskMetrics) recordMirrorFailure(ctx context.Context) {
	if m == nil || m.mirrorFailures == nil {
		return
	}

	m.mirrorFailures.Add(ctx, 1)
}
