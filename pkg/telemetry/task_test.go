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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"

	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
)

const testEndpoint = "http://telemetry.example/report"

func (f *fixture) task(t *testing.T, sink Sink, opts ...TaskOption) *ReportTask {
	t.Helper()

	opts = append([]TaskOption{
		WithTaskClock(func() time.Time { return fixedNow }),
		WithReportIDFunc(func() string { return "report-1" }),
	}, opts...)

	task, err := NewReportTask(f.cfg, f.assembler(t), sink, f.log, opts...)
	require.NoError(t, err)

	return task
}

func TestTickSkipsWithoutEndpoint(t *testing.T) {
	f := newFixture(t, "")
	task := f.task(t, f.sink)

	outcome, err := task.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkippedNoEndpoint, outcome)
	assert.Contains(t, f.logs.String(), "telemetry endpoint not configured, skip report")
	assert.Contains(t, f.logs.String(), `"level":"warn"`)
}

func TestTickSkipsWithoutSink(t *testing.T) {
	f := newFixture(t, testEndpoint)
	task := f.task(t, nil)

	outcome, err := task.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkippedNoEndpoint, outcome)
}

func TestTickSkipsWhenStorageOffline(t *testing.T) {
	f := newFixture(t, testEndpoint)
	mirror := NewMockSink(f.ctrl)
	task := f.task(t, f.sink, WithMirror(mirror))

	f.expectLedger()
	f.workload.EXPECT().Workload(gomock.Any()).Return(nil, errSworkerOffline)

	outcome, err := task.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkippedStorageOffline, outcome)
	assert.Contains(t, f.logs.String(), "not report to telemetry, storager is offline")
	assert.NotContains(t, f.logs.String(), "reporting stats to telemetry")
}

func TestTickDelivers(t *testing.T) {
	f := newFixture(t, testEndpoint)
	mirror := NewMockSink(f.ctrl)
	task := f.task(t, f.sink, WithMirror(mirror))

	f.expectLedger()
	f.workload.EXPECT().Workload(gomock.Any()).Return(sampleWorkload(), nil)

	var delivered *models.TelemetryReport

	f.sink.EXPECT().Deliver(gomock.Any(), "report-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, r *models.TelemetryReport) (*Delivery, error) {
			delivered = r

			return &Delivery{ReportID: id, StatusCode: http.StatusOK, Body: "ok"}, nil
		})
	mirror.EXPECT().Deliver(gomock.Any(), "report-1", gomock.Any()).Return(&Delivery{Sequence: 1}, nil)

	outcome, err := task.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDelivered, outcome)
	assert.Equal(t, TaskStateIdle, task.State())

	require.NotNil(t, delivered)
	assert.Equal(t, "cTNode1", delivered.ChainAccount)
	assert.EqualValues(t, 4, delivered.QueueStats.PendingCount)
	assert.EqualValues(t, 5, delivered.CleanupStats.DeletedCount)
	assert.Equal(t, 2, delivered.Storager.Srd.SrdVolumeCount)

	logs := f.logs.String()
	assert.Contains(t, logs, "reporting stats to telemetry")
	assert.Contains(t, logs, "telemetry response")
	assert.Contains(t, logs, `"report_id":"report-1"`)
}

func TestTickDeliveryFailureIsNotAnError(t *testing.T) {
	f := newFixture(t, testEndpoint)
	task := f.task(t, f.sink)

	f.expectLedger()
	f.workload.EXPECT().Workload(gomock.Any()).Return(sampleWorkload(), nil)
	f.sink.EXPECT().Deliver(gomock.Any(), "report-1", gomock.Any()).Return(nil, ErrDeliveryRejected)

	outcome, err := task.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeliveryFailed, outcome)
	assert.Contains(t, f.logs.String(), "telemetry report failed")
}

func TestTickMirrorFailureKeepsOutcome(t *testing.T) {
	f := newFixture(t, testEndpoint)
	mirror := NewMockSink(f.ctrl)
	task := f.task(t, f.sink, WithMirror(mirror))

	f.expectLedger()
	f.workload.EXPECT().Workload(gomock.Any()).Return(sampleWorkload(), nil)
	f.sink.EXPECT().Deliver(gomock.Any(), "report-1", gomock.Any()).Return(&Delivery{StatusCode: http.StatusOK}, nil)
	mirror.EXPECT().Deliver(gomock.Any(), "report-1", gomock.Any()).Return(nil, errCollectorClosed)

	outcome, err := task.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDelivered, outcome)
	assert.Contains(t, f.logs.String(), "telemetry mirror publish failed")
}

func TestTickCollectFailure(t *testing.T) {
	f := newFixture(t, testEndpoint)
	task := f.task(t, f.sink)

	f.store.EXPECT().QueueStats(gomock.Any()).Return(models.QueueInfo{}, errStoreDown)
	f.store.EXPECT().PinStats(gomock.Any(), gomock.Any()).Return(models.PinStats{}, nil).AnyTimes()
	f.store.EXPECT().CleanupStats(gomock.Any(), gomock.Any()).Return(models.CleanupStats{}, nil).AnyTimes()
	f.workload.EXPECT().Workload(gomock.Any()).Return(sampleWorkload(), nil).AnyTimes()

	outcome, err := task.Tick(context.Background())
	require.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, OutcomeCollectFailed, outcome)
	assert.Equal(t, TaskStateIdle, task.State())
}

func TestTickDeliveryTimeoutDoesNotBlockNextTick(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	f := newFixture(t, srv.URL)
	sink, err := NewHTTPSink(srv.URL)
	require.NoError(t, err)

	task := f.task(t, sink, WithTimeouts(0, 50*time.Millisecond))

	f.expectLedger()
	f.expectLedger()
	f.workload.EXPECT().Workload(gomock.Any()).Return(sampleWorkload(), nil).Times(2)

	for i := 0; i < 2; i++ {
		outcome, err := task.Tick(context.Background())
		require.NoError(t, err)
		assert.Equal(t, OutcomeDeliveryFailed, outcome)
	}
}

func TestTickRecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	f := newFixture(t, "")
	task := f.task(t, f.sink, WithMeterProvider(provider))

	for i := 0; i < 3; i++ {
		_, err := task.Tick(context.Background())
		require.NoError(t, err)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sum, ok := findSum(rm, metricTicksTotal)
	require.True(t, ok, "ticks counter not exported")
	require.Len(t, sum.DataPoints, 1)

	point := sum.DataPoints[0]
	assert.EqualValues(t, 3, point.Value)

	outcome, ok := point.Attributes.Value(attribute.Key("outcome"))
	require.True(t, ok)
	assert.Equal(t, string(OutcomeSkippedNoEndpoint), outcome.AsString())
}

func TestSchedulerTask(t *testing.T) {
	f := newFixture(t, "")
	task := f.task(t, f.sink)

	st := task.SchedulerTask()
	assert.Equal(t, "telemetry-report", st.Name)
	assert.Equal(t, 5*time.Minute, st.InitialDelay)
	assert.Equal(t, time.Hour, st.Interval)
	require.NotNil(t, st.Handler)

	require.NoError(t, st.Handler(context.Background(), f.log))
	assert.Contains(t, f.logs.String(), "skip report")
}

func TestNewReportTaskValidation(t *testing.T) {
	f := newFixture(t, "")

	_, err := NewReportTask(nil, f.assembler(t), nil, f.log)
	require.ErrorIs(t, err, ErrConfigRequired)

	_, err = NewReportTask(f.cfg, nil, nil, f.log)
	require.ErrorIs(t, err, ErrAssemblerRequired)
}

func TestTaskStateString(t *testing.T) {
	assert.Equal(t, "idle", TaskStateIdle.String())
	assert.Equal(t, "collecting", TaskStateCollecting.String())
	assert.Equal(t, "TaskState(9)", TaskState(9).String())
}

func findSum(rm metricdata.ResourceMetrics, name string) (metricdata.Sum[int64], bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}

			sum, ok := m.Data.(metricdata.Sum[int64])

			return sum, ok
		}
	}

	return metricdata.Sum[int64]{}, false
}
