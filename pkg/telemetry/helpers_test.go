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
	"bytes"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/jacklcz/spacex-sdatamanager/pkg/chain"
	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
	"github.com/jacklcz/spacex-sdatamanager/pkg/storager"
)

var (
	errStoreDown       = errors.New("ledger store unavailable")
	errSworkerOffline  = errors.New("connection refused")
	errCollectorClosed = errors.New("collector closed")
)

//nolint:gochecknoglobals // fixed test clock
var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

// syncBuffer is a log sink safe for the collector goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

type fixture struct {
	ctrl     *gomock.Controller
	store    *MockStore
	workload *storager.MockWorkloadProvider
	identity *chain.MockIdentityAccessor
	sink     *MockSink
	logs     *syncBuffer
	log      logger.Logger
	cfg      *models.NormalizedConfig
}

func newFixture(t *testing.T, endpoint string) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	logs := &syncBuffer{}

	f := &fixture{
		ctrl:     ctrl,
		store:    NewMockStore(ctrl),
		workload: storager.NewMockWorkloadProvider(ctrl),
		identity: chain.NewMockIdentityAccessor(ctrl),
		sink:     NewMockSink(ctrl),
		logs:     logs,
		log:      logger.NewWithWriter(logs, zerolog.DebugLevel),
		cfg: &models.NormalizedConfig{
			BaseConfig: models.BaseConfig{
				Chain:     models.ChainConfig{Account: "cTNode1"},
				Telemetry: models.TelemetryConfig{EndPoint: endpoint},
			},
			Scheduler: models.NormalizedSchedulerConfig{
				Strategy: models.StrategyWeights{DBFilesWeight: 50, NewFilesWeight: 50},
			},
		},
	}

	f.identity.EXPECT().ChainAccount().Return("cTNode1").AnyTimes()

	return f
}

func (f *fixture) collector() *Collector {
	return NewCollector(f.store, f.workload, f.log)
}

func (f *fixture) assembler(t *testing.T, opts ...AssemblerOption) *Assembler {
	t.Helper()

	opts = append([]AssemblerOption{WithClock(func() time.Time { return fixedNow })}, opts...)

	a, err := NewAssembler(AppContext{
		Config:    f.cfg,
		Identity:  f.identity,
		Collector: f.collector(),
		Version:   func() string { return "v1.2.3" },
		StartTime: fixedNow.Add(-90 * time.Second),
	}, opts...)
	if err != nil {
		t.Fatalf("NewAssembler: %v", err)
	}

	return a
}

// expectLedger sets up the three ledger reads for the fixed clock's window.
func (f *fixture) expectLedger() {
	window := models.NewReportWindow(fixedNow)

	f.store.EXPECT().QueueStats(gomock.Any()).Return(models.QueueInfo{PendingCount: 4, PendingSizeTotal: 4096}, nil)
	f.store.EXPECT().PinStats(gomock.Any(), window).Return(models.PinStats{SealingCount: 2, SealedCount: 3, FailedCount: 1, SealedSize: 600}, nil)
	f.store.EXPECT().CleanupStats(gomock.Any(), window).Return(models.CleanupStats{DeletedCount: 5}, nil)
}

func sampleWorkload() *models.WorkloadInfo {
	return &models.WorkloadInfo{
		Srd: models.WorkloadSrd{
			SrdComplete:         1024,
			SrdRemainingTask:    1,
			DiskAvailableForSrd: 200,
			DiskAvailable:       250,
			DiskVolume:          4096,
			SysDiskAvailable:    50,
			SrdDetail: map[string]json.RawMessage{
				"/opt/disk1": json.RawMessage(`{}`),
				"/opt/disk2": json.RawMessage(`{}`),
			},
		},
		Files: json.RawMessage(`{"valid":{"num":1,"size":10}}`),
	}
}
