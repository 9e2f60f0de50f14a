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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
)

type staticCoordinator struct{}

func (staticCoordinator) CoordinatorAccount() string { return "cTLeader" }

func TestAssemble(t *testing.T) {
	f := newFixture(t, "https://telemetry.example.com")
	f.expectLedger()
	f.workload.EXPECT().Workload(gomock.Any()).Return(sampleWorkload(), nil)

	report, err := f.assembler(t).Assemble(context.Background(), models.NewReportWindow(fixedNow))
	require.NoError(t, err)

	assert.Equal(t, "cTNode1", report.ChainAccount)
	assert.Equal(t, "v1.2.3", report.SmangerInfo.Version)
	assert.InDelta(t, 90.0, report.SmangerInfo.Uptime, 1e-9)
	assert.Equal(t, f.cfg.Scheduler, report.SmangerInfo.SchedulerConfig)
	assert.Equal(t, models.UngroupedInfo(), report.GroupInfo)
	assert.False(t, report.HasSealCoordinator)
	assert.True(t, report.StorageOnline())
	assert.EqualValues(t, 5, report.CleanupStats.DeletedCount)

	b, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"srd_volumn_count":2`)
	assert.Contains(t, string(b), `"schedulerConfig":{"strategy":{"dbFilesWeight":50,"newFilesWeight":50}`)
}

func TestAssembleWithGroupAndCoordinator(t *testing.T) {
	f := newFixture(t, "https://telemetry.example.com")
	f.expectLedger()
	f.workload.EXPECT().Workload(gomock.Any()).Return(nil, errSworkerOffline)

	group := &models.GroupInfo{GroupAccount: "cTGroup", TotalMembers: 4, NodeIndex: 2}

	report, err := f.assembler(t, WithGroupInfo(group), WithSealCoordinator(staticCoordinator{})).
		Assemble(context.Background(), models.NewReportWindow(fixedNow))
	require.NoError(t, err)

	assert.Equal(t, *group, report.GroupInfo)
	assert.True(t, report.HasSealCoordinator)
	assert.Nil(t, report.Storager)
	assert.False(t, report.StorageOnline())
}

func TestAssembleVersionFallback(t *testing.T) {
	f := newFixture(t, "")
	f.expectLedger()
	f.workload.EXPECT().Workload(gomock.Any()).Return(sampleWorkload(), nil)

	a, err := NewAssembler(AppContext{
		Config:    f.cfg,
		Identity:  f.identity,
		Collector: f.collector(),
	})
	require.NoError(t, err)

	report, err := a.Assemble(context.Background(), models.NewReportWindow(fixedNow))
	require.NoError(t, err)
	assert.Equal(t, "unknown", report.SmangerInfo.Version)
	assert.Zero(t, report.SmangerInfo.Uptime)
}

func TestNewAssemblerValidation(t *testing.T) {
	f := newFixture(t, "")

	_, err := NewAssembler(AppContext{Identity: f.identity, Collector: f.collector()})
	require.ErrorIs(t, err, ErrConfigRequired)

	_, err = NewAssembler(AppContext{Config: f.cfg, Collector: f.collector()})
	require.ErrorIs(t, err, ErrIdentityRequired)

	_, err = NewAssembler(AppContext{Config: f.cfg, Identity: f.identity})
	require.ErrorIs(t, err, ErrCollectorRequired)
}
