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

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelemetryReportOfflineStoragerIsNull(t *testing.T) {
	report := TelemetryReport{
		ChainAccount: "cTNode1",
		GroupInfo:    UngroupedInfo(),
	}

	assert.False(t, report.StorageOnline())

	b, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &decoded))

	for _, key := range []string{
		"chainAccount", "smangerInfo", "pinStats", "storager", "groupInfo",
		"queueStats", "cleanupStats", "hasSealCoordinator",
	} {
		assert.Contains(t, decoded, key)
	}

	assert.Equal(t, "null", string(decoded["storager"]))
	assert.JSONEq(t, `{"groupAccount":"","totalMembers":0,"nodeIndex":0}`, string(decoded["groupInfo"]))
	assert.JSONEq(t, `{"pendingCount":0,"pendingSizeTotal":0}`, string(decoded["queueStats"]))
}

func TestWorkloadInfoToStoragerStats(t *testing.T) {
	raw := `{
		"srd": {
			"srd_complete": 1200,
			"srd_remaining_task": 8,
			"disk_available_for_srd": 300,
			"disk_available": 350,
			"disk_volume": 2000,
			"sys_disk_available": 40,
			"srd_detail": {"/opt/disk1": {"srd": 600}, "/opt/disk2": {"srd": 600}, "/opt/disk3": {}}
		},
		"files": {"valid": {"num": 10, "size": 4096}, "lost": {"num": 0, "size": 0}}
	}`

	var workload WorkloadInfo
	require.NoError(t, json.Unmarshal([]byte(raw), &workload))

	stats := workload.ToStoragerStats()
	require.NotNil(t, stats)
	assert.Equal(t, SrdStats{
		SrdComplete:         1200,
		SrdRemainingTask:    8,
		DiskAvailableForSrd: 300,
		DiskAvailable:       350,
		DiskVolume:          2000,
		SysDiskAvailable:    40,
		SrdVolumeCount:      3,
	}, stats.Srd)
	assert.JSONEq(t, `{"valid": {"num": 10, "size": 4096}, "lost": {"num": 0, "size": 0}}`, string(stats.Files))

	var nilWorkload *WorkloadInfo
	assert.Nil(t, nilWorkload.ToStoragerStats())
}

func TestNewReportWindow(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	window := NewReportWindow(now)

	assert.Equal(t, now, window.End)
	assert.Equal(t, now.Add(-24*time.Hour), window.Start)
	assert.Equal(t, now.Unix()-86400, window.StartUnix())
}

func TestPendingStatusStrings(t *testing.T) {
	assert.Equal(t, []string{"new", "pending_replica", "insufficient_space"}, PendingStatusStrings())
}
