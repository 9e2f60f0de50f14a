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

func validConfig() SDataManagerConfig {
	return SDataManagerConfig{
		BaseConfig: BaseConfig{
			Chain:    ChainConfig{Account: "cTNode1"},
			Sworker:  SworkerConfig{EndPoint: "http://127.0.0.1:12222"},
			Database: DatabaseConfig{URL: "postgres://sdm@localhost/sdm"},
		},
		Scheduler: SchedulerConfig{Strategy: PresetStrategy(StrategyDefault)},
	}
}

func TestSDataManagerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *SDataManagerConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*SDataManagerConfig) {}},
		{name: "missing account", mutate: func(c *SDataManagerConfig) { c.Chain.Account = " " }, wantErr: errChainAccountRequired},
		{name: "missing sworker", mutate: func(c *SDataManagerConfig) { c.Sworker.EndPoint = "" }, wantErr: errSworkerEndpointRequired},
		{name: "missing database", mutate: func(c *SDataManagerConfig) { c.Database.URL = "" }, wantErr: errDatabaseURLRequired},
		{name: "bad role", mutate: func(c *SDataManagerConfig) { c.Node.Role = "owner" }, wantErr: errInvalidNodeRole},
		{name: "member with group", mutate: func(c *SDataManagerConfig) {
			c.Node = NodeConfig{Role: NodeRoleMember, Group: &GroupInfo{GroupAccount: "cTGroup", TotalMembers: 3, NodeIndex: 2}}
		}},
		{name: "member without group", mutate: func(c *SDataManagerConfig) { c.Node.Role = NodeRoleMember }, wantErr: errGroupRequired},
		{name: "leader without group", mutate: func(c *SDataManagerConfig) { c.Node.Role = NodeRoleLeader }, wantErr: errGroupRequired},
		{name: "isolated node with group", mutate: func(c *SDataManagerConfig) {
			c.Node = NodeConfig{Role: NodeRoleIsolation, Group: &GroupInfo{GroupAccount: "cTGroup", TotalMembers: 1}}
		}, wantErr: errGroupNotAllowed},
		{name: "group without account", mutate: func(c *SDataManagerConfig) {
			c.Node = NodeConfig{Role: NodeRoleLeader, Group: &GroupInfo{TotalMembers: 1}}
		}, wantErr: errGroupAccountRequired},
		{name: "group without members", mutate: func(c *SDataManagerConfig) {
			c.Node = NodeConfig{Role: NodeRoleLeader, Group: &GroupInfo{GroupAccount: "cTGroup"}}
		}, wantErr: errGroupMembers},
		{name: "node index out of range", mutate: func(c *SDataManagerConfig) {
			c.Node = NodeConfig{Role: NodeRoleMember, Group: &GroupInfo{GroupAccount: "cTGroup", TotalMembers: 2, NodeIndex: 2}}
		}, wantErr: errGroupNodeIndex},
		{name: "coordinator without account", mutate: func(c *SDataManagerConfig) {
			c.Node.SealCoordinator = &SealCoordinatorConfig{EndPoint: "http://coordinator:8080"}
		}, wantErr: errCoordinatorAccount},
		{name: "coordinator bad url", mutate: func(c *SDataManagerConfig) {
			c.Node.SealCoordinator = &SealCoordinatorConfig{Account: "cTLeader", EndPoint: "coordinator"}
		}, wantErr: errInvalidCoordinatorURL},
		{name: "bad telemetry url", mutate: func(c *SDataManagerConfig) { c.Telemetry.EndPoint = "ftp://collector" }, wantErr: errInvalidTelemetryURL},
		{name: "empty telemetry url allowed", mutate: func(c *SDataManagerConfig) { c.Telemetry.EndPoint = "" }},
		{name: "nats without subject", mutate: func(c *SDataManagerConfig) {
			c.Telemetry.NATS = &NATSConfig{URL: "nats://localhost:4222"}
		}, wantErr: errNATSSubjectRequired},
		{name: "nats without url", mutate: func(c *SDataManagerConfig) {
			c.Telemetry.NATS = &NATSConfig{Subject: "telemetry.reports"}
		}, wantErr: errNATSURLRequired},
		{name: "srd ratio", mutate: func(c *SDataManagerConfig) { c.Scheduler.MinSrdRatio = 120 }, wantErr: errMinSrdRatioRange},
		{name: "replica bounds", mutate: func(c *SDataManagerConfig) {
			c.Scheduler.MinReplicas, c.Scheduler.MaxReplicas = 10, 2
		}, wantErr: errReplicaBounds},
		{name: "file size bounds", mutate: func(c *SDataManagerConfig) {
			c.Scheduler.MinFileSize, c.Scheduler.MaxFileSize = 1024, 512
		}, wantErr: errFileSizeBounds},
		{name: "negative setting", mutate: func(c *SDataManagerConfig) { c.Scheduler.MaxPendingTasks = -1 }, wantErr: errNegativeSetting},
		{name: "unknown preset", mutate: func(c *SDataManagerConfig) {
			c.Scheduler.Strategy = PresetStrategy("turbo")
		}, wantErr: ErrStrategyUnknownPreset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSDataManagerConfigApplyDefaults(t *testing.T) {
	cfg := SDataManagerConfig{}
	cfg.Telemetry.EndPoint = "  https://telemetry.example.com/report  "
	cfg.ApplyDefaults()

	preset, ok := cfg.Scheduler.Strategy.Preset()
	require.True(t, ok)
	assert.Equal(t, StrategyDefault, preset)
	assert.Equal(t, 10*time.Second, cfg.Sworker.Timeout.Std())
	assert.Equal(t, 60*time.Second, cfg.Telemetry.CollectTimeout.Std())
	assert.Equal(t, NodeRoleIsolation, cfg.Node.Role)
	assert.Equal(t, "https://telemetry.example.com/report", cfg.Telemetry.EndPoint)
}

func TestNodeConfigGrouped(t *testing.T) {
	group := &GroupInfo{GroupAccount: "cTGroup", TotalMembers: 2}

	assert.False(t, NodeConfig{Role: NodeRoleIsolation}.Grouped())
	assert.False(t, NodeConfig{Role: NodeRoleMember}.Grouped())
	assert.True(t, NodeConfig{Role: NodeRoleMember, Group: group}.Grouped())
	assert.True(t, NodeConfig{Role: NodeRoleLeader, Group: group}.Grouped())
}

func TestSDataManagerConfigJSONShape(t *testing.T) {
	raw := `{
		"chain": {"account": "cTNode1", "endPoint": "ws://127.0.0.1:9944"},
		"sworker": {"endPoint": "http://127.0.0.1:12222", "timeout": "5s"},
		"telemetry": {"endPoint": "https://telemetry.example.com"},
		"database": {"url": "postgres://localhost/sdm"},
		"dataDir": "/data",
		"node": {"role": "leader", "group": {"groupAccount": "cTGroup", "totalMembers": 4, "nodeIndex": 0},
			"sealCoordinator": {"account": "cTLeader", "endPoint": "http://127.0.0.1:8089"}},
		"scheduler": {"strategy": {"dbFilesWeight": 1, "newFilesWeight": 3}, "minSrdRatio": 30, "maxPendingTasks": 4}
	}`

	var cfg SDataManagerConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))

	assert.Equal(t, "cTNode1", cfg.Chain.Account)
	assert.Equal(t, 5*time.Second, cfg.Sworker.Timeout.Std())
	assert.Equal(t, "/data", cfg.DataDir)
	assert.InDelta(t, 30.0, cfg.Scheduler.MinSrdRatio, 1e-9)
	assert.Equal(t, 4, cfg.Scheduler.MaxPendingTasks)
	assert.Equal(t, NodeRoleLeader, cfg.Node.Role)
	assert.Equal(t, &GroupInfo{GroupAccount: "cTGroup", TotalMembers: 4, NodeIndex: 0}, cfg.Node.Group)
	assert.True(t, cfg.Node.Grouped())
	assert.Equal(t, "cTLeader", cfg.Node.SealCoordinator.Account)
	require.NoError(t, cfg.Validate())

	w, ok := cfg.Scheduler.Strategy.Weights()
	require.True(t, ok)
	assert.Equal(t, StrategyWeights{DBFilesWeight: 1, NewFilesWeight: 3}, w)
}
