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
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
)

var (
	errChainAccountRequired    = errors.New("chain.account is required")
	errSworkerEndpointRequired = errors.New("sworker.endPoint is required")
	errDatabaseURLRequired     = errors.New("database.url is required")
	errInvalidNodeRole         = errors.New("node.role must be one of member, isolation, leader")
	errInvalidTelemetryURL     = errors.New("telemetry.endPoint must be an http(s) URL")
	errNATSURLRequired         = errors.New("telemetry.nats.url is required when nats is configured")
	errNATSSubjectRequired     = errors.New("telemetry.nats.subject is required when nats is configured")
	errMinSrdRatioRange        = errors.New("scheduler.minSrdRatio must be between 0 and 100")
	errReplicaBounds           = errors.New("scheduler.minReplicas must not exceed scheduler.maxReplicas")
	errFileSizeBounds          = errors.New("scheduler.minFileSize must not exceed scheduler.maxFileSize")
	errNegativeSetting         = errors.New("scheduler settings must not be negative")
	errGroupRequired           = errors.New("node.group is required for member and leader roles")
	errGroupNotAllowed         = errors.New("node.group must not be set for an isolated node")
	errGroupAccountRequired    = errors.New("node.group.groupAccount is required")
	errGroupMembers            = errors.New("node.group.totalMembers must be positive")
	errGroupNodeIndex          = errors.New("node.group.nodeIndex must be in [0, totalMembers)")
	errCoordinatorAccount      = errors.New("node.sealCoordinator.account is required")
	errInvalidCoordinatorURL   = errors.New("node.sealCoordinator.endPoint must be an http(s) url")
)

const (
	DefaultSworkerTimeout = 10 * time.Second
	DefaultCollectTimeout = 60 * time.Second
)

// NodeRole is the node's position in a storage group.
type NodeRole string

const (
	NodeRoleMember    NodeRole = "member"
	NodeRoleIsolation NodeRole = "isolation"
	NodeRoleLeader    NodeRole = "leader"
)

type ChainConfig struct {
	Account  string `json:"account" yaml:"account"`
	EndPoint string `json:"endPoint" yaml:"endPoint"`
}

type SworkerConfig struct {
	EndPoint string   `json:"endPoint" yaml:"endPoint"`
	Timeout  Duration `json:"timeout" yaml:"timeout"`
}

// NodeConfig places the node in its storage group. Group is required for
// member and leader roles and forbidden for isolated nodes.
type NodeConfig struct {
	Role            NodeRole               `json:"role" yaml:"role"`
	Group           *GroupInfo             `json:"group,omitempty" yaml:"group,omitempty"`
	SealCoordinator *SealCoordinatorConfig `json:"sealCoordinator,omitempty" yaml:"sealCoordinator,omitempty"`
}

// Grouped reports whether the node belongs to a storage group.
func (n NodeConfig) Grouped() bool {
	return n.Group != nil && (n.Role == NodeRoleMember || n.Role == NodeRoleLeader)
}

// SealCoordinatorConfig points at the group's seal coordinator.
type SealCoordinatorConfig struct {
	Account  string `json:"account" yaml:"account"`
	EndPoint string `json:"endPoint,omitempty" yaml:"endPoint,omitempty"`
}

// NATSConfig enables mirroring delivered reports onto a JetStream subject.
type NATSConfig struct {
	URL     string `json:"url" yaml:"url"`
	Subject string `json:"subject" yaml:"subject"`
	Stream  string `json:"stream" yaml:"stream"`
	Domain  string `json:"domain,omitempty" yaml:"domain,omitempty"`
}

type TelemetryConfig struct {
	EndPoint       string      `json:"endPoint" yaml:"endPoint"`
	CollectTimeout Duration    `json:"collectTimeout" yaml:"collectTimeout"`
	NATS           *NATSConfig `json:"nats,omitempty" yaml:"nats,omitempty"`
}

type DatabaseConfig struct {
	URL               string   `json:"url" yaml:"url" sensitive:"true"`
	MaxConnections    int32    `json:"maxConnections" yaml:"maxConnections"`
	MinConnections    int32    `json:"minConnections" yaml:"minConnections"`
	MaxConnLifetime   Duration `json:"maxConnLifetime" yaml:"maxConnLifetime"`
	HealthCheckPeriod Duration `json:"healthCheckPeriod" yaml:"healthCheckPeriod"`
	StatementTimeout  Duration `json:"statementTimeout" yaml:"statementTimeout"`
	ApplicationName   string   `json:"applicationName" yaml:"applicationName"`
}

// MetricsConfig configures OTLP export of the process's own instruments.
type MetricsConfig struct {
	Enabled        bool              `json:"enabled" yaml:"enabled"`
	Endpoint       string            `json:"endpoint" yaml:"endpoint"`
	Insecure       bool              `json:"insecure" yaml:"insecure"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	ExportInterval Duration          `json:"exportInterval" yaml:"exportInterval"`
}

// SchedulerSettings holds every scheduler field except the strategy.
type SchedulerSettings struct {
	MinSrdRatio     float64 `json:"minSrdRatio" yaml:"minSrdRatio"`
	MaxPendingTasks int     `json:"maxPendingTasks" yaml:"maxPendingTasks"`
	MinFileSize     int64   `json:"minFileSize" yaml:"minFileSize"`
	MaxFileSize     int64   `json:"maxFileSize" yaml:"maxFileSize"`
	MinReplicas     int     `json:"minReplicas" yaml:"minReplicas"`
	MaxReplicas     int     `json:"maxReplicas" yaml:"maxReplicas"`
}

type SchedulerConfig struct {
	Strategy          StrategyConfig `json:"strategy" yaml:"strategy"`
	SchedulerSettings `yaml:",inline"`
}

// NormalizedSchedulerConfig is the scheduler section after the strategy has
// been turned into percentage weights. It is reported verbatim.
type NormalizedSchedulerConfig struct {
	Strategy          StrategyWeights `json:"strategy" yaml:"strategy"`
	SchedulerSettings `yaml:",inline"`
}

// BaseConfig is every section shared by the raw and normalized configs.
type BaseConfig struct {
	Chain     ChainConfig     `json:"chain" yaml:"chain"`
	Sworker   SworkerConfig   `json:"sworker" yaml:"sworker"`
	Node      NodeConfig      `json:"node" yaml:"node"`
	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry"`
	Database  DatabaseConfig  `json:"database" yaml:"database"`
	DataDir   string          `json:"dataDir" yaml:"dataDir"`
	Logging   *logger.Config  `json:"logging,omitempty" yaml:"logging,omitempty"`
	Metrics   *MetricsConfig  `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// SDataManagerConfig is the configuration file as loaded and validated.
type SDataManagerConfig struct {
	BaseConfig `yaml:",inline"`
	Scheduler  SchedulerConfig `json:"scheduler" yaml:"scheduler"`
}

// NormalizedConfig is the read-only configuration used at runtime.
type NormalizedConfig struct {
	BaseConfig `yaml:",inline"`
	Scheduler  NormalizedSchedulerConfig `json:"scheduler" yaml:"scheduler"`
}

// ApplyDefaults fills optional fields left empty in the file.
func (c *SDataManagerConfig) ApplyDefaults() {
	if c.Scheduler.Strategy.IsZero() {
		c.Scheduler.Strategy = PresetStrategy(StrategyDefault)
	}

	if c.Sworker.Timeout == 0 {
		c.Sworker.Timeout = Duration(DefaultSworkerTimeout)
	}

	if c.Telemetry.CollectTimeout == 0 {
		c.Telemetry.CollectTimeout = Duration(DefaultCollectTimeout)
	}

	if c.Node.Role == "" {
		c.Node.Role = NodeRoleIsolation
	}

	c.Telemetry.EndPoint = strings.TrimSpace(c.Telemetry.EndPoint)
}

// Validate enforces the configuration schema.
func (c *SDataManagerConfig) Validate() error {
	if strings.TrimSpace(c.Chain.Account) == "" {
		return errChainAccountRequired
	}

	if strings.TrimSpace(c.Sworker.EndPoint) == "" {
		return errSworkerEndpointRequired
	}

	if strings.TrimSpace(c.Database.URL) == "" {
		return errDatabaseURLRequired
	}

	if err := c.Node.validate(); err != nil {
		return err
	}

	if err := c.Telemetry.validate(); err != nil {
		return err
	}

	return c.Scheduler.validate()
}

func (n *NodeConfig) validate() error {
	switch n.Role {
	case NodeRoleMember, NodeRoleLeader:
		if n.Group == nil {
			return fmt.Errorf("%w: role %q", errGroupRequired, n.Role)
		}
	case NodeRoleIsolation, "":
		if n.Group != nil {
			return errGroupNotAllowed
		}
	default:
		return fmt.Errorf("%w: %q", errInvalidNodeRole, n.Role)
	}

	if g := n.Group; g != nil {
		if strings.TrimSpace(g.GroupAccount) == "" {
			return errGroupAccountRequired
		}

		if g.TotalMembers <= 0 {
			return errGroupMembers
		}

		if g.NodeIndex < 0 || g.NodeIndex >= g.TotalMembers {
			return fmt.Errorf("%w: %d of %d", errGroupNodeIndex, g.NodeIndex, g.TotalMembers)
		}
	}

	if sc := n.SealCoordinator; sc != nil {
		if strings.TrimSpace(sc.Account) == "" {
			return errCoordinatorAccount
		}

		if endpoint := strings.TrimSpace(sc.EndPoint); endpoint != "" && !isHTTPURL(endpoint) {
			return fmt.Errorf("%w: %q", errInvalidCoordinatorURL, endpoint)
		}
	}

	return nil
}

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)

	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func (t *TelemetryConfig) validate() error {
	if endpoint := strings.TrimSpace(t.EndPoint); endpoint != "" {
		if !isHTTPURL(endpoint) {
			return fmt.Errorf("%w: %q", errInvalidTelemetryURL, endpoint)
		}
	}

	if t.NATS == nil {
		return nil
	}

	if strings.TrimSpace(t.NATS.URL) == "" {
		return errNATSURLRequired
	}

	if strings.TrimSpace(t.NATS.Subject) == "" {
		return errNATSSubjectRequired
	}

	return nil
}

func (s *SchedulerConfig) validate() error {
	if !s.Strategy.IsZero() {
		if err := s.Strategy.Validate(); err != nil {
			return err
		}
	}

	if s.MinSrdRatio < 0 || s.MinSrdRatio > 100 {
		return errMinSrdRatioRange
	}

	if s.MaxPendingTasks < 0 || s.MinFileSize < 0 || s.MaxFileSize < 0 || s.MinReplicas < 0 || s.MaxReplicas < 0 {
		return errNegativeSetting
	}

	if s.MaxReplicas > 0 && s.MinReplicas > s.MaxReplicas {
		return errReplicaBounds
	}

	if s.MaxFileSize > 0 && s.MinFileSize > s.MaxFileSize {
		return errFileSizeBounds
	}

	return nil
}
