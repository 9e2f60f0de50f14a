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
	"time"

	"github.com/jacklcz/spacex-sdatamanager/pkg/chain"
	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
)

var (
	ErrConfigRequired    = errors.New("telemetry: normalized config is required")
	ErrIdentityRequired  = errors.New("telemetry: identity accessor is required")
	ErrCollectorRequired = errors.New("telemetry: collector is required")
)

const unknownVersion = "unknown"

// AppContext is everything a report is assembled from.
type AppContext struct {
	Config    *models.NormalizedConfig
	Identity  chain.IdentityAccessor
	Collector *Collector
	Version   func() string
	StartTime time.Time
}

// Assembler builds TelemetryReports.
type Assembler struct {
	app             AppContext
	groupInfo       *models.GroupInfo
	sealCoordinator SealCoordinator
	now             func() time.Time
}

type AssemblerOption func(*Assembler)

// WithGroupInfo sets the node's group membership. Without it the node is
// reported as ungrouped.
func WithGroupInfo(info *models.GroupInfo) AssemblerOption {
	return func(a *Assembler) {
		a.groupInfo = info
	}
}

func WithSealCoordinator(sc SealCoordinator) AssemblerOption {
	return func(a *Assembler) {
		a.sealCoordinator = sc
	}
}

// WithClock overrides the time source used for uptime.
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

func NewAssembler(app AppContext, opts ...AssemblerOption) (*Assembler, error) {
	switch {
	case app.Config == nil:
		return nil, ErrConfigRequired
	case app.Identity == nil:
		return nil, ErrIdentityRequired
	case app.Collector == nil:
		return nil, ErrCollectorRequired
	}

	a := &Assembler{
		app: app,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Assemble collects and builds the report for window.
func (a *Assembler) Assemble(ctx context.Context, window models.TimeWindow) (*models.TelemetryReport, error) {
	snap, err := a.app.Collector.CollectAll(ctx, window)
	if err != nil {
		return nil, err
	}

	group := models.UngroupedInfo()
	if a.groupInfo != nil {
		group = *a.groupInfo
	}

	return &models.TelemetryReport{
		ChainAccount:       a.app.Identity.ChainAccount(),
		SmangerInfo:        a.managerInfo(),
		PinStats:           snap.Pins,
		Storager:           snap.Storager,
		GroupInfo:          group,
		QueueStats:         snap.Queue,
		CleanupStats:       snap.Cleanup,
		HasSealCoordinator: a.sealCoordinator != nil,
	}, nil
}

func (a *Assembler) managerInfo() models.SDataManagerInfo {
	v := ""
	if a.app.Version != nil {
		v = a.app.Version()
	}

	if v == "" {
		v = unknownVersion
	}

	var uptime float64
	if !a.app.StartTime.IsZero() {
		uptime = a.now().Sub(a.app.StartTime).Seconds()
	}

	return models.SDataManagerInfo{
		Version:         v,
		Uptime:          uptime,
		SchedulerConfig: a.app.Config.Scheduler,
	}
}
