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

	"golang.org/x/sync/errgroup"

	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
	"github.com/jacklcz/spacex-sdatamanager/pkg/storager"
)

// Snapshot is the output of one collection pass.
type Snapshot struct {
	Queue    models.QueueInfo
	Pins     models.PinStats
	Cleanup  models.CleanupStats
	Storager *models.StoragerStats
}

// Collector gathers the ledger and workload statistics for a report.
type Collector struct {
	store    Store
	workload storager.WorkloadProvider
	logger   logger.Logger
}

func NewCollector(store Store, workload storager.WorkloadProvider, log logger.Logger) *Collector {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Collector{
		store:    store,
		workload: workload,
		logger:   log,
	}
}

func (c *Collector) QueueStats(ctx context.Context) (models.QueueInfo, error) {
	return c.store.QueueStats(ctx)
}

func (c *Collector) PinStats(ctx context.Context, window models.TimeWindow) (models.PinStats, error) {
	return c.store.PinStats(ctx, window)
}

func (c *Collector) CleanupStats(ctx context.Context, window models.TimeWindow) (models.CleanupStats, error) {
	return c.store.CleanupStats(ctx, window)
}

// StorageStats returns nil when the storage node cannot be reached.
func (c *Collector) StorageStats(ctx context.Context) *models.StoragerStats {
	if c.workload == nil {
		c.logger.Warn().Msg("storager workload provider not configured, reporting storager as offline")

		return nil
	}

	workload, err := c.workload.Workload(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load storager workload")

		return nil
	}

	return workload.ToStoragerStats()
}

// CollectAll runs every collector concurrently. A store error fails the
// whole pass; an unreachable storage node only leaves Storager nil.
func (c *Collector) CollectAll(ctx context.Context, window models.TimeWindow) (*Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		queue, err := c.QueueStats(gctx)
		snap.Queue = queue

		return err
	})

	g.Go(func() error {
		pins, err := c.PinStats(gctx, window)
		snap.Pins = pins

		return err
	})

	g.Go(func() error {
		cleanup, err := c.CleanupStats(gctx, window)
		snap.Cleanup = cleanup

		return err
	})

	g.Go(func() error {
		snap.Storager = c.StorageStats(gctx)

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snap, nil
}
