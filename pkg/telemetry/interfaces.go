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

	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
)

//go:generate mockgen -destination=mock_telemetry.go -package=telemetry github.com/jacklcz/spacex-sdatamanager/pkg/telemetry Store,Sink

// Store is the ledger read surface the collectors aggregate from.
type Store interface {
	QueueStats(ctx context.Context) (models.QueueInfo, error)
	PinStats(ctx context.Context, window models.TimeWindow) (models.PinStats, error)
	CleanupStats(ctx context.Context, window models.TimeWindow) (models.CleanupStats, error)
}

// Delivery describes an accepted report.
type Delivery struct {
	ReportID   string
	StatusCode int
	Body       string
	Sequence   uint64
}

// Sink delivers one report. reportID is unique per tick.
type Sink interface {
	Deliver(ctx context.Context, reportID string, report *models.TelemetryReport) (*Delivery, error)
}

// SealCoordinator is the optional component that coordinates sealing across
// a storage group. Only its presence is reported.
type SealCoordinator interface {
	CoordinatorAccount() string
}
