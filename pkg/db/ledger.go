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

package db

import (
	"context"
	"fmt"

	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
)

const (
	queuePendingSQL = `
SELECT COUNT(*), COALESCE(SUM(size), 0)::BIGINT
FROM file_record
WHERE status = ANY($1)`

	pinWindowSQL = `
SELECT
	COUNT(*) FILTER (WHERE status = $1),
	COUNT(*) FILTER (WHERE status = $2),
	COUNT(*) FILTER (WHERE status = $3),
	COALESCE(SUM(size) FILTER (WHERE status = $2), 0)::BIGINT
FROM pin_record
WHERE last_updated > $4`

	cleanupWindowSQL = `
SELECT COUNT(*)
FROM cleanup_record
WHERE status = $1 AND last_updated > $2`
)

// Store reads aggregate counters from the file, pin and cleanup ledgers.
// last_updated columns hold unix seconds.
type Store struct {
	q Querier
}

func NewStore(q Querier) *Store {
	return &Store{q: q}
}

// QueueStats counts file records still waiting to be handled. The queue is
// not windowed.
func (s *Store) QueueStats(ctx context.Context) (models.QueueInfo, error) {
	var info models.QueueInfo

	row := s.q.QueryRow(ctx, queuePendingSQL, models.PendingStatusStrings())
	if err := row.Scan(&info.PendingCount, &info.PendingSizeTotal); err != nil {
		return models.QueueInfo{}, fmt.Errorf("%w queue stats: %w", ErrFailedToQuery, err)
	}

	return info, nil
}

// PinStats counts pin records by status updated strictly after window start.
func (s *Store) PinStats(ctx context.Context, window models.TimeWindow) (models.PinStats, error) {
	var stats models.PinStats

	row := s.q.QueryRow(ctx, pinWindowSQL,
		string(models.PinStatusSealing),
		string(models.PinStatusSealed),
		string(models.PinStatusFailed),
		window.StartUnix(),
	)

	if err := row.Scan(&stats.SealingCount, &stats.SealedCount, &stats.FailedCount, &stats.SealedSize); err != nil {
		return models.PinStats{}, fmt.Errorf("%w pin stats: %w", ErrFailedToQuery, err)
	}

	return stats, nil
}

// CleanupStats counts cleanup records finished within the window.
func (s *Store) CleanupStats(ctx context.Context, window models.TimeWindow) (models.CleanupStats, error) {
	var stats models.CleanupStats

	row := s.q.QueryRow(ctx, cleanupWindowSQL, string(models.CleanupStatusDone), window.StartUnix())
	if err := row.Scan(&stats.DeletedCount); err != nil {
		return models.CleanupStats{}, fmt.Errorf("%w cleanup stats: %w", ErrFailedToQuery, err)
	}

	return stats, nil
}
