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

import "time"

// ReportSlotDuration is how far back a report looks for recent ledger activity.
const ReportSlotDuration = 24 * time.Hour

// TimeWindow bounds the "recent" ledger queries of a single report.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewReportWindow returns the window ending at now.
func NewReportWindow(now time.Time) TimeWindow {
	return TimeWindow{
		Start: now.Add(-ReportSlotDuration),
		End:   now,
	}
}

// StartUnix is the last_updated threshold in seconds since epoch.
func (w TimeWindow) StartUnix() int64 {
	return w.Start.Unix()
}
