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

const (
	CloudEventSpecVersion    = "1.0"
	TelemetryReportEventType = "io.spacex.sdatamanager.telemetry.report"
	TelemetryEventSource     = "sdatamanager/telemetry"
)

// CloudEvent is the envelope used for messages mirrored onto NATS.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject,omitempty"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

// NewTelemetryReportEvent wraps a report for publication on subject.
func NewTelemetryReportEvent(id, subject string, at time.Time, report *TelemetryReport) CloudEvent {
	return CloudEvent{
		SpecVersion:     CloudEventSpecVersion,
		ID:              id,
		Source:          TelemetryEventSource,
		Type:            TelemetryReportEventType,
		DataContentType: "application/json",
		Subject:         subject,
		Time:            &at,
		Data:            report,
	}
}
