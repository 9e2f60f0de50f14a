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
	"fmt"
	"time"

	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
)

// EventPublisher is the JetStream publishing surface the NATS sink needs.
// *natsutil.EventPublisher satisfies it.
type EventPublisher interface {
	Subject() string
	Publish(ctx context.Context, msgID string, payload []byte) (uint64, error)
}

// NATSSink mirrors reports onto a JetStream subject as CloudEvents. The
// report id doubles as the de-duplication id.
type NATSSink struct {
	publisher EventPublisher
	now       func() time.Time
}

var _ Sink = (*NATSSink)(nil)

func NewNATSSink(publisher EventPublisher) *NATSSink {
	return &NATSSink{
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *NATSSink) Deliver(ctx context.Context, reportID string, report *models.TelemetryReport) (*Delivery, error) {
	event := models.NewTelemetryReportEvent(reportID, s.publisher.Subject(), s.now().UTC(), report)

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal telemetry event: %w", err)
	}

	seq, err := s.publisher.Publish(ctx, reportID, payload)
	if err != nil {
		return nil, err
	}

	return &Delivery{
		ReportID: reportID,
		Sequence: seq,
	}, nil
}
