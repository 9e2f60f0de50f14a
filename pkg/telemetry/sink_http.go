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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
	"github.com/jacklcz/spacex-sdatamanager/pkg/version"
)

const (
	// DefaultDeliveryTimeout bounds one report POST.
	DefaultDeliveryTimeout = 120 * time.Second

	maxResponseBodyBytes = 4096
	reportIDHeader       = "X-Report-ID"
)

var (
	ErrEndpointRequired = errors.New("telemetry endpoint is required")
	ErrDeliveryRejected = errors.New("telemetry endpoint rejected report")
)

// HTTPSink POSTs reports as JSON to the telemetry endpoint.
type HTTPSink struct {
	endpoint  string
	client    *http.Client
	userAgent string
}

var _ Sink = (*HTTPSink)(nil)

type HTTPSinkOption func(*HTTPSink)

// WithHTTPClient replaces the default client and its timeout.
func WithHTTPClient(c *http.Client) HTTPSinkOption {
	return func(s *HTTPSink) {
		if c != nil {
			s.client = c
		}
	}
}

func WithDeliveryTimeout(d time.Duration) HTTPSinkOption {
	return func(s *HTTPSink) {
		if d > 0 {
			s.client = &http.Client{Timeout: d}
		}
	}
}

func NewHTTPSink(endpoint string, opts ...HTTPSinkOption) (*HTTPSink, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}

	s := &HTTPSink{
		endpoint:  endpoint,
		client:    &http.Client{Timeout: DefaultDeliveryTimeout},
		userAgent: version.UserAgent(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Deliver sends report. Transport errors, timeouts and non-2xx answers are
// all returned as errors; the response body is kept up to 4 KiB.
func (s *HTTPSink) Deliver(ctx context.Context, reportID string, report *models.TelemetryReport) (*Delivery, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal telemetry report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	if reportID != "" {
		req.Header.Set(reportIDHeader, reportID)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telemetry request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	trimmed := strings.TrimSpace(string(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrDeliveryRejected, resp.StatusCode, trimmed)
	}

	return &Delivery{
		ReportID:   reportID,
		StatusCode: resp.StatusCode,
		Body:       trimmed,
	}, nil
}
