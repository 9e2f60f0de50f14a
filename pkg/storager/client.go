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

// Package storager talks to the local storage node (sworker) API.
package storager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
	"github.com/jacklcz/spacex-sdatamanager/pkg/version"
)

const (
	workloadPath       = "/api/v0/workload"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBodyBytes  = 2048
)

var (
	ErrBaseURLRequired = errors.New("storager base url is required")
	ErrInvalidBaseURL  = errors.New("invalid storager base url")
	ErrUnexpectedReply = errors.New("unexpected storager response")
)

//go:generate mockgen -destination=mock_storager.go -package=storager github.com/jacklcz/spacex-sdatamanager/pkg/storager WorkloadProvider

// WorkloadProvider reports the storage node's current workload.
type WorkloadProvider interface {
	Workload(ctx context.Context) (*models.WorkloadInfo, error)
}

// HTTPClientConfig controls how the storager HTTP client behaves.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Logger  logger.Logger
	HTTP    *http.Client
}

// Client is a WorkloadProvider backed by the sworker HTTP API.
type Client struct {
	baseURL *url.URL
	client  *http.Client
	logger  logger.Logger
}

var _ WorkloadProvider = (*Client)(nil)

// NewHTTPClient constructs a storager client.
func NewHTTPClient(cfg HTTPClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrBaseURLRequired
	}

	parsed, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Client{
		baseURL: parsed,
		client:  httpClient,
		logger:  log,
	}, nil
}

// NewFromConfig builds a client from the sworker section of the config.
func NewFromConfig(cfg models.SworkerConfig, log logger.Logger) (*Client, error) {
	return NewHTTPClient(HTTPClientConfig{
		BaseURL: cfg.EndPoint,
		Timeout: cfg.Timeout.Std(),
		Logger:  log,
	})
}

// Workload fetches the current srd and file workload.
func (c *Client) Workload(ctx context.Context) (*models.WorkloadInfo, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, workloadPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create workload request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("workload request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

		return nil, fmt.Errorf("%w: status %d: %s", ErrUnexpectedReply, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var workload models.WorkloadInfo
	if err := json.NewDecoder(resp.Body).Decode(&workload); err != nil {
		return nil, fmt.Errorf("failed to decode workload response: %w", err)
	}

	c.logger.Debug().
		Int64("srd_complete", workload.Srd.SrdComplete).
		Int("srd_volumes", len(workload.Srd.SrdDetail)).
		Msg("Fetched storager workload")

	return &workload, nil
}
