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

package logger

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envLogLevel      = "SDATAMANAGER_LOG_LEVEL"
	envLogOutput     = "SDATAMANAGER_LOG_OUTPUT"
	envLogTimeFormat = "SDATAMANAGER_LOG_TIME_FORMAT"
	envLogDebug      = "SDATAMANAGER_DEBUG"

	envOTelEnabled  = "OTEL_LOGS_ENABLED"
	envOTelEndpoint = "OTEL_EXPORTER_OTLP_LOGS_ENDPOINT"
	envOTelHeaders  = "OTEL_EXPORTER_OTLP_LOGS_HEADERS"
	envOTelTimeout  = "OTEL_EXPORTER_OTLP_LOGS_TIMEOUT"
	envOTelInsecure = "OTEL_EXPORTER_OTLP_LOGS_INSECURE"
	envOTelService  = "OTEL_SERVICE_NAME"

	defaultBatchTimeout = 5 * time.Second
)

// DefaultConfig is used when the config file has no logging section.
// SDATAMANAGER_LOG_LEVEL and LOG_LEVEL are both honoured, in that order.
func DefaultConfig() *Config {
	return &Config{
		Level:      envString("info", envLogLevel, "LOG_LEVEL"),
		Debug:      envBool(false, envLogDebug, "DEBUG"),
		Output:     envString("stdout", envLogOutput, "LOG_OUTPUT"),
		TimeFormat: envString("", envLogTimeFormat),
		OTel:       DefaultOTelConfig(),
	}
}

// DefaultOTelConfig reads the standard OTEL_* exporter variables.
func DefaultOTelConfig() OTelConfig {
	batchTimeout := defaultBatchTimeout
	if d, err := time.ParseDuration(os.Getenv(envOTelTimeout)); err == nil && d > 0 {
		batchTimeout = d
	}

	return OTelConfig{
		Enabled:      envBool(false, envOTelEnabled),
		Endpoint:     envString("", envOTelEndpoint),
		Headers:      parseHeaderList(os.Getenv(envOTelHeaders)),
		ServiceName:  envString("sdatamanager", envOTelService),
		BatchTimeout: Duration(batchTimeout),
		Insecure:     envBool(false, envOTelInsecure),
	}
}

// parseHeaderList reads "k1=v1,k2=v2".
func parseHeaderList(raw string) map[string]string {
	headers := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			continue
		}

		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return headers
}

func envString(fallback string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}

	return fallback
}

func envBool(fallback bool, keys ...string) bool {
	raw := envString("", keys...)
	if raw == "" {
		return fallback
	}

	switch strings.ToLower(raw) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return v
}
