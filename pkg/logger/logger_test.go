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
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLevel(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		want    zerolog.Level
		wantErr bool
	}{
		{name: "empty defaults to info", config: Config{}, want: zerolog.InfoLevel},
		{name: "explicit level", config: Config{Level: "warn"}, want: zerolog.WarnLevel},
		{name: "debug overrides level", config: Config{Level: "error", Debug: true}, want: zerolog.DebugLevel},
		{name: "unknown level", config: Config{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveLevel(&tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWithWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter(&buf, zerolog.InfoLevel)
	log.Debug().Msg("hidden")
	log.Warn().Str("task", "telemetry-report").Msg("visible")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "telemetry-report", entry["task"])
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("SDATAMANAGER_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OTEL_LOGS_ENABLED", "")
	t.Setenv("OTEL_SERVICE_NAME", "")

	config := DefaultConfig()

	assert.Equal(t, "info", config.Level)
	assert.Equal(t, "stdout", config.Output)
	assert.False(t, config.OTel.Enabled)
	assert.Equal(t, "sdatamanager", config.OTel.ServiceName)
}

func TestDefaultConfigEnvPrecedence(t *testing.T) {
	t.Setenv("SDATAMANAGER_LOG_LEVEL", "warn")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_LOGS_ENABLED", "on")
	t.Setenv("OTEL_EXPORTER_OTLP_LOGS_HEADERS", "x-token=abc, bad ,tenant = t1")

	config := DefaultConfig()

	assert.Equal(t, "warn", config.Level)
	assert.True(t, config.OTel.Enabled)
	assert.Equal(t, map[string]string{"x-token": "abc", "tenant": "t1"}, config.OTel.Headers)
}
