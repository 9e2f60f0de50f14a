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

package config

import (
	"context"
	"fmt"

	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
)

// LoadConfig reads, validates and normalizes the sdatamanager configuration.
func LoadConfig(ctx context.Context, path string, log logger.Logger) (*models.NormalizedConfig, error) {
	if log == nil {
		log = logger.NewTestLogger()
	}

	var cfg models.SDataManagerConfig

	if err := NewConfig(log).LoadAndValidate(ctx, path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	normalized := NormalizeConfig(&cfg, log)

	log.Info().
		Str("chain_account", normalized.Chain.Account).
		Str("strategy", cfg.Scheduler.Strategy.String()).
		Float64("db_files_weight", normalized.Scheduler.Strategy.DBFilesWeight).
		Float64("new_files_weight", normalized.Scheduler.Strategy.NewFilesWeight).
		Bool("telemetry_enabled", normalized.Telemetry.EndPoint != "").
		Msg("Loaded configuration")

	return normalized, nil
}
