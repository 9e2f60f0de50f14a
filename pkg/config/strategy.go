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
	"math"

	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
)

//nolint:gochecknoglobals // fixed preset table
var presetWeights = map[models.StrategyPreset]models.StrategyWeights{
	models.StrategyDefault:      {DBFilesWeight: 50, NewFilesWeight: 50},
	models.StrategySrdFirst:     {DBFilesWeight: 80, NewFilesWeight: 10},
	models.StrategyNewFileFirst: {DBFilesWeight: 20, NewFilesWeight: 80},
}

// DefaultStrategyWeights is used for the default preset and whenever
// explicit weights cannot be normalized.
func DefaultStrategyWeights() models.StrategyWeights {
	return presetWeights[models.StrategyDefault]
}

// NormalizeStrategyWeights turns a strategy into percentage weights. Presets
// map to fixed tables. Explicit weights are scaled to sum to 100 keeping their
// ratio; a non-positive sum logs a warning and yields the default weights.
//
// A single negative weight with a positive sum is scaled like any other pair,
// so {-5, 10} becomes {-100, 200}.
func NormalizeStrategyWeights(strategy models.StrategyConfig, log logger.Logger) models.StrategyWeights {
	if log == nil {
		log = logger.NewTestLogger()
	}

	if preset, ok := strategy.Preset(); ok {
		if w, known := presetWeights[preset]; known {
			return w
		}

		log.Warn().Str("strategy", string(preset)).Msg("unknown strategy preset configured, using default weights")

		return DefaultStrategyWeights()
	}

	weights, ok := strategy.Weights()
	if !ok {
		return DefaultStrategyWeights()
	}

	total := weights.Total()
	if total > 0 && !math.IsInf(total, 0) {
		return models.StrategyWeights{
			DBFilesWeight:  weights.DBFilesWeight / total * 100,
			NewFilesWeight: weights.NewFilesWeight / total * 100,
		}
	}

	log.Warn().
		Float64("db_files_weight", weights.DBFilesWeight).
		Float64("new_files_weight", weights.NewFilesWeight).
		Msg("invalid strategy weights configured, using default weights")

	return DefaultStrategyWeights()
}

// NormalizeConfig derives the runtime configuration. Every field other than
// scheduler.strategy is carried over unchanged; cfg is not modified.
func NormalizeConfig(cfg *models.SDataManagerConfig, log logger.Logger) *models.NormalizedConfig {
	return &models.NormalizedConfig{
		BaseConfig: cfg.BaseConfig,
		Scheduler: models.NormalizedSchedulerConfig{
			Strategy:          NormalizeStrategyWeights(cfg.Scheduler.Strategy, log),
			SchedulerSettings: cfg.Scheduler.SchedulerSettings,
		},
	}
}
