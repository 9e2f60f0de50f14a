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

package lifecycle

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
)

// CreateComponentLogger creates a logger tagged with the given component name.
func CreateComponentLogger(ctx context.Context, component string, config *logger.Config) (logger.Logger, error) {
	zlog, err := newZerolog(ctx, config)
	if err != nil {
		return nil, err
	}

	return logger.Wrap(zlog.With().Str("component", component).Logger()), nil
}

// ShutdownLogger shuts down the logger, flushing any pending logs.
func ShutdownLogger() error {
	return logger.Shutdown()
}

func newZerolog(ctx context.Context, config *logger.Config) (zerolog.Logger, error) {
	if config == nil {
		config = logger.DefaultConfig()
	}

	output, err := logger.ResolveOutput(ctx, config)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("failed to resolve log output: %w", err)
	}

	level, err := logger.ResolveLevel(config)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", config.Level, err)
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}
