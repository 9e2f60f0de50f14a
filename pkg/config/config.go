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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
)

var (
	errInvalidConfigSource = errors.New("invalid CONFIG_SOURCE value")
	errConfigPathRequired  = errors.New("config path is required")
)

const (
	configSourceFile = "file"
	configSourceEnv  = "env"

	// DefaultEnvPrefix is prepended to every environment override.
	DefaultEnvPrefix = "SDATAMANAGER_"
)

// ConfigLoader fills dst from a configuration source.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by configuration types that check themselves.
type Validator interface {
	Validate() error
}

// Config holds the configuration loading dependencies.
type Config struct {
	fileLoader ConfigLoader
	envLoader  ConfigLoader
	logger     logger.Logger
}

// NewConfig initializes a Config with the file loader and an env overlay using
// CONFIG_ENV_PREFIX (default SDATAMANAGER_). A nil logger discards output.
func NewConfig(log logger.Logger) *Config {
	if log == nil {
		log = logger.NewTestLogger()
	}

	prefix := os.Getenv("CONFIG_ENV_PREFIX")
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	return &Config{
		fileLoader: NewFileConfigLoader(log),
		envLoader:  NewEnvConfigLoader(log, prefix),
		logger:     log,
	}
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	return v.Validate()
}

// LoadAndValidate loads cfg according to CONFIG_SOURCE and validates it.
// "file" (the default) reads path and then applies environment overrides;
// "env" reads environment variables only.
func (c *Config) LoadAndValidate(ctx context.Context, path string, cfg interface{}) error {
	source := strings.ToLower(strings.TrimSpace(os.Getenv("CONFIG_SOURCE")))

	switch source {
	case configSourceFile, "":
		if path == "" {
			return errConfigPathRequired
		}

		if err := c.fileLoader.Load(ctx, path, cfg); err != nil {
			return err
		}

		if err := c.envLoader.Load(ctx, path, cfg); err != nil {
			return err
		}
	case configSourceEnv:
		if err := c.envLoader.Load(ctx, path, cfg); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s (expected '%s' or '%s')",
			errInvalidConfigSource, source, configSourceFile, configSourceEnv)
	}

	if d, ok := cfg.(interface{ ApplyDefaults() }); ok {
		d.ApplyDefaults()
	}

	return ValidateConfig(cfg)
}
