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

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

var (
	ErrStrategyInvalid         = errors.New("invalid scheduler strategy")
	ErrStrategyUnknownPreset   = errors.New("unknown scheduler strategy preset")
	ErrStrategyWeightsMissing  = errors.New("strategy weights require dbFilesWeight and newFilesWeight")
	ErrStrategyWeightNotFinite = errors.New("strategy weights must be finite numbers")
)

// StrategyPreset names one of the fixed weight presets.
type StrategyPreset string

const (
	StrategyDefault      StrategyPreset = "default"
	StrategySrdFirst     StrategyPreset = "srdFirst"
	StrategyNewFileFirst StrategyPreset = "newFileFirst"
)

// Known reports whether p is one of the supported presets.
func (p StrategyPreset) Known() bool {
	switch p {
	case StrategyDefault, StrategySrdFirst, StrategyNewFileFirst:
		return true
	default:
		return false
	}
}

// StrategyWeights splits scheduling effort between files already tracked in
// the database and newly discovered files.
type StrategyWeights struct {
	DBFilesWeight  float64 `json:"dbFilesWeight" yaml:"dbFilesWeight"`
	NewFilesWeight float64 `json:"newFilesWeight" yaml:"newFilesWeight"`
}

func (w StrategyWeights) Total() float64 {
	return w.DBFilesWeight + w.NewFilesWeight
}

// StrategyConfig is the raw scheduler.strategy value: a preset keyword or an
// explicit weight pair. The zero value holds neither.
type StrategyConfig struct {
	preset  StrategyPreset
	weights *StrategyWeights
}

func PresetStrategy(p StrategyPreset) StrategyConfig {
	return StrategyConfig{preset: p}
}

func WeightedStrategy(w StrategyWeights) StrategyConfig {
	return StrategyConfig{weights: &w}
}

func (s StrategyConfig) Preset() (StrategyPreset, bool) {
	return s.preset, s.weights == nil && s.preset != ""
}

func (s StrategyConfig) Weights() (StrategyWeights, bool) {
	if s.weights == nil {
		return StrategyWeights{}, false
	}

	return *s.weights, true
}

func (s StrategyConfig) IsZero() bool {
	return s.preset == "" && s.weights == nil
}

func (s StrategyConfig) String() string {
	if w, ok := s.Weights(); ok {
		return fmt.Sprintf("{dbFilesWeight:%g newFilesWeight:%g}", w.DBFilesWeight, w.NewFilesWeight)
	}

	return string(s.preset)
}

// Validate checks the shape of the value. Non-positive weight sums are left
// to the normalizer, which falls back to the default preset.
func (s StrategyConfig) Validate() error {
	if w, ok := s.Weights(); ok {
		if math.IsNaN(w.DBFilesWeight) || math.IsInf(w.DBFilesWeight, 0) ||
			math.IsNaN(w.NewFilesWeight) || math.IsInf(w.NewFilesWeight, 0) {
			return ErrStrategyWeightNotFinite
		}

		return nil
	}

	if !s.preset.Known() {
		return fmt.Errorf("%w: %q", ErrStrategyUnknownPreset, s.preset)
	}

	return nil
}

type rawWeights struct {
	DBFilesWeight  *float64 `json:"dbFilesWeight" yaml:"dbFilesWeight"`
	NewFilesWeight *float64 `json:"newFilesWeight" yaml:"newFilesWeight"`
}

func (r rawWeights) toStrategy() (StrategyConfig, error) {
	if r.DBFilesWeight == nil || r.NewFilesWeight == nil {
		return StrategyConfig{}, ErrStrategyWeightsMissing
	}

	return WeightedStrategy(StrategyWeights{
		DBFilesWeight:  *r.DBFilesWeight,
		NewFilesWeight: *r.NewFilesWeight,
	}), nil
}

func (s *StrategyConfig) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return ErrStrategyInvalid
	}

	switch trimmed[0] {
	case '"':
		var preset string
		if err := json.Unmarshal(trimmed, &preset); err != nil {
			return fmt.Errorf("%w: %w", ErrStrategyInvalid, err)
		}

		*s = PresetStrategy(StrategyPreset(preset))

		return nil
	case '{':
		var raw rawWeights
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("%w: %w", ErrStrategyInvalid, err)
		}

		parsed, err := raw.toStrategy()
		if err != nil {
			return err
		}

		*s = parsed

		return nil
	default:
		return fmt.Errorf("%w: expected string or object", ErrStrategyInvalid)
	}
}

func (s StrategyConfig) MarshalJSON() ([]byte, error) {
	if w, ok := s.Weights(); ok {
		return json.Marshal(w)
	}

	return json.Marshal(string(s.preset))
}

func (s *StrategyConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = PresetStrategy(StrategyPreset(node.Value))
		return nil
	case yaml.MappingNode:
		var raw rawWeights
		if err := node.Decode(&raw); err != nil {
			return fmt.Errorf("%w: %w", ErrStrategyInvalid, err)
		}

		parsed, err := raw.toStrategy()
		if err != nil {
			return err
		}

		*s = parsed

		return nil
	default:
		return fmt.Errorf("%w: expected string or mapping", ErrStrategyInvalid)
	}
}
