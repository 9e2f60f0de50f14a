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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
)

var (
	// ErrDstMustBeNonNilPointer indicates that the destination must be a non-nil pointer.
	ErrDstMustBeNonNilPointer = errors.New("dst must be a non-nil pointer")
	// ErrDstMustBePointerToStruct indicates that the destination must be a pointer to a struct.
	ErrDstMustBePointerToStruct = errors.New("dst must be a pointer to a struct")

	errUnsupportedEnvType = errors.New("unsupported field type")
)

//nolint:gochecknoglobals // reflect type lookups
var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	durationType        = reflect.TypeOf(time.Duration(0))
)

// EnvConfigLoader overlays environment variables onto a configuration struct.
// Names are the upper-cased json tags joined by underscores, so
// SDATAMANAGER_TELEMETRY_ENDPOINT maps to config.Telemetry.EndPoint. Fields
// without a matching variable keep whatever value they already hold.
type EnvConfigLoader struct {
	logger logger.Logger
	prefix string
}

// NewEnvConfigLoader creates a new environment variable config loader.
func NewEnvConfigLoader(log logger.Logger, prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{
		logger: log,
		prefix: prefix,
	}
}

// Load implements ConfigLoader.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrDstMustBeNonNilPointer
	}

	if v.Elem().Kind() != reflect.Struct {
		return ErrDstMustBePointerToStruct
	}

	// A complete JSON document is merged before the per-field overrides.
	if jsonConfig := os.Getenv(e.prefix + "CONFIG_JSON"); jsonConfig != "" {
		if err := json.Unmarshal([]byte(jsonConfig), dst); err != nil {
			return fmt.Errorf("failed to unmarshal %sCONFIG_JSON: %w", e.prefix, err)
		}

		e.logger.Info().Msg("Loaded configuration from CONFIG_JSON environment variable")
	}

	return e.loadStruct(v.Elem(), e.prefix)
}

// loadStruct recursively applies environment variables to a struct.
func (e *EnvConfigLoader) loadStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		jsonTag := fieldType.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := strings.Split(jsonTag, ",")[0]

		// Embedded structs without a json name share the parent's namespace.
		if fieldType.Anonymous && fieldName == "" && field.Kind() == reflect.Struct {
			if err := e.loadStruct(field, prefix); err != nil {
				return err
			}

			continue
		}

		if fieldName == "" {
			continue
		}

		if err := e.setFieldValue(field, e.buildEnvName(prefix, fieldName)); err != nil {
			return err
		}
	}

	return nil
}

// buildEnvName constructs the environment variable name from prefix and field name.
func (*EnvConfigLoader) buildEnvName(prefix, fieldName string) string {
	envName := strings.ToUpper(fieldName)
	envName = strings.ReplaceAll(envName, ".", "_")

	return prefix + envName
}

// setFieldValue sets a struct field from envName, descending into nested structs.
func (e *EnvConfigLoader) setFieldValue(field reflect.Value, envName string) error {
	if field.Addr().Type().Implements(jsonUnmarshalerType) {
		return e.setUnmarshalerField(field, envName)
	}

	switch {
	case field.Kind() == reflect.Struct:
		return e.loadStruct(field, envName+"_")
	case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
		return e.setStructPtrField(field, envName)
	}

	envValue, ok := os.LookupEnv(envName)
	if !ok || envValue == "" {
		return nil
	}

	if err := e.setFieldByKind(field, envName, envValue); err != nil {
		return err
	}

	e.logger.Debug().
		Str("env", envName).
		Str("value", "[set]").
		Msg("Loaded value from environment variable")

	return nil
}

// setStructPtrField only allocates a nil section when some variable targets it,
// so optional sections stay nil unless configured.
func (e *EnvConfigLoader) setStructPtrField(field reflect.Value, envName string) error {
	if field.IsNil() {
		if !hasEnvWithPrefix(envName + "_") {
			return nil
		}

		field.Set(reflect.New(field.Type().Elem()))
	}

	return e.loadStruct(field.Elem(), envName+"_")
}

// setUnmarshalerField decodes values for types with their own JSON form.
// Bare words such as 5s or srdFirst are retried as JSON strings.
func (e *EnvConfigLoader) setUnmarshalerField(field reflect.Value, envName string) error {
	envValue, ok := os.LookupEnv(envName)
	if !ok || envValue == "" {
		return nil
	}

	target := field.Addr().Interface().(json.Unmarshaler)

	if err := target.UnmarshalJSON([]byte(envValue)); err != nil {
		quoted := strconv.Quote(envValue)
		if err2 := target.UnmarshalJSON([]byte(quoted)); err2 != nil {
			return fmt.Errorf("invalid value for %s: %w", envName, err)
		}
	}

	e.logger.Debug().Str("env", envName).Str("value", "[set]").Msg("Loaded value from environment variable")

	return nil
}

// setFieldByKind sets field value based on its reflect.Kind.
func (e *EnvConfigLoader) setFieldByKind(field reflect.Value, envName, envValue string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)

		return nil
	case reflect.Bool:
		return e.setBoolField(field, envName, envValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.setIntField(field, envName, envValue)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return e.setUintField(field, envName, envValue)
	case reflect.Float32, reflect.Float64:
		return e.setFloatField(field, envName, envValue)
	case reflect.Slice, reflect.Map:
		return e.setJSONField(field, envName, envValue)
	case reflect.Ptr:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}

		return e.setFieldByKind(field.Elem(), envName, envValue)
	case reflect.Invalid, reflect.Uintptr, reflect.Complex64, reflect.Complex128, reflect.Array,
		reflect.Chan, reflect.Func, reflect.Interface, reflect.Struct, reflect.UnsafePointer:
		return fmt.Errorf("%w %s for %s", errUnsupportedEnvType, field.Kind(), envName)
	default:
		return fmt.Errorf("%w %s for %s", errUnsupportedEnvType, field.Kind(), envName)
	}
}

func (*EnvConfigLoader) setBoolField(field reflect.Value, envName, envValue string) error {
	b, err := strconv.ParseBool(envValue)
	if err != nil {
		return fmt.Errorf("invalid boolean value for %s: %w", envName, err)
	}

	field.SetBool(b)

	return nil
}

// setIntField sets an integer field value, with special handling for time.Duration.
func (*EnvConfigLoader) setIntField(field reflect.Value, envName, envValue string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(envValue)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", envName, err)
		}

		field.SetInt(int64(d))

		return nil
	}

	i, err := strconv.ParseInt(envValue, 10, field.Type().Bits())
	if err != nil {
		return fmt.Errorf("invalid integer value for %s: %w", envName, err)
	}

	field.SetInt(i)

	return nil
}

func (*EnvConfigLoader) setUintField(field reflect.Value, envName, envValue string) error {
	u, err := strconv.ParseUint(envValue, 10, field.Type().Bits())
	if err != nil {
		return fmt.Errorf("invalid unsigned integer value for %s: %w", envName, err)
	}

	field.SetUint(u)

	return nil
}

func (*EnvConfigLoader) setFloatField(field reflect.Value, envName, envValue string) error {
	f, err := strconv.ParseFloat(envValue, 64)
	if err != nil {
		return fmt.Errorf("invalid float value for %s: %w", envName, err)
	}

	field.SetFloat(f)

	return nil
}

// setJSONField handles slices and maps. String slices also accept a comma list.
func (*EnvConfigLoader) setJSONField(field reflect.Value, envName, envValue string) error {
	if field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.String &&
		!strings.HasPrefix(strings.TrimSpace(envValue), "[") {
		values := strings.Split(envValue, ",")
		slice := reflect.MakeSlice(field.Type(), len(values), len(values))

		for i, v := range values {
			slice.Index(i).SetString(strings.TrimSpace(v))
		}

		field.Set(slice)

		return nil
	}

	if err := json.Unmarshal([]byte(envValue), field.Addr().Interface()); err != nil {
		return fmt.Errorf("invalid %s value for %s: %w", field.Kind(), envName, err)
	}

	return nil
}

func hasEnvWithPrefix(prefix string) bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, prefix) {
			return true
		}
	}

	return false
}
