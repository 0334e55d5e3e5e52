// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	errExpectedPointerToStruct = errors.New("expected a pointer to a struct")
	errUnsupportedFieldType    = errors.New("unsupported field type for env override")
)

// readEnv populates the provided configuration struct with values from
// environment variables, honoring `env:"NAME[,overwrite]"` struct tags.
//
// Without the overwrite option, an environment variable only fills fields
// that still hold their zero value; with it, the variable wins over whatever
// the YAML file set.
func readEnv(spec any) error {
	structValue := reflect.ValueOf(spec)
	if structValue.Kind() != reflect.Ptr || structValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structValue = structValue.Elem()
	structType := structValue.Type()

	for fieldIndex := range structValue.NumField() {
		field := structValue.Field(fieldIndex)
		fieldType := structType.Field(fieldIndex)

		tag := fieldType.Tag.Get("env")
		if tag == "" {
			// Recurse into untagged nested sections.
			if field.Kind() == reflect.Struct && field.CanAddr() {
				if err := readEnv(field.Addr().Interface()); err != nil {
					return err
				}
			}

			continue
		}

		parts := strings.Split(tag, ",")
		envVarName := parts[0]
		overwrite := slices.Contains(parts[1:], "overwrite")

		envValue, exists := os.LookupEnv(envVarName)
		if !exists || !field.CanSet() {
			continue
		}

		if !overwrite && !field.IsZero() {
			continue
		}

		if err := setFieldValue(field, envVarName, envValue); err != nil {
			return err
		}
	}

	return nil
}

// setFieldValue parses envValue according to the field's kind and stores it.
func setFieldValue(field reflect.Value, envVarName, envValue string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(envValue)
		if err != nil {
			return fmt.Errorf("failed to parse bool from env var %s (%s): %w", envVarName, envValue, err)
		}

		field.SetBool(boolValue)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			parsedDuration, err := time.ParseDuration(envValue)
			if err != nil {
				return fmt.Errorf("failed to parse duration from env var %s (%s): %w", envVarName, envValue, err)
			}

			field.SetInt(int64(parsedDuration))

			return nil
		}

		intValue, err := strconv.ParseInt(envValue, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int from env var %s (%s): %w", envVarName, envValue, err)
		}

		field.SetInt(intValue)

	case reflect.Slice:
		// All slices used in configuration are of strings.
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("%w: %s (env var %s)", errUnsupportedFieldType, field.Type(), envVarName)
		}

		values := strings.Split(envValue, ",")
		trimmed := make([]string, 0, len(values))

		for _, value := range values {
			if v := strings.TrimSpace(value); v != "" {
				trimmed = append(trimmed, v)
			}
		}

		field.Set(reflect.ValueOf(trimmed))

	default:
		return fmt.Errorf("%w: %s (env var %s)", errUnsupportedFieldType, field.Kind(), envVarName)
	}

	return nil
}
