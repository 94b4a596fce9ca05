// Copyright (c) Microsoft. All rights reserved.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source supplies raw configuration values by key.
type Source interface {
	Name() string
	Lookup(key string) (string, bool)
}

type envSource struct{}

// Env returns a Source backed by the process environment.
func Env() Source { return envSource{} }

func (envSource) Name() string                     { return "environment" }
func (envSource) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

type mapSource struct {
	name   string
	values map[string]string
}

// Map returns a Source backed by a fixed map.
func Map(name string, values map[string]string) Source {
	return &mapSource{name: name, values: values}
}

func (m *mapSource) Name() string { return m.name }

func (m *mapSource) Lookup(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// DotEnv reads a .env file without touching the process environment.
// A missing file yields an empty source.
func DotEnv(path string) (Source, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Map(path, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Map(path, values), nil
}

// YAMLFile reads a flat KEY: value settings file. Non-string scalars are
// formatted with fmt.
func YAMLFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseYAML(path, data)
}

func parseYAML(name string, data []byte) (Source, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
		case string:
			values[k] = v
		case map[string]any, []any:
			return nil, fmt.Errorf("parse %s: key %s: nested values are not supported", name, k)
		default:
			values[k] = fmt.Sprint(v)
		}
	}
	return Map(name, values), nil
}
