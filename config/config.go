// Copyright (c) Microsoft. All rights reserved.

// Package config resolves sample settings from the environment, a local
// .env file and an optional YAML settings file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

// ConfigFileEnv names a YAML settings file consulted after the environment
// and .env.
const ConfigFileEnv = "FOUNDRY_CONFIG"

// MissingError reports a required setting that no source provided. Keys
// lists the primary key followed by its fallbacks.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	if len(e.Keys) == 1 {
		return e.Keys[0] + " is required but not set"
	}
	return "either " + strings.Join(e.Keys, " or ") + " must be set"
}

func (e *MissingError) Unwrap() error { return foundry.ErrConfig }

// Resolver looks keys up across an ordered list of sources; the first
// non-blank value wins.
type Resolver struct {
	sources []Source
	logger  *slog.Logger
}

// NewResolver returns a Resolver over sources, in priority order.
func NewResolver(logger *slog.Logger, sources ...Source) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{sources: sources, logger: logger}
}

// Load builds the standard resolver: process environment, then .env in the
// working directory, then the YAML file named by FOUNDRY_CONFIG if set.
func Load(logger *slog.Logger) (*Resolver, error) {
	dotenv, err := DotEnv(".env")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", foundry.ErrConfig, err)
	}
	r := NewResolver(logger, Env(), dotenv)

	if path, ok := r.Lookup(ConfigFileEnv); ok {
		file, err := YAMLFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", foundry.ErrConfig, err)
		}
		r.sources = append(r.sources, file)
	}
	return r, nil
}

// Lookup returns the first non-blank value for key.
func (r *Resolver) Lookup(key string) (string, bool) {
	for _, s := range r.sources {
		if v, ok := s.Lookup(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// Require returns the value of the first key that is set. keys[0] is the
// primary key; later keys are fallbacks. A *MissingError naming every key is
// returned when none is set.
func (r *Resolver) Require(keys ...string) (string, error) {
	for i, key := range keys {
		if v, ok := r.Lookup(key); ok {
			if i > 0 {
				r.logger.Info(fmt.Sprintf("Using %s as %s", key, keys[0]), "value", v)
			}
			return v, nil
		}
	}
	return "", &MissingError{Keys: keys}
}

// Optional returns the value of key, then of each fallback, then def. Using
// the default is logged.
func (r *Resolver) Optional(key, def string, fallbacks ...string) string {
	if v, ok := r.Lookup(key); ok {
		return v
	}
	for _, fb := range fallbacks {
		if v, ok := r.Lookup(fb); ok {
			r.logger.Info(fmt.Sprintf("Using %s as %s", fb, key), "value", v)
			return v
		}
	}
	r.logger.Info(fmt.Sprintf("No %s provided, using default", key), "default", def)
	return def
}

// First returns the first set value among keys, or "".
func (r *Resolver) First(keys ...string) string {
	for _, key := range keys {
		if v, ok := r.Lookup(key); ok {
			return v
		}
	}
	return ""
}
