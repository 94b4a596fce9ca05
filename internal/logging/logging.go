// Copyright (c) Microsoft. All rights reserved.

// Package logging builds the slog handler shared by the samples and the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// DebugEnv is the environment variable that switches logging to debug level.
const DebugEnv = "DEBUG"

// New returns a logger writing coloured, human-readable lines to w. Colour
// is disabled when w is not a terminal.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	}))
}

// LevelFromEnv returns debug when DEBUG is set to a true value, info otherwise.
func LevelFromEnv() slog.Level {
	if v, err := strconv.ParseBool(os.Getenv(DebugEnv)); err == nil && v {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Setup installs a stderr logger as the slog default and returns it.
func Setup() *slog.Logger {
	logger := New(os.Stderr, LevelFromEnv())
	slog.SetDefault(logger)
	return logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
