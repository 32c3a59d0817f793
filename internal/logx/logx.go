// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package logx adapts the engine's plain Debug/Info/Warning/Error callback
// seam (spec section 7) onto github.com/charmbracelet/log so local runs get
// leveled, readable output while embedders can still install their own
// plain callback.
package logx

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Level is one of the engine's four log levels.
type Level int

// Levels.
const (
	Debug Level = iota
	Info
	Warning
	Error
)

// Func is the caller-supplied logging callback.
type Func func(level Level, msg string)

var sink Func = defaultSink

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
	Prefix:          "ngfx",
})

func defaultSink(level Level, msg string) {
	switch level {
	case Debug:
		logger.Debug(msg)
	case Info:
		logger.Info(msg)
	case Warning:
		logger.Warn(msg)
	case Error:
		logger.Error(msg)
	}
}

// SetSink replaces the logging callback.
// Passing nil restores the default charmbracelet/log-backed sink.
func SetSink(f Func) {
	if f == nil {
		sink = defaultSink
		return
	}
	sink = f
}

// Debugf logs at Debug level.
func Debugf(format string, args ...any) { logf(Debug, format, args...) }

// Infof logs at Info level.
func Infof(format string, args ...any) { logf(Info, format, args...) }

// Warnf logs at Warning level.
func Warnf(format string, args ...any) { logf(Warning, format, args...) }

// Errorf logs at Error level.
func Errorf(format string, args ...any) { logf(Error, format, args...) }

func logf(level Level, format string, args ...any) {
	if len(args) == 0 {
		sink(level, format)
		return
	}
	sink(level, fmt.Sprintf(format, args...))
}
