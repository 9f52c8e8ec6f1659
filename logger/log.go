/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Tablekit Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logger wraps logrus with a key-value argument style so call
// sites stay compact.
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is responsible for logging messages from code.
type Logger interface {
	Debug(string, ...interface{})
	Info(string, ...interface{})
	Error(string, ...interface{})
	WithFields(...interface{}) Logger
}

// SetLevel sets the level of logging
func SetLevel(l string) {
	switch strings.ToLower(l) {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput sets the output for all loggers.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// Discard configures the logger to discard all logs.
func Discard() {
	logrus.SetOutput(io.Discard)
}

// New returns a new Logger instance namespaced under ns.
func New(ns string, args ...interface{}) Logger {
	f := fields(args...)
	f["ns"] = ns
	return &logger{logrus.WithFields(f)}
}

type logger struct {
	log *logrus.Entry
}

// Debug logs a debug message.
//
// After the first argument, arguments are key-value pairs which are
// written as structured fields:
//
//	log.Debug("loading table", "name", name, "rows", n)
func (l *logger) Debug(msg string, args ...interface{}) {
	l.log.WithFields(fields(args...)).Debug(msg)
}

// Info logs an info message
func (l *logger) Info(msg string, args ...interface{}) {
	l.log.WithFields(fields(args...)).Info(msg)
}

// Error logs an error message
//
// Error has a two-argument version that can be used as a shortcut:
//
//	log.Error("load failed", err)
func (l *logger) Error(msg string, args ...interface{}) {
	var f logrus.Fields
	if len(args) == 1 {
		f = fields("error", args[0])
	} else {
		f = fields(args...)
	}
	l.log.WithFields(f).Error(msg)
}

// WithFields returns a new Logger instance with the given fields added to
// all log messages.
func (l *logger) WithFields(args ...interface{}) Logger {
	return &logger{l.log.WithFields(fields(args...))}
}

func fields(args ...interface{}) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)
	if len(args) == 1 {
		f["unknown"] = args[0]
		return f
	}
	for i := 0; i+1 < len(args); i += 2 {
		k, ok := args[i].(string)
		if !ok {
			f["unknown"] = args[i]
			continue
		}
		f[k] = args[i+1]
	}
	if len(args) > 1 && len(args)%2 != 0 {
		f["unknown"] = args[len(args)-1]
	}
	return f
}
