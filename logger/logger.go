// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logger provides an interface for logging. It wraps existing go loggers with that interface,
// so the log provider can be changed without touching the grid engine.
// Log level, fields and time duration can be added.
package logger

import (
	"fmt"
	"strings"
	"time"
)

// Error messages.
var (
	ErrLevel = "logger: unknown level %s"
)

// Level - the higher the more critical
const (
	TRACE Level = iota - 1
	DEBUG
	INFO
	WARNING
	ERROR
	PANIC
)

// Level type.
type Level int32

// String converts the level code.
func (lvl Level) String() string {
	switch lvl {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case PANIC:
		return "PANIC"
	default:
		return "unknown level"
	}
}

// ParseLevel converts a level name (case insensitive) into a Level.
func ParseLevel(s string) (Level, error) {
	for lvl := TRACE; lvl <= PANIC; lvl++ {
		if strings.EqualFold(lvl.String(), s) {
			return lvl, nil
		}
	}
	return DEBUG, fmt.Errorf(ErrLevel, s)
}

// Provider interface.
type Provider interface {
	Log(Entry)
}

// Manager interface.
type Manager interface {
	Trace(string)
	Debug(string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
	Panic(msg string)

	New() Manager
	WithFields(Fields) Manager
	WithTimer() Manager

	SetLogLevel(Level)
}

// Fields can be used to add more details to a log message.
type Fields map[string]interface{}

// Map converts the Fields to a map[string]interface{}.
func (f Fields) Map() map[string]interface{} {
	return f
}

// Entry holds all information for the log message.
type Entry struct {
	Level     Level
	Timestamp time.Time
	Message   string
	Fields    Fields
}

// manager holds the provider and fields information.
type manager struct {
	provider Provider
	fields   Fields
	timer    time.Time
	lvl      Level
}

// New returns a Manager for the given provider.
// Default log level is DEBUG.
func New(provider Provider) Manager {
	return &manager{provider: provider}
}

// SetLogLevel defines the minimum level which gets logged.
func (m *manager) SetLogLevel(lvl Level) {
	m.lvl = lvl
}

// New creates a copy of the manager.
func (m manager) New() Manager {
	return &manager{lvl: m.lvl, provider: m.provider, fields: m.fields}
}

// WithTimer will add the field "duration" to the next Entry.
func (m manager) WithTimer() Manager {
	instance := m.New().(*manager)
	instance.timer = time.Now()
	return instance
}

// WithFields creates a new Manager with the given fields.
func (m manager) WithFields(fields Fields) Manager {
	instance := m.New().(*manager)
	instance.fields = fields
	if !m.timer.IsZero() {
		instance.timer = m.timer
	}
	return instance
}

// Trace log.
func (m manager) Trace(msg string) { m.log(TRACE, msg) }

// Debug log.
func (m manager) Debug(msg string) { m.log(DEBUG, msg) }

// Info log.
func (m manager) Info(msg string) { m.log(INFO, msg) }

// Warning log.
func (m manager) Warning(msg string) { m.log(WARNING, msg) }

// Error log.
func (m manager) Error(msg string) { m.log(ERROR, msg) }

// Panic log.
func (m manager) Panic(msg string) { m.log(PANIC, msg) }

func (m manager) log(lvl Level, msg string) {
	if lvl >= m.lvl {
		m.provider.Log(m.newEntry(msg, lvl))
	}
}

// newEntry creates the Entry for the provider.
func (m manager) newEntry(msg string, lvl Level) Entry {
	e := Entry{Message: msg, Level: lvl, Timestamp: time.Now()}

	e.Fields = make(Fields, len(m.fields)+1)
	for k, v := range m.fields {
		e.Fields[k] = v
	}

	if !m.timer.IsZero() {
		e.Fields["duration"] = time.Since(m.timer)
	}

	return e
}
