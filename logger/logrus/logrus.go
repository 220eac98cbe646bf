// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logrus is the logrus provider for the logger package. Its a wrapper for https://github.com/sirupsen/logrus.
// The logrus logger can be configured by the exported Instance field.
// If a file name is given, the output is written to stdout and a rotating log file (lumberjack).
package logrus

import (
	"io"
	"os"

	"github.com/patrickascher/datagrid/logger"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options for the logrus provider.
type Options struct {
	// File to log into additionally. Empty means stdout only.
	File string
	// MaxSize in megabytes before the file gets rotated.
	MaxSize int
	// MaxBackups of rotated files.
	MaxBackups int
	// MaxAge in days of rotated files.
	MaxAge int
	// Compress rotated files.
	Compress bool
	// JSON formatter instead of the text formatter.
	JSON bool
}

// New creates a new logrus provider.
func New(opts ...Options) *provider {
	log := logrus.New()
	log.SetLevel(logrus.TraceLevel)

	if len(opts) > 0 {
		opt := opts[0]
		if opt.JSON {
			log.SetFormatter(&logrus.JSONFormatter{})
		}
		if opt.File != "" {
			log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
				Filename:   opt.File,
				MaxSize:    opt.MaxSize,
				MaxBackups: opt.MaxBackups,
				MaxAge:     opt.MaxAge,
				Compress:   opt.Compress,
			}))
		}
	}

	return &provider{Instance: log}
}

type provider struct {
	Instance *logrus.Logger
}

// Log satisfies the logger.Provider interface.
func (p *provider) Log(entry logger.Entry) {
	e := p.Instance.WithFields(entry.Fields.Map()).WithTime(entry.Timestamp)
	switch entry.Level {
	case logger.TRACE:
		e.Trace(entry.Message)
	case logger.DEBUG:
		e.Debug(entry.Message)
	case logger.INFO:
		e.Info(entry.Message)
	case logger.WARNING:
		e.Warning(entry.Message)
	case logger.ERROR:
		e.Error(entry.Message)
	case logger.PANIC:
		e.Panic(entry.Message)
	}
}
