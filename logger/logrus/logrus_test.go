// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logrus_test

import (
	"testing"

	"github.com/patrickascher/datagrid/logger"
	"github.com/patrickascher/datagrid/logger/logrus"
	"github.com/stretchr/testify/assert"
)

type mockWriter struct {
	messages []string
}

func (w *mockWriter) Write(p []byte) (n int, err error) {
	w.messages = append(w.messages, string(p))
	return len(p), nil
}

// TestProvider_Log tests all levels incl. panic through the manager.
func TestProvider_Log(t *testing.T) {
	asserts := assert.New(t)
	w := &mockWriter{}

	prov := logrus.New()
	prov.Instance.Out = w
	log := logger.New(prov)
	log.SetLogLevel(logger.TRACE)

	log.WithFields(logger.Fields{"grid": "employees"}).Trace("Msg")
	log.WithFields(logger.Fields{"grid": "employees"}).Debug("Msg")
	log.WithFields(logger.Fields{"grid": "employees"}).Info("Msg")
	log.WithFields(logger.Fields{"grid": "employees"}).Warning("Msg")
	log.WithFields(logger.Fields{"grid": "employees"}).Error("Msg")
	asserts.Panics(func() { log.WithFields(logger.Fields{"grid": "employees"}).Panic("Msg") })
	asserts.Equal(6, len(w.messages))
	asserts.Contains(w.messages[0], "grid=employees")
}
