// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package cronlog adapts the platform logger to the cron.Logger interface.
package cronlog

import (
	"fmt"

	"go.uber.org/zap"
)

type logger struct {
	zapLogger *zap.SugaredLogger
}

// NewLogger returns a cron logger backed by the given sugared logger.
func NewLogger(zapLogger *zap.SugaredLogger) logger {
	return logger{zapLogger: zapLogger}
}

func (l logger) Info(msg string, args ...interface{}) {
	l.zapLogger.Infow(msg, args...)
}

func (l logger) Error(err error, msg string, args ...interface{}) {
	l.zapLogger.Errorw(fmt.Sprintf(msg, args...), "error", err.Error())
}

func (l logger) Flush() {
	_ = l.zapLogger.Sync()
}
