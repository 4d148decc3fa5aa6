// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package clean purges processed webhook events past their retention period.
package clean

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"

	"github.com/faddlmatch/platform/internal/apiserver/store/mysql"
	"github.com/faddlmatch/platform/internal/watcher/options"
	"github.com/faddlmatch/platform/internal/watcher/watcher"
	"github.com/faddlmatch/platform/pkg/log"
)

type cleanWatcher struct {
	ctx            context.Context
	mutex          *redsync.Mutex
	maxReserveDays int
}

// Run runs the watcher job.
func (cw *cleanWatcher) Run() {
	if err := cw.mutex.Lock(); err != nil {
		log.L(cw.ctx).Info("cleanWatcher already run.")

		return
	}

	defer func() {
		if _, err := cw.mutex.Unlock(); err != nil {
			log.L(cw.ctx).Errorf("could not release cleanWatcher lock. err: %v", err)

			return
		}
	}()

	db, _ := mysql.GetMySQLFactoryOr(nil)

	before := time.Now().AddDate(0, 0, -cw.maxReserveDays)

	rowsAffected, err := db.Events().DeleteBefore(cw.ctx, before)
	if err != nil {
		log.L(cw.ctx).Errorw("clean processed webhook events failed", "error", err)

		return
	}

	log.L(cw.ctx).Debugf("clean processed webhook events succ, %d rows affected", rowsAffected)
}

// Spec is parsed using the time zone of clean Cron instance as the default.
func (cw *cleanWatcher) Spec() string {
	return "@every 24h"
}

// Init initializes the watcher for later execution.
func (cw *cleanWatcher) Init(ctx context.Context, rs *redsync.Mutex, config interface{}) error {
	cfg, ok := config.(*options.WatcherOptions)
	if !ok {
		return watcher.ErrConfigUnavailable
	}

	*cw = cleanWatcher{
		ctx:            ctx,
		mutex:          rs,
		maxReserveDays: cfg.Clean.MaxReserveDays,
	}

	return nil
}

func init() {
	watcher.Register("clean", &cleanWatcher{})
}
