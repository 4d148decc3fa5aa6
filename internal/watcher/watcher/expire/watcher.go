// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package expire lapses subscriptions whose billing period has ended,
// closes pending matches left undecided past their window and notifies
// entitlement caches.
package expire

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/marmotedu/component-base/pkg/json"

	"github.com/faddlmatch/platform/internal/apiserver/store/mysql"
	"github.com/faddlmatch/platform/internal/pkg/notification"
	"github.com/faddlmatch/platform/internal/watcher/options"
	"github.com/faddlmatch/platform/internal/watcher/watcher"
	"github.com/faddlmatch/platform/pkg/log"
	"github.com/faddlmatch/platform/pkg/storage"
)

type expireWatcher struct {
	ctx            context.Context
	mutex          *redsync.Mutex
	maxPendingDays int
}

// Run runs the watcher job.
func (ew *expireWatcher) Run() {
	if err := ew.mutex.Lock(); err != nil {
		log.L(ew.ctx).Info("expireWatcher already run.")

		return
	}

	defer func() {
		if _, err := ew.mutex.Unlock(); err != nil {
			log.L(ew.ctx).Errorf("could not release expireWatcher lock. err: %v", err)

			return
		}
	}()

	db, _ := mysql.GetMySQLFactoryOr(nil)

	staleBefore := time.Now().AddDate(0, 0, -ew.maxPendingDays)
	if closed, err := db.Matches().DeleteExpired(ew.ctx, staleBefore); err != nil {
		log.L(ew.ctx).Errorw("close stale pending matches failed", "error", err)
	} else if closed > 0 {
		log.L(ew.ctx).Infof("closed %d stale pending matches", closed)
	}

	rowsAffected, err := db.Subscriptions().ExpireLapsed(ew.ctx, time.Now())
	if err != nil {
		log.L(ew.ctx).Errorw("expire lapsed subscriptions failed", "error", err)

		return
	}

	if rowsAffected == 0 {
		return
	}

	log.L(ew.ctx).Infof("expired %d lapsed subscriptions", rowsAffected)

	// Entitlement caches re-read the store on the next lookup.
	message, _ := json.Marshal(notification.Notification{Command: notification.NoticeSubscriptionChanged})

	cacheStore := storage.RedisCluster{}
	if err := cacheStore.Publish(notification.RedisPubSubChannel, string(message)); err != nil {
		log.L(ew.ctx).Errorw("publish subscription change notification failed", "error", err)
	}
}

// Spec is parsed using the time zone of expire Cron instance as the default.
func (ew *expireWatcher) Spec() string {
	return "@every 1h"
}

// Init initializes the watcher for later execution.
func (ew *expireWatcher) Init(ctx context.Context, rs *redsync.Mutex, config interface{}) error {
	cfg, ok := config.(*options.WatcherOptions)
	if !ok {
		return watcher.ErrConfigUnavailable
	}

	*ew = expireWatcher{
		ctx:            ctx,
		mutex:          rs,
		maxPendingDays: cfg.Expire.MaxPendingDays,
	}

	return nil
}

func init() {
	watcher.Register("expire", &expireWatcher{})
}
