// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package watcher provides the registry the background jobs register
// themselves into.
package watcher

import (
	"context"
	"sync"

	"github.com/go-redsync/redsync/v4"
	"github.com/marmotedu/errors"
	"github.com/robfig/cron/v3"
)

// ErrConfigUnavailable defines the error when the watcher configuration has
// an unexpected type.
var ErrConfigUnavailable = errors.New("config unavailable")

var (
	mu       sync.Mutex
	watchers = map[string]IWatcher{}
)

// IWatcher is a cron job with an initializer. Each watcher holds its own
// distributed mutex so only one instance in the cluster runs it.
type IWatcher interface {
	Init(ctx context.Context, rs *redsync.Mutex, config interface{}) error
	Spec() string
	cron.Job
}

// Register registers a watcher under the given name. Registering two watchers
// under one name is a programmer error.
func Register(name string, watcher IWatcher) {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := watchers[name]; ok {
		panic("watcher " + name + " registered twice")
	}

	watchers[name] = watcher
}

// ListWatchers returns the registered watchers.
func ListWatchers() map[string]IWatcher {
	mu.Lock()
	defer mu.Unlock()

	return watchers
}
