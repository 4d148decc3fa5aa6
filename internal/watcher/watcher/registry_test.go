// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package watcher

import (
	"context"
	"testing"

	"github.com/go-redsync/redsync/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopWatcher struct{}

func (w *noopWatcher) Init(ctx context.Context, rs *redsync.Mutex, config interface{}) error {
	return nil
}

func (w *noopWatcher) Spec() string { return "@every 1m" }

func (w *noopWatcher) Run() {}

func TestRegister(t *testing.T) {
	Register("noop", &noopWatcher{})

	registered := ListWatchers()
	require.Contains(t, registered, "noop")
	assert.Equal(t, "@every 1m", registered["noop"].Spec())

	assert.Panics(t, func() {
		Register("noop", &noopWatcher{})
	})
}
