// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package watcher

import "github.com/faddlmatch/platform/internal/watcher/config"

// Run runs the specified watcher service. This should never exit.
func Run(cfg *config.Config) error {
	server, err := createWatcherServer(cfg)
	if err != nil {
		return err
	}

	return server.PrepareRun().Run()
}
