// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package watcher runs the periodic background jobs of the platform.
package watcher

import (
	"github.com/faddlmatch/platform/internal/watcher/config"
	"github.com/faddlmatch/platform/internal/watcher/options"
	"github.com/faddlmatch/platform/pkg/app"
	"github.com/faddlmatch/platform/pkg/log"
)

const commandDesc = `The FaddlMatch watcher runs the periodic background jobs
of the platform: expiring lapsed subscriptions and purging processed webhook
events. Each job is guarded by a distributed lock so only one instance in the
cluster runs it.`

// NewApp creates an App object with default parameters.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("FaddlMatch Watcher",
		basename,
		app.WithOptions(opts),
		app.WithDescription(commandDesc),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)

	return application
}

func run(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		log.Init(opts.Log)
		defer log.Flush()

		cfg, err := config.CreateConfigFromOptions(opts)
		if err != nil {
			return err
		}

		return Run(cfg)
	}
}
