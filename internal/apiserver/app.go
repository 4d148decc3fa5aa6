// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package apiserver does all the work necessary to create a faddlmatch
// APIServer.
package apiserver

import (
	"github.com/faddlmatch/platform/internal/apiserver/config"
	"github.com/faddlmatch/platform/internal/apiserver/options"
	"github.com/faddlmatch/platform/pkg/app"
	"github.com/faddlmatch/platform/pkg/log"
)

const commandDesc = `The FaddlMatch API server validates and configures data
for the api objects which include users, profiles, matches, conversations and
subscriptions. The API Server services REST operations, verifies and ingests
identity and billing webhooks, and keeps subscription entitlements current.`

// NewApp creates an App object with default parameters.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("FaddlMatch API Server",
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
