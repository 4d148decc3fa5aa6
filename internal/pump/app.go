// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package pump drains activity records from redis and fans them out to the
// configured back ends.
package pump

import (
	genericapiserver "github.com/faddlmatch/platform/internal/pkg/server"
	"github.com/faddlmatch/platform/internal/pump/config"
	"github.com/faddlmatch/platform/internal/pump/options"
	"github.com/faddlmatch/platform/pkg/app"
	"github.com/faddlmatch/platform/pkg/log"
)

const commandDesc = `The FaddlMatch pump periodically drains the activity
records the api server reports to redis, decodes them and writes them to the
configured analytics back ends (csv, mongodb).`

// NewApp creates an App object with default parameters.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("FaddlMatch Pump",
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

		stopCh := genericapiserver.SetupSignalHandler()

		return Run(cfg, stopCh)
	}
}
