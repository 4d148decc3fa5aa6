// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package config holds the running configuration of the fm-apiserver.
package config

import "github.com/faddlmatch/platform/internal/apiserver/options"

// Config is the running configuration structure of the fm-apiserver.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions creates a running configuration instance based
// on a given fm-apiserver command line or configuration file option.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{opts}, nil
}
