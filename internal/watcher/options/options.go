// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package options contains flags and options for initializing the watcher
// service.
package options

import (
	cliflag "github.com/marmotedu/component-base/pkg/cli/flag"
	"github.com/marmotedu/component-base/pkg/json"
	"github.com/spf13/pflag"

	genericoptions "github.com/faddlmatch/platform/internal/pkg/options"
	"github.com/faddlmatch/platform/pkg/log"
)

// CleanOptions configures the processed event purge job.
type CleanOptions struct {
	MaxReserveDays int `json:"max-reserve-days" mapstructure:"max-reserve-days"`
}

// ExpireOptions configures the subscription and match expiry job.
type ExpireOptions struct {
	MaxPendingDays int `json:"max-pending-days" mapstructure:"max-pending-days"`
}

// WatcherOptions holds per job configuration.
type WatcherOptions struct {
	Clean  CleanOptions  `json:"clean"  mapstructure:"clean"`
	Expire ExpireOptions `json:"expire" mapstructure:"expire"`
}

// AddFlags adds flags related to the watcher jobs to the specified FlagSet.
func (o *WatcherOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.Clean.MaxReserveDays, "watcher.clean.max-reserve-days", o.Clean.MaxReserveDays,
		"Processed webhook events older than this many days are purged.")

	fs.IntVar(&o.Expire.MaxPendingDays, "watcher.expire.max-pending-days", o.Expire.MaxPendingDays,
		"Pending matches left undecided for this many days are closed.")
}

// Options runs the watcher service.
type Options struct {
	MySQLOptions   *genericoptions.MySQLOptions `json:"mysql"   mapstructure:"mysql"`
	RedisOptions   *genericoptions.RedisOptions `json:"redis"   mapstructure:"redis"`
	WatcherOptions *WatcherOptions              `json:"watcher" mapstructure:"watcher"`
	Log            *log.Options                 `json:"log"     mapstructure:"log"`
}

// NewOptions creates a new Options object with default parameters.
func NewOptions() *Options {
	return &Options{
		MySQLOptions:   genericoptions.NewMySQLOptions(),
		RedisOptions:   genericoptions.NewRedisOptions(),
		WatcherOptions: &WatcherOptions{
			Clean:  CleanOptions{MaxReserveDays: 30},
			Expire: ExpireOptions{MaxPendingDays: 7},
		},
		Log:            log.NewOptions(),
	}
}

// Flags returns flags for a specific watcher by section name.
func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.MySQLOptions.AddFlags(fss.FlagSet("mysql"))
	o.RedisOptions.AddFlags(fss.FlagSet("redis"))
	o.WatcherOptions.AddFlags(fss.FlagSet("watcher"))
	o.Log.AddFlags(fss.FlagSet("logs"))

	return fss
}

// Validate checks Options and return a slice of found errs.
func (o *Options) Validate() []error {
	var errs []error

	errs = append(errs, o.MySQLOptions.Validate()...)
	errs = append(errs, o.RedisOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)

	return errs
}

// Complete set default Options.
func (o *Options) Complete() error {
	return nil
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}
