// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package analytics

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// AnalyticsOptions contains configuration items related to activity recording.
type AnalyticsOptions struct {
	PoolSize              int           `json:"pool-size"               mapstructure:"pool-size"`
	RecordsBufferSize     uint64        `json:"records-buffer-size"     mapstructure:"records-buffer-size"`
	FlushInterval         uint64        `json:"flush-interval"          mapstructure:"flush-interval"`
	StorageExpirationTime time.Duration `json:"storage-expiration-time" mapstructure:"storage-expiration-time"`
	Enable                bool          `json:"enable"                  mapstructure:"enable"`
}

// NewAnalyticsOptions creates an AnalyticsOptions object with default
// parameters.
func NewAnalyticsOptions() *AnalyticsOptions {
	return &AnalyticsOptions{
		Enable:                true,
		PoolSize:              50,
		RecordsBufferSize:     1000,
		FlushInterval:         200,
		StorageExpirationTime: time.Duration(24) * time.Hour,
	}
}

// Validate verifies flags passed to AnalyticsOptions.
func (o *AnalyticsOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	if o.Enable && (o.FlushInterval < 1 || o.FlushInterval > 1000) {
		errs = append(errs, fmt.Errorf("--analytics.flush-interval %v must be between 1 and 1000", o.FlushInterval))
	}

	return errs
}

// AddFlags adds flags related to activity recording for a specific server to
// the specified FlagSet.
func (o *AnalyticsOptions) AddFlags(fs *pflag.FlagSet) {
	if fs == nil {
		return
	}

	fs.BoolVar(&o.Enable, "analytics.enable", o.Enable, ""+
		"This sets the recording of activity hits to a redis list, for the pump to drain.")

	fs.IntVar(&o.PoolSize, "analytics.pool-size", o.PoolSize, ""+
		"Specify number of pool workers.")

	fs.Uint64Var(&o.RecordsBufferSize, "analytics.records-buffer-size", o.RecordsBufferSize, ""+
		"Specifies buffer size for pool workers (size of each pipeline operation).")

	fs.Uint64Var(&o.FlushInterval, "analytics.flush-interval", o.FlushInterval, ""+
		"Specifies buffer flush interval in milliseconds, between 1 and 1000.")

	fs.DurationVar(&o.StorageExpirationTime, "analytics.storage-expiration-time", o.StorageExpirationTime, ""+
		"Specifies the time-to-live for records on the redis list, before the pump drains them.")
}
