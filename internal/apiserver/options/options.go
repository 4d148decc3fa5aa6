// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package options contains flags and options for initializing an apiserver.
package options

import (
	cliflag "github.com/marmotedu/component-base/pkg/cli/flag"
	"github.com/marmotedu/component-base/pkg/json"
	"github.com/marmotedu/component-base/pkg/util/idutil"

	"github.com/faddlmatch/platform/internal/apiserver/analytics"
	genericoptions "github.com/faddlmatch/platform/internal/pkg/options"
	"github.com/faddlmatch/platform/internal/pkg/server"
	"github.com/faddlmatch/platform/pkg/log"
)

// Options runs a fm-apiserver.
type Options struct {
	GenericServerRunOptions *genericoptions.ServerRunOptions       `json:"server"    mapstructure:"server"`
	InsecureServing         *genericoptions.InsecureServingOptions `json:"insecure"  mapstructure:"insecure"`
	SecureServing           *genericoptions.SecureServingOptions   `json:"secure"    mapstructure:"secure"`
	MySQLOptions            *genericoptions.MySQLOptions           `json:"mysql"     mapstructure:"mysql"`
	RedisOptions            *genericoptions.RedisOptions           `json:"redis"     mapstructure:"redis"`
	JwtOptions              *genericoptions.JwtOptions             `json:"jwt"       mapstructure:"jwt"`
	WebhookOptions          *genericoptions.WebhookOptions         `json:"webhook"   mapstructure:"webhook"`
	BillingOptions          *genericoptions.BillingOptions         `json:"billing"   mapstructure:"billing"`
	AnalyticsOptions        *analytics.AnalyticsOptions            `json:"analytics" mapstructure:"analytics"`
	FeatureOptions          *genericoptions.FeatureOptions         `json:"feature"   mapstructure:"feature"`
	Log                     *log.Options                           `json:"log"       mapstructure:"log"`
}

// NewOptions creates a new Options object with default parameters.
func NewOptions() *Options {
	o := Options{
		GenericServerRunOptions: genericoptions.NewServerRunOptions(),
		InsecureServing:         genericoptions.NewInsecureServingOptions(),
		SecureServing:           genericoptions.NewSecureServingOptions(),
		MySQLOptions:            genericoptions.NewMySQLOptions(),
		RedisOptions:            genericoptions.NewRedisOptions(),
		JwtOptions:              genericoptions.NewJwtOptions(),
		WebhookOptions:          genericoptions.NewWebhookOptions(),
		BillingOptions:          genericoptions.NewBillingOptions(),
		AnalyticsOptions:        analytics.NewAnalyticsOptions(),
		FeatureOptions:          genericoptions.NewFeatureOptions(),
		Log:                     log.NewOptions(),
	}

	return &o
}

// ApplyTo applies the run options to the method receiver and returns self.
func (o *Options) ApplyTo(c *server.Config) error {
	return nil
}

// Flags returns flags for a specific APIServer by section name.
func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.GenericServerRunOptions.AddFlags(fss.FlagSet("generic"))
	o.JwtOptions.AddFlags(fss.FlagSet("jwt"))
	o.MySQLOptions.AddFlags(fss.FlagSet("mysql"))
	o.RedisOptions.AddFlags(fss.FlagSet("redis"))
	o.WebhookOptions.AddFlags(fss.FlagSet("webhook"))
	o.BillingOptions.AddFlags(fss.FlagSet("billing"))
	o.AnalyticsOptions.AddFlags(fss.FlagSet("analytics"))
	o.FeatureOptions.AddFlags(fss.FlagSet("features"))
	o.InsecureServing.AddFlags(fss.FlagSet("insecure serving"))
	o.SecureServing.AddFlags(fss.FlagSet("secure serving"))
	o.Log.AddFlags(fss.FlagSet("logs"))

	return fss
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}

// Complete set default Options.
func (o *Options) Complete() error {
	if o.JwtOptions.Key == "" {
		o.JwtOptions.Key = idutil.NewSecretKey()
	}

	return o.SecureServing.Complete()
}
