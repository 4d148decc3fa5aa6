// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// WebhookOptions configures verification of inbound webhook deliveries from
// the identity provider.
type WebhookOptions struct {
	// SigningSecret is the shared secret in the provider's `whsec_<base64>`
	// form.
	SigningSecret string        `json:"-"             mapstructure:"signing-secret"`
	Tolerance     time.Duration `json:"tolerance"     mapstructure:"tolerance"`
	MaxBodyBytes  int64         `json:"max-body-bytes" mapstructure:"max-body-bytes"`
	RateLimit     float64       `json:"rate-limit"    mapstructure:"rate-limit"`
	RateBurst     int           `json:"rate-burst"    mapstructure:"rate-burst"`
}

// NewWebhookOptions creates a WebhookOptions object with default parameters.
func NewWebhookOptions() *WebhookOptions {
	return &WebhookOptions{
		Tolerance:    5 * time.Minute,
		MaxBodyBytes: 64 * 1024,
		RateLimit:    20,
		RateBurst:    40,
	}
}

// Validate verifies flags passed to WebhookOptions.
func (o *WebhookOptions) Validate() []error {
	var errs []error

	if o.SigningSecret == "" {
		errs = append(errs, fmt.Errorf("--webhook.signing-secret is required"))
	} else if !strings.HasPrefix(o.SigningSecret, "whsec_") {
		errs = append(errs, fmt.Errorf("--webhook.signing-secret must start with `whsec_`"))
	}
	if o.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("--webhook.tolerance must be positive"))
	}
	if o.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("--webhook.max-body-bytes must be positive"))
	}

	return errs
}

// AddFlags adds flags related to webhook ingestion for a specific APIServer
// to the specified FlagSet.
func (o *WebhookOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.SigningSecret, "webhook.signing-secret", o.SigningSecret, ""+
		"Shared secret used to verify identity provider webhook signatures (whsec_ prefixed).")

	fs.DurationVar(&o.Tolerance, "webhook.tolerance", o.Tolerance, ""+
		"Maximum allowed age (and future skew) of a webhook timestamp before the delivery is rejected.")

	fs.Int64Var(&o.MaxBodyBytes, "webhook.max-body-bytes", o.MaxBodyBytes, ""+
		"Maximum accepted webhook payload size in bytes.")

	fs.Float64Var(&o.RateLimit, "webhook.rate-limit", o.RateLimit, ""+
		"Sustained webhook deliveries accepted per second per client IP.")

	fs.IntVar(&o.RateBurst, "webhook.rate-burst", o.RateBurst, ""+
		"Burst size of the per-IP webhook rate limiter.")
}
