// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// BillingOptions configures the payment provider client and verification of
// its webhook deliveries.
type BillingOptions struct {
	APIBase        string        `json:"api-base"        mapstructure:"api-base"`
	SecretKey      string        `json:"-"               mapstructure:"secret-key"`
	EndpointSecret string        `json:"-"               mapstructure:"endpoint-secret"`
	Timeout        time.Duration `json:"timeout"         mapstructure:"timeout"`
	Tolerance      time.Duration `json:"tolerance"       mapstructure:"tolerance"`
	BasicPriceID   string        `json:"basic-price-id"   mapstructure:"basic-price-id"`
	PremiumPriceID string        `json:"premium-price-id" mapstructure:"premium-price-id"`
}

// NewBillingOptions creates a BillingOptions object with default parameters.
func NewBillingOptions() *BillingOptions {
	return &BillingOptions{
		APIBase:   "https://api.stripe.com",
		Timeout:   10 * time.Second,
		Tolerance: 5 * time.Minute,
	}
}

// Validate verifies flags passed to BillingOptions.
func (o *BillingOptions) Validate() []error {
	var errs []error

	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("--billing.timeout must be positive"))
	}
	if o.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("--billing.tolerance must be positive"))
	}

	return errs
}

// AddFlags adds flags related to the payment provider for a specific
// APIServer to the specified FlagSet.
func (o *BillingOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.APIBase, "billing.api-base", o.APIBase, ""+
		"Base URL of the payment provider API.")

	fs.StringVar(&o.SecretKey, "billing.secret-key", o.SecretKey, ""+
		"API secret key used for outbound payment provider requests.")

	fs.StringVar(&o.EndpointSecret, "billing.endpoint-secret", o.EndpointSecret, ""+
		"Endpoint secret used to verify payment provider webhook signatures.")

	fs.DurationVar(&o.Timeout, "billing.timeout", o.Timeout, ""+
		"Timeout of outbound payment provider requests.")

	fs.DurationVar(&o.Tolerance, "billing.tolerance", o.Tolerance, ""+
		"Maximum allowed age of a billing webhook timestamp before the delivery is rejected.")

	fs.StringVar(&o.BasicPriceID, "billing.basic-price-id", o.BasicPriceID, ""+
		"Provider price id of the basic plan.")

	fs.StringVar(&o.PremiumPriceID, "billing.premium-price-id", o.PremiumPriceID, ""+
		"Provider price id of the premium plan.")
}
