// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package pumps holds the back ends activity records are fanned out to.
package pumps

import (
	"context"

	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/pump/analytics"
)

// Pump defines the interface for all analytics back-ends.
type Pump interface {
	GetName() string
	New() Pump
	Init(interface{}) error
	WriteData(context.Context, []interface{}) error
	SetFilters(analytics.AnalyticsFilters)
	GetFilters() analytics.AnalyticsFilters
	SetTimeout(timeout int)
	GetTimeout() int
	SetOmitDetailedRecording(bool)
	GetOmitDetailedRecording() bool
}

var availablePumps map[string]Pump

//nolint:gochecknoinits // pump back ends register themselves here.
func init() {
	availablePumps = map[string]Pump{
		"csv":   &CSVPump{},
		"mongo": &MongoPump{},
	}
}

// GetPumpByName returns the pump instance by given name.
func GetPumpByName(name string) (Pump, error) {
	if pump, ok := availablePumps[name]; ok && pump != nil {
		return pump, nil
	}

	return nil, errors.New(name + " Not found")
}
