// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package pumps

import "github.com/faddlmatch/platform/internal/pump/analytics"

// CommonPumpConfig defines the common options shared by all pumps.
type CommonPumpConfig struct {
	filters               analytics.AnalyticsFilters
	timeout               int
	omitDetailedRecording bool
}

// SetFilters sets the filters of a pump.
func (p *CommonPumpConfig) SetFilters(filters analytics.AnalyticsFilters) {
	p.filters = filters
}

// GetFilters gets the filters of a pump.
func (p *CommonPumpConfig) GetFilters() analytics.AnalyticsFilters {
	return p.filters
}

// SetTimeout sets the timeout of a pump.
func (p *CommonPumpConfig) SetTimeout(timeout int) {
	p.timeout = timeout
}

// GetTimeout gets the timeout of a pump.
func (p *CommonPumpConfig) GetTimeout() int {
	return p.timeout
}

// SetOmitDetailedRecording sets the detail omitting flag of a pump.
func (p *CommonPumpConfig) SetOmitDetailedRecording(omitDetailedRecording bool) {
	p.omitDetailedRecording = omitDetailedRecording
}

// GetOmitDetailedRecording gets the detail omitting flag of a pump.
func (p *CommonPumpConfig) GetOmitDetailedRecording() bool {
	return p.omitDetailedRecording
}
