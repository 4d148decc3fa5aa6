// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package analytics

import "github.com/novalagung/gubrak"

// AnalyticsFilters determines which records a pump accepts.
type AnalyticsFilters struct {
	Usernames        []string `json:"usernames"         mapstructure:"usernames"`
	Kinds            []string `json:"kinds"             mapstructure:"kinds"`
	SkippedUsernames []string `json:"skip_usernames"    mapstructure:"skip_usernames"`
	SkippedKinds     []string `json:"skip_kinds"        mapstructure:"skip_kinds"`
}

// ShouldFilter returns true if the record does not pass the filters.
func (filters AnalyticsFilters) ShouldFilter(record AnalyticsRecord) bool {
	switch {
	case len(filters.SkippedUsernames) > 0 && stringInSlice(record.Username, filters.SkippedUsernames):
		return true
	case len(filters.SkippedKinds) > 0 && stringInSlice(record.Kind, filters.SkippedKinds):
		return true
	case len(filters.Usernames) > 0 && !stringInSlice(record.Username, filters.Usernames):
		return true
	case len(filters.Kinds) > 0 && !stringInSlice(record.Kind, filters.Kinds):
		return true
	}

	return false
}

// HasFilter returns true if any filter is set.
func (filters AnalyticsFilters) HasFilter() bool {
	return len(filters.SkippedUsernames) > 0 ||
		len(filters.SkippedKinds) > 0 ||
		len(filters.Usernames) > 0 ||
		len(filters.Kinds) > 0
}

func stringInSlice(value string, list []string) bool {
	included, _ := gubrak.Includes(list, value)

	return included
}
