// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldFilter(t *testing.T) {
	record := AnalyticsRecord{Username: "aisha", Kind: "login"}

	tests := []struct {
		name     string
		filters  AnalyticsFilters
		filtered bool
	}{
		{"no filters", AnalyticsFilters{}, false},
		{"username allowed", AnalyticsFilters{Usernames: []string{"aisha"}}, false},
		{"username not allowed", AnalyticsFilters{Usernames: []string{"omar"}}, true},
		{"kind allowed", AnalyticsFilters{Kinds: []string{"login"}}, false},
		{"kind not allowed", AnalyticsFilters{Kinds: []string{"webhook"}}, true},
		{"username skipped", AnalyticsFilters{SkippedUsernames: []string{"aisha"}}, true},
		{"kind skipped", AnalyticsFilters{SkippedKinds: []string{"login"}}, true},
		{"skip wins over allow", AnalyticsFilters{Usernames: []string{"aisha"}, SkippedKinds: []string{"login"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.filtered, tt.filters.ShouldFilter(record))
		})
	}
}

func TestHasFilter(t *testing.T) {
	assert.False(t, AnalyticsFilters{}.HasFilter())
	assert.True(t, AnalyticsFilters{Kinds: []string{"login"}}.HasFilter())
	assert.True(t, AnalyticsFilters{SkippedUsernames: []string{"aisha"}}.HasFilter())
}
