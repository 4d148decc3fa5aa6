// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package profile

import (
	"testing"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/assert"

	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

func TestApplyUpdate(t *testing.T) {
	profile := &v1.Profile{
		City:            "Kuala Lumpur",
		Country:         "Malaysia",
		Bio:             "old bio",
		PhotoVisibility: v1.PhotoVisibilityMatches,
	}

	applyUpdate(profile, &UpdateRequest{
		City:            pointer.ToString("Penang"),
		Bio:             pointer.ToString("new bio"),
		PhotoVisibility: pointer.ToString(v1.PhotoVisibilityGuardian),
	})

	assert.Equal(t, "Penang", profile.City)
	assert.Equal(t, "Malaysia", profile.Country, "omitted fields keep their value")
	assert.Equal(t, "new bio", profile.Bio)
	assert.Equal(t, v1.PhotoVisibilityGuardian, profile.PhotoVisibility)
}

func TestApplyUpdateEmptyRequest(t *testing.T) {
	birthDate := time.Date(1995, time.January, 1, 0, 0, 0, 0, time.UTC)
	profile := &v1.Profile{
		City:      "Kuala Lumpur",
		BirthDate: birthDate,
	}

	applyUpdate(profile, &UpdateRequest{})

	assert.Equal(t, "Kuala Lumpur", profile.City)
	assert.Equal(t, birthDate, profile.BirthDate)
}

func TestApplyUpdateClearsWithEmptyString(t *testing.T) {
	profile := &v1.Profile{Bio: "something"}

	applyUpdate(profile, &UpdateRequest{Bio: pointer.ToString("")})

	assert.Empty(t, profile.Bio, "an explicit empty string clears the field")
}
