// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"testing"
	"time"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faddlmatch/platform/internal/apiserver/entitle"
	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

func TestProfileCreate(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	srv := newTestService(storeIns, entitle.Entitlement{})

	profile := &v1.Profile{
		ObjectMeta: metav1.ObjectMeta{Name: "aisha"},
		Gender:     v1.GenderFemale,
		BirthDate:  time.Date(1995, time.January, 1, 0, 0, 0, 0, time.UTC),
		City:       "Kuala Lumpur",
		Country:    "Malaysia",
		// A client supplied moderation status must not stick.
		ModerationStatus: v1.ModerationApproved,
	}

	require.NoError(t, srv.Profiles().Create(ctx, profile, metav1.CreateOptions{}))
	assert.Equal(t, v1.ModerationPending, profile.ModerationStatus)
	assert.Equal(t, v1.PhotoVisibilityMatches, profile.PhotoVisibility)
}

func TestProfileCreateUnderage(t *testing.T) {
	ctx := context.Background()
	srv := newTestService(newEmptyStore(), entitle.Entitlement{})

	profile := &v1.Profile{
		ObjectMeta: metav1.ObjectMeta{Name: "aisha"},
		Gender:     v1.GenderFemale,
		BirthDate:  time.Now().AddDate(-17, 0, 0),
	}

	err := srv.Profiles().Create(ctx, profile, metav1.CreateOptions{})
	assert.True(t, errors.IsCode(err, code.ErrUnderage))
}

func TestProfileUpdateUnderage(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	profile := seedProfile(ctx, storeIns, "aisha", v1.GenderFemale)

	srv := newTestService(storeIns, entitle.Entitlement{})

	profile.BirthDate = time.Now().AddDate(-15, 0, 0)
	err := srv.Profiles().Update(ctx, profile, metav1.UpdateOptions{})
	assert.True(t, errors.IsCode(err, code.ErrUnderage))
}
