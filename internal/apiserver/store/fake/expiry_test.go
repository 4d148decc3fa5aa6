// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package fake

import (
	"context"
	"testing"
	"time"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

func TestSubscriptionExpireLapsed(t *testing.T) {
	ctx := context.Background()
	storeIns := NewFakeStore()

	lapsed := &v1.Subscription{
		ObjectMeta:       metav1.ObjectMeta{Name: "aisha"},
		Tier:             v1.TierPremium,
		Status:           v1.SubscriptionStatusActive,
		CurrentPeriodEnd: time.Now().Add(-time.Hour),
	}
	current := &v1.Subscription{
		ObjectMeta:       metav1.ObjectMeta{Name: "omar"},
		Tier:             v1.TierPremium,
		Status:           v1.SubscriptionStatusActive,
		CurrentPeriodEnd: time.Now().Add(time.Hour),
	}
	require.NoError(t, storeIns.Subscriptions().Create(ctx, lapsed, metav1.CreateOptions{}))
	require.NoError(t, storeIns.Subscriptions().Create(ctx, current, metav1.CreateOptions{}))

	expired, err := storeIns.Subscriptions().ExpireLapsed(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	got, err := storeIns.Subscriptions().Get(ctx, "aisha", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, v1.SubscriptionStatusExpired, got.Status)
	assert.Equal(t, v1.TierBasic, got.Tier, "lapsed subscription drops back to the basic tier")

	kept, err := storeIns.Subscriptions().Get(ctx, "omar", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, v1.SubscriptionStatusActive, kept.Status)
	assert.Equal(t, v1.TierPremium, kept.Tier)
}

func TestMatchDeleteExpired(t *testing.T) {
	ctx := context.Background()
	storeIns := NewFakeStore()

	stale := &v1.Match{
		Requester: "aisha",
		Candidate: "omar",
		Status:    v1.MatchStatusPending,
		BatchDate: time.Now().AddDate(0, 0, -10),
	}
	fresh := &v1.Match{
		Requester: "aisha",
		Candidate: "yusuf",
		Status:    v1.MatchStatusPending,
		BatchDate: time.Now(),
	}
	mutual := &v1.Match{
		Requester: "zainab",
		Candidate: "omar",
		Status:    v1.MatchStatusMutual,
		BatchDate: time.Now().AddDate(0, 0, -10),
	}
	for _, match := range []*v1.Match{stale, fresh, mutual} {
		require.NoError(t, storeIns.Matches().Create(ctx, match, metav1.CreateOptions{}))
	}

	closed, err := storeIns.Matches().DeleteExpired(ctx, time.Now().AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed)

	got, err := storeIns.Matches().Get(ctx, stale.InstanceID, metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, v1.MatchStatusClosed, got.Status)

	got, err = storeIns.Matches().Get(ctx, fresh.InstanceID, metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, v1.MatchStatusPending, got.Status)

	got, err = storeIns.Matches().Get(ctx, mutual.InstanceID, metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, v1.MatchStatusMutual, got.Status)
}
