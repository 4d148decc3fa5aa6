// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"testing"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faddlmatch/platform/internal/apiserver/entitle"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

func seedSubscription(t *testing.T, srv *service) *v1.Subscription {
	t.Helper()

	subscription := &v1.Subscription{
		ObjectMeta:             metav1.ObjectMeta{Name: "aisha"},
		Tier:                   v1.TierPremium,
		Status:                 v1.SubscriptionStatusActive,
		ProviderCustomerID:     "cus_1",
		ProviderSubscriptionID: "sub_1",
	}
	require.NoError(t, srv.store.Subscriptions().Create(context.Background(), subscription, metav1.CreateOptions{}))

	return subscription
}

func TestSubscriptionCancelAndReactivate(t *testing.T) {
	ctx := context.Background()
	srv := newTestService(newEmptyStore(), entitle.Entitlement{})
	seedSubscription(t, srv)

	canceled, err := srv.Subscriptions().Cancel(ctx, "aisha")
	require.NoError(t, err)
	assert.True(t, canceled.CancelAtPeriodEnd)

	// Cancelling twice is a no-op.
	canceled, err = srv.Subscriptions().Cancel(ctx, "aisha")
	require.NoError(t, err)
	assert.True(t, canceled.CancelAtPeriodEnd)

	reactivated, err := srv.Subscriptions().Reactivate(ctx, "aisha")
	require.NoError(t, err)
	assert.False(t, reactivated.CancelAtPeriodEnd)
}

func TestSubscriptionCheckout(t *testing.T) {
	ctx := context.Background()
	srv := &service{
		store: newEmptyStore(),
		billing: &stubBilling{plans: &v1.PlanList{Items: []*v1.Plan{
			{Name: "premium", Tier: v1.TierPremium, PriceID: "price_premium"},
		}}},
		entitlements: &stubEntitlements{},
	}

	url, err := srv.Subscriptions().Checkout(ctx, "aisha", v1.TierPremium, "https://app/success", "https://app/cancel")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}
