// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"fmt"
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

func TestEventProcessMalformedPayload(t *testing.T) {
	srv := newTestService(newEmptyStore(), entitle.Entitlement{})

	_, err := srv.Events().Process(context.Background(), v1.ProviderIdentity, "evt_1", []byte("not json"))
	assert.True(t, errors.IsCode(err, code.ErrEventUnparsable))

	_, err = srv.Events().Process(context.Background(), v1.ProviderIdentity, "evt_2", []byte(`{"data":{}}`))
	assert.True(t, errors.IsCode(err, code.ErrEventUnparsable), "an event without a type is unparsable")
}

func TestEventProcessIdentityUserCreated(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	srv := newTestService(storeIns, entitle.Entitlement{})

	payload := []byte(`{
		"type": "user.created",
		"data": {"id": "idp_123", "username": "aisha", "email": "aisha@example.com", "nickname": "Aisha"}
	}`)

	event, err := srv.Events().Process(ctx, v1.ProviderIdentity, "evt_created", payload)
	require.NoError(t, err)
	assert.Equal(t, v1.EventStatusProcessed, event.Status)
	assert.Equal(t, "user.created", event.EventType)

	user, err := storeIns.Users().GetByExternalID(ctx, "idp_123", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "aisha", user.Name)
	assert.Equal(t, "aisha@example.com", user.Email)
}

func TestEventProcessDuplicateAckedWithoutRedispatch(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	srv := newTestService(storeIns, entitle.Entitlement{})

	payload := []byte(`{"type": "user.created", "data": {"id": "idp_123", "username": "aisha"}}`)

	first, err := srv.Events().Process(ctx, v1.ProviderIdentity, "evt_dup", payload)
	require.NoError(t, err)

	// The redelivery carries different data, a redispatch would apply it.
	redelivery := []byte(`{"type": "user.created", "data": {"id": "idp_123", "username": "aisha", "email": "changed@example.com"}}`)

	second, err := srv.Events().Process(ctx, v1.ProviderIdentity, "evt_dup", redelivery)
	require.NoError(t, err)
	assert.Equal(t, first.InstanceID, second.InstanceID)

	user, err := storeIns.Users().GetByExternalID(ctx, "idp_123", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Empty(t, user.Email, "duplicate delivery must not be dispatched again")
}

func TestEventProcessUnhandledTypeSkipped(t *testing.T) {
	srv := newTestService(newEmptyStore(), entitle.Entitlement{})

	event, err := srv.Events().Process(
		context.Background(),
		v1.ProviderIdentity,
		"evt_skip",
		[]byte(`{"type": "organization.created", "data": {}}`),
	)
	require.NoError(t, err)
	assert.Equal(t, v1.EventStatusSkipped, event.Status)
}

func TestEventProcessIdentityUserUpdated(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	srv := newTestService(storeIns, entitle.Entitlement{})

	seed := []byte(`{"type": "user.created", "data": {"id": "idp_9", "username": "omar", "email": "omar@old.example.com"}}`)
	_, err := srv.Events().Process(ctx, v1.ProviderIdentity, "evt_u1", seed)
	require.NoError(t, err)

	update := []byte(`{"type": "user.updated", "data": {"id": "idp_9", "email": "omar@new.example.com"}}`)
	event, err := srv.Events().Process(ctx, v1.ProviderIdentity, "evt_u2", update)
	require.NoError(t, err)
	assert.Equal(t, v1.EventStatusProcessed, event.Status)

	user, err := storeIns.Users().GetByExternalID(ctx, "idp_9", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "omar@new.example.com", user.Email)
}

func TestEventProcessIdentityUserDeleted(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	srv := newTestService(storeIns, entitle.Entitlement{})

	seed := []byte(`{"type": "user.created", "data": {"id": "idp_del", "username": "zayd"}}`)
	_, err := srv.Events().Process(ctx, v1.ProviderIdentity, "evt_d1", seed)
	require.NoError(t, err)

	deletion := []byte(`{"type": "user.deleted", "data": {"id": "idp_del"}}`)
	event, err := srv.Events().Process(ctx, v1.ProviderIdentity, "evt_d2", deletion)
	require.NoError(t, err)
	assert.Equal(t, v1.EventStatusProcessed, event.Status)

	_, err = storeIns.Users().Get(ctx, "zayd", metav1.GetOptions{})
	assert.True(t, errors.IsCode(err, code.ErrUserNotFound))

	// Redelivered deletions for unknown accounts are a no-op.
	event, err = srv.Events().Process(ctx, v1.ProviderIdentity, "evt_d3", deletion)
	require.NoError(t, err)
	assert.Equal(t, v1.EventStatusProcessed, event.Status)
}

func TestEventProcessBillingCheckoutCompleted(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	srv := newTestService(storeIns, entitle.Entitlement{})

	payload := []byte(`{
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_1",
			"customer": "cus_42",
			"subscription": "sub_42",
			"client_reference_id": "aisha"
		}}
	}`)

	event, err := srv.Events().Process(ctx, v1.ProviderBilling, "evt_b1", payload)
	require.NoError(t, err)
	assert.Equal(t, v1.EventStatusProcessed, event.Status)

	subscription, err := storeIns.Subscriptions().Get(ctx, "aisha", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "cus_42", subscription.ProviderCustomerID)
	assert.Equal(t, "sub_42", subscription.ProviderSubscriptionID)
}

func TestEventProcessBillingSubscriptionUpdated(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()

	subscription := &v1.Subscription{
		ObjectMeta:             metav1.ObjectMeta{Name: "aisha"},
		Tier:                   v1.TierBasic,
		Status:                 v1.SubscriptionStatusIncomplete,
		ProviderCustomerID:     "cus_42",
		ProviderSubscriptionID: "sub_42",
	}
	require.NoError(t, storeIns.Subscriptions().Create(ctx, subscription, metav1.CreateOptions{}))

	srv := &service{
		store: storeIns,
		billing: &stubBilling{plans: &v1.PlanList{Items: []*v1.Plan{
			{Name: "premium", Tier: v1.TierPremium, PriceID: "price_premium"},
		}}},
		entitlements: &stubEntitlements{},
	}

	periodEnd := time.Now().Add(30 * 24 * time.Hour).Unix()
	payload := []byte(fmt.Sprintf(`{
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_42",
			"customer": "cus_42",
			"status": "active",
			"current_period_end": %d,
			"items": {"data": [{"price": {"id": "price_premium"}}]}
		}}
	}`, periodEnd))

	event, err := srv.Events().Process(ctx, v1.ProviderBilling, "evt_b2", payload)
	require.NoError(t, err)
	assert.Equal(t, v1.EventStatusProcessed, event.Status)

	updated, err := storeIns.Subscriptions().Get(ctx, "aisha", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, v1.SubscriptionStatusActive, updated.Status)
	assert.Equal(t, v1.TierPremium, updated.Tier)
	assert.Equal(t, periodEnd, updated.CurrentPeriodEnd.Unix())
}

func TestEventProcessBillingPaymentFailed(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()

	subscription := &v1.Subscription{
		ObjectMeta:             metav1.ObjectMeta{Name: "aisha"},
		Tier:                   v1.TierPremium,
		Status:                 v1.SubscriptionStatusActive,
		ProviderSubscriptionID: "sub_42",
	}
	require.NoError(t, storeIns.Subscriptions().Create(ctx, subscription, metav1.CreateOptions{}))

	srv := newTestService(storeIns, entitle.Entitlement{})

	payload := []byte(`{"type": "invoice.payment_failed", "data": {"object": {"subscription": "sub_42"}}}`)

	_, err := srv.Events().Process(ctx, v1.ProviderBilling, "evt_b3", payload)
	require.NoError(t, err)

	updated, err := storeIns.Subscriptions().Get(ctx, "aisha", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, v1.SubscriptionStatusPastDue, updated.Status)
}

func TestEventProcessDispatchFailureRecorded(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	srv := newTestService(storeIns, entitle.Entitlement{})

	// A billing status event for an unknown subscription fails dispatch.
	payload := []byte(`{"type": "invoice.payment_failed", "data": {"object": {"subscription": "sub_unknown"}}}`)

	_, err := srv.Events().Process(ctx, v1.ProviderBilling, "evt_fail", payload)
	assert.True(t, errors.IsCode(err, code.ErrEventDispatch))

	event, err := storeIns.Events().Get(ctx, v1.ProviderBilling, "evt_fail", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, v1.EventStatusFailed, event.Status)
	assert.NotEmpty(t, event.Detail)
}
