// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"testing"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faddlmatch/platform/internal/apiserver/entitle"
	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

func TestUserDeleteCascade(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	billing := &stubBilling{}
	srv := &service{store: storeIns, billing: billing, entitlements: &stubEntitlements{}}

	user := &v1.User{ObjectMeta: metav1.ObjectMeta{Name: "aisha"}, Password: "Secret123"}
	require.NoError(t, storeIns.Users().Create(ctx, user, metav1.CreateOptions{}))
	seedProfile(ctx, storeIns, "aisha", v1.GenderFemale)

	match := &v1.Match{Requester: "aisha", Candidate: "omar", Status: v1.MatchStatusPending}
	require.NoError(t, storeIns.Matches().Create(ctx, match, metav1.CreateOptions{}))

	subscription := &v1.Subscription{
		ObjectMeta:             metav1.ObjectMeta{Name: "aisha"},
		Tier:                   v1.TierPremium,
		Status:                 v1.SubscriptionStatusActive,
		ProviderSubscriptionID: "sub_1",
	}
	require.NoError(t, storeIns.Subscriptions().Create(ctx, subscription, metav1.CreateOptions{}))

	require.NoError(t, srv.Users().Delete(ctx, "aisha", metav1.DeleteOptions{}))

	_, err := storeIns.Users().Get(ctx, "aisha", metav1.GetOptions{})
	assert.True(t, errors.IsCode(err, code.ErrUserNotFound))

	_, err = storeIns.Profiles().Get(ctx, "aisha", metav1.GetOptions{})
	assert.True(t, errors.IsCode(err, code.ErrProfileNotFound))

	closed, err := storeIns.Matches().Get(ctx, match.InstanceID, metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, v1.MatchStatusClosed, closed.Status)

	_, err = storeIns.Subscriptions().Get(ctx, "aisha", metav1.GetOptions{})
	assert.True(t, errors.IsCode(err, code.ErrSubscriptionNotFound))

	assert.Equal(t, []string{"sub_1"}, billing.canceled, "provider side cancellation is requested")
}

func TestUserDeleteCollection(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	srv := newTestService(storeIns, entitle.Entitlement{})

	for _, name := range []string{"user1", "user2", "user3"} {
		require.NoError(t, storeIns.Users().Create(
			ctx,
			&v1.User{ObjectMeta: metav1.ObjectMeta{Name: name}},
			metav1.CreateOptions{},
		))
	}

	require.NoError(t, srv.Users().DeleteCollection(ctx, []string{"user1", "user3"}, metav1.DeleteOptions{}))

	remaining, err := storeIns.Users().List(ctx, metav1.ListOptions{})
	require.NoError(t, err)
	require.Len(t, remaining.Items, 1)
	assert.Equal(t, "user2", remaining.Items[0].Name)
}
