// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"fmt"
	"testing"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faddlmatch/platform/internal/apiserver/entitle"
	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

func TestMatchDiscover(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()

	seedProfile(ctx, storeIns, "aisha", v1.GenderFemale)
	for i := 1; i <= 7; i++ {
		seedProfile(ctx, storeIns, fmt.Sprintf("brother%d", i), v1.GenderMale)
	}

	srv := newTestService(storeIns, entitle.Entitlement{Tier: v1.TierBasic, Active: false})

	batch, err := srv.Matches().Discover(ctx, "aisha")
	require.NoError(t, err)
	assert.Len(t, batch.Items, DailyLimitBasic)

	for _, match := range batch.Items {
		assert.Equal(t, "aisha", match.Requester)
		assert.Equal(t, v1.MatchStatusPending, match.Status)
		assert.NotEqual(t, "aisha", match.Candidate)
	}
}

func TestMatchDiscoverSameBatchOnRepeat(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()

	seedProfile(ctx, storeIns, "aisha", v1.GenderFemale)
	seedProfile(ctx, storeIns, "omar", v1.GenderMale)
	seedProfile(ctx, storeIns, "yusuf", v1.GenderMale)

	srv := newTestService(storeIns, entitle.Entitlement{Tier: v1.TierBasic, Active: true})

	first, err := srv.Matches().Discover(ctx, "aisha")
	require.NoError(t, err)
	require.Len(t, first.Items, 2)

	second, err := srv.Matches().Discover(ctx, "aisha")
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)

	stored, err := storeIns.Matches().List(ctx, "aisha", metav1.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2, "repeated discover must not create new matches")
}

func TestMatchDiscoverPremiumLimit(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()

	seedProfile(ctx, storeIns, "aisha", v1.GenderFemale)
	for i := 1; i <= 7; i++ {
		seedProfile(ctx, storeIns, fmt.Sprintf("brother%d", i), v1.GenderMale)
	}

	srv := newTestService(storeIns, entitle.Entitlement{Tier: v1.TierPremium, Active: true})

	batch, err := srv.Matches().Discover(ctx, "aisha")
	require.NoError(t, err)
	assert.Len(t, batch.Items, 7, "premium tier is not capped at the basic limit")
}

func TestMatchDecide(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()

	match := &v1.Match{
		Requester: "aisha",
		Candidate: "omar",
		Status:    v1.MatchStatusPending,
	}
	require.NoError(t, storeIns.Matches().Create(ctx, match, metav1.CreateOptions{}))

	srv := newTestService(storeIns, entitle.Entitlement{Active: true})

	updated, err := srv.Matches().Decide(ctx, "aisha", match.InstanceID, v1.DecisionAccepted)
	require.NoError(t, err)
	assert.Equal(t, v1.DecisionAccepted, updated.RequesterDecision)
	assert.Equal(t, v1.MatchStatusPending, updated.Status, "one sided accept keeps the match pending")

	updated, err = srv.Matches().Decide(ctx, "omar", match.InstanceID, v1.DecisionAccepted)
	require.NoError(t, err)
	assert.Equal(t, v1.MatchStatusMutual, updated.Status)

	conversation, err := storeIns.Messages().GetConversationByMatch(ctx, match.InstanceID, metav1.GetOptions{})
	require.NoError(t, err, "mutual match opens a conversation")
	assert.Equal(t, v1.ConversationStatusOpen, conversation.Status)
	assert.Equal(t, "aisha", conversation.ParticipantA)
	assert.Equal(t, "omar", conversation.ParticipantB)
}

func TestMatchDecideDecline(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()

	match := &v1.Match{
		Requester: "aisha",
		Candidate: "omar",
		Status:    v1.MatchStatusPending,
	}
	require.NoError(t, storeIns.Matches().Create(ctx, match, metav1.CreateOptions{}))

	srv := newTestService(storeIns, entitle.Entitlement{Active: true})

	updated, err := srv.Matches().Decide(ctx, "omar", match.InstanceID, v1.DecisionDeclined)
	require.NoError(t, err)
	assert.Equal(t, v1.MatchStatusClosed, updated.Status)

	_, err = storeIns.Messages().GetConversationByMatch(ctx, match.InstanceID, metav1.GetOptions{})
	assert.Error(t, err, "declined match must not open a conversation")
}

func TestMatchDecideGuards(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()

	match := &v1.Match{
		Requester: "aisha",
		Candidate: "omar",
		Status:    v1.MatchStatusPending,
	}
	require.NoError(t, storeIns.Matches().Create(ctx, match, metav1.CreateOptions{}))

	srv := newTestService(storeIns, entitle.Entitlement{Active: true})

	_, err := srv.Matches().Decide(ctx, "mallory", match.InstanceID, v1.DecisionAccepted)
	assert.True(t, errors.IsCode(err, code.ErrPermissionDenied))

	_, err = srv.Matches().Decide(ctx, "aisha", match.InstanceID, v1.DecisionAccepted)
	require.NoError(t, err)

	_, err = srv.Matches().Decide(ctx, "aisha", match.InstanceID, v1.DecisionDeclined)
	assert.True(t, errors.IsCode(err, code.ErrMatchStateInvalid), "a recorded decision is final")
}

func TestMatchGet(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()

	match := &v1.Match{
		Requester: "aisha",
		Candidate: "omar",
		Status:    v1.MatchStatusPending,
	}
	require.NoError(t, storeIns.Matches().Create(ctx, match, metav1.CreateOptions{}))

	srv := newTestService(storeIns, entitle.Entitlement{})

	got, err := srv.Matches().Get(ctx, "omar", match.InstanceID)
	require.NoError(t, err)
	assert.Equal(t, match.InstanceID, got.InstanceID)

	_, err = srv.Matches().Get(ctx, "mallory", match.InstanceID)
	assert.True(t, errors.IsCode(err, code.ErrPermissionDenied))
}

func TestPairScoreStable(t *testing.T) {
	a := pairScore("aisha", "omar", "2024-06-01")
	b := pairScore("aisha", "omar", "2024-06-01")
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, 0.0)
	assert.Less(t, a, 1.0)
}
