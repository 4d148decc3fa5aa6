// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"strings"
	"testing"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faddlmatch/platform/internal/apiserver/entitle"
	"github.com/faddlmatch/platform/internal/apiserver/store"
	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

func seedConversation(t *testing.T, storeIns store.Factory, status string) *v1.Conversation {
	t.Helper()

	conversation := &v1.Conversation{
		MatchID:      "match-1",
		ParticipantA: "aisha",
		ParticipantB: "omar",
		Status:       status,
	}
	require.NoError(t, storeIns.Messages().CreateConversation(context.Background(), conversation, metav1.CreateOptions{}))

	return conversation
}

func TestMessageSend(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	conversation := seedConversation(t, storeIns, v1.ConversationStatusOpen)

	srv := newTestService(storeIns, entitle.Entitlement{Tier: v1.TierBasic, Active: true})

	message, err := srv.Messages().Send(ctx, "aisha", conversation.InstanceID, "Assalamu alaikum")
	require.NoError(t, err)
	assert.Equal(t, "aisha", message.Sender)
	assert.Equal(t, conversation.InstanceID, message.ConversationID)

	listed, err := srv.Messages().ListMessages(ctx, "omar", conversation.InstanceID, metav1.ListOptions{})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, "Assalamu alaikum", listed.Items[0].Body)
}

func TestMessageSendBodyBounds(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	conversation := seedConversation(t, storeIns, v1.ConversationStatusOpen)

	srv := newTestService(storeIns, entitle.Entitlement{Active: true})

	_, err := srv.Messages().Send(ctx, "aisha", conversation.InstanceID, "")
	assert.True(t, errors.IsCode(err, code.ErrValidation))

	_, err = srv.Messages().Send(ctx, "aisha", conversation.InstanceID, strings.Repeat("a", v1.MaxMessageLength+1))
	assert.True(t, errors.IsCode(err, code.ErrValidation))
}

func TestMessageSendRequiresParticipant(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	conversation := seedConversation(t, storeIns, v1.ConversationStatusOpen)

	srv := newTestService(storeIns, entitle.Entitlement{Active: true})

	_, err := srv.Messages().Send(ctx, "mallory", conversation.InstanceID, "hello")
	assert.True(t, errors.IsCode(err, code.ErrPermissionDenied))
}

func TestMessageSendClosedConversation(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	conversation := seedConversation(t, storeIns, v1.ConversationStatusClosed)

	srv := newTestService(storeIns, entitle.Entitlement{Active: true})

	_, err := srv.Messages().Send(ctx, "aisha", conversation.InstanceID, "hello")
	assert.True(t, errors.IsCode(err, code.ErrConversationClosed))
}

func TestMessageSendRequiresActiveSubscription(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	conversation := seedConversation(t, storeIns, v1.ConversationStatusOpen)

	srv := newTestService(storeIns, entitle.Entitlement{Tier: v1.TierBasic, Active: false})

	_, err := srv.Messages().Send(ctx, "aisha", conversation.InstanceID, "hello")
	assert.True(t, errors.IsCode(err, code.ErrSubscriptionRequired))
}

func TestMessageListMessagesRequiresParticipant(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	conversation := seedConversation(t, storeIns, v1.ConversationStatusOpen)

	srv := newTestService(storeIns, entitle.Entitlement{Active: true})

	_, err := srv.Messages().ListMessages(ctx, "mallory", conversation.InstanceID, metav1.ListOptions{})
	assert.True(t, errors.IsCode(err, code.ErrPermissionDenied))
}

func TestMessageListConversations(t *testing.T) {
	ctx := context.Background()
	storeIns := newEmptyStore()
	seedConversation(t, storeIns, v1.ConversationStatusOpen)

	srv := newTestService(storeIns, entitle.Entitlement{Active: true})

	listed, err := srv.Messages().ListConversations(ctx, "aisha", metav1.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, listed.Items, 1)

	listed, err = srv.Messages().ListConversations(ctx, "mallory", metav1.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, listed.Items)
}
