// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/apiserver/store"
	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
	"github.com/faddlmatch/platform/pkg/log"
)

// MessageSrv defines functions used to handle conversation and message
// requests.
type MessageSrv interface {
	ListConversations(ctx context.Context, username string, opts metav1.ListOptions) (*v1.ConversationList, error)
	ListMessages(ctx context.Context, username, conversationID string, opts metav1.ListOptions) (*v1.MessageList, error)
	Send(ctx context.Context, username, conversationID, body string) (*v1.Message, error)
}

type messageService struct {
	store        store.Factory
	entitlements EntitlementChecker
}

var _ MessageSrv = (*messageService)(nil)

func newMessages(srv *service) *messageService {
	return &messageService{store: srv.store, entitlements: srv.entitlements}
}

func (m *messageService) ListConversations(
	ctx context.Context,
	username string,
	opts metav1.ListOptions,
) (*v1.ConversationList, error) {
	return m.store.Messages().ListConversations(ctx, username, opts)
}

func (m *messageService) ListMessages(
	ctx context.Context,
	username, conversationID string,
	opts metav1.ListOptions,
) (*v1.MessageList, error) {
	conversation, err := m.store.Messages().GetConversation(ctx, conversationID, metav1.GetOptions{})
	if err != nil {
		return nil, err
	}

	if !conversation.Involves(username) {
		return nil, errors.WithCode(
			code.ErrPermissionDenied,
			"%s is not part of conversation %s",
			username,
			conversationID,
		)
	}

	return m.store.Messages().ListMessages(ctx, conversationID, opts)
}

// Send appends a message. The sender must participate, the conversation must
// be open, the sender needs an active subscription and the body is bounded.
func (m *messageService) Send(ctx context.Context, username, conversationID, body string) (*v1.Message, error) {
	if len(body) == 0 || len(body) > v1.MaxMessageLength {
		return nil, errors.WithCode(code.ErrValidation, "message body must be 1..%d characters", v1.MaxMessageLength)
	}

	conversation, err := m.store.Messages().GetConversation(ctx, conversationID, metav1.GetOptions{})
	if err != nil {
		return nil, err
	}

	if !conversation.Involves(username) {
		return nil, errors.WithCode(
			code.ErrPermissionDenied,
			"%s is not part of conversation %s",
			username,
			conversationID,
		)
	}

	if conversation.Status != v1.ConversationStatusOpen {
		return nil, errors.WithCode(code.ErrConversationClosed, "conversation %s is closed", conversationID)
	}

	ent, err := m.entitlements.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if !ent.Active {
		return nil, errors.WithCode(code.ErrSubscriptionRequired, "sending messages requires an active subscription")
	}

	message := &v1.Message{
		ConversationID: conversationID,
		Sender:         username,
		Body:           body,
	}

	if err := m.store.Messages().CreateMessage(ctx, message, metav1.CreateOptions{}); err != nil {
		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	log.L(ctx).Debugf("message %s sent in conversation %s", message.InstanceID, conversationID)

	return message, nil
}
