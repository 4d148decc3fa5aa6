// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package store

import (
	"context"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"

	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

// MessageStore defines the conversation and message storage interface.
type MessageStore interface {
	CreateConversation(ctx context.Context, conversation *v1.Conversation, opts metav1.CreateOptions) error
	UpdateConversation(ctx context.Context, conversation *v1.Conversation, opts metav1.UpdateOptions) error
	GetConversation(ctx context.Context, instanceID string, opts metav1.GetOptions) (*v1.Conversation, error)
	GetConversationByMatch(ctx context.Context, matchID string, opts metav1.GetOptions) (*v1.Conversation, error)
	ListConversations(ctx context.Context, username string, opts metav1.ListOptions) (*v1.ConversationList, error)

	CreateMessage(ctx context.Context, message *v1.Message, opts metav1.CreateOptions) error
	ListMessages(ctx context.Context, conversationID string, opts metav1.ListOptions) (*v1.MessageList, error)
}
