// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package fake

import (
	"context"
	"fmt"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

type messages struct {
	ds *datastore
}

func newMessages(ds *datastore) *messages {
	return &messages{ds: ds}
}

func (m *messages) CreateConversation(
	ctx context.Context,
	conversation *v1.Conversation,
	opts metav1.CreateOptions,
) error {
	m.ds.Lock()
	defer m.ds.Unlock()

	if len(m.ds.conversations) > 0 {
		conversation.ID = m.ds.conversations[len(m.ds.conversations)-1].ID + 1
	} else {
		conversation.ID = 1
	}
	if conversation.InstanceID == "" {
		conversation.InstanceID = fmt.Sprintf("conv-%d", conversation.ID)
	}
	m.ds.conversations = append(m.ds.conversations, conversation)

	return nil
}

func (m *messages) UpdateConversation(
	ctx context.Context,
	conversation *v1.Conversation,
	opts metav1.UpdateOptions,
) error {
	m.ds.Lock()
	defer m.ds.Unlock()

	for i, stored := range m.ds.conversations {
		if stored.InstanceID == conversation.InstanceID {
			m.ds.conversations[i] = conversation

			return nil
		}
	}

	return errors.WithCode(code.ErrConversationNotFound, "record not found")
}

func (m *messages) GetConversation(
	ctx context.Context,
	instanceID string,
	opts metav1.GetOptions,
) (*v1.Conversation, error) {
	m.ds.RLock()
	defer m.ds.RUnlock()

	for _, stored := range m.ds.conversations {
		if stored.InstanceID == instanceID {
			return stored, nil
		}
	}

	return nil, errors.WithCode(code.ErrConversationNotFound, "record not found")
}

func (m *messages) GetConversationByMatch(
	ctx context.Context,
	matchID string,
	opts metav1.GetOptions,
) (*v1.Conversation, error) {
	m.ds.RLock()
	defer m.ds.RUnlock()

	for _, stored := range m.ds.conversations {
		if stored.MatchID == matchID {
			return stored, nil
		}
	}

	return nil, errors.WithCode(code.ErrConversationNotFound, "record not found")
}

func (m *messages) ListConversations(
	ctx context.Context,
	username string,
	opts metav1.ListOptions,
) (*v1.ConversationList, error) {
	m.ds.RLock()
	defer m.ds.RUnlock()

	ret := &v1.ConversationList{}
	for _, stored := range m.ds.conversations {
		if stored.Involves(username) {
			ret.Items = append(ret.Items, stored)
		}
	}
	ret.TotalCount = int64(len(ret.Items))

	return ret, nil
}

func (m *messages) CreateMessage(ctx context.Context, message *v1.Message, opts metav1.CreateOptions) error {
	m.ds.Lock()
	defer m.ds.Unlock()

	if len(m.ds.messages) > 0 {
		message.ID = m.ds.messages[len(m.ds.messages)-1].ID + 1
	} else {
		message.ID = 1
	}
	if message.InstanceID == "" {
		message.InstanceID = fmt.Sprintf("msg-%d", message.ID)
	}
	m.ds.messages = append(m.ds.messages, message)

	return nil
}

func (m *messages) ListMessages(
	ctx context.Context,
	conversationID string,
	opts metav1.ListOptions,
) (*v1.MessageList, error) {
	m.ds.RLock()
	defer m.ds.RUnlock()

	ret := &v1.MessageList{}
	for _, stored := range m.ds.messages {
		if stored.ConversationID == conversationID {
			ret.Items = append(ret.Items, stored)
		}
	}
	ret.TotalCount = int64(len(ret.Items))

	return ret, nil
}
