// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package mysql

import (
	"context"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"
	"gorm.io/gorm"

	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
	"github.com/faddlmatch/platform/pkg/util/gormutil"
)

type messages struct {
	db *gorm.DB
}

func newMessages(ds *datastore) *messages {
	return &messages{ds.db}
}

// CreateConversation creates a new conversation.
func (m *messages) CreateConversation(
	ctx context.Context,
	conversation *v1.Conversation,
	opts metav1.CreateOptions,
) error {
	return m.db.Create(&conversation).Error
}

// UpdateConversation updates a conversation.
func (m *messages) UpdateConversation(
	ctx context.Context,
	conversation *v1.Conversation,
	opts metav1.UpdateOptions,
) error {
	return m.db.Save(conversation).Error
}

// GetConversation return a conversation by instance id.
func (m *messages) GetConversation(
	ctx context.Context,
	instanceID string,
	opts metav1.GetOptions,
) (*v1.Conversation, error) {
	conversation := &v1.Conversation{}
	err := m.db.Where("instanceID = ?", instanceID).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrConversationNotFound, "%s", err.Error())
		}

		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return conversation, nil
}

// GetConversationByMatch return the conversation opened for a match.
func (m *messages) GetConversationByMatch(
	ctx context.Context,
	matchID string,
	opts metav1.GetOptions,
) (*v1.Conversation, error) {
	conversation := &v1.Conversation{}
	err := m.db.Where("matchID = ?", matchID).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrConversationNotFound, "%s", err.Error())
		}

		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return conversation, nil
}

// ListConversations return the conversations the given user participates in.
func (m *messages) ListConversations(
	ctx context.Context,
	username string,
	opts metav1.ListOptions,
) (*v1.ConversationList, error) {
	ret := &v1.ConversationList{}
	ol := gormutil.Unpointer(opts.Offset, opts.Limit)

	d := m.db.Where("participantA = ? or participantB = ?", username, username).
		Offset(ol.Offset).
		Limit(ol.Limit).
		Order("id desc").
		Find(&ret.Items).
		Offset(-1).
		Limit(-1).
		Count(&ret.TotalCount)

	return ret, d.Error
}

// CreateMessage appends a message to a conversation.
func (m *messages) CreateMessage(ctx context.Context, message *v1.Message, opts metav1.CreateOptions) error {
	return m.db.Create(&message).Error
}

// ListMessages return the messages of a conversation in send order.
func (m *messages) ListMessages(
	ctx context.Context,
	conversationID string,
	opts metav1.ListOptions,
) (*v1.MessageList, error) {
	ret := &v1.MessageList{}
	ol := gormutil.Unpointer(opts.Offset, opts.Limit)

	d := m.db.Where("conversationID = ?", conversationID).
		Offset(ol.Offset).
		Limit(ol.Limit).
		Order("id asc").
		Find(&ret.Items).
		Offset(-1).
		Limit(-1).
		Count(&ret.TotalCount)

	return ret, d.Error
}
