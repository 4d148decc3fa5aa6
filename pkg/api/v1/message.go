// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/component-base/pkg/util/idutil"
	"gorm.io/gorm"
)

// Conversation statuses.
const (
	ConversationStatusOpen   = "open"
	ConversationStatusClosed = "closed"
)

// MaxMessageLength bounds a single message body.
const MaxMessageLength = 2000

// Conversation is the messaging channel opened when a match turns mutual.
// GuardianVisible marks channels a guardian may read; delivery of that view
// happens outside this service.
type Conversation struct {
	metav1.ObjectMeta `json:"metadata,omitempty"`

	MatchID         string `json:"matchID" gorm:"column:matchID" validate:"required"`
	ParticipantA    string `json:"participantA" gorm:"column:participantA" validate:"required"`
	ParticipantB    string `json:"participantB" gorm:"column:participantB" validate:"required"`
	GuardianVisible bool   `json:"guardianVisible" gorm:"column:guardianVisible"`
	Status          string `json:"status" gorm:"column:status"`
}

// ConversationList is the whole list of all conversations which have been
// stored in storage.
type ConversationList struct {
	metav1.ListMeta `json:",inline"`

	Items []*Conversation `json:"items"`
}

// TableName maps to mysql table name.
func (c *Conversation) TableName() string {
	return "conversation"
}

// Involves reports whether username participates in the conversation.
func (c *Conversation) Involves(username string) bool {
	return c.ParticipantA == username || c.ParticipantB == username
}

// AfterCreate run after create database record.
func (c *Conversation) AfterCreate(tx *gorm.DB) error {
	c.InstanceID = idutil.GetInstanceID(c.ID, "conv-")

	return tx.Save(c).Error
}

// Message is a single message inside a conversation.
type Message struct {
	metav1.ObjectMeta `json:"metadata,omitempty"`

	ConversationID string `json:"conversationID" gorm:"column:conversationID" validate:"required"`
	Sender         string `json:"sender" gorm:"column:sender" validate:"required"`
	Body           string `json:"body" gorm:"column:body" validate:"required,min=1,max=2000"`
}

// MessageList is the whole list of all messages which have been stored in
// storage.
type MessageList struct {
	metav1.ListMeta `json:",inline"`

	Items []*Message `json:"items"`
}

// TableName maps to mysql table name.
func (m *Message) TableName() string {
	return "message"
}

// AfterCreate run after create database record.
func (m *Message) AfterCreate(tx *gorm.DB) error {
	m.InstanceID = idutil.GetInstanceID(m.ID, "msg-")

	return tx.Save(m).Error
}
