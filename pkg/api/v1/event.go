// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"time"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/component-base/pkg/util/idutil"
	"gorm.io/gorm"
)

// Webhook providers this service ingests events from.
const (
	ProviderIdentity = "identity"
	ProviderBilling  = "billing"
)

// Webhook event processing statuses.
const (
	EventStatusProcessed = "processed"
	EventStatusSkipped   = "skipped"
	EventStatusFailed    = "failed"
)

// WebhookEvent records one verified webhook delivery. Name holds the
// provider event ID and is unique per provider, which is what makes
// redelivery idempotent.
type WebhookEvent struct {
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Provider    string    `json:"provider" gorm:"column:provider" validate:"required"`
	EventType   string    `json:"eventType" gorm:"column:eventType" validate:"required"`
	Payload     string    `json:"payload,omitempty" gorm:"column:payload"`
	Status      string    `json:"status" gorm:"column:status"`
	Detail      string    `json:"detail,omitempty" gorm:"column:detail"`
	ProcessedAt time.Time `json:"processedAt" gorm:"column:processedAt"`
}

// WebhookEventList is the whole list of all webhook events which have been
// stored in storage.
type WebhookEventList struct {
	metav1.ListMeta `json:",inline"`

	Items []*WebhookEvent `json:"items"`
}

// TableName maps to mysql table name.
func (e *WebhookEvent) TableName() string {
	return "webhook_event"
}

// AfterCreate run after create database record.
func (e *WebhookEvent) AfterCreate(tx *gorm.DB) error {
	e.InstanceID = idutil.GetInstanceID(e.ID, "evt-")

	return tx.Save(e).Error
}
