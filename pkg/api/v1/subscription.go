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

// Subscription tiers.
const (
	TierBasic   = "basic"
	TierPremium = "premium"
)

// Subscription statuses, following the payment provider's lifecycle.
const (
	SubscriptionStatusActive     = "active"
	SubscriptionStatusPastDue    = "past_due"
	SubscriptionStatusCanceled   = "canceled"
	SubscriptionStatusExpired    = "expired"
	SubscriptionStatusIncomplete = "incomplete"
)

// Subscription mirrors the payment provider subscription of a user. Name is
// the owning username. ProviderSubscriptionID/ProviderCustomerID are the
// provider-side identifiers webhook events carry.
type Subscription struct {
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Tier                   string    `json:"tier" gorm:"column:tier"`
	Status                 string    `json:"status" gorm:"column:status"`
	ProviderCustomerID     string    `json:"providerCustomerID" gorm:"column:providerCustomerID"`
	ProviderSubscriptionID string    `json:"providerSubscriptionID" gorm:"column:providerSubscriptionID"`
	CurrentPeriodEnd       time.Time `json:"currentPeriodEnd" gorm:"column:currentPeriodEnd"`
	CancelAtPeriodEnd      bool      `json:"cancelAtPeriodEnd" gorm:"column:cancelAtPeriodEnd"`
}

// SubscriptionList is the whole list of all subscriptions which have been
// stored in storage.
type SubscriptionList struct {
	metav1.ListMeta `json:",inline"`

	Items []*Subscription `json:"items"`
}

// TableName maps to mysql table name.
func (s *Subscription) TableName() string {
	return "subscription"
}

// Active reports whether the subscription currently entitles its holder.
func (s *Subscription) Active(at time.Time) bool {
	if s.Status != SubscriptionStatusActive && s.Status != SubscriptionStatusPastDue {
		return false
	}

	return s.CurrentPeriodEnd.IsZero() || s.CurrentPeriodEnd.After(at)
}

// AfterCreate run after create database record.
func (s *Subscription) AfterCreate(tx *gorm.DB) error {
	s.InstanceID = idutil.GetInstanceID(s.ID, "sub-")

	return tx.Save(s).Error
}

// Plan describes a purchasable subscription plan. The catalog is static
// configuration, not a stored resource.
type Plan struct {
	Name            string `json:"name"`
	Tier            string `json:"tier"`
	PriceID         string `json:"priceID"`
	MonthlyPriceUSD int    `json:"monthlyPriceUSD"`
	DailyMatchLimit int    `json:"dailyMatchLimit"`
}

// PlanList holds the plan catalog.
type PlanList struct {
	Items []*Plan `json:"items"`
}
