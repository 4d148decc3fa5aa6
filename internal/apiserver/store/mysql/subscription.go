// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package mysql

import (
	"context"
	"time"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"
	"gorm.io/gorm"

	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
	"github.com/faddlmatch/platform/pkg/util/gormutil"
)

type subscriptions struct {
	db *gorm.DB
}

func newSubscriptions(ds *datastore) *subscriptions {
	return &subscriptions{ds.db}
}

// Create creates a new subscription record.
func (s *subscriptions) Create(ctx context.Context, subscription *v1.Subscription, opts metav1.CreateOptions) error {
	return s.db.Create(&subscription).Error
}

// Update updates a subscription record.
func (s *subscriptions) Update(ctx context.Context, subscription *v1.Subscription, opts metav1.UpdateOptions) error {
	return s.db.Save(subscription).Error
}

// Delete deletes the subscription of the given user.
func (s *subscriptions) Delete(ctx context.Context, username string, opts metav1.DeleteOptions) error {
	if opts.Unscoped {
		s.db = s.db.Unscoped()
	}

	err := s.db.Where("name = ?", username).Delete(&v1.Subscription{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return nil
}

// Get return the subscription of the given user.
func (s *subscriptions) Get(ctx context.Context, username string, opts metav1.GetOptions) (*v1.Subscription, error) {
	subscription := &v1.Subscription{}
	err := s.db.Where("name = ?", username).First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrSubscriptionNotFound, "%s", err.Error())
		}

		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return subscription, nil
}

// GetByProviderSubscriptionID return a subscription by the provider
// subscription id.
func (s *subscriptions) GetByProviderSubscriptionID(
	ctx context.Context,
	id string,
	opts metav1.GetOptions,
) (*v1.Subscription, error) {
	subscription := &v1.Subscription{}
	err := s.db.Where("providerSubscriptionID = ?", id).First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrSubscriptionNotFound, "%s", err.Error())
		}

		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return subscription, nil
}

// GetByProviderCustomerID return a subscription by the provider customer id.
func (s *subscriptions) GetByProviderCustomerID(
	ctx context.Context,
	id string,
	opts metav1.GetOptions,
) (*v1.Subscription, error) {
	subscription := &v1.Subscription{}
	err := s.db.Where("providerCustomerID = ?", id).First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrSubscriptionNotFound, "%s", err.Error())
		}

		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return subscription, nil
}

// List return all subscriptions.
func (s *subscriptions) List(ctx context.Context, opts metav1.ListOptions) (*v1.SubscriptionList, error) {
	ret := &v1.SubscriptionList{}
	ol := gormutil.Unpointer(opts.Offset, opts.Limit)

	d := s.db.
		Offset(ol.Offset).
		Limit(ol.Limit).
		Order("id desc").
		Find(&ret.Items).
		Offset(-1).
		Limit(-1).
		Count(&ret.TotalCount)

	return ret, d.Error
}

// ExpireLapsed marks active subscriptions whose period ended before the given
// time as expired and drops their tier back to basic.
func (s *subscriptions) ExpireLapsed(ctx context.Context, before time.Time) (int64, error) {
	d := s.db.Model(&v1.Subscription{}).
		Where("status = ? and currentPeriodEnd != ? and currentPeriodEnd < ?",
			v1.SubscriptionStatusActive, time.Time{}, before).
		Updates(map[string]interface{}{
			"status": v1.SubscriptionStatusExpired,
			"tier":   v1.TierBasic,
		})
	if d.Error != nil {
		return 0, errors.WithCode(code.ErrDatabase, "%s", d.Error.Error())
	}

	return d.RowsAffected, nil
}
