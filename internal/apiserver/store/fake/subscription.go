// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package fake

import (
	"context"
	"fmt"
	"time"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

type subscriptions struct {
	ds *datastore
}

func newSubscriptions(ds *datastore) *subscriptions {
	return &subscriptions{ds: ds}
}

func (s *subscriptions) Create(ctx context.Context, subscription *v1.Subscription, opts metav1.CreateOptions) error {
	s.ds.Lock()
	defer s.ds.Unlock()

	if len(s.ds.subscriptions) > 0 {
		subscription.ID = s.ds.subscriptions[len(s.ds.subscriptions)-1].ID + 1
	} else {
		subscription.ID = 1
	}
	if subscription.InstanceID == "" {
		subscription.InstanceID = fmt.Sprintf("sub-%d", subscription.ID)
	}
	s.ds.subscriptions = append(s.ds.subscriptions, subscription)

	return nil
}

func (s *subscriptions) Update(ctx context.Context, subscription *v1.Subscription, opts metav1.UpdateOptions) error {
	s.ds.Lock()
	defer s.ds.Unlock()

	for i, stored := range s.ds.subscriptions {
		if stored.Name == subscription.Name {
			s.ds.subscriptions[i] = subscription

			return nil
		}
	}

	return errors.WithCode(code.ErrSubscriptionNotFound, "record not found")
}

func (s *subscriptions) Delete(ctx context.Context, username string, opts metav1.DeleteOptions) error {
	s.ds.Lock()
	defer s.ds.Unlock()

	for i, stored := range s.ds.subscriptions {
		if stored.Name == username {
			s.ds.subscriptions = append(s.ds.subscriptions[:i], s.ds.subscriptions[i+1:]...)

			return nil
		}
	}

	return errors.WithCode(code.ErrSubscriptionNotFound, "record not found")
}

func (s *subscriptions) Get(ctx context.Context, username string, opts metav1.GetOptions) (*v1.Subscription, error) {
	s.ds.RLock()
	defer s.ds.RUnlock()

	for _, stored := range s.ds.subscriptions {
		if stored.Name == username {
			return stored, nil
		}
	}

	return nil, errors.WithCode(code.ErrSubscriptionNotFound, "record not found")
}

func (s *subscriptions) GetByProviderSubscriptionID(
	ctx context.Context,
	id string,
	opts metav1.GetOptions,
) (*v1.Subscription, error) {
	s.ds.RLock()
	defer s.ds.RUnlock()

	for _, stored := range s.ds.subscriptions {
		if stored.ProviderSubscriptionID == id {
			return stored, nil
		}
	}

	return nil, errors.WithCode(code.ErrSubscriptionNotFound, "record not found")
}

func (s *subscriptions) GetByProviderCustomerID(
	ctx context.Context,
	id string,
	opts metav1.GetOptions,
) (*v1.Subscription, error) {
	s.ds.RLock()
	defer s.ds.RUnlock()

	for _, stored := range s.ds.subscriptions {
		if stored.ProviderCustomerID == id {
			return stored, nil
		}
	}

	return nil, errors.WithCode(code.ErrSubscriptionNotFound, "record not found")
}

func (s *subscriptions) List(ctx context.Context, opts metav1.ListOptions) (*v1.SubscriptionList, error) {
	s.ds.RLock()
	defer s.ds.RUnlock()

	return &v1.SubscriptionList{
		ListMeta: metav1.ListMeta{TotalCount: int64(len(s.ds.subscriptions))},
		Items:    s.ds.subscriptions,
	}, nil
}

func (s *subscriptions) ExpireLapsed(ctx context.Context, before time.Time) (int64, error) {
	s.ds.Lock()
	defer s.ds.Unlock()

	var expired int64
	for _, stored := range s.ds.subscriptions {
		if stored.Status == v1.SubscriptionStatusActive &&
			!stored.CurrentPeriodEnd.IsZero() &&
			stored.CurrentPeriodEnd.Before(before) {
			stored.Status = v1.SubscriptionStatusExpired
			stored.Tier = v1.TierBasic
			expired++
		}
	}

	return expired, nil
}
