// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"time"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"

	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

// SubscriptionStore defines the subscription storage interface.
type SubscriptionStore interface {
	Create(ctx context.Context, subscription *v1.Subscription, opts metav1.CreateOptions) error
	Update(ctx context.Context, subscription *v1.Subscription, opts metav1.UpdateOptions) error
	Delete(ctx context.Context, username string, opts metav1.DeleteOptions) error
	Get(ctx context.Context, username string, opts metav1.GetOptions) (*v1.Subscription, error)
	GetByProviderSubscriptionID(ctx context.Context, id string, opts metav1.GetOptions) (*v1.Subscription, error)
	GetByProviderCustomerID(ctx context.Context, id string, opts metav1.GetOptions) (*v1.Subscription, error)
	List(ctx context.Context, opts metav1.ListOptions) (*v1.SubscriptionList, error)
	// ExpireLapsed marks active subscriptions whose period ended before the
	// given time as expired. It returns the number of rows changed.
	ExpireLapsed(ctx context.Context, before time.Time) (int64, error)
}
