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

// EventStore defines the webhook event storage interface. Event names are the
// provider event IDs, unique per provider.
type EventStore interface {
	Create(ctx context.Context, event *v1.WebhookEvent, opts metav1.CreateOptions) error
	Update(ctx context.Context, event *v1.WebhookEvent, opts metav1.UpdateOptions) error
	Get(ctx context.Context, provider, name string, opts metav1.GetOptions) (*v1.WebhookEvent, error)
	List(ctx context.Context, opts metav1.ListOptions) (*v1.WebhookEventList, error)
	// DeleteBefore removes processed events older than the given time. It
	// returns the number of rows removed.
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}
