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

type events struct {
	db *gorm.DB
}

func newEvents(ds *datastore) *events {
	return &events{ds.db}
}

// Create records a webhook event. The (provider, name) pair is unique, a
// duplicate insert fails on the table's unique index.
func (e *events) Create(ctx context.Context, event *v1.WebhookEvent, opts metav1.CreateOptions) error {
	return e.db.Create(&event).Error
}

// Update updates a webhook event record.
func (e *events) Update(ctx context.Context, event *v1.WebhookEvent, opts metav1.UpdateOptions) error {
	return e.db.Save(event).Error
}

// Get return a webhook event by provider and event id.
func (e *events) Get(ctx context.Context, provider, name string, opts metav1.GetOptions) (*v1.WebhookEvent, error) {
	event := &v1.WebhookEvent{}
	err := e.db.Where("provider = ? and name = ?", provider, name).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrEventNotFound, "%s", err.Error())
		}

		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return event, nil
}

// List return all webhook events.
func (e *events) List(ctx context.Context, opts metav1.ListOptions) (*v1.WebhookEventList, error) {
	ret := &v1.WebhookEventList{}
	ol := gormutil.Unpointer(opts.Offset, opts.Limit)

	d := e.db.
		Offset(ol.Offset).
		Limit(ol.Limit).
		Order("id desc").
		Find(&ret.Items).
		Offset(-1).
		Limit(-1).
		Count(&ret.TotalCount)

	return ret, d.Error
}

// DeleteBefore removes processed events older than the given time.
func (e *events) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	d := e.db.Unscoped().
		Where("status = ? and processedAt < ?", v1.EventStatusProcessed, before).
		Delete(&v1.WebhookEvent{})
	if d.Error != nil {
		return 0, errors.WithCode(code.ErrDatabase, "%s", d.Error.Error())
	}

	return d.RowsAffected, nil
}
