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

type events struct {
	ds *datastore
}

func newEvents(ds *datastore) *events {
	return &events{ds: ds}
}

func (e *events) Create(ctx context.Context, event *v1.WebhookEvent, opts metav1.CreateOptions) error {
	e.ds.Lock()
	defer e.ds.Unlock()

	for _, stored := range e.ds.events {
		if stored.Provider == event.Provider && stored.Name == event.Name {
			return errors.WithCode(code.ErrDatabase, "duplicate entry")
		}
	}

	if len(e.ds.events) > 0 {
		event.ID = e.ds.events[len(e.ds.events)-1].ID + 1
	} else {
		event.ID = 1
	}
	if event.InstanceID == "" {
		event.InstanceID = fmt.Sprintf("evt-%d", event.ID)
	}
	e.ds.events = append(e.ds.events, event)

	return nil
}

func (e *events) Update(ctx context.Context, event *v1.WebhookEvent, opts metav1.UpdateOptions) error {
	e.ds.Lock()
	defer e.ds.Unlock()

	for i, stored := range e.ds.events {
		if stored.Provider == event.Provider && stored.Name == event.Name {
			e.ds.events[i] = event

			return nil
		}
	}

	return errors.WithCode(code.ErrEventNotFound, "record not found")
}

func (e *events) Get(ctx context.Context, provider, name string, opts metav1.GetOptions) (*v1.WebhookEvent, error) {
	e.ds.RLock()
	defer e.ds.RUnlock()

	for _, stored := range e.ds.events {
		if stored.Provider == provider && stored.Name == name {
			return stored, nil
		}
	}

	return nil, errors.WithCode(code.ErrEventNotFound, "record not found")
}

func (e *events) List(ctx context.Context, opts metav1.ListOptions) (*v1.WebhookEventList, error) {
	e.ds.RLock()
	defer e.ds.RUnlock()

	return &v1.WebhookEventList{
		ListMeta: metav1.ListMeta{TotalCount: int64(len(e.ds.events))},
		Items:    e.ds.events,
	}, nil
}

func (e *events) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	e.ds.Lock()
	defer e.ds.Unlock()

	kept := e.ds.events[:0]
	var removed int64

	for _, stored := range e.ds.events {
		if stored.Status == v1.EventStatusProcessed && stored.ProcessedAt.Before(before) {
			removed++

			continue
		}
		kept = append(kept, stored)
	}
	e.ds.events = kept

	return removed, nil
}
