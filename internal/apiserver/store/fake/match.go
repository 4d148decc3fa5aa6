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

type matches struct {
	ds *datastore
}

func newMatches(ds *datastore) *matches {
	return &matches{ds: ds}
}

func (m *matches) Create(ctx context.Context, match *v1.Match, opts metav1.CreateOptions) error {
	m.ds.Lock()
	defer m.ds.Unlock()

	if len(m.ds.matches) > 0 {
		match.ID = m.ds.matches[len(m.ds.matches)-1].ID + 1
	} else {
		match.ID = 1
	}
	if match.InstanceID == "" {
		match.InstanceID = fmt.Sprintf("match-%d", match.ID)
	}
	m.ds.matches = append(m.ds.matches, match)

	return nil
}

func (m *matches) Update(ctx context.Context, match *v1.Match, opts metav1.UpdateOptions) error {
	m.ds.Lock()
	defer m.ds.Unlock()

	for i, stored := range m.ds.matches {
		if stored.InstanceID == match.InstanceID {
			m.ds.matches[i] = match

			return nil
		}
	}

	return errors.WithCode(code.ErrMatchNotFound, "record not found")
}

func (m *matches) Get(ctx context.Context, instanceID string, opts metav1.GetOptions) (*v1.Match, error) {
	m.ds.RLock()
	defer m.ds.RUnlock()

	for _, stored := range m.ds.matches {
		if stored.InstanceID == instanceID {
			return stored, nil
		}
	}

	return nil, errors.WithCode(code.ErrMatchNotFound, "record not found")
}

func (m *matches) List(ctx context.Context, username string, opts metav1.ListOptions) (*v1.MatchList, error) {
	m.ds.RLock()
	defer m.ds.RUnlock()

	ret := &v1.MatchList{}
	for _, stored := range m.ds.matches {
		if stored.Involves(username) {
			ret.Items = append(ret.Items, stored)
		}
	}
	ret.TotalCount = int64(len(ret.Items))

	return ret, nil
}

func (m *matches) ListBatch(ctx context.Context, username string, batchDate time.Time) (*v1.MatchList, error) {
	m.ds.RLock()
	defer m.ds.RUnlock()

	ret := &v1.MatchList{}
	for _, stored := range m.ds.matches {
		if stored.Requester == username && stored.BatchDate.Equal(batchDate) {
			ret.Items = append(ret.Items, stored)
		}
	}
	ret.TotalCount = int64(len(ret.Items))

	return ret, nil
}

func (m *matches) ListCounterparts(ctx context.Context, username string) ([]string, error) {
	m.ds.RLock()
	defer m.ds.RUnlock()

	seen := make(map[string]struct{})
	counterparts := []string{}

	for _, stored := range m.ds.matches {
		if !stored.Involves(username) {
			continue
		}
		other := stored.Other(username)
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		counterparts = append(counterparts, other)
	}

	return counterparts, nil
}

func (m *matches) CloseForUser(ctx context.Context, username string) (int64, error) {
	m.ds.Lock()
	defer m.ds.Unlock()

	var closed int64
	for _, stored := range m.ds.matches {
		if stored.Status == v1.MatchStatusClosed || !stored.Involves(username) {
			continue
		}
		stored.Status = v1.MatchStatusClosed
		closed++
	}

	return closed, nil
}

func (m *matches) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	m.ds.Lock()
	defer m.ds.Unlock()

	var closed int64
	for _, stored := range m.ds.matches {
		if stored.Status == v1.MatchStatusPending && stored.BatchDate.Before(before) {
			stored.Status = v1.MatchStatusClosed
			closed++
		}
	}

	return closed, nil
}
