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

type matches struct {
	db *gorm.DB
}

func newMatches(ds *datastore) *matches {
	return &matches{ds.db}
}

// Create creates a new match.
func (m *matches) Create(ctx context.Context, match *v1.Match, opts metav1.CreateOptions) error {
	return m.db.Create(&match).Error
}

// Update updates a match.
func (m *matches) Update(ctx context.Context, match *v1.Match, opts metav1.UpdateOptions) error {
	return m.db.Save(match).Error
}

// Get return a match by instance id.
func (m *matches) Get(ctx context.Context, instanceID string, opts metav1.GetOptions) (*v1.Match, error) {
	match := &v1.Match{}
	err := m.db.Where("instanceID = ?", instanceID).First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrMatchNotFound, "%s", err.Error())
		}

		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return match, nil
}

// List return the matches the given user participates in.
func (m *matches) List(ctx context.Context, username string, opts metav1.ListOptions) (*v1.MatchList, error) {
	ret := &v1.MatchList{}
	ol := gormutil.Unpointer(opts.Offset, opts.Limit)

	d := m.db.Where("requester = ? or candidate = ?", username, username).
		Offset(ol.Offset).
		Limit(ol.Limit).
		Order("id desc").
		Find(&ret.Items).
		Offset(-1).
		Limit(-1).
		Count(&ret.TotalCount)

	return ret, d.Error
}

// ListBatch returns the matches generated for a user on the given batch date.
func (m *matches) ListBatch(ctx context.Context, username string, batchDate time.Time) (*v1.MatchList, error) {
	ret := &v1.MatchList{}

	d := m.db.Where("requester = ? and batchDate = ?", username, batchDate).
		Order("score desc").
		Find(&ret.Items)
	ret.TotalCount = int64(len(ret.Items))

	return ret, d.Error
}

// ListCounterparts returns every username that ever appeared opposite the
// given user.
func (m *matches) ListCounterparts(ctx context.Context, username string) ([]string, error) {
	var rows []v1.Match
	if err := m.db.Select("requester", "candidate").
		Where("requester = ? or candidate = ?", username, username).
		Find(&rows).Error; err != nil {
		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	seen := make(map[string]struct{}, len(rows))
	counterparts := make([]string, 0, len(rows))

	for i := range rows {
		other := rows[i].Other(username)
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		counterparts = append(counterparts, other)
	}

	return counterparts, nil
}

// CloseForUser closes the open matches of a removed user.
func (m *matches) CloseForUser(ctx context.Context, username string) (int64, error) {
	d := m.db.Model(&v1.Match{}).
		Where("status in ? and (requester = ? or candidate = ?)",
			[]string{v1.MatchStatusPending, v1.MatchStatusMutual}, username, username).
		Update("status", v1.MatchStatusClosed)
	if d.Error != nil {
		return 0, errors.WithCode(code.ErrDatabase, "%s", d.Error.Error())
	}

	return d.RowsAffected, nil
}

// DeleteExpired closes pending matches older than before.
func (m *matches) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	d := m.db.Model(&v1.Match{}).
		Where("status = ? and batchDate < ?", v1.MatchStatusPending, before).
		Update("status", v1.MatchStatusClosed)
	if d.Error != nil {
		return 0, errors.WithCode(code.ErrDatabase, "%s", d.Error.Error())
	}

	return d.RowsAffected, nil
}
