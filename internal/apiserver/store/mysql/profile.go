// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package mysql

import (
	"context"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"
	"gorm.io/gorm"

	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
	"github.com/faddlmatch/platform/pkg/util/gormutil"
)

type profiles struct {
	db *gorm.DB
}

func newProfiles(ds *datastore) *profiles {
	return &profiles{ds.db}
}

// Create creates a new profile.
func (p *profiles) Create(ctx context.Context, profile *v1.Profile, opts metav1.CreateOptions) error {
	return p.db.Create(&profile).Error
}

// Update updates a profile.
func (p *profiles) Update(ctx context.Context, profile *v1.Profile, opts metav1.UpdateOptions) error {
	return p.db.Save(profile).Error
}

// Delete deletes the profile of the given user.
func (p *profiles) Delete(ctx context.Context, username string, opts metav1.DeleteOptions) error {
	if opts.Unscoped {
		p.db = p.db.Unscoped()
	}

	err := p.db.Where("name = ?", username).Delete(&v1.Profile{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return nil
}

// Get return the profile of the given user.
func (p *profiles) Get(ctx context.Context, username string, opts metav1.GetOptions) (*v1.Profile, error) {
	profile := &v1.Profile{}
	err := p.db.Where("name = ?", username).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrProfileNotFound, "%s", err.Error())
		}

		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return profile, nil
}

// List return all profiles.
func (p *profiles) List(ctx context.Context, opts metav1.ListOptions) (*v1.ProfileList, error) {
	ret := &v1.ProfileList{}
	ol := gormutil.Unpointer(opts.Offset, opts.Limit)

	d := p.db.
		Offset(ol.Offset).
		Limit(ol.Limit).
		Order("id desc").
		Find(&ret.Items).
		Offset(-1).
		Limit(-1).
		Count(&ret.TotalCount)

	return ret, d.Error
}

// ListCandidates returns approved profiles of the given gender excluding the
// listed usernames.
func (p *profiles) ListCandidates(
	ctx context.Context,
	gender string,
	exclude []string,
	limit int,
) (*v1.ProfileList, error) {
	ret := &v1.ProfileList{}

	d := p.db.Where("gender = ? and moderationStatus = ?", gender, v1.ModerationApproved)
	if len(exclude) > 0 {
		d = d.Where("name not in ?", exclude)
	}

	d = d.Limit(limit).Order("id desc").Find(&ret.Items)
	ret.TotalCount = int64(len(ret.Items))

	return ret, d.Error
}
