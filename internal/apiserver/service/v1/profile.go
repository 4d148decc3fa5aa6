// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"regexp"
	"time"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/component-base/pkg/util/idutil"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/apiserver/store"
	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

// MinimumAge is the youngest age a profile holder may have.
const MinimumAge = 18

// ProfileSrv defines functions used to handle profile request.
type ProfileSrv interface {
	Create(ctx context.Context, profile *v1.Profile, opts metav1.CreateOptions) error
	Update(ctx context.Context, profile *v1.Profile, opts metav1.UpdateOptions) error
	Delete(ctx context.Context, username string, opts metav1.DeleteOptions) error
	Get(ctx context.Context, username string, opts metav1.GetOptions) (*v1.Profile, error)
	List(ctx context.Context, opts metav1.ListOptions) (*v1.ProfileList, error)
}

type profileService struct {
	store store.Factory
}

var _ ProfileSrv = (*profileService)(nil)

func newProfiles(srv *service) *profileService {
	return &profileService{store: srv.store}
}

func (p *profileService) Create(ctx context.Context, profile *v1.Profile, opts metav1.CreateOptions) error {
	if profile.Age(time.Now()) < MinimumAge {
		return errors.WithCode(code.ErrUnderage, "profile holder is %d", profile.Age(time.Now()))
	}

	// A fresh profile always starts in moderation.
	profile.ModerationStatus = v1.ModerationPending
	if profile.PhotoVisibility == "" {
		profile.PhotoVisibility = v1.PhotoVisibilityMatches
	}
	profile.GuardianLinkKey = idutil.NewSecretKey()

	if err := p.store.Profiles().Create(ctx, profile, opts); err != nil {
		if match, _ := regexp.MatchString("Duplicate entry '.*' for key 'name'", err.Error()); match {
			return errors.WithCode(code.ErrProfileAlreadyExist, "profile of %s already exist", profile.Name)
		}

		return errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return nil
}

func (p *profileService) Update(ctx context.Context, profile *v1.Profile, opts metav1.UpdateOptions) error {
	if profile.Age(time.Now()) < MinimumAge {
		return errors.WithCode(code.ErrUnderage, "profile holder is %d", profile.Age(time.Now()))
	}

	if err := p.store.Profiles().Update(ctx, profile, opts); err != nil {
		return errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return nil
}

func (p *profileService) Delete(ctx context.Context, username string, opts metav1.DeleteOptions) error {
	return p.store.Profiles().Delete(ctx, username, opts)
}

func (p *profileService) Get(ctx context.Context, username string, opts metav1.GetOptions) (*v1.Profile, error) {
	return p.store.Profiles().Get(ctx, username, opts)
}

func (p *profileService) List(ctx context.Context, opts metav1.ListOptions) (*v1.ProfileList, error) {
	return p.store.Profiles().List(ctx, opts)
}
