// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package fake

import (
	"context"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

type profiles struct {
	ds *datastore
}

func newProfiles(ds *datastore) *profiles {
	return &profiles{ds: ds}
}

func (p *profiles) Create(ctx context.Context, profile *v1.Profile, opts metav1.CreateOptions) error {
	p.ds.Lock()
	defer p.ds.Unlock()

	for _, stored := range p.ds.profiles {
		if stored.Name == profile.Name {
			return errors.WithCode(code.ErrProfileAlreadyExist, "record already exist")
		}
	}

	if len(p.ds.profiles) > 0 {
		profile.ID = p.ds.profiles[len(p.ds.profiles)-1].ID + 1
	} else {
		profile.ID = 1
	}
	p.ds.profiles = append(p.ds.profiles, profile)

	return nil
}

func (p *profiles) Update(ctx context.Context, profile *v1.Profile, opts metav1.UpdateOptions) error {
	p.ds.Lock()
	defer p.ds.Unlock()

	for i, stored := range p.ds.profiles {
		if stored.Name == profile.Name {
			p.ds.profiles[i] = profile

			return nil
		}
	}

	return errors.WithCode(code.ErrProfileNotFound, "record not found")
}

func (p *profiles) Delete(ctx context.Context, username string, opts metav1.DeleteOptions) error {
	p.ds.Lock()
	defer p.ds.Unlock()

	for i, stored := range p.ds.profiles {
		if stored.Name == username {
			p.ds.profiles = append(p.ds.profiles[:i], p.ds.profiles[i+1:]...)

			return nil
		}
	}

	return errors.WithCode(code.ErrProfileNotFound, "record not found")
}

func (p *profiles) Get(ctx context.Context, username string, opts metav1.GetOptions) (*v1.Profile, error) {
	p.ds.RLock()
	defer p.ds.RUnlock()

	for _, stored := range p.ds.profiles {
		if stored.Name == username {
			return stored, nil
		}
	}

	return nil, errors.WithCode(code.ErrProfileNotFound, "record not found")
}

func (p *profiles) List(ctx context.Context, opts metav1.ListOptions) (*v1.ProfileList, error) {
	p.ds.RLock()
	defer p.ds.RUnlock()

	return &v1.ProfileList{
		ListMeta: metav1.ListMeta{TotalCount: int64(len(p.ds.profiles))},
		Items:    p.ds.profiles,
	}, nil
}

func (p *profiles) ListCandidates(
	ctx context.Context,
	gender string,
	exclude []string,
	limit int,
) (*v1.ProfileList, error) {
	p.ds.RLock()
	defer p.ds.RUnlock()

	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[name] = struct{}{}
	}

	ret := &v1.ProfileList{}
	for _, stored := range p.ds.profiles {
		if len(ret.Items) >= limit {
			break
		}
		if stored.Gender != gender || stored.ModerationStatus != v1.ModerationApproved {
			continue
		}
		if _, ok := excluded[stored.Name]; ok {
			continue
		}
		ret.Items = append(ret.Items, stored)
	}
	ret.TotalCount = int64(len(ret.Items))

	return ret, nil
}
