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

type users struct {
	ds *datastore
}

func newUsers(ds *datastore) *users {
	return &users{ds: ds}
}

func (u *users) Create(ctx context.Context, user *v1.User, opts metav1.CreateOptions) error {
	u.ds.Lock()
	defer u.ds.Unlock()

	for _, stored := range u.ds.users {
		if stored.Name == user.Name {
			return errors.WithCode(code.ErrUserAlreadyExist, "record already exist")
		}
	}

	if len(u.ds.users) > 0 {
		user.ID = u.ds.users[len(u.ds.users)-1].ID + 1
	} else {
		user.ID = 1
	}
	user.Status = v1.UserStatusActive
	u.ds.users = append(u.ds.users, user)

	return nil
}

func (u *users) Update(ctx context.Context, user *v1.User, opts metav1.UpdateOptions) error {
	u.ds.Lock()
	defer u.ds.Unlock()

	for i, stored := range u.ds.users {
		if stored.Name == user.Name {
			u.ds.users[i] = user

			return nil
		}
	}

	return errors.WithCode(code.ErrUserNotFound, "record not found")
}

func (u *users) Delete(ctx context.Context, username string, opts metav1.DeleteOptions) error {
	u.ds.Lock()
	defer u.ds.Unlock()

	for i, stored := range u.ds.users {
		if stored.Name == username {
			u.ds.users = append(u.ds.users[:i], u.ds.users[i+1:]...)

			return nil
		}
	}

	return errors.WithCode(code.ErrUserNotFound, "record not found")
}

func (u *users) DeleteCollection(ctx context.Context, usernames []string, opts metav1.DeleteOptions) error {
	u.ds.Lock()
	defer u.ds.Unlock()

	remove := map[string]bool{}
	for _, username := range usernames {
		remove[username] = true
	}

	kept := u.ds.users[:0]
	for _, stored := range u.ds.users {
		if !remove[stored.Name] {
			kept = append(kept, stored)
		}
	}
	u.ds.users = kept

	return nil
}

func (u *users) Get(ctx context.Context, username string, opts metav1.GetOptions) (*v1.User, error) {
	u.ds.RLock()
	defer u.ds.RUnlock()

	for _, stored := range u.ds.users {
		if stored.Name == username {
			return stored, nil
		}
	}

	return nil, errors.WithCode(code.ErrUserNotFound, "record not found")
}

func (u *users) GetByExternalID(ctx context.Context, externalID string, opts metav1.GetOptions) (*v1.User, error) {
	u.ds.RLock()
	defer u.ds.RUnlock()

	for _, stored := range u.ds.users {
		if stored.ExternalID == externalID {
			return stored, nil
		}
	}

	return nil, errors.WithCode(code.ErrUserNotFound, "record not found")
}

func (u *users) List(ctx context.Context, opts metav1.ListOptions) (*v1.UserList, error) {
	u.ds.RLock()
	defer u.ds.RUnlock()

	return &v1.UserList{
		ListMeta: metav1.ListMeta{TotalCount: int64(len(u.ds.users))},
		Items:    u.ds.users,
	}, nil
}
