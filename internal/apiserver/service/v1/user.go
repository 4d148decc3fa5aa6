// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"regexp"
	"sync"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/apiserver/bill"
	"github.com/faddlmatch/platform/internal/apiserver/store"
	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
	"github.com/faddlmatch/platform/pkg/log"
)

// UserSrv defines functions used to handle user request.
type UserSrv interface {
	Create(ctx context.Context, user *v1.User, opts metav1.CreateOptions) error
	Update(ctx context.Context, user *v1.User, opts metav1.UpdateOptions) error
	Delete(ctx context.Context, username string, opts metav1.DeleteOptions) error
	DeleteCollection(ctx context.Context, usernames []string, opts metav1.DeleteOptions) error
	Get(ctx context.Context, username string, opts metav1.GetOptions) (*v1.User, error)
	List(ctx context.Context, opts metav1.ListOptions) (*v1.UserList, error)
	ChangePassword(ctx context.Context, user *v1.User) error
}

type userService struct {
	store   store.Factory
	billing bill.Provider
}

var _ UserSrv = (*userService)(nil)

func newUsers(srv *service) *userService {
	return &userService{store: srv.store, billing: srv.billing}
}

func (u *userService) Create(ctx context.Context, user *v1.User, opts metav1.CreateOptions) error {
	if err := u.store.Users().Create(ctx, user, opts); err != nil {
		if match, _ := regexp.MatchString("Duplicate entry '.*' for key 'name'", err.Error()); match {
			return errors.WithCode(code.ErrUserAlreadyExist, "user %s already exist", user.Name)
		}

		return errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return nil
}

func (u *userService) Update(ctx context.Context, user *v1.User, opts metav1.UpdateOptions) error {
	if err := u.store.Users().Update(ctx, user, opts); err != nil {
		return errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return nil
}

// Delete removes the account with its profile, subscription and matches. The
// dependent resources are removed best effort, account removal wins. A
// provider-side subscription gets a cancellation request before the local
// record goes.
func (u *userService) Delete(ctx context.Context, username string, opts metav1.DeleteOptions) error {
	if err := u.store.Users().Delete(ctx, username, opts); err != nil {
		return err
	}

	if err := u.store.Profiles().Delete(ctx, username, opts); err != nil {
		log.L(ctx).Warnf("delete profile of %s failed: %s", username, err.Error())
	}

	if closed, err := u.store.Matches().CloseForUser(ctx, username); err != nil {
		log.L(ctx).Warnf("close matches of %s failed: %s", username, err.Error())
	} else if closed > 0 {
		log.L(ctx).Infof("closed %d open matches of %s", closed, username)
	}

	if subscription, err := u.store.Subscriptions().Get(ctx, username, metav1.GetOptions{}); err == nil {
		if u.billing != nil && subscription.ProviderSubscriptionID != "" {
			if err := u.billing.SetCancelAtPeriodEnd(ctx, subscription.ProviderSubscriptionID, true); err != nil {
				log.L(ctx).Warnf("cancel provider subscription of %s failed: %s", username, err.Error())
			}
		}

		if err := u.store.Subscriptions().Delete(ctx, username, opts); err != nil {
			log.L(ctx).Warnf("delete subscription of %s failed: %s", username, err.Error())
		}
	}

	return nil
}

func (u *userService) DeleteCollection(ctx context.Context, usernames []string, opts metav1.DeleteOptions) error {
	if err := u.store.Users().DeleteCollection(ctx, usernames, opts); err != nil {
		return errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return nil
}

func (u *userService) Get(ctx context.Context, username string, opts metav1.GetOptions) (*v1.User, error) {
	user, err := u.store.Users().Get(ctx, username, opts)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// List returns user list in the storage, enriched with the subscription tier
// of each user in parallel.
func (u *userService) List(ctx context.Context, opts metav1.ListOptions) (*v1.UserList, error) {
	users, err := u.store.Users().List(ctx, opts)
	if err != nil {
		log.L(ctx).Errorf("list users from storage failed: %s", err.Error())

		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	wg := sync.WaitGroup{}
	errChan := make(chan error, 1)
	finished := make(chan bool, 1)

	var m sync.Map

	for _, user := range users.Items {
		wg.Add(1)

		go func(user *v1.User) {
			defer wg.Done()

			tier := ""
			subscription, err := u.store.Subscriptions().Get(ctx, user.Name, metav1.GetOptions{})
			if err != nil && !errors.IsCode(err, code.ErrSubscriptionNotFound) {
				errChan <- errors.WithCode(code.ErrDatabase, "%s", err.Error())

				return
			}
			if subscription != nil {
				tier = subscription.Tier
			}

			m.Store(user.ID, &v1.User{
				ObjectMeta: metav1.ObjectMeta{
					ID:         user.ID,
					InstanceID: user.InstanceID,
					Name:       user.Name,
					Extend:     map[string]interface{}{"tier": tier},
					CreatedAt:  user.CreatedAt,
					UpdatedAt:  user.UpdatedAt,
				},
				Nickname:  user.Nickname,
				Email:     user.Email,
				Phone:     user.Phone,
				LoginedAt: user.LoginedAt,
			})
		}(user)
	}

	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case err := <-errChan:
		return nil, err
	}

	infos := make([]*v1.User, 0, len(users.Items))
	for _, user := range users.Items {
		info, _ := m.Load(user.ID)
		infos = append(infos, info.(*v1.User))
	}

	log.L(ctx).Debugf("get %d users from backend storage.", len(infos))

	return &v1.UserList{ListMeta: users.ListMeta, Items: infos}, nil
}

func (u *userService) ChangePassword(ctx context.Context, user *v1.User) error {
	if err := u.store.Users().Update(ctx, user, metav1.UpdateOptions{}); err != nil {
		return errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return nil
}
