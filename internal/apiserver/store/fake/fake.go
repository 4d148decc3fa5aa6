// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package fake implements an in-memory store for testing.
package fake

import (
	"fmt"
	"sync"
	"time"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"

	"github.com/faddlmatch/platform/internal/apiserver/store"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

// ResourceCount is the number of fake users to seed.
const ResourceCount = 10

type datastore struct {
	sync.RWMutex
	users         []*v1.User
	profiles      []*v1.Profile
	matches       []*v1.Match
	conversations []*v1.Conversation
	messages      []*v1.Message
	subscriptions []*v1.Subscription
	events        []*v1.WebhookEvent
}

func (ds *datastore) Users() store.UserStore {
	return newUsers(ds)
}

func (ds *datastore) Profiles() store.ProfileStore {
	return newProfiles(ds)
}

func (ds *datastore) Matches() store.MatchStore {
	return newMatches(ds)
}

func (ds *datastore) Messages() store.MessageStore {
	return newMessages(ds)
}

func (ds *datastore) Subscriptions() store.SubscriptionStore {
	return newSubscriptions(ds)
}

func (ds *datastore) Events() store.EventStore {
	return newEvents(ds)
}

func (ds *datastore) Close() error {
	return nil
}

var (
	fakeFactory store.Factory
	once        sync.Once
)

// GetFakeFactoryOr create fake store.
func GetFakeFactoryOr() (store.Factory, error) {
	once.Do(func() {
		fakeFactory = &datastore{
			users:    FakeUsers(ResourceCount),
			profiles: FakeProfiles(ResourceCount),
		}
	})

	if fakeFactory == nil {
		return nil, fmt.Errorf("failed to get fake store factory")
	}

	return fakeFactory, nil
}

// NewFakeStore returns an unseeded fake store factory.
func NewFakeStore() store.Factory {
	return &datastore{}
}

// FakeUsers returns fake user data.
func FakeUsers(count int) []*v1.User {
	users := make([]*v1.User, 0, count)
	for i := 1; i <= count; i++ {
		users = append(users, &v1.User{
			ObjectMeta: metav1.ObjectMeta{
				Name:       fmt.Sprintf("user%d", i),
				ID:         uint64(i),
				InstanceID: fmt.Sprintf("user-%d", i),
			},
			Status:   v1.UserStatusActive,
			Nickname: fmt.Sprintf("user%d", i),
			Password: fmt.Sprintf("User%d@2024", i),
			Email:    fmt.Sprintf("user%d@faddlmatch.com", i),
		})
	}

	return users
}

// FakeProfiles returns fake profile data, alternating genders and approved by
// moderation.
func FakeProfiles(count int) []*v1.Profile {
	profiles := make([]*v1.Profile, 0, count)
	for i := 1; i <= count; i++ {
		gender := v1.GenderFemale
		if i%2 == 0 {
			gender = v1.GenderMale
		}

		profiles = append(profiles, &v1.Profile{
			ObjectMeta: metav1.ObjectMeta{
				Name:       fmt.Sprintf("user%d", i),
				ID:         uint64(i),
				InstanceID: fmt.Sprintf("profile-%d", i),
			},
			Gender:           gender,
			BirthDate:        time.Date(1990+i%10, time.March, 1, 0, 0, 0, 0, time.UTC),
			City:             "Kuala Lumpur",
			Country:          "Malaysia",
			ModerationStatus: v1.ModerationApproved,
			PhotoVisibility:  v1.PhotoVisibilityMatches,
		})
	}

	return profiles
}
