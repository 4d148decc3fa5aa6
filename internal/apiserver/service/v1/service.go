// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

//go:generate mockgen -self_package=github.com/faddlmatch/platform/internal/apiserver/service/v1 -destination mock_service.go -package v1 github.com/faddlmatch/platform/internal/apiserver/service/v1 Service,UserSrv,ProfileSrv,MatchSrv,MessageSrv,SubscriptionSrv,EventSrv

import (
	"context"

	"github.com/faddlmatch/platform/internal/apiserver/bill"
	"github.com/faddlmatch/platform/internal/apiserver/entitle"
	"github.com/faddlmatch/platform/internal/apiserver/store"
)

// EntitlementChecker resolves the subscription entitlement of a user.
type EntitlementChecker interface {
	Get(ctx context.Context, username string) (entitle.Entitlement, error)
}

// Service defines functions used to return resource interface.
type Service interface {
	Users() UserSrv
	Profiles() ProfileSrv
	Matches() MatchSrv
	Messages() MessageSrv
	Subscriptions() SubscriptionSrv
	Events() EventSrv
}

type service struct {
	store        store.Factory
	billing      bill.Provider
	entitlements EntitlementChecker
}

// NewService returns Service interface.
func NewService(store store.Factory, billing bill.Provider, entitlements EntitlementChecker) Service {
	return &service{
		store:        store,
		billing:      billing,
		entitlements: entitlements,
	}
}

func (s *service) Users() UserSrv {
	return newUsers(s)
}

func (s *service) Profiles() ProfileSrv {
	return newProfiles(s)
}

func (s *service) Matches() MatchSrv {
	return newMatches(s)
}

func (s *service) Messages() MessageSrv {
	return newMessages(s)
}

func (s *service) Subscriptions() SubscriptionSrv {
	return newSubscriptions(s)
}

func (s *service) Events() EventSrv {
	return newEvents(s)
}
