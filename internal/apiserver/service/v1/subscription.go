// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/apiserver/bill"
	"github.com/faddlmatch/platform/internal/apiserver/store"
	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
	"github.com/faddlmatch/platform/pkg/log"
)

// SubscriptionSrv defines functions used to handle subscription request.
type SubscriptionSrv interface {
	Get(ctx context.Context, username string) (*v1.Subscription, error)
	Plans(ctx context.Context) (*v1.PlanList, error)
	Checkout(ctx context.Context, username, tier, successURL, cancelURL string) (string, error)
	Portal(ctx context.Context, username, returnURL string) (string, error)
	Cancel(ctx context.Context, username string) (*v1.Subscription, error)
	Reactivate(ctx context.Context, username string) (*v1.Subscription, error)
}

type subscriptionService struct {
	store   store.Factory
	billing bill.Provider
}

var _ SubscriptionSrv = (*subscriptionService)(nil)

func newSubscriptions(srv *service) *subscriptionService {
	return &subscriptionService{store: srv.store, billing: srv.billing}
}

func (s *subscriptionService) Get(ctx context.Context, username string) (*v1.Subscription, error) {
	return s.store.Subscriptions().Get(ctx, username, metav1.GetOptions{})
}

func (s *subscriptionService) Plans(ctx context.Context) (*v1.PlanList, error) {
	return s.billing.Plans(), nil
}

// Checkout opens a provider checkout session for the given tier and returns
// the hosted URL.
func (s *subscriptionService) Checkout(
	ctx context.Context,
	username, tier, successURL, cancelURL string,
) (string, error) {
	plan, err := s.billing.PlanByTier(tier)
	if err != nil {
		return "", err
	}

	url, err := s.billing.CreateCheckoutSession(ctx, username, plan.PriceID, successURL, cancelURL)
	if err != nil {
		return "", err
	}

	log.L(ctx).Infof("checkout session created for %s (tier %s)", username, tier)

	return url, nil
}

// Portal opens a provider billing portal session for the subscription owner.
func (s *subscriptionService) Portal(ctx context.Context, username, returnURL string) (string, error) {
	subscription, err := s.store.Subscriptions().Get(ctx, username, metav1.GetOptions{})
	if err != nil {
		return "", err
	}

	return s.billing.CreatePortalSession(ctx, subscription.ProviderCustomerID, returnURL)
}

// Cancel flags the subscription to end at period close, locally and at the
// provider.
func (s *subscriptionService) Cancel(ctx context.Context, username string) (*v1.Subscription, error) {
	return s.setCancelFlag(ctx, username, true)
}

// Reactivate clears a pending cancellation before the period closes.
func (s *subscriptionService) Reactivate(ctx context.Context, username string) (*v1.Subscription, error) {
	return s.setCancelFlag(ctx, username, false)
}

func (s *subscriptionService) setCancelFlag(
	ctx context.Context,
	username string,
	cancel bool,
) (*v1.Subscription, error) {
	subscription, err := s.store.Subscriptions().Get(ctx, username, metav1.GetOptions{})
	if err != nil {
		return nil, err
	}

	if subscription.CancelAtPeriodEnd == cancel {
		return subscription, nil
	}

	if err := s.billing.SetCancelAtPeriodEnd(ctx, subscription.ProviderSubscriptionID, cancel); err != nil {
		return nil, err
	}

	subscription.CancelAtPeriodEnd = cancel
	if err := s.store.Subscriptions().Update(ctx, subscription, metav1.UpdateOptions{}); err != nil {
		return nil, errors.WithCode(code.ErrDatabase, "%s", err.Error())
	}

	return subscription, nil
}
