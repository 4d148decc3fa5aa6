// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"time"

	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/apiserver/entitle"
	"github.com/faddlmatch/platform/internal/apiserver/store"
	"github.com/faddlmatch/platform/internal/apiserver/store/fake"
	"github.com/faddlmatch/platform/internal/pkg/code"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

type stubEntitlements struct {
	ent entitle.Entitlement
	err error
}

func (s *stubEntitlements) Get(ctx context.Context, username string) (entitle.Entitlement, error) {
	return s.ent, s.err
}

type stubBilling struct {
	plans    *v1.PlanList
	canceled []string
}

func (s *stubBilling) Plans() *v1.PlanList {
	if s.plans == nil {
		return &v1.PlanList{}
	}

	return s.plans
}

func (s *stubBilling) PlanByTier(tier string) (*v1.Plan, error) {
	for _, plan := range s.Plans().Items {
		if plan.Tier == tier {
			return plan, nil
		}
	}

	return nil, errors.WithCode(code.ErrPlanNotFound, "unknown tier `%s`", tier)
}

func (s *stubBilling) CreateCheckoutSession(
	ctx context.Context,
	customerRef, priceID, successURL, cancelURL string,
) (string, error) {
	return "https://billing.example.com/checkout", nil
}

func (s *stubBilling) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	return "https://billing.example.com/portal", nil
}

func (s *stubBilling) SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) error {
	if cancel {
		s.canceled = append(s.canceled, subscriptionID)
	}

	return nil
}

func newTestService(storeIns store.Factory, ent entitle.Entitlement) *service {
	return &service{
		store:        storeIns,
		billing:      &stubBilling{},
		entitlements: &stubEntitlements{ent: ent},
	}
}

func seedProfile(ctx context.Context, storeIns store.Factory, name, gender string) *v1.Profile {
	profile := &v1.Profile{
		ObjectMeta:       metav1.ObjectMeta{Name: name},
		Gender:           gender,
		BirthDate:        time.Date(1992, time.May, 10, 0, 0, 0, 0, time.UTC),
		City:             "Kuala Lumpur",
		Country:          "Malaysia",
		ModerationStatus: v1.ModerationApproved,
		PhotoVisibility:  v1.PhotoVisibilityMatches,
	}
	_ = storeIns.Profiles().Create(ctx, profile, metav1.CreateOptions{})

	return profile
}

func newEmptyStore() store.Factory {
	return fake.NewFakeStore()
}
