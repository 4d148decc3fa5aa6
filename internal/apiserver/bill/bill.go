// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package bill talks to the payment provider REST API for checkout, portal
// and subscription management calls, and holds the plan catalog.
package bill

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/pkg/code"
	genericoptions "github.com/faddlmatch/platform/internal/pkg/options"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
	"github.com/faddlmatch/platform/pkg/log"
)

const retryAttempts = 3

// Provider is the payment provider surface the service layer depends on.
type Provider interface {
	Plans() *v1.PlanList
	PlanByTier(tier string) (*v1.Plan, error)
	CreateCheckoutSession(ctx context.Context, customerRef, priceID, successURL, cancelURL string) (string, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
	SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) error
}

// Client is the HTTP implementation of Provider.
type Client struct {
	apiBase   string
	secretKey string
	http      *http.Client
	plans     []*v1.Plan
}

var _ Provider = (*Client)(nil)

// NewClient creates a provider client from billing options.
func NewClient(opts *genericoptions.BillingOptions) *Client {
	return &Client{
		apiBase:   strings.TrimRight(opts.APIBase, "/"),
		secretKey: opts.SecretKey,
		http:      &http.Client{Timeout: opts.Timeout},
		plans: []*v1.Plan{
			{
				Name:            "basic",
				Tier:            v1.TierBasic,
				PriceID:         opts.BasicPriceID,
				MonthlyPriceUSD: 9,
				DailyMatchLimit: 5,
			},
			{
				Name:            "premium",
				Tier:            v1.TierPremium,
				PriceID:         opts.PremiumPriceID,
				MonthlyPriceUSD: 29,
				DailyMatchLimit: 20,
			},
		},
	}
}

// Plans returns the plan catalog.
func (c *Client) Plans() *v1.PlanList {
	return &v1.PlanList{Items: c.plans}
}

// PlanByTier returns the plan of the given tier.
func (c *Client) PlanByTier(tier string) (*v1.Plan, error) {
	for _, plan := range c.plans {
		if plan.Tier == tier {
			return plan, nil
		}
	}

	return nil, errors.WithCode(code.ErrPlanNotFound, "unknown tier `%s`", tier)
}

// CreateCheckoutSession opens a hosted checkout session and returns its URL.
func (c *Client) CreateCheckoutSession(
	ctx context.Context,
	customerRef, priceID, successURL, cancelURL string,
) (string, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("client_reference_id", customerRef)
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)

	resp, err := c.post(ctx, "/v1/checkout/sessions", form)
	if err != nil {
		return "", err
	}

	return resp.URL, nil
}

// CreatePortalSession opens a hosted billing portal session and returns its URL.
func (c *Client) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("return_url", returnURL)

	resp, err := c.post(ctx, "/v1/billing_portal/sessions", form)
	if err != nil {
		return "", err
	}

	return resp.URL, nil
}

// SetCancelAtPeriodEnd toggles provider side cancellation at period end.
func (c *Client) SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) error {
	form := url.Values{}
	form.Set("cancel_at_period_end", fmt.Sprintf("%t", cancel))

	_, err := c.post(ctx, "/v1/subscriptions/"+subscriptionID, form)

	return err
}

type sessionResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) post(ctx context.Context, path string, form url.Values) (*sessionResponse, error) {
	var parsed sessionResponse

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(
				ctx,
				http.MethodPost,
				c.apiBase+path,
				strings.NewReader(form.Encode()),
			)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Authorization", "Bearer "+c.secretKey)
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}

			if err := json.Unmarshal(body, &parsed); err != nil {
				return retry.Unrecoverable(err)
			}

			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("provider returned %d", resp.StatusCode)
			}

			if resp.StatusCode >= http.StatusBadRequest {
				message := "request rejected"
				if parsed.Error != nil {
					message = parsed.Error.Message
				}

				return retry.Unrecoverable(fmt.Errorf("provider returned %d: %s", resp.StatusCode, message))
			}

			return nil
		},
		retry.Attempts(retryAttempts),
		retry.Delay(200*time.Millisecond),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			log.Warnf("billing request %s failed (attempt %d): %s", path, n+1, err.Error())
		}),
	)
	if err != nil {
		return nil, errors.WithCode(code.ErrBillingProvider, "%s", err.Error())
	}

	return &parsed, nil
}
