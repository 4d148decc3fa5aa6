// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package bill

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marmotedu/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faddlmatch/platform/internal/pkg/code"
	genericoptions "github.com/faddlmatch/platform/internal/pkg/options"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
)

func newTestClient(apiBase string) *Client {
	return NewClient(&genericoptions.BillingOptions{
		APIBase:        apiBase,
		SecretKey:      "sk_test_123",
		BasicPriceID:   "price_basic",
		PremiumPriceID: "price_premium",
		Timeout:        2 * time.Second,
	})
}

func TestPlanByTier(t *testing.T) {
	client := newTestClient("https://billing.example.com")

	plan, err := client.PlanByTier(v1.TierPremium)
	require.NoError(t, err)
	assert.Equal(t, "price_premium", plan.PriceID)

	_, err = client.PlanByTier("platinum")
	assert.True(t, errors.IsCode(err, code.ErrPlanNotFound))
}

func TestCreateCheckoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "aisha", r.PostForm.Get("client_reference_id"))
		assert.Equal(t, "price_premium", r.PostForm.Get("line_items[0][price]"))

		w.Write([]byte(`{"id": "cs_1", "url": "https://pay.example.com/cs_1"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	url, err := client.CreateCheckoutSession(
		context.Background(),
		"aisha",
		"price_premium",
		"https://app/success",
		"https://app/cancel",
	)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_1", url)
}

func TestProviderErrorNotRetried(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "no such customer"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreatePortalSession(context.Background(), "cus_missing", "https://app/account")
	assert.True(t, errors.IsCode(err, code.ErrBillingProvider))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx responses are not retried")
}

func TestServerErrorRetried(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{}`))

			return
		}
		w.Write([]byte(`{"id": "bps_1", "url": "https://pay.example.com/portal"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	url, err := client.CreatePortalSession(context.Background(), "cus_1", "https://app/account")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/portal", url)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}
