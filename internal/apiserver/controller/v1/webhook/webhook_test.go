// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package webhook

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	srvv1 "github.com/faddlmatch/platform/internal/apiserver/service/v1"
	"github.com/faddlmatch/platform/internal/apiserver/store/fake"
	"github.com/faddlmatch/platform/pkg/signature"
)

const (
	testIdentitySecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"
	testBillingSecret  = "whsec_billing_endpoint"
)

type fakeGuard struct {
	keys map[string]struct{}
	err  error
}

func (g *fakeGuard) SetKeyIfNotExists(keyName, value string, timeout time.Duration) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	if _, ok := g.keys[keyName]; ok {
		return false, nil
	}
	g.keys[keyName] = struct{}{}

	return true, nil
}

func newTestController(t *testing.T) *WebhookController {
	t.Helper()

	identity, err := signature.NewIdentityVerifier(testIdentitySecret, signature.DefaultTolerance)
	require.NoError(t, err)

	return &WebhookController{
		srv:          srvv1.NewService(fake.NewFakeStore(), nil, nil),
		identity:     identity,
		billing:      signature.NewBillingVerifier(testBillingSecret, signature.DefaultTolerance),
		maxBodyBytes: 64 * 1024,
		guardTTL:     10 * time.Minute,
		guard:        &fakeGuard{keys: make(map[string]struct{})},
	}
}

func identityRequest(t *testing.T, w *WebhookController, id string, payload []byte) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewReader(payload))
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set(signature.HeaderID, id)
	req.Header.Set(signature.HeaderTimestamp, timestamp)
	req.Header.Set(signature.HeaderSignature, "v1,"+w.identity.Sign(id, timestamp, payload))

	return req
}

func billingRequest(t *testing.T, w *WebhookController, payload []byte) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhooks/billing", bytes.NewReader(payload))
	req.Header.Set(signature.HeaderBillingSignature, w.billing.SignatureHeader(time.Now(), payload))

	return req
}

func serve(handler gin.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	engine := gin.New()
	engine.POST(req.URL.Path, handler)
	engine.ServeHTTP(recorder, req)

	return recorder
}

func TestWebhookIdentityDelivery(t *testing.T) {
	w := newTestController(t)
	payload := []byte(`{"type": "user.created", "data": {"id": "idp_1", "username": "aisha"}}`)

	recorder := serve(w.Identity, identityRequest(t, w, "msg_1", payload))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "processed")
}

func TestWebhookIdentityBadSignature(t *testing.T) {
	w := newTestController(t)
	payload := []byte(`{"type": "user.created", "data": {"id": "idp_1"}}`)

	req := identityRequest(t, w, "msg_1", payload)
	req.Header.Set(signature.HeaderSignature, "v1,Zm9yZ2VkIHNpZ25hdHVyZQ==")

	recorder := serve(w.Identity, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWebhookIdentityMissingHeaders(t *testing.T) {
	w := newTestController(t)
	payload := []byte(`{"type": "user.created", "data": {}}`)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewReader(payload))

	recorder := serve(w.Identity, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWebhookIdentityExpiredTimestamp(t *testing.T) {
	w := newTestController(t)
	payload := []byte(`{"type": "user.created", "data": {"id": "idp_1"}}`)

	id := "msg_old"
	timestamp := strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewReader(payload))
	req.Header.Set(signature.HeaderID, id)
	req.Header.Set(signature.HeaderTimestamp, timestamp)
	req.Header.Set(signature.HeaderSignature, "v1,"+w.identity.Sign(id, timestamp, payload))

	recorder := serve(w.Identity, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWebhookPayloadTooLarge(t *testing.T) {
	w := newTestController(t)
	w.maxBodyBytes = 16

	payload := []byte(`{"type": "user.created", "data": {"id": "idp_1"}}`)

	recorder := serve(w.Identity, identityRequest(t, w, "msg_big", payload))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "exceeds")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestWebhookBodyReadError(t *testing.T) {
	w := newTestController(t)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/identity", failingReader{})

	recorder := serve(w.Identity, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "exceeds")
}

func TestWebhookDuplicateDeliveryAcked(t *testing.T) {
	w := newTestController(t)
	payload := []byte(`{"type": "user.created", "data": {"id": "idp_1", "username": "aisha"}}`)

	first := serve(w.Identity, identityRequest(t, w, "msg_dup", payload))
	require.Equal(t, http.StatusOK, first.Code)

	second := serve(w.Identity, identityRequest(t, w, "msg_dup", payload))
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "duplicate")
}

func TestWebhookGuardUnavailableFallsThrough(t *testing.T) {
	w := newTestController(t)
	w.guard = &fakeGuard{err: fmt.Errorf("redis is down")}

	payload := []byte(`{"type": "user.created", "data": {"id": "idp_1", "username": "aisha"}}`)

	// First delivery dispatches, the redelivery is deduplicated by the event
	// store even without the redis guard.
	first := serve(w.Identity, identityRequest(t, w, "msg_guard", payload))
	require.Equal(t, http.StatusOK, first.Code)

	second := serve(w.Identity, identityRequest(t, w, "msg_guard", payload))
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestWebhookBillingDelivery(t *testing.T) {
	w := newTestController(t)
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_1", "customer": "cus_1", "subscription": "sub_1", "client_reference_id": "aisha"}}
	}`)

	recorder := serve(w.Billing, billingRequest(t, w, payload))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "processed")
}

func TestWebhookBillingMissingEventID(t *testing.T) {
	w := newTestController(t)
	payload := []byte(`{"type": "checkout.session.completed", "data": {"object": {}}}`)

	recorder := serve(w.Billing, billingRequest(t, w, payload))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWebhookBillingBadSignature(t *testing.T) {
	w := newTestController(t)
	payload := []byte(`{"id": "evt_1", "type": "checkout.session.completed"}`)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/billing", bytes.NewReader(payload))
	req.Header.Set(signature.HeaderBillingSignature, fmt.Sprintf("t=%d,v1=deadbeef", time.Now().Unix()))

	recorder := serve(w.Billing, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
