// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package webhook ingests identity and billing provider deliveries. Every
// delivery is verified against its signature scheme before the event is
// handed to the event service, and duplicate deliveries are acknowledged
// without redispatch.
package webhook

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marmotedu/component-base/pkg/core"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/apiserver/analytics"
	srvv1 "github.com/faddlmatch/platform/internal/apiserver/service/v1"
	"github.com/faddlmatch/platform/internal/pkg/code"
	genericoptions "github.com/faddlmatch/platform/internal/pkg/options"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
	"github.com/faddlmatch/platform/pkg/log"
	"github.com/faddlmatch/platform/pkg/signature"
	"github.com/faddlmatch/platform/pkg/storage"
)

// deduplicator guards against concurrent deliveries of the same event. The
// event store unique index remains the source of truth.
type deduplicator interface {
	SetKeyIfNotExists(keyName, value string, timeout time.Duration) (bool, error)
}

// WebhookController handles webhook ingestion requests.
type WebhookController struct {
	srv          srvv1.Service
	identity     *signature.IdentityVerifier
	billing      *signature.BillingVerifier
	maxBodyBytes int64
	guardTTL     time.Duration
	guard        deduplicator
}

// NewWebhookController creates a webhook handler. The signing secrets are
// validated at option parsing time.
func NewWebhookController(
	srv srvv1.Service,
	webhookOpts *genericoptions.WebhookOptions,
	billingOpts *genericoptions.BillingOptions,
) *WebhookController {
	identity, err := signature.NewIdentityVerifier(webhookOpts.SigningSecret, webhookOpts.Tolerance)
	if err != nil {
		log.Fatalf("build identity webhook verifier failed: %s", err.Error())
	}

	return &WebhookController{
		srv:          srv,
		identity:     identity,
		billing:      signature.NewBillingVerifier(billingOpts.EndpointSecret, billingOpts.Tolerance),
		maxBodyBytes: webhookOpts.MaxBodyBytes,
		guardTTL:     2 * webhookOpts.Tolerance,
		guard:        &storage.RedisCluster{KeyPrefix: "webhook-dedup-"},
	}
}

// Identity ingests a delivery from the identity provider.
func (w *WebhookController) Identity(c *gin.Context) {
	log.L(c).Info("identity webhook function called.")

	payload, err := w.readBody(c)
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	eventID, err := w.identity.Verify(c.Request.Header, payload)
	if err != nil {
		core.WriteResponse(c, signatureError(err), nil)

		return
	}

	w.process(c, v1.ProviderIdentity, eventID, payload)
}

// Billing ingests a delivery from the billing provider. The event identifier
// rides in the payload, not in a header.
func (w *WebhookController) Billing(c *gin.Context) {
	log.L(c).Info("billing webhook function called.")

	payload, err := w.readBody(c)
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	if err := w.billing.Verify(c.GetHeader(signature.HeaderBillingSignature), payload); err != nil {
		core.WriteResponse(c, signatureError(err), nil)

		return
	}

	var envelope struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil || envelope.ID == "" {
		core.WriteResponse(c, errors.WithCode(code.ErrEventUnparsable, "event identifier missing"), nil)

		return
	}

	w.process(c, v1.ProviderBilling, envelope.ID, payload)
}

func (w *WebhookController) process(c *gin.Context, provider, eventID string, payload []byte) {
	// A delivery in flight for the same event acks immediately. Redis being
	// unavailable falls through to the store unique index.
	acquired, err := w.guard.SetKeyIfNotExists(provider+"-"+eventID, "1", w.guardTTL)
	if err == nil && !acquired {
		log.L(c).Infof("event %s/%s delivery already in flight", provider, eventID)
		core.WriteResponse(c, nil, map[string]string{"status": "duplicate"})

		return
	}

	recordDispatch(provider, eventID)

	event, err := w.srv.Events().Process(c, provider, eventID, payload)
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, event)
}

func (w *WebhookController) readBody(c *gin.Context) ([]byte, error) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, w.maxBodyBytes+1))
	if err != nil {
		return nil, errors.WithCode(code.ErrBind, "read webhook payload failed: %s", err.Error())
	}

	if int64(len(payload)) > w.maxBodyBytes {
		return nil, errors.WithCode(code.ErrPayloadTooLarge, "webhook payload exceeds %d bytes", w.maxBodyBytes)
	}

	return payload, nil
}

func signatureError(err error) error {
	switch {
	case errors.Is(err, signature.ErrMissingHeaders):
		return errors.WithCode(code.ErrSignatureMissing, "%s", err.Error())
	case errors.Is(err, signature.ErrExpiredTimestamp):
		return errors.WithCode(code.ErrSignatureExpired, "%s", err.Error())
	default:
		return errors.WithCode(code.ErrSignatureMismatch, "%s", err.Error())
	}
}

func recordDispatch(provider, eventID string) {
	reporter := analytics.GetAnalytics()
	if reporter == nil {
		return
	}

	record := analytics.AnalyticsRecord{
		TimeStamp: time.Now().Unix(),
		Kind:      analytics.KindWebhook,
		Provider:  provider,
		Detail:    eventID,
	}
	record.SetExpiry(0)
	_ = reporter.RecordHit(&record)
}
