// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package subscription handles requests for the subscription resource and the
// plan catalog.
package subscription

import (
	"github.com/gin-gonic/gin"
	"github.com/marmotedu/component-base/pkg/core"
	"github.com/marmotedu/errors"

	srvv1 "github.com/faddlmatch/platform/internal/apiserver/service/v1"
	"github.com/faddlmatch/platform/internal/pkg/code"
	"github.com/faddlmatch/platform/internal/pkg/middleware"
	"github.com/faddlmatch/platform/pkg/log"
)

// SubscriptionController handles requests for the subscription resource.
type SubscriptionController struct {
	srv srvv1.Service
}

// NewSubscriptionController creates a subscription handler.
func NewSubscriptionController(srv srvv1.Service) *SubscriptionController {
	return &SubscriptionController{srv: srv}
}

// CheckoutRequest selects the plan and the redirect targets of a checkout
// session.
type CheckoutRequest struct {
	Tier       string `json:"tier"       binding:"required,oneof=basic premium"`
	SuccessURL string `json:"successURL" binding:"required,url"`
	CancelURL  string `json:"cancelURL"  binding:"required,url"`
}

// PortalRequest selects the redirect target of a billing portal session.
type PortalRequest struct {
	ReturnURL string `json:"returnURL" binding:"required,url"`
}

// SessionResponse returns the hosted provider URL the client should redirect
// to.
type SessionResponse struct {
	URL string `json:"url"`
}

// Get returns the subscription of the authenticated user.
func (s *SubscriptionController) Get(c *gin.Context) {
	log.L(c).Info("subscription get function called.")

	subscription, err := s.srv.Subscriptions().Get(c, c.GetString(middleware.UsernameKey))
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, subscription)
}

// Plans returns the plan catalog.
func (s *SubscriptionController) Plans(c *gin.Context) {
	log.L(c).Info("plan list function called.")

	plans, err := s.srv.Subscriptions().Plans(c)
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, plans)
}

// Checkout opens a provider checkout session for the requested tier.
func (s *SubscriptionController) Checkout(c *gin.Context) {
	log.L(c).Info("subscription checkout function called.")

	var r CheckoutRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)

		return
	}

	url, err := s.srv.Subscriptions().Checkout(c, c.GetString(middleware.UsernameKey), r.Tier, r.SuccessURL, r.CancelURL)
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, SessionResponse{URL: url})
}

// Portal opens a provider billing portal session.
func (s *SubscriptionController) Portal(c *gin.Context) {
	log.L(c).Info("subscription portal function called.")

	var r PortalRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)

		return
	}

	url, err := s.srv.Subscriptions().Portal(c, c.GetString(middleware.UsernameKey), r.ReturnURL)
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, SessionResponse{URL: url})
}

// Cancel flags the subscription to end at period close.
func (s *SubscriptionController) Cancel(c *gin.Context) {
	log.L(c).Info("subscription cancel function called.")

	subscription, err := s.srv.Subscriptions().Cancel(c, c.GetString(middleware.UsernameKey))
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, subscription)
}

// Reactivate clears a pending cancellation.
func (s *SubscriptionController) Reactivate(c *gin.Context) {
	log.L(c).Info("subscription reactivate function called.")

	subscription, err := s.srv.Subscriptions().Reactivate(c, c.GetString(middleware.UsernameKey))
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, subscription)
}
