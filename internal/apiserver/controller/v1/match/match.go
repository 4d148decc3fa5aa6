// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package match handles requests for the daily match resource.
package match

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marmotedu/component-base/pkg/core"
	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/apiserver/analytics"
	srvv1 "github.com/faddlmatch/platform/internal/apiserver/service/v1"
	"github.com/faddlmatch/platform/internal/pkg/code"
	"github.com/faddlmatch/platform/internal/pkg/middleware"
	v1 "github.com/faddlmatch/platform/pkg/api/v1"
	"github.com/faddlmatch/platform/pkg/log"
)

// MatchController handles requests for the match resource.
type MatchController struct {
	srv srvv1.Service
}

// NewMatchController creates a match handler.
func NewMatchController(srv srvv1.Service) *MatchController {
	return &MatchController{srv: srv}
}

// Discover returns the daily match batch of the authenticated user,
// generating it on first call of the day.
func (m *MatchController) Discover(c *gin.Context) {
	log.L(c).Info("match discover function called.")

	matches, err := m.srv.Matches().Discover(c, c.GetString(middleware.UsernameKey))
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, matches)
}

// List lists the matches of the authenticated user.
func (m *MatchController) List(c *gin.Context) {
	log.L(c).Info("match list function called.")

	var r metav1.ListOptions
	if err := c.ShouldBindQuery(&r); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)

		return
	}

	matches, err := m.srv.Matches().List(c, c.GetString(middleware.UsernameKey), r)
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, matches)
}

// Get returns a single match the authenticated user participates in.
func (m *MatchController) Get(c *gin.Context) {
	log.L(c).Info("match get function called.")

	match, err := m.srv.Matches().Get(c, c.GetString(middleware.UsernameKey), c.Param("id"))
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, match)
}

// Accept records an accept decision on a match.
func (m *MatchController) Accept(c *gin.Context) {
	m.decide(c, v1.DecisionAccepted)
}

// Decline records a decline decision on a match.
func (m *MatchController) Decline(c *gin.Context) {
	m.decide(c, v1.DecisionDeclined)
}

func (m *MatchController) decide(c *gin.Context, decision string) {
	log.L(c).Infof("match %s function called.", decision)

	username := c.GetString(middleware.UsernameKey)

	match, err := m.srv.Matches().Decide(c, username, c.Param("id"), decision)
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	recordDecision(username, decision)

	core.WriteResponse(c, nil, match)
}

func recordDecision(username, decision string) {
	reporter := analytics.GetAnalytics()
	if reporter == nil {
		return
	}

	record := analytics.AnalyticsRecord{
		TimeStamp: time.Now().Unix(),
		Username:  username,
		Kind:      analytics.KindMatchDecision,
		Detail:    decision,
	}
	record.SetExpiry(0)
	_ = reporter.RecordHit(&record)
}
