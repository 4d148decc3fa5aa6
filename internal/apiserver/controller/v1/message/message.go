// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package message handles requests for conversations and their messages.
package message

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
	"github.com/faddlmatch/platform/pkg/log"
)

// MessageController handles requests for the conversation and message
// resources.
type MessageController struct {
	srv srvv1.Service
}

// NewMessageController creates a message handler.
func NewMessageController(srv srvv1.Service) *MessageController {
	return &MessageController{srv: srv}
}

// SendRequest carries the body of an outgoing message.
type SendRequest struct {
	Body string `json:"body" binding:"required"`
}

// ListConversations lists the conversations of the authenticated user.
func (m *MessageController) ListConversations(c *gin.Context) {
	log.L(c).Info("conversation list function called.")

	var r metav1.ListOptions
	if err := c.ShouldBindQuery(&r); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)

		return
	}

	conversations, err := m.srv.Messages().ListConversations(c, c.GetString(middleware.UsernameKey), r)
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, conversations)
}

// ListMessages lists the messages of one conversation.
func (m *MessageController) ListMessages(c *gin.Context) {
	log.L(c).Info("message list function called.")

	var r metav1.ListOptions
	if err := c.ShouldBindQuery(&r); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)

		return
	}

	messages, err := m.srv.Messages().ListMessages(c, c.GetString(middleware.UsernameKey), c.Param("id"), r)
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	core.WriteResponse(c, nil, messages)
}

// Send appends a message to a conversation.
func (m *MessageController) Send(c *gin.Context) {
	log.L(c).Info("message send function called.")

	var r SendRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)

		return
	}

	username := c.GetString(middleware.UsernameKey)

	message, err := m.srv.Messages().Send(c, username, c.Param("id"), r.Body)
	if err != nil {
		core.WriteResponse(c, err, nil)

		return
	}

	recordMessage(username)

	core.WriteResponse(c, nil, message)
}

func recordMessage(username string) {
	reporter := analytics.GetAnalytics()
	if reporter == nil {
		return
	}

	record := analytics.AnalyticsRecord{
		TimeStamp: time.Now().Unix(),
		Username:  username,
		Kind:      analytics.KindMessage,
	}
	record.SetExpiry(0)
	_ = reporter.RecordHit(&record)
}
