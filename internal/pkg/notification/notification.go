// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package notification defines the pub/sub messages exchanged between the
// api server and in-memory caches that mirror mutable resources.
package notification

// RedisPubSubChannel is the redis channel mutation notices are published to.
const RedisPubSubChannel = "faddlmatch.cluster.notifications"

// Command is the type of a mutation notice.
type Command string

// Defined notification commands.
const (
	NoticeSubscriptionChanged Command = "SubscriptionChanged"
	NoticeProfileChanged      Command = "ProfileChanged"
)

// Notification is a message broadcast to subscribed cache holders.
type Notification struct {
	Command Command `json:"command"`
	Payload string  `json:"payload"`
}
