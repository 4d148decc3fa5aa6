// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package analytics defines the activity record the pump drains from redis
// and fans out to its back ends.
package analytics

import "time"

// AnalyticsRecord is the decoded form of one activity hit. The layout matches
// what the api server reports.
type AnalyticsRecord struct {
	TimeStamp int64     `json:"timestamp"           msgpack:"timestamp"          bson:"timestamp"`
	Username  string    `json:"username"            msgpack:"username"           bson:"username"`
	Kind      string    `json:"kind"                msgpack:"kind"               bson:"kind"`
	Provider  string    `json:"provider,omitempty"  msgpack:"provider"           bson:"provider"`
	EventType string    `json:"eventType,omitempty" msgpack:"eventType"          bson:"eventType"`
	Detail    string    `json:"detail,omitempty"    msgpack:"detail"             bson:"detail"`
	ExpireAt  time.Time `json:"expireAt"            msgpack:"expireAt"           bson:"expireAt"`
}
