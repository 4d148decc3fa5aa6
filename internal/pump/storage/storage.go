// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package storage defines the upstream store the pump drains records from.
package storage

// AnalyticsKeyName is the redis list the api server reports activity to.
const AnalyticsKeyName = "fm-platform-activity"

// AnalyticsStorage is the interface of the store the pump reads from.
type AnalyticsStorage interface {
	Init(config interface{}) error
	GetName() string
	Connect() bool
	GetAndDeleteSet(setName string) []interface{}
}
