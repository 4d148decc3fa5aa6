// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package v1 defines the REST resource models served by fm-apiserver:
// users, profiles, matches, conversations/messages, subscriptions and
// webhook events. All resources embed the common object metadata and are
// stored through gorm.
package v1
