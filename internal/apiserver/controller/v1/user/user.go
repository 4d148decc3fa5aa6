// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package user handles requests for the user resource.
package user

import (
	srvv1 "github.com/faddlmatch/platform/internal/apiserver/service/v1"
)

// UserController create a user handler used to handle request for user resource.
type UserController struct {
	srv srvv1.Service
}

// NewUserController creates a user handler.
func NewUserController(srv srvv1.Service) *UserController {
	return &UserController{srv: srv}
}
