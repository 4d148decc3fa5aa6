// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// apiserver is the api server for the faddlmatch platform.
// It is responsible for serving the member-facing REST operations and for
// ingesting identity and billing webhooks.
package main

import (
	"math/rand"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/faddlmatch/platform/internal/apiserver"
)

func main() {
	rand.Seed(time.Now().UTC().UnixNano())

	apiserver.NewApp("fm-apiserver").Run()
}
