// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// pump ships activity records from redis to the analytics back ends.
package main

import (
	"math/rand"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/faddlmatch/platform/internal/pump"
)

func main() {
	rand.Seed(time.Now().UTC().UnixNano())

	pump.NewApp("fm-pump").Run()
}
