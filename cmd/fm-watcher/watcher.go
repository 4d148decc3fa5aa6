// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// watcher runs the periodic background jobs of the faddlmatch platform.
package main

import (
	"math/rand"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/faddlmatch/platform/internal/watcher"
)

func main() {
	rand.Seed(time.Now().UTC().UnixNano())

	watcher.NewApp("fm-watcher").Run()
}
