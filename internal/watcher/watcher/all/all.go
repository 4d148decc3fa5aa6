// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package all imports every watcher so their init functions register them.
package all

import (
	_ "github.com/faddlmatch/platform/internal/watcher/watcher/clean"
	_ "github.com/faddlmatch/platform/internal/watcher/watcher/expire"
)
