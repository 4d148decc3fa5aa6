// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package options contains the option structs shared by the faddlmatch
// servers. Every struct knows how to register its flags and validate
// itself; the per-server options types assemble them.
package options
