// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package log

import "context"

// Keys under which request-scoped values are stored in the context. The gin
// middleware sets them, L picks them up so every log line of a request
// carries the request id and acting username.
const (
	KeyRequestID   string = "requestID"
	KeyUsername    string = "username"
	KeyWatcherName string = "watcher"
)

// L returns a logger enriched with well-known fields found in ctx.
func L(ctx context.Context) *zapLogger {
	lg := std.clone()

	if requestID := ctx.Value(KeyRequestID); requestID != nil {
		lg.zapLogger = lg.zapLogger.With(Any(KeyRequestID, requestID))
	}
	if username := ctx.Value(KeyUsername); username != nil {
		lg.zapLogger = lg.zapLogger.With(Any(KeyUsername, username))
	}
	if watcherName := ctx.Value(KeyWatcherName); watcherName != nil {
		lg.zapLogger = lg.zapLogger.With(Any(KeyWatcherName, watcherName))
	}

	return lg
}

func (l *zapLogger) clone() *zapLogger {
	copied := *l

	return &copied
}
