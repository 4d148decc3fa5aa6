// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marmotedu/component-base/pkg/json"

	"github.com/faddlmatch/platform/internal/pkg/notification"
	"github.com/faddlmatch/platform/pkg/log"
	"github.com/faddlmatch/platform/pkg/storage"
)

// publishMessage delivers a notice on the shared cache channel.
var publishMessage = func(message string) error {
	redisStore := &storage.RedisCluster{}

	return redisStore.Publish(notification.RedisPubSubChannel, message)
}

// Publish publish a redis event to specified redis channel when some action occurred.
func Publish() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() != http.StatusOK {
			log.L(c).Debugf("request failed with http status code `%d`, ignore publish message", c.Writer.Status())

			return
		}

		command, ok := commandFor(c.Request.URL.Path, c.Request.Method)
		if !ok {
			return
		}

		notify(c, command)
	}
}

// commandFor resolves the cache invalidation command of a mutating request.
// The resource segment matches the route groups the middleware is mounted on,
// /v1/profiles and /v1/subscription.
func commandFor(path, method string) (notification.Command, bool) {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
	default:
		return "", false
	}

	var resource string

	pathSplit := strings.Split(path, "/")
	if len(pathSplit) > 2 {
		resource = pathSplit[2]
	}

	switch resource {
	case "subscription":
		return notification.NoticeSubscriptionChanged, true
	case "profiles":
		return notification.NoticeProfileChanged, true
	default:
		return "", false
	}
}

func notify(ctx context.Context, command notification.Command) {
	message, _ := json.Marshal(notification.Notification{Command: command})

	if err := publishMessage(string(message)); err != nil {
		log.L(ctx).Errorw("publish redis message failed", "error", err.Error())

		return
	}
	log.L(ctx).Debugw("publish redis message", "command", command)
}
