// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marmotedu/component-base/pkg/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faddlmatch/platform/internal/pkg/notification"
)

func TestPublish(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		method      string
		path        string
		status      int
		wantCommand notification.Command
	}{
		{
			name:        "subscription cancel publishes a subscription notice",
			method:      http.MethodPost,
			path:        "/v1/subscription/cancel",
			status:      http.StatusOK,
			wantCommand: notification.NoticeSubscriptionChanged,
		},
		{
			name:        "subscription checkout publishes a subscription notice",
			method:      http.MethodPost,
			path:        "/v1/subscription/checkout",
			status:      http.StatusOK,
			wantCommand: notification.NoticeSubscriptionChanged,
		},
		{
			name:        "profile update publishes a profile notice",
			method:      http.MethodPut,
			path:        "/v1/profiles",
			status:      http.StatusOK,
			wantCommand: notification.NoticeProfileChanged,
		},
		{
			name:   "profile read publishes nothing",
			method: http.MethodGet,
			path:   "/v1/profiles",
			status: http.StatusOK,
		},
		{
			name:   "failed mutation publishes nothing",
			method: http.MethodPost,
			path:   "/v1/subscription/cancel",
			status: http.StatusInternalServerError,
		},
		{
			name:   "unrelated resource publishes nothing",
			method: http.MethodPost,
			path:   "/v1/matches/discover",
			status: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var published []string

			restore := publishMessage
			publishMessage = func(message string) error {
				published = append(published, message)

				return nil
			}
			defer func() { publishMessage = restore }()

			g := gin.New()
			g.Use(Publish())
			g.Handle(tt.method, tt.path, func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			g.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if tt.wantCommand == "" {
				assert.Empty(t, published)

				return
			}

			require.Len(t, published, 1)

			var notice notification.Notification
			require.NoError(t, json.Unmarshal([]byte(published[0]), &notice))
			assert.Equal(t, tt.wantCommand, notice.Command)
		})
	}
}
