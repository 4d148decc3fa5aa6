// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebhookOptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(o *WebhookOptions)
		wantErrs int
	}{
		{
			name:     "missing signing secret rejected",
			mutate:   func(o *WebhookOptions) {},
			wantErrs: 1,
		},
		{
			name: "secret without whsec_ prefix rejected",
			mutate: func(o *WebhookOptions) {
				o.SigningSecret = "MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"
			},
			wantErrs: 1,
		},
		{
			name: "valid options",
			mutate: func(o *WebhookOptions) {
				o.SigningSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"
			},
			wantErrs: 0,
		},
		{
			name: "non positive tolerance rejected",
			mutate: func(o *WebhookOptions) {
				o.SigningSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"
				o.Tolerance = 0
			},
			wantErrs: 1,
		},
		{
			name: "non positive body cap rejected",
			mutate: func(o *WebhookOptions) {
				o.SigningSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"
				o.MaxBodyBytes = 0
			},
			wantErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewWebhookOptions()
			tt.mutate(o)

			assert.Len(t, o.Validate(), tt.wantErrs)
		})
	}
}
