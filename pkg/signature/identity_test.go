// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package signature

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func newTestVerifier(t *testing.T, at time.Time) *IdentityVerifier {
	t.Helper()

	v, err := NewIdentityVerifier(testSecret, DefaultTolerance)
	require.NoError(t, err)

	return v.WithNow(func() time.Time { return at })
}

func signedHeaders(v *IdentityVerifier, id string, at time.Time, payload []byte) http.Header {
	timestamp := strconv.FormatInt(at.Unix(), 10)

	header := http.Header{}
	header.Set(HeaderID, id)
	header.Set(HeaderTimestamp, timestamp)
	header.Set(HeaderSignature, "v1,"+v.Sign(id, timestamp, payload))

	return header
}

func TestIdentityVerify(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"type":"user.created","data":{"id":"idp_123"}}`)

	v := newTestVerifier(t, now)
	header := signedHeaders(v, "msg_p5jXN8AQM9LWM0D4loKWxJek", now, payload)

	id, err := v.Verify(header, payload)
	require.NoError(t, err)
	assert.Equal(t, "msg_p5jXN8AQM9LWM0D4loKWxJek", id)
}

func TestIdentityVerifyMissingHeaders(t *testing.T) {
	now := time.Now()
	payload := []byte(`{}`)
	v := newTestVerifier(t, now)

	tests := []string{HeaderID, HeaderTimestamp, HeaderSignature}
	for _, missing := range tests {
		header := signedHeaders(v, "msg_1", now, payload)
		header.Del(missing)

		_, err := v.Verify(header, payload)
		assert.ErrorIs(t, err, ErrMissingHeaders, "without %s", missing)
	}
}

func TestIdentityVerifyTamperedPayload(t *testing.T) {
	now := time.Now()
	payload := []byte(`{"type":"user.created"}`)
	v := newTestVerifier(t, now)
	header := signedHeaders(v, "msg_1", now, payload)

	_, err := v.Verify(header, []byte(`{"type":"user.deleted"}`))
	assert.ErrorIs(t, err, ErrNoMatchingSig)
}

func TestIdentityVerifyTolerance(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{}`)
	v := newTestVerifier(t, now)

	tests := []struct {
		name string
		at   time.Time
		err  error
	}{
		{"too old", now.Add(-6 * time.Minute), ErrExpiredTimestamp},
		{"too far ahead", now.Add(6 * time.Minute), ErrExpiredTimestamp},
		{"just inside past", now.Add(-4 * time.Minute), nil},
		{"just inside future", now.Add(4 * time.Minute), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := signedHeaders(v, "msg_1", tt.at, payload)
			_, err := v.Verify(header, payload)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIdentityVerifyMultipleSignatures(t *testing.T) {
	now := time.Now()
	payload := []byte(`{"type":"user.updated"}`)
	v := newTestVerifier(t, now)

	timestamp := strconv.FormatInt(now.Unix(), 10)
	good := v.Sign("msg_1", timestamp, payload)

	header := http.Header{}
	header.Set(HeaderID, "msg_1")
	header.Set(HeaderTimestamp, timestamp)
	// Older key versions may still sign deliveries during rotation.
	header.Set(HeaderSignature, "v1,bm90LXRoZS1yaWdodC1zaWc= v2,aWdub3JlZA== v1,"+good)

	_, err := v.Verify(header, payload)
	assert.NoError(t, err)
}

func TestIdentityVerifyUnknownVersionOnly(t *testing.T) {
	now := time.Now()
	payload := []byte(`{}`)
	v := newTestVerifier(t, now)

	timestamp := strconv.FormatInt(now.Unix(), 10)

	header := http.Header{}
	header.Set(HeaderID, "msg_1")
	header.Set(HeaderTimestamp, timestamp)
	header.Set(HeaderSignature, "v2,"+v.Sign("msg_1", timestamp, payload))

	_, err := v.Verify(header, payload)
	assert.ErrorIs(t, err, ErrNoMatchingSig)
}

func TestIdentityVerifyBadTimestamp(t *testing.T) {
	now := time.Now()
	payload := []byte(`{}`)
	v := newTestVerifier(t, now)

	header := http.Header{}
	header.Set(HeaderID, "msg_1")
	header.Set(HeaderTimestamp, "not-a-number")
	header.Set(HeaderSignature, "v1,whatever")

	_, err := v.Verify(header, payload)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestDecodeSecret(t *testing.T) {
	key, err := DecodeSecret(testSecret)
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString("MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw")
	require.NoError(t, err)
	assert.Equal(t, decoded, key)

	_, err = DecodeSecret("MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw")
	assert.ErrorIs(t, err, ErrInvalidSecret)

	_, err = DecodeSecret("whsec_!!!not-base64!!!")
	assert.ErrorIs(t, err, ErrInvalidSecret)
}
