// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package signature

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const billingSecret = "bsec_test_4eC39HqLyjWDarjtT1zdp7dc"

func TestBillingVerify(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"id":"evt_1","type":"invoice.paid"}`)

	v := NewBillingVerifier(billingSecret, DefaultTolerance).WithNow(func() time.Time { return now })
	header := v.SignatureHeader(now, payload)

	assert.NoError(t, v.Verify(header, payload))
}

func TestBillingVerifyTampered(t *testing.T) {
	now := time.Now()
	payload := []byte(`{"id":"evt_1"}`)

	v := NewBillingVerifier(billingSecret, DefaultTolerance).WithNow(func() time.Time { return now })
	header := v.SignatureHeader(now, payload)

	assert.ErrorIs(t, v.Verify(header, []byte(`{"id":"evt_2"}`)), ErrNoMatchingSig)
}

func TestBillingVerifyWrongSecret(t *testing.T) {
	now := time.Now()
	payload := []byte(`{"id":"evt_1"}`)

	signer := NewBillingVerifier("bsec_other", DefaultTolerance)
	header := signer.SignatureHeader(now, payload)

	v := NewBillingVerifier(billingSecret, DefaultTolerance).WithNow(func() time.Time { return now })
	assert.ErrorIs(t, v.Verify(header, payload), ErrNoMatchingSig)
}

func TestBillingVerifyExpired(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{}`)

	v := NewBillingVerifier(billingSecret, DefaultTolerance).WithNow(func() time.Time { return now })
	header := v.SignatureHeader(now.Add(-10*time.Minute), payload)

	assert.ErrorIs(t, v.Verify(header, payload), ErrExpiredTimestamp)
}

func TestBillingVerifyMalformedHeader(t *testing.T) {
	now := time.Now()
	payload := []byte(`{}`)
	v := NewBillingVerifier(billingSecret, DefaultTolerance).WithNow(func() time.Time { return now })

	tests := []struct {
		name   string
		header string
		err    error
	}{
		{"empty", "", ErrMissingHeaders},
		{"no signature", fmt.Sprintf("t=%d", now.Unix()), ErrMissingHeaders},
		{"no timestamp", "v1=deadbeef", ErrMissingHeaders},
		{"garbage timestamp", "t=soon,v1=deadbeef", ErrInvalidTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, v.Verify(tt.header, payload), tt.err)
		})
	}
}

func TestBillingVerifyMultipleCandidates(t *testing.T) {
	now := time.Now()
	payload := []byte(`{"id":"evt_1"}`)

	v := NewBillingVerifier(billingSecret, DefaultTolerance).WithNow(func() time.Time { return now })
	timestamp := fmt.Sprintf("%d", now.Unix())
	header := fmt.Sprintf("t=%s,v1=0000,v1=%s", timestamp, v.Sign(timestamp, payload))

	assert.NoError(t, v.Verify(header, payload))
}
