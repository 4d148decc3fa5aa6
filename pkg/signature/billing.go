// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// HeaderBillingSignature is the billing provider signature header.
const HeaderBillingSignature = "Billing-Signature"

// BillingVerifier verifies billing provider webhook deliveries.
type BillingVerifier struct {
	secret    []byte
	tolerance time.Duration

	now func() time.Time
}

// NewBillingVerifier creates a verifier with the endpoint secret.
func NewBillingVerifier(secret string, tolerance time.Duration) *BillingVerifier {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	return &BillingVerifier{secret: []byte(secret), tolerance: tolerance, now: time.Now}
}

// Verify checks the `t=...,v1=...` signature header against the raw payload.
func (v *BillingVerifier) Verify(header string, payload []byte) error {
	if header == "" {
		return ErrMissingHeaders
	}

	var timestamp string
	var candidates []string

	for _, pair := range strings.Split(header, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}

		switch parts[0] {
		case "t":
			timestamp = parts[1]
		case "v1":
			candidates = append(candidates, parts[1])
		}
	}

	if timestamp == "" || len(candidates) == 0 {
		return ErrMissingHeaders
	}

	seconds, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}

	now := v.now()
	ts := time.Unix(seconds, 0)
	if now.Sub(ts) > v.tolerance || ts.Sub(now) > v.tolerance {
		return ErrExpiredTimestamp
	}

	expected := v.sign(timestamp, payload)
	for _, candidate := range candidates {
		if hmac.Equal([]byte(candidate), []byte(expected)) {
			return nil
		}
	}

	return ErrNoMatchingSig
}

// Sign computes the v1 signature of a delivery, hex encoded. Exposed for
// producing test deliveries.
func (v *BillingVerifier) Sign(timestamp string, payload []byte) string {
	return v.sign(timestamp, payload)
}

// SignatureHeader builds a full signature header for the given payload at the
// given time. Test helper.
func (v *BillingVerifier) SignatureHeader(at time.Time, payload []byte) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)

	return fmt.Sprintf("t=%s,v1=%s", timestamp, v.sign(timestamp, payload))
}

// WithNow overrides the verifier clock. Test helper.
func (v *BillingVerifier) WithNow(now func() time.Time) *BillingVerifier {
	v.now = now

	return v
}

func (v *BillingVerifier) sign(timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%s.", timestamp)
	mac.Write(payload)

	return hex.EncodeToString(mac.Sum(nil))
}
