// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package signature verifies webhook delivery signatures. Identity provider
// deliveries follow the whsec scheme: the signed content is
// `id.timestamp.payload`, the signature header carries space separated
// `version,base64(mac)` entries. Billing provider deliveries follow the
// `t=timestamp,v1=hex(mac)` scheme where the signed content is
// `timestamp.payload`.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marmotedu/errors"
)

// Identity delivery headers.
const (
	HeaderID        = "webhook-id"
	HeaderTimestamp = "webhook-timestamp"
	HeaderSignature = "webhook-signature"
)

// SecretPrefix marks a serialized identity signing secret.
const SecretPrefix = "whsec_"

// DefaultTolerance bounds the accepted age and future skew of a delivery.
const DefaultTolerance = 5 * time.Minute

// Verification errors.
var (
	ErrMissingHeaders   = errors.New("missing webhook signature headers")
	ErrInvalidSecret    = errors.New("invalid signing secret")
	ErrInvalidTimestamp = errors.New("invalid webhook timestamp")
	ErrExpiredTimestamp = errors.New("webhook timestamp outside of tolerance window")
	ErrNoMatchingSig    = errors.New("no matching signature found")
)

// IdentityVerifier verifies identity provider webhook deliveries.
type IdentityVerifier struct {
	secret    []byte
	tolerance time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// NewIdentityVerifier creates a verifier from a whsec_ prefixed secret.
func NewIdentityVerifier(secret string, tolerance time.Duration) (*IdentityVerifier, error) {
	key, err := DecodeSecret(secret)
	if err != nil {
		return nil, err
	}

	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	return &IdentityVerifier{secret: key, tolerance: tolerance, now: time.Now}, nil
}

// DecodeSecret strips the whsec_ prefix and base64 decodes the key material.
func DecodeSecret(secret string) ([]byte, error) {
	if !strings.HasPrefix(secret, SecretPrefix) {
		return nil, ErrInvalidSecret
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, SecretPrefix))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSecret, err.Error())
	}

	return key, nil
}

// Verify checks the signature headers against the raw payload. It returns the
// delivery id on success.
func (v *IdentityVerifier) Verify(header http.Header, payload []byte) (string, error) {
	id := header.Get(HeaderID)
	timestamp := header.Get(HeaderTimestamp)
	signatures := header.Get(HeaderSignature)

	if id == "" || timestamp == "" || signatures == "" {
		return "", ErrMissingHeaders
	}

	ts, err := parseTimestamp(timestamp)
	if err != nil {
		return "", err
	}

	now := v.now()
	if now.Sub(ts) > v.tolerance || ts.Sub(now) > v.tolerance {
		return "", ErrExpiredTimestamp
	}

	expected := v.sign(id, timestamp, payload)

	// The header may carry several space separated entries, each of the
	// form `version,signature`. Only v1 entries count.
	for _, entry := range strings.Split(signatures, " ") {
		parts := strings.SplitN(entry, ",", 2)
		if len(parts) != 2 || parts[0] != "v1" {
			continue
		}

		if hmac.Equal([]byte(parts[1]), []byte(expected)) {
			return id, nil
		}
	}

	return "", ErrNoMatchingSig
}

// Sign computes the v1 signature of a delivery, base64 encoded. Exposed for
// producing test deliveries.
func (v *IdentityVerifier) Sign(id, timestamp string, payload []byte) string {
	return v.sign(id, timestamp, payload)
}

func (v *IdentityVerifier) sign(id, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%s.%s.", id, timestamp)
	mac.Write(payload)

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// WithNow overrides the verifier clock. Test helper.
func (v *IdentityVerifier) WithNow(now func() time.Time) *IdentityVerifier {
	v.now = now

	return v
}

func parseTimestamp(value string) (time.Time, error) {
	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, errors.Wrap(ErrInvalidTimestamp, err.Error())
	}

	return time.Unix(seconds, 0), nil
}
