// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/marmotedu/component-base/pkg/core"
	"github.com/marmotedu/errors"
	"golang.org/x/time/rate"

	"github.com/faddlmatch/platform/internal/pkg/code"
)

// IPRateLimiter keeps a token bucket per client IP. Buckets are created
// lazily on first sight of an address and never evicted.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewIPRateLimiter creates an IPRateLimiter allowing r events per second
// with the given burst size for each distinct client IP.
func NewIPRateLimiter(r float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(r),
		burst:    burst,
	}
}

// GetLimiter returns the limiter of the given IP, creating it when absent.
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = limiter
	}

	return limiter
}

// RateLimit is a middleware that rejects requests exceeding the per-IP
// token bucket with 429.
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			core.WriteResponse(c, errors.WithCode(code.ErrTooManyRequests, "rate limit exceeded"), nil)
			c.Abort()

			return
		}

		c.Next()
	}
}
