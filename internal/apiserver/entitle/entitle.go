// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package entitle caches subscription entitlements in memory. The cache is
// flushed when a mutation notice arrives on the cluster notification channel,
// so webhook driven subscription changes become visible without a restart.
package entitle

import (
	"context"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	metav1 "github.com/marmotedu/component-base/pkg/meta/v1"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/apiserver/store"
	"github.com/faddlmatch/platform/internal/pkg/code"
	"github.com/faddlmatch/platform/internal/pkg/notification"
	"github.com/faddlmatch/platform/pkg/log"
	"github.com/faddlmatch/platform/pkg/storage"
)

// Entitlement is the cached answer for one user.
type Entitlement struct {
	Tier   string
	Active bool
}

// cacheTTL bounds staleness when a notification is missed.
const cacheTTL = time.Minute

// Entitlements resolves the subscription entitlement of users, backed by a
// ristretto cache in front of the store.
type Entitlements struct {
	lock  *sync.RWMutex
	cli   store.Factory
	cache *ristretto.Cache
}

var (
	onceEntitle sync.Once
	entitleIns  *Entitlements
	entitleErr  error
)

// GetEntitlementsOr return the entitlements instance, creating it with the
// given store factory on first use.
func GetEntitlementsOr(cli store.Factory) (*Entitlements, error) {
	if cli != nil {
		onceEntitle.Do(func() {
			var cache *ristretto.Cache

			c := &ristretto.Config{
				NumCounters: 1e7,     // number of keys to track frequency of (10M).
				MaxCost:     1 << 30, // maximum cost of cache (1GB).
				BufferItems: 64,      // number of keys per Get buffer.
				Cost:        nil,
			}

			cache, entitleErr = ristretto.NewCache(c)
			if entitleErr != nil {
				return
			}

			entitleIns = &Entitlements{
				cli:   cli,
				lock:  new(sync.RWMutex),
				cache: cache,
			}
		})
	}

	if entitleIns == nil && entitleErr == nil {
		entitleErr = errors.New("entitlements instance not initialized")
	}

	return entitleIns, entitleErr
}

// Get returns the entitlement of the given user. A missing subscription is a
// valid answer: the user is on the free tier and not entitled.
func (e *Entitlements) Get(ctx context.Context, username string) (Entitlement, error) {
	e.lock.RLock()
	if value, ok := e.cache.Get(username); ok {
		e.lock.RUnlock()

		return value.(Entitlement), nil
	}
	e.lock.RUnlock()

	subscription, err := e.cli.Subscriptions().Get(ctx, username, metav1.GetOptions{})
	if err != nil {
		if errors.IsCode(err, code.ErrSubscriptionNotFound) {
			ent := Entitlement{}
			e.set(username, ent)

			return ent, nil
		}

		return Entitlement{}, err
	}

	ent := Entitlement{
		Tier:   subscription.Tier,
		Active: subscription.Active(time.Now()),
	}
	e.set(username, ent)

	return ent, nil
}

func (e *Entitlements) set(username string, ent Entitlement) {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.cache.SetWithTTL(username, ent, 1, cacheTTL)
}

// Flush drops every cached entitlement.
func (e *Entitlements) Flush() {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.cache.Clear()
}

// StartWatch subscribes to the cluster notification channel and flushes the
// cache on subscription changes. It blocks until ctx is done.
func (e *Entitlements) StartWatch(ctx context.Context) {
	cacheStore := storage.RedisCluster{}
	cacheStore.Connect()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		err := cacheStore.StartPubSubHandler(notification.RedisPubSubChannel, func(v interface{}) {
			e.Flush()
			log.Debug("entitlement cache flushed on cluster notification")
		})
		if err != nil {
			if !errors.Is(err, storage.ErrRedisIsDown) {
				log.Errorf("Connection to Redis failed, reconnect in 10s: %s", err.Error())
			}

			time.Sleep(10 * time.Second)
			log.Warnf("Reconnecting: %s", err.Error())
		}
	}
}
