// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package analytics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type capturingStore struct {
	sync.Mutex
	values [][]byte
}

func (c *capturingStore) Connect() bool {
	return true
}

func (c *capturingStore) AppendToSetPipelined(key string, values [][]byte) {
	c.Lock()
	defer c.Unlock()

	c.values = append(c.values, values...)
}

func (c *capturingStore) count() int {
	c.Lock()
	defer c.Unlock()

	return len(c.values)
}

func newTestOptions() *AnalyticsOptions {
	return &AnalyticsOptions{
		Enable:                true,
		PoolSize:              2,
		RecordsBufferSize:     100,
		FlushInterval:         100,
		StorageExpirationTime: time.Hour,
	}
}

func TestAnalyticsRecordsFlushedOnStop(t *testing.T) {
	store := &capturingStore{}
	reporter := NewAnalytics(newTestOptions(), store)

	reporter.Start()

	for i := 0; i < 10; i++ {
		record := AnalyticsRecord{
			TimeStamp: time.Now().Unix(),
			Username:  "aisha",
			Kind:      KindLogin,
		}
		record.SetExpiry(3600)
		require.NoError(t, reporter.RecordHit(&record))
	}

	reporter.Stop()

	assert.Equal(t, 10, store.count())

	var decoded AnalyticsRecord
	require.NoError(t, msgpack.Unmarshal(store.values[0], &decoded))
	assert.Equal(t, "aisha", decoded.Username)
	assert.Equal(t, KindLogin, decoded.Kind)
	assert.False(t, decoded.ExpireAt.IsZero())
}

func TestAnalyticsRecordHitAfterStop(t *testing.T) {
	store := &capturingStore{}
	reporter := NewAnalytics(newTestOptions(), store)

	reporter.Start()
	reporter.Stop()

	// Records offered after Stop are dropped, not queued.
	require.NoError(t, reporter.RecordHit(&AnalyticsRecord{Kind: KindMessage}))
	assert.Equal(t, 0, store.count())
}

func TestAnalyticsSetExpiry(t *testing.T) {
	var record AnalyticsRecord

	record.SetExpiry(60)
	assert.WithinDuration(t, time.Now().Add(time.Minute), record.ExpireAt, 5*time.Second)

	record.SetExpiry(0)
	assert.True(t, record.ExpireAt.After(time.Now().AddDate(50, 0, 0)), "zero expiration keeps records effectively forever")
}

func TestDurationToMillisecond(t *testing.T) {
	assert.InDelta(t, 1500.0, DurationToMillisecond(1500*time.Millisecond), 0.001)
}
