// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package storage defines a redis-backed storage abstraction shared by the
// apiserver (activity reporting, webhook dedupe, cache invalidation), the
// watcher and the pump. A single universal client is kept package-wide and
// re-established in the background by ConnectToRedis.
package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	redis "github.com/go-redis/redis/v7"

	"github.com/faddlmatch/platform/pkg/log"
)

// Config defines options for redis cluster.
type Config struct {
	Host                  string
	Port                  int
	Addrs                 []string
	MasterName            string
	Username              string
	Password              string
	Database              int
	MaxIdle               int
	MaxActive             int
	Timeout               int
	EnableCluster         bool
	UseSSL                bool
	SSLInsecureSkipVerify bool
}

// ErrRedisIsDown is returned when we can't communicate with redis.
var ErrRedisIsDown = fmt.Errorf("storage: Redis is either down or was not configured")

var (
	singleton atomic.Value // holds redis.UniversalClient
	redisUp   atomic.Value
)

// DisableRedis very handily lets us disable the redis client in tests.
func DisableRedis(setRedisDown bool) {
	redisUp.Store(!setRedisDown)
}

func singletonClient() redis.UniversalClient {
	v := singleton.Load()
	if v == nil {
		return nil
	}

	return v.(redis.UniversalClient)
}

// Connected returns true if the redis connection has been established.
func Connected() bool {
	if v := redisUp.Load(); v != nil {
		return v.(bool)
	}

	return false
}

func newRedisClusterPool(config *Config) redis.UniversalClient {
	poolSize := 500
	if config.MaxActive > 0 {
		poolSize = config.MaxActive
	}

	timeout := 5 * time.Second
	if config.Timeout > 0 {
		timeout = time.Duration(config.Timeout) * time.Second
	}

	var tlsConfig *tls.Config
	if config.UseSSL {
		tlsConfig = &tls.Config{
			InsecureSkipVerify: config.SSLInsecureSkipVerify,
		}
	}

	addrs := config.Addrs
	if len(addrs) == 0 && config.Host != "" {
		addrs = []string{config.Host + ":" + strconv.Itoa(config.Port)}
	}

	opts := &redis.UniversalOptions{
		Addrs:        addrs,
		MasterName:   config.MasterName,
		Username:     config.Username,
		Password:     config.Password,
		DB:           config.Database,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  240 * time.Second,
		PoolSize:     poolSize,
		TLSConfig:    tlsConfig,
	}

	if opts.MasterName != "" {
		return redis.NewFailoverClient(opts.Failover())
	}
	if config.EnableCluster {
		return redis.NewClusterClient(opts.Cluster())
	}

	return redis.NewClient(opts.Simple())
}

// ConnectToRedis periodically checks the redis connection and (re)creates
// the singleton client. It returns when ctx is cancelled.
func ConnectToRedis(ctx context.Context, config *Config) {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()

	c := RedisCluster{}
	if !connectSingleton(config) {
		redisUp.Store(false)
	}
	redisUp.Store(clusterConnectionIsOpen(&c))

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if !connectSingleton(config) {
				redisUp.Store(false)

				continue
			}

			redisUp.Store(clusterConnectionIsOpen(&c))
		}
	}
}

func connectSingleton(config *Config) bool {
	if singletonClient() == nil {
		log.Debug("Connecting to redis cluster")
		singleton.Store(newRedisClusterPool(config))
	}

	return true
}

func clusterConnectionIsOpen(cluster *RedisCluster) bool {
	c := singletonClient()
	if c == nil {
		return false
	}
	testKey := "redis-test-" + strconv.FormatInt(time.Now().UnixNano(), 10)
	if err := c.Set(testKey, "test", time.Second).Err(); err != nil {
		return false
	}
	if err := c.Get(testKey).Err(); err != nil {
		return false
	}

	return true
}

// RedisCluster is a storage manager that uses the redis database.
type RedisCluster struct {
	KeyPrefix string
}

func (r *RedisCluster) fixKey(keyName string) string {
	return r.KeyPrefix + keyName
}

func (r *RedisCluster) up() error {
	if !Connected() {
		return ErrRedisIsDown
	}

	return nil
}

// Connect will establish a connection this is always true because we are
// dynamically using redis.
func (r *RedisCluster) Connect() bool {
	return true
}

// GetKey will retrieve a key from the database.
func (r *RedisCluster) GetKey(keyName string) (string, error) {
	if err := r.up(); err != nil {
		return "", err
	}

	value, err := singletonClient().Get(r.fixKey(keyName)).Result()
	if err != nil {
		return "", ErrKeyNotFound
	}

	return value, nil
}

// SetKey will create (or update) a key value in the store.
func (r *RedisCluster) SetKey(keyName, session string, timeout time.Duration) error {
	if err := r.up(); err != nil {
		return err
	}
	if err := singletonClient().Set(r.fixKey(keyName), session, timeout).Err(); err != nil {
		log.Errorf("Error trying to set value: %s", err.Error())

		return ErrKeyNotFound
	}

	return nil
}

// SetKeyIfNotExists sets the key only when absent, returning whether the
// write happened. Used to close duplicate-webhook races.
func (r *RedisCluster) SetKeyIfNotExists(keyName, value string, timeout time.Duration) (bool, error) {
	if err := r.up(); err != nil {
		return false, err
	}

	set, err := singletonClient().SetNX(r.fixKey(keyName), value, timeout).Result()
	if err != nil {
		return false, err
	}

	return set, nil
}

// DeleteKey will remove a key from the database.
func (r *RedisCluster) DeleteKey(keyName string) bool {
	if err := r.up(); err != nil {
		return false
	}

	n, err := singletonClient().Del(r.fixKey(keyName)).Result()

	return err == nil && n > 0
}

// AppendToSetPipelined appends values to a redis list with a single
// pipelined command.
func (r *RedisCluster) AppendToSetPipelined(key string, values [][]byte) {
	if len(values) == 0 {
		return
	}
	if err := r.up(); err != nil {
		return
	}

	fixedKey := r.fixKey(key)
	pipe := singletonClient().Pipeline()
	for _, val := range values {
		pipe.RPush(fixedKey, val)
	}

	if _, err := pipe.Exec(); err != nil {
		log.Errorf("Error trying to append to set keys: %s", err.Error())
	}
}

// GetAndDeleteSet atomically fetches and empties a redis list.
func (r *RedisCluster) GetAndDeleteSet(keyName string) []interface{} {
	if err := r.up(); err != nil {
		return nil
	}

	fixedKey := r.fixKey(keyName)
	client := singletonClient()

	var lrange *redis.StringSliceCmd
	_, err := client.TxPipelined(func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(fixedKey, 0, -1)
		pipe.Del(fixedKey)

		return nil
	})
	if err != nil {
		log.Errorf("Multi command failed: %s", err.Error())

		return nil
	}

	vals := lrange.Val()
	result := make([]interface{}, len(vals))
	for i, v := range vals {
		result[i] = v
	}

	return result
}

// Publish sends a message to the given channel.
func (r *RedisCluster) Publish(channel, message string) error {
	if err := r.up(); err != nil {
		return err
	}
	if err := singletonClient().Publish(channel, message).Err(); err != nil {
		log.Errorf("Error trying to publish message: %s", err.Error())

		return err
	}

	return nil
}

// StartPubSubHandler blocks, receiving messages on the given channel and
// invoking the callback for each of them.
func (r *RedisCluster) StartPubSubHandler(channel string, callback func(interface{})) error {
	if err := r.up(); err != nil {
		return err
	}
	pubsub := singletonClient().Subscribe(channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(); err != nil {
		log.Errorf("Error while receiving pubsub message: %s", err.Error())

		return err
	}

	for msg := range pubsub.Channel() {
		callback(msg)
	}

	return nil
}

// ErrKeyNotFound is a standard error for when a key is not found in the
// storage engine.
var ErrKeyNotFound = fmt.Errorf("key not found")

// AnalyticsHandler defines the storage operations the activity reporter
// needs.
type AnalyticsHandler interface {
	Connect() bool
	AppendToSetPipelined(string, [][]byte)
}

// Handler is the interface the pump storage layer implements on top of this
// package.
type Handler interface {
	GetName() string
	Connect() bool
	GetAndDeleteSet(string) []interface{}
}
