// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package redis implements the pump upstream store on the shared redis
// cluster abstraction.
package redis

import (
	"context"

	"github.com/marmotedu/errors"

	genericoptions "github.com/faddlmatch/platform/internal/pkg/options"
	"github.com/faddlmatch/platform/pkg/storage"
)

// KeyPrefix matches the prefix the api server reports activity records under.
const KeyPrefix = "analytics-"

// RedisClusterStorageManager drains activity records from the shared redis
// cluster.
type RedisClusterStorageManager struct {
	store storage.RedisCluster
}

var _ interface {
	Init(config interface{}) error
	GetName() string
	Connect() bool
	GetAndDeleteSet(setName string) []interface{}
} = (*RedisClusterStorageManager)(nil)

// Init starts the background connection loop towards redis.
func (r *RedisClusterStorageManager) Init(config interface{}) error {
	opts, ok := config.(*genericoptions.RedisOptions)
	if !ok {
		return errors.New("redis storage manager expects redis options")
	}

	r.store = storage.RedisCluster{KeyPrefix: KeyPrefix}

	go storage.ConnectToRedis(context.Background(), &storage.Config{
		Host:                  opts.Host,
		Port:                  opts.Port,
		Addrs:                 opts.Addrs,
		MasterName:            opts.MasterName,
		Username:              opts.Username,
		Password:              opts.Password,
		Database:              opts.Database,
		MaxIdle:               opts.MaxIdle,
		MaxActive:             opts.MaxActive,
		Timeout:               opts.Timeout,
		EnableCluster:         opts.EnableCluster,
		UseSSL:                opts.UseSSL,
		SSLInsecureSkipVerify: opts.SSLInsecureSkipVerify,
	})

	return nil
}

// GetName returns the name of the storage manager.
func (r *RedisClusterStorageManager) GetName() string {
	return "redis"
}

// Connect reports whether the shared redis connection is up.
func (r *RedisClusterStorageManager) Connect() bool {
	return r.store.Connect()
}

// GetAndDeleteSet atomically reads and clears the given redis list.
func (r *RedisClusterStorageManager) GetAndDeleteSet(setName string) []interface{} {
	return r.store.GetAndDeleteSet(setName)
}
