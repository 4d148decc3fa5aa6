// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package mysql

import (
	"fmt"
	"sync"

	"github.com/marmotedu/errors"
	"gorm.io/gorm"

	"github.com/faddlmatch/platform/internal/apiserver/store"
	genericoptions "github.com/faddlmatch/platform/internal/pkg/options"
	"github.com/faddlmatch/platform/pkg/db"
	"github.com/faddlmatch/platform/pkg/log"
)

type datastore struct {
	db *gorm.DB
}

func (ds *datastore) Users() store.UserStore {
	return newUsers(ds)
}

func (ds *datastore) Profiles() store.ProfileStore {
	return newProfiles(ds)
}

func (ds *datastore) Matches() store.MatchStore {
	return newMatches(ds)
}

func (ds *datastore) Messages() store.MessageStore {
	return newMessages(ds)
}

func (ds *datastore) Subscriptions() store.SubscriptionStore {
	return newSubscriptions(ds)
}

func (ds *datastore) Events() store.EventStore {
	return newEvents(ds)
}

func (ds *datastore) Close() error {
	db, err := ds.db.DB()
	if err != nil {
		return errors.Wrap(err, "get gorm db instance failed")
	}

	return db.Close()
}

var (
	mysqlFactory store.Factory
	once         sync.Once
)

// GetMySQLFactoryOr create mysql factory with the given config.
func GetMySQLFactoryOr(opts *genericoptions.MySQLOptions) (store.Factory, error) {
	if opts == nil && mysqlFactory == nil {
		return nil, fmt.Errorf("failed to get mysql store fatory")
	}

	var err error
	var dbIns *gorm.DB
	once.Do(func() {
		options := &db.Options{
			Host:                  opts.Host,
			Username:              opts.Username,
			Password:              opts.Password,
			Database:              opts.Database,
			MaxIdleConnections:    opts.MaxIdleConnections,
			MaxOpenConnections:    opts.MaxOpenConnections,
			MaxConnectionLifeTime: opts.MaxConnectionLifeTime,
			LogLevel:              opts.LogLevel,
		}
		dbIns, err = db.New(options)

		mysqlFactory = &datastore{dbIns}
	})

	if mysqlFactory == nil || err != nil {
		return nil, fmt.Errorf("failed to get mysql store fatory, mysqlFactory: %+v, error: %w", mysqlFactory, err)
	}

	log.Debugf("mysql store factory initialized")

	return mysqlFactory, nil
}
