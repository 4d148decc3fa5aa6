// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package watcher

import (
	"context"

	"github.com/faddlmatch/platform/internal/apiserver/store/mysql"
	"github.com/faddlmatch/platform/internal/watcher/config"
	"github.com/faddlmatch/platform/pkg/log"
	"github.com/faddlmatch/platform/pkg/shutdown"
	"github.com/faddlmatch/platform/pkg/shutdown/shutdownmanagers/posixsignal"
	"github.com/faddlmatch/platform/pkg/storage"
)

type watcherServer struct {
	gs  *shutdown.GracefulShutdown
	job *watchJob
}

type preparedWatcherServer struct {
	*watcherServer
}

func createWatcherServer(cfg *config.Config) (*watcherServer, error) {
	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())

	if _, err := mysql.GetMySQLFactoryOr(cfg.MySQLOptions); err != nil {
		return nil, err
	}

	initRedisStore(gs, cfg)

	job := newWatchJob(cfg.RedisOptions, cfg.WatcherOptions).addWatchers()

	return &watcherServer{gs: gs, job: job}, nil
}

func (s *watcherServer) PrepareRun() preparedWatcherServer {
	s.gs.AddShutdownCallback(shutdown.ShutdownFunc(func(string) error {
		<-s.job.Stop().Done()

		mysqlStore, _ := mysql.GetMySQLFactoryOr(nil)
		if mysqlStore != nil {
			_ = mysqlStore.Close()
		}

		return nil
	}))

	return preparedWatcherServer{s}
}

func (s preparedWatcherServer) Run() error {
	stopCh := make(chan struct{})

	// start shutdown managers
	if err := s.gs.Start(); err != nil {
		log.Fatalf("start shutdown manager failed: %s", err.Error())
	}

	s.job.Start()
	log.Info("started the watchers.")

	<-stopCh

	return nil
}

func initRedisStore(gs *shutdown.GracefulShutdown, cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	gs.AddShutdownCallback(shutdown.ShutdownFunc(func(string) error {
		cancel()

		return nil
	}))

	config := &storage.Config{
		Host:                  cfg.RedisOptions.Host,
		Port:                  cfg.RedisOptions.Port,
		Addrs:                 cfg.RedisOptions.Addrs,
		MasterName:            cfg.RedisOptions.MasterName,
		Username:              cfg.RedisOptions.Username,
		Password:              cfg.RedisOptions.Password,
		Database:              cfg.RedisOptions.Database,
		MaxIdle:               cfg.RedisOptions.MaxIdle,
		MaxActive:             cfg.RedisOptions.MaxActive,
		Timeout:               cfg.RedisOptions.Timeout,
		EnableCluster:         cfg.RedisOptions.EnableCluster,
		UseSSL:                cfg.RedisOptions.UseSSL,
		SSLInsecureSkipVerify: cfg.RedisOptions.SSLInsecureSkipVerify,
	}

	go storage.ConnectToRedis(ctx, config)
}
