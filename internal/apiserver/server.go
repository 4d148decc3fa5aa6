// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package apiserver

import (
	"context"

	"github.com/faddlmatch/platform/internal/apiserver/analytics"
	"github.com/faddlmatch/platform/internal/apiserver/config"
	"github.com/faddlmatch/platform/internal/apiserver/entitle"
	"github.com/faddlmatch/platform/internal/apiserver/store"
	"github.com/faddlmatch/platform/internal/apiserver/store/mysql"
	genericoptions "github.com/faddlmatch/platform/internal/pkg/options"
	genericapiserver "github.com/faddlmatch/platform/internal/pkg/server"
	"github.com/faddlmatch/platform/pkg/log"
	"github.com/faddlmatch/platform/pkg/shutdown"
	"github.com/faddlmatch/platform/pkg/shutdown/shutdownmanagers/posixsignal"
	"github.com/faddlmatch/platform/pkg/storage"
)

type apiServer struct {
	gs               *shutdown.GracefulShutdown
	redisOptions     *genericoptions.RedisOptions
	webhookOptions   *genericoptions.WebhookOptions
	billingOptions   *genericoptions.BillingOptions
	analyticsOptions *analytics.AnalyticsOptions
	genericAPIServer *genericapiserver.GenericAPIServer
}

type preparedAPIServer struct {
	*apiServer
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())

	genericConfig, err := buildGenericConfig(cfg)
	if err != nil {
		return nil, err
	}

	genericServer, err := genericConfig.Complete().New()
	if err != nil {
		return nil, err
	}

	storeIns, err := mysql.GetMySQLFactoryOr(cfg.MySQLOptions)
	if err != nil {
		return nil, err
	}
	store.SetClient(storeIns)

	server := &apiServer{
		gs:               gs,
		redisOptions:     cfg.RedisOptions,
		webhookOptions:   cfg.WebhookOptions,
		billingOptions:   cfg.BillingOptions,
		analyticsOptions: cfg.AnalyticsOptions,
		genericAPIServer: genericServer,
	}

	return server, nil
}

func (s *apiServer) PrepareRun() preparedAPIServer {
	s.initRedisStore()

	initRouter(s.genericAPIServer.Engine, s.webhookOptions, s.billingOptions)

	s.initEntitlements()

	if s.analyticsOptions.Enable {
		analyticsStore := storage.RedisCluster{KeyPrefix: "analytics-"}
		analyticsIns := analytics.NewAnalytics(s.analyticsOptions, &analyticsStore)
		analyticsIns.Start()
		s.gs.AddShutdownCallback(shutdown.ShutdownFunc(func(string) error {
			analyticsIns.Stop()

			return nil
		}))
	}

	s.gs.AddShutdownCallback(shutdown.ShutdownFunc(func(string) error {
		mysqlStore, _ := mysql.GetMySQLFactoryOr(nil)
		if mysqlStore != nil {
			_ = mysqlStore.Close()
		}

		s.genericAPIServer.Close()

		return nil
	}))

	return preparedAPIServer{s}
}

func (s preparedAPIServer) Run() error {
	// start shutdown managers
	if err := s.gs.Start(); err != nil {
		log.Fatalf("start shutdown manager failed: %s", err.Error())
	}

	return s.genericAPIServer.Run()
}

func buildGenericConfig(cfg *config.Config) (genericConfig *genericapiserver.Config, lastErr error) {
	genericConfig = genericapiserver.NewConfig()
	if lastErr = cfg.GenericServerRunOptions.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	if lastErr = cfg.FeatureOptions.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	if lastErr = cfg.SecureServing.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	if lastErr = cfg.InsecureServing.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	if lastErr = cfg.JwtOptions.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	return
}

// initEntitlements builds the entitlement cache and keeps it invalidated on
// subscription change notifications until shutdown.
func (s *apiServer) initEntitlements() {
	storeIns, _ := mysql.GetMySQLFactoryOr(nil)

	entitlements, err := entitle.GetEntitlementsOr(storeIns)
	if err != nil {
		log.Fatalf("initialize entitlements cache failed: %s", err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.gs.AddShutdownCallback(shutdown.ShutdownFunc(func(string) error {
		cancel()

		return nil
	}))

	go entitlements.StartWatch(ctx)
}

func (s *apiServer) initRedisStore() {
	ctx, cancel := context.WithCancel(context.Background())
	s.gs.AddShutdownCallback(shutdown.ShutdownFunc(func(string) error {
		cancel()

		return nil
	}))

	config := &storage.Config{
		Host:                  s.redisOptions.Host,
		Port:                  s.redisOptions.Port,
		Addrs:                 s.redisOptions.Addrs,
		MasterName:            s.redisOptions.MasterName,
		Username:              s.redisOptions.Username,
		Password:              s.redisOptions.Password,
		Database:              s.redisOptions.Database,
		MaxIdle:               s.redisOptions.MaxIdle,
		MaxActive:             s.redisOptions.MaxActive,
		Timeout:               s.redisOptions.Timeout,
		EnableCluster:         s.redisOptions.EnableCluster,
		UseSSL:                s.redisOptions.UseSSL,
		SSLInsecureSkipVerify: s.redisOptions.SSLInsecureSkipVerify,
	}

	// try to connect to redis
	go storage.ConnectToRedis(ctx, config)
}
