// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package apiserver

import (
	"github.com/gin-gonic/gin"
	"github.com/marmotedu/component-base/pkg/core"
	"github.com/marmotedu/errors"

	"github.com/faddlmatch/platform/internal/apiserver/bill"
	matchctl "github.com/faddlmatch/platform/internal/apiserver/controller/v1/match"
	messagectl "github.com/faddlmatch/platform/internal/apiserver/controller/v1/message"
	profilectl "github.com/faddlmatch/platform/internal/apiserver/controller/v1/profile"
	subscriptionctl "github.com/faddlmatch/platform/internal/apiserver/controller/v1/subscription"
	userctl "github.com/faddlmatch/platform/internal/apiserver/controller/v1/user"
	webhookctl "github.com/faddlmatch/platform/internal/apiserver/controller/v1/webhook"
	"github.com/faddlmatch/platform/internal/apiserver/entitle"
	srvv1 "github.com/faddlmatch/platform/internal/apiserver/service/v1"
	"github.com/faddlmatch/platform/internal/apiserver/store/mysql"
	"github.com/faddlmatch/platform/internal/pkg/code"
	"github.com/faddlmatch/platform/internal/pkg/middleware"
	"github.com/faddlmatch/platform/internal/pkg/middleware/auth"
	genericoptions "github.com/faddlmatch/platform/internal/pkg/options"

	// custom gin validators.
	_ "github.com/faddlmatch/platform/pkg/validator"
)

func initRouter(g *gin.Engine, webhookOpts *genericoptions.WebhookOptions, billingOpts *genericoptions.BillingOptions) {
	installController(g, webhookOpts, billingOpts)
}

//nolint:funlen // route table.
func installController(
	g *gin.Engine,
	webhookOpts *genericoptions.WebhookOptions,
	billingOpts *genericoptions.BillingOptions,
) *gin.Engine {
	jwtStrategy, _ := newJWTAuth().(auth.JWTStrategy)
	g.POST("/login", jwtStrategy.LoginHandler)
	g.POST("/logout", jwtStrategy.LogoutHandler)
	// Refresh time can be longer than token timeout
	g.POST("/refresh", jwtStrategy.RefreshHandler)

	auto := newAutoAuth()
	g.NoRoute(auto.AuthFunc(), func(c *gin.Context) {
		core.WriteResponse(c, errors.WithCode(code.ErrPageNotFound, "Page not found."), nil)
	})

	storeIns, _ := mysql.GetMySQLFactoryOr(nil)
	entitlements, _ := entitle.GetEntitlementsOr(storeIns)
	billing := bill.NewClient(billingOpts)
	srv := srvv1.NewService(storeIns, billing, entitlements)

	// webhook ingestion, authenticated by signature instead of session
	limiter := middleware.NewIPRateLimiter(webhookOpts.RateLimit, webhookOpts.RateBurst)
	webhooks := g.Group("/webhooks", middleware.RateLimit(limiter))
	{
		webhookController := webhookctl.NewWebhookController(srv, webhookOpts, billingOpts)

		webhooks.POST("/identity", webhookController.Identity)
		webhooks.POST("/billing", webhookController.Billing)
	}

	// guardian read-only access with per-profile link tokens
	guardian := g.Group("/guardian", newCacheAuth().AuthFunc())
	{
		messageController := messagectl.NewMessageController(srv)

		guardian.GET("/conversations", messageController.ListConversations)
		guardian.GET("/conversations/:id/messages", messageController.ListMessages)
	}

	// v1 handlers, requiring authentication
	v1 := g.Group("/v1")
	{
		userv1 := v1.Group("/users")
		{
			userController := userctl.NewUserController(srv)

			userv1.POST("", userController.Create)
			userv1.Use(auto.AuthFunc(), middleware.Validation())
			userv1.DELETE("", userController.DeleteCollection) // admin api
			userv1.DELETE(":name", userController.Delete)      // admin api
			userv1.PUT(":name/change-password", userController.ChangePassword)
			userv1.PUT(":name", userController.Update)
			userv1.GET("", userController.List)
			userv1.GET(":name", userController.Get) // admin api
		}

		v1.Use(auto.AuthFunc())

		profilev1 := v1.Group("/profiles", middleware.Publish())
		{
			profileController := profilectl.NewProfileController(srv)

			profilev1.POST("", profileController.Create)
			profilev1.GET("", profileController.Get)
			profilev1.PUT("", profileController.Update)
			profilev1.DELETE("", profileController.Delete)
		}

		matchv1 := v1.Group("/matches")
		{
			matchController := matchctl.NewMatchController(srv)

			matchv1.POST("/discover", matchController.Discover)
			matchv1.GET("", matchController.List)
			matchv1.GET(":id", matchController.Get)
			matchv1.PUT(":id/accept", matchController.Accept)
			matchv1.PUT(":id/decline", matchController.Decline)
		}

		conversationv1 := v1.Group("/conversations")
		{
			messageController := messagectl.NewMessageController(srv)

			conversationv1.GET("", messageController.ListConversations)
			conversationv1.GET(":id/messages", messageController.ListMessages)
			conversationv1.POST(":id/messages", messageController.Send)
		}

		v1.GET("/plans", subscriptionctl.NewSubscriptionController(srv).Plans)

		subscriptionv1 := v1.Group("/subscription", middleware.Publish())
		{
			subscriptionController := subscriptionctl.NewSubscriptionController(srv)

			subscriptionv1.GET("", subscriptionController.Get)
			subscriptionv1.POST("/checkout", subscriptionController.Checkout)
			subscriptionv1.POST("/portal", subscriptionController.Portal)
			subscriptionv1.POST("/cancel", subscriptionController.Cancel)
			subscriptionv1.POST("/reactivate", subscriptionController.Reactivate)
		}
	}

	return g
}
