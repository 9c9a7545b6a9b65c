// Copyright 2025 DevConsole Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/service"
	"github.com/devconsole/devconsole/pkg/cache"
	httpx "github.com/devconsole/devconsole/pkg/http"
	"github.com/devconsole/devconsole/pkg/http/middleware"
	"github.com/devconsole/devconsole/pkg/version"
)

type Router struct {
	Http            *httpx.Http
	Cache           cache.ICache
	UserService     *service.UserService
	RoleService     *service.RoleService
	AppService      *service.AppService
	ReviewService   *service.ReviewService
	DownloadService *service.DownloadService
	ProfileService  *service.ProfileService
	AdminService    *service.AdminService
	RateLimit       *service.RateLimitService
	CleanupService  *service.CleanupService
}

func NewRouter(
	httpConf *httpx.Http,
	cache cache.ICache,
	userService *service.UserService,
	roleService *service.RoleService,
	appService *service.AppService,
	reviewService *service.ReviewService,
	downloadService *service.DownloadService,
	profileService *service.ProfileService,
	adminService *service.AdminService,
	rateLimit *service.RateLimitService,
	cleanupService *service.CleanupService,
) *Router {
	return &Router{
		Http:            httpConf,
		Cache:           cache,
		UserService:     userService,
		RoleService:     roleService,
		AppService:      appService,
		ReviewService:   reviewService,
		DownloadService: downloadService,
		ProfileService:  profileService,
		AdminService:    adminService,
		RateLimit:       rateLimit,
		CleanupService:  cleanupService,
	}
}

func (rt *Router) Router() *fiber.App {
	bodyLimit := rt.Http.BodyLimit
	if bodyLimit <= 0 {
		// has to fit an APK upload
		bodyLimit = 128 * 1024 * 1024
	}

	app := fiber.New(fiber.Config{
		AppName:      "DevConsole",
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
		BodyLimit:    bodyLimit,
	})

	app.Use(
		fiberrecover.New(),
		middleware.CorsMiddleware(),
		middleware.RequestIdMiddleware(),
		middleware.RealIPMiddleware(),
		middleware.AccessLogMiddleware(rt.Http),
		middleware.UnifiedResponseMiddleware(),
	)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	contextPath := rt.Http.ContextPath
	if contextPath == "" {
		contextPath = "/api/v1"
	}

	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Cache, consts.UserTokenKey)

	api := app.Group(contextPath)
	{
		rt.authRouter(api, auth)
		rt.storeRouter(api, auth)
		rt.appRouter(api, auth)
		rt.adminRouter(api, auth)
	}

	// must come after every registered route
	app.Use(func(c *fiber.Ctx) error {
		return httpx.WithRepErrMsg(c, httpx.NotFound, "request path not found", c.Path())
	})

	return app
}
