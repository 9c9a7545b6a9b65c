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
	"github.com/gofiber/fiber/v2"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/pkg/http"
	"github.com/devconsole/devconsole/pkg/http/jwt"
	"github.com/devconsole/devconsole/pkg/http/middleware"
)

// storeRouter serves the public storefront. Browsing needs no account;
// downloads require a logged-in caller so every log row is attributed.
func (rt *Router) storeRouter(r fiber.Router, auth fiber.Handler) {
	storeGroup := r.Group("/store")
	{
		storeGroup.Get("/apps", rt.listStoreApps)
		storeGroup.Get("/apps/:appId", rt.getStoreApp)
		storeGroup.Get("/apps/:appId/download", auth, rt.downloadApp)
	}
}

func (rt *Router) listStoreApps(c *fiber.Ctx) error {
	var req model.AppListReq
	if err := c.QueryParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, err.Error(), c.Path())
	}

	resp, err := rt.AppService.ListStore(c.Context(), &req)
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, resp)
	return nil
}

func (rt *Router) getStoreApp(c *fiber.Ctx) error {
	detail, err := rt.AppService.GetDetail(c.Context(), c.Params("appId"))
	if err != nil {
		return withServiceErr(c, err)
	}
	// unpublished apps do not exist as far as the store is concerned
	if detail.Status != consts.StatusPublished {
		return http.WithRepErr(c, http.AppNotFound, c.Path())
	}

	c.Locals(middleware.DETAIL, detail)
	return nil
}

func (rt *Router) downloadApp(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)

	resp, err := rt.DownloadService.GetDownloadURL(c.Context(),
		c.Params("appId"), claims.UserId, middleware.IdentifyByIP(c), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, resp)
	return nil
}
