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
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/internal/engine/service"
	"github.com/devconsole/devconsole/pkg/http"
	"github.com/devconsole/devconsole/pkg/http/jwt"
	"github.com/devconsole/devconsole/pkg/http/middleware"
)

// appRouter is the developer console: submissions and the developer
// profile. Everything behind it needs the developer role.
func (rt *Router) appRouter(r fiber.Router, auth fiber.Handler) {
	developer := middleware.RequireRole(rt.RoleService, consts.RoleDeveloper)

	appGroup := r.Group("/apps", auth, developer)
	{
		appGroup.Post("/", rt.submitApp)
		appGroup.Put("/:appId", rt.updateApp)
		appGroup.Get("/mine", rt.listMyApps)
		appGroup.Get("/:appId/history", rt.appHistory)
	}

	profileGroup := r.Group("/profile", auth, developer)
	{
		profileGroup.Get("/", rt.getProfile)
		profileGroup.Put("/", rt.updateProfile)
	}
}

func (rt *Router) submitApp(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)

	req, files, err := parseSubmission(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, err.Error(), c.Path())
	}

	app, err := rt.AppService.Submit(c.Context(), claims.UserId, req, files)
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, app)
	return nil
}

func (rt *Router) updateApp(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)

	req, files, err := parseSubmission(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, err.Error(), c.Path())
	}

	app, err := rt.AppService.Update(c.Context(), claims.UserId, c.Params("appId"), req, files)
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, app)
	return nil
}

func (rt *Router) listMyApps(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)

	var req model.AppListReq
	if err := c.QueryParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, err.Error(), c.Path())
	}

	resp, err := rt.AppService.ListMine(c.Context(), claims.UserId, &req)
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, resp)
	return nil
}

func (rt *Router) appHistory(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)

	isReviewer := false
	for _, role := range []string{consts.RoleAdmin, consts.RoleModerator} {
		has, err := rt.RoleService.HasRole(c.Context(), claims.UserId, role)
		if err != nil {
			return withServiceErr(c, err)
		}
		if has {
			isReviewer = true
			break
		}
	}

	history, err := rt.AppService.History(c.Context(), claims.UserId, c.Params("appId"), isReviewer)
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, history)
	return nil
}

func (rt *Router) getProfile(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)

	profile, err := rt.ProfileService.Get(c.Context(), claims.UserId)
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, profile)
	return nil
}

func (rt *Router) updateProfile(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)

	var req *model.UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, err.Error(), c.Path())
	}

	if err := rt.ProfileService.Update(c.Context(), claims.UserId, req); err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.OPERATION, "")
	return nil
}

// parseSubmission pulls the metadata fields and upload files out of
// the multipart form.
func parseSubmission(c *fiber.Ctx) (*model.SubmitAppReq, *service.SubmitFiles, error) {
	var req model.SubmitAppReq
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, err
	}

	files := &service.SubmitFiles{}
	if apk, err := c.FormFile("apk"); err == nil {
		files.Apk = apk
	}
	if icon, err := c.FormFile("icon"); err == nil {
		files.Icon = icon
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if shots, ok := form.File["screenshots"]; ok {
			files.Screenshots = append([]*multipart.FileHeader{}, shots...)
		}
	}

	return &req, files, nil
}
