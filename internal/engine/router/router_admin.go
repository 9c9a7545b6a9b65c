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

// adminRouter is the review console. Moderators handle the queue;
// contact reveals, role management and the audit trail stay admin
// only.
func (rt *Router) adminRouter(r fiber.Router, auth fiber.Handler) {
	reviewer := middleware.RequireRole(rt.RoleService, consts.RoleAdmin, consts.RoleModerator)
	admin := middleware.RequireRole(rt.RoleService, consts.RoleAdmin)

	adminGroup := r.Group("/admin", auth)
	{
		// no role gate: only succeeds while the instance has no admin
		adminGroup.Post("/bootstrap", rt.bootstrapAdmin)

		adminGroup.Get("/review/pending", reviewer, rt.listPending)
		adminGroup.Post("/review/:appId", reviewer, rt.reviewApp)

		adminGroup.Get("/profiles", admin, rt.listProfiles)
		adminGroup.Get("/profiles/:userId/contact", admin, rt.revealContact)
		adminGroup.Get("/audit", admin, rt.listAudit)
		adminGroup.Post("/roles/grant", admin, rt.grantRole)
		adminGroup.Post("/roles/revoke", admin, rt.revokeRole)
		adminGroup.Post("/cleanup", admin, rt.runCleanup)
	}
}

// bootstrapAdmin promotes the caller to admin when no admin exists yet.
func (rt *Router) bootstrapAdmin(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)
	if err := rt.RoleService.BootstrapAdmin(c.Context(), claims.UserId); err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.OPERATION, "")
	return nil
}

func (rt *Router) listPending(c *fiber.Ctx) error {
	var req model.AppListReq
	if err := c.QueryParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, err.Error(), c.Path())
	}

	resp, err := rt.ReviewService.ListPending(c.Context(), &req)
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, resp)
	return nil
}

func (rt *Router) reviewApp(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)

	var req *model.ReviewReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, err.Error(), c.Path())
	}

	if err := rt.ReviewService.Review(c.Context(), claims.UserId, c.Params("appId"), req); err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.OPERATION, "")
	return nil
}

func (rt *Router) revealContact(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)

	contact, err := rt.AdminService.RevealContact(c.Context(), claims.UserId, c.Params("userId"))
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, contact)
	return nil
}

func (rt *Router) listProfiles(c *fiber.Ctx) error {
	profiles, err := rt.AdminService.ListProfiles(c.Context(), c.QueryInt("pageNum"), c.QueryInt("pageSize"))
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, profiles)
	return nil
}

func (rt *Router) listAudit(c *fiber.Ctx) error {
	entries, err := rt.AdminService.ListAudit(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, entries)
	return nil
}

// runCleanup triggers the retention sweep outside its cron schedule.
func (rt *Router) runCleanup(c *fiber.Ctx) error {
	c.Locals(middleware.DETAIL, rt.CleanupService.Sweep(c.Context()))
	return nil
}

type roleReq struct {
	UserId string `json:"userId"`
	Role   string `json:"role"`
}

func (rt *Router) grantRole(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)

	var req *roleReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, err.Error(), c.Path())
	}

	if err := rt.RoleService.GrantRole(c.Context(), claims.UserId, req.UserId, req.Role); err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.OPERATION, "")
	return nil
}

func (rt *Router) revokeRole(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)

	var req *roleReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, err.Error(), c.Path())
	}

	if err := rt.RoleService.RevokeRole(c.Context(), claims.UserId, req.UserId, req.Role); err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.OPERATION, "")
	return nil
}
