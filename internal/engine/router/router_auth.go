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

	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/pkg/http"
	"github.com/devconsole/devconsole/pkg/http/jwt"
	"github.com/devconsole/devconsole/pkg/http/middleware"
)

func (rt *Router) authRouter(r fiber.Router, auth fiber.Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.Post("/register", rt.register)
		authGroup.Post("/login", rt.login)
		authGroup.Post("/rateLimit", rt.rateLimitCheck)

		authGroup.Post("/logout", auth, rt.logout)
		authGroup.Get("/refresh", auth, rt.refresh)
		authGroup.Get("/me", auth, rt.me)
	}
}

func (rt *Router) register(c *fiber.Ctx) error {
	var register *model.Register
	if err := c.BodyParser(&register); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, err.Error(), c.Path())
	}

	if err := rt.UserService.Register(c.Context(), register, middleware.IdentifyByIP(c)); err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.OPERATION, "")
	return nil
}

func (rt *Router) login(c *fiber.Ctx) error {
	var login *model.Login
	if err := c.BodyParser(&login); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, err.Error(), c.Path())
	}

	resp, err := rt.UserService.Login(c.Context(), login, middleware.IdentifyByIP(c), rt.Http.Auth)
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, resp)
	return nil
}

// rateLimitCheck lets a client probe its window before burning an
// attempt elsewhere. The probe itself counts as an attempt.
func (rt *Router) rateLimitCheck(c *fiber.Ctx) error {
	var req *model.RateLimitCheckReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, err.Error(), c.Path())
	}
	if req.Identifier == "" {
		req.Identifier = middleware.IdentifyByIP(c)
	}
	if req.Action == "" {
		return http.WithRepErrMsg(c, http.ValidationFailed, "action is required", c.Path())
	}

	c.Locals(middleware.DETAIL, rt.RateLimit.Check(c.Context(), req))
	return nil
}

func (rt *Router) logout(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)
	if err := rt.UserService.Logout(c.Context(), claims.UserId); err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.OPERATION, "")
	return nil
}

func (rt *Router) refresh(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)
	refreshToken := c.Query("refreshToken")

	token, err := rt.UserService.Refresh(c.Context(), claims.UserId, refreshToken, &rt.Http.Auth)
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, token)
	return nil
}

func (rt *Router) me(c *fiber.Ctx) error {
	claims := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)
	info, err := rt.UserService.GetUserInfo(c.Context(), claims.UserId)
	if err != nil {
		return withServiceErr(c, err)
	}

	c.Locals(middleware.DETAIL, info)
	return nil
}
