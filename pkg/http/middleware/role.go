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

package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/devconsole/devconsole/pkg/http"
	"github.com/devconsole/devconsole/pkg/http/jwt"
	"github.com/devconsole/devconsole/pkg/log"
)

// RoleChecker answers whether a user currently holds a role. The check
// must hit the role store on every call; revoking a role takes effect
// on the next request.
type RoleChecker interface {
	HasRole(ctx context.Context, userId, role string) (bool, error)
}

// RequireRole gates a route on the caller holding at least one of the
// given roles. Missing claims map to 401, a held role to pass-through,
// everything else to 403.
func RequireRole(checker RoleChecker, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(CLAIMS).(*jwt.AuthClaims)
		if !ok || claims == nil {
			return http.WithRepErr(c, http.Unauthorized, c.Path())
		}

		for _, role := range roles {
			has, err := checker.HasRole(c.Context(), claims.UserId, role)
			if err != nil {
				log.Errorf("role check failed for user %s: %v", claims.UserId, err)
				return http.WithRepErr(c, http.InternalError, c.Path())
			}
			if has {
				return c.Next()
			}
		}

		return http.WithRepErr(c, http.PermissionDenied, c.Path())
	}
}
