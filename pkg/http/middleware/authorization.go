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
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	goJwt "github.com/golang-jwt/jwt/v5"

	"github.com/devconsole/devconsole/pkg/cache"
	"github.com/devconsole/devconsole/pkg/http"
	"github.com/devconsole/devconsole/pkg/http/jwt"
	"github.com/devconsole/devconsole/pkg/log"
)

// AuthorizationMiddleware verifies the Bearer token and the server-side
// session. A token is only accepted while its session key still lives
// in redis, so logout revokes access immediately.
func AuthorizationMiddleware(secretKey string, rdb cache.ICache, tokenKeyPrefix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get("Authorization")
		if aToken == "" {
			return http.WithRepErr(c, http.TokenBeEmpty, c.Path())
		}

		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return http.WithRepErr(c, http.TokenBeEmpty, c.Path())
		}

		claims, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErr(c, http.TokenExpired, c.Path())
			}
			log.Errorf("parse token failed: %v", err)
			return http.WithRepErr(c, http.InvalidToken, c.Path())
		}

		tokenKey := tokenKeyPrefix + claims.UserId
		exists, err := rdb.Exists(c.Context(), tokenKey).Result()
		if err != nil {
			log.Errorf("redis check token exists failed: %v", err)
			return http.WithRepErr(c, http.InternalError, c.Path())
		}
		if exists == 0 {
			return http.WithRepErr(c, http.TokenExpired, c.Path())
		}

		ttl, err := rdb.TTL(c.Context(), tokenKey).Result()
		if err != nil {
			log.Errorf("redis check token TTL failed: %v", err)
			return http.WithRepErr(c, http.InternalError, c.Path())
		}
		if ttl <= 0 {
			log.Warnf("token has expired in redis for user: %s", claims.UserId)
			return http.WithRepErr(c, http.TokenExpired, c.Path())
		}

		c.Locals(CLAIMS, claims)
		return c.Next()
	}
}
