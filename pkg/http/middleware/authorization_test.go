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
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconsole/devconsole/pkg/http/jwt"
)

// fakeSessionCache serves canned redis results for the session checks.
type fakeSessionCache struct {
	exists int64
	ttl    time.Duration
}

func (f *fakeSessionCache) Get(_ context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func (f *fakeSessionCache) Set(_ context.Context, _ string, _ any, _ time.Duration) *redis.StatusCmd {
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeSessionCache) Del(_ context.Context, _ ...string) *redis.IntCmd {
	return redis.NewIntResult(1, nil)
}

func (f *fakeSessionCache) Exists(_ context.Context, _ ...string) *redis.IntCmd {
	return redis.NewIntResult(f.exists, nil)
}

func (f *fakeSessionCache) TTL(_ context.Context, _ string) *redis.DurationCmd {
	return redis.NewDurationResult(f.ttl, nil)
}

func (f *fakeSessionCache) Pipeline() redis.Pipeliner { return nil }

const authTestSecret = "authorization-test-secret"

func authApp(cache *fakeSessionCache) *fiber.App {
	app := fiber.New()
	app.Get("/t", AuthorizationMiddleware(authTestSecret, cache, "tok:"), func(c *fiber.Ctx) error {
		claims := c.Locals(CLAIMS).(*jwt.AuthClaims)
		return c.SendString(claims.UserId)
	})
	return app
}

func TestAuthorizationLiveSession(t *testing.T) {
	aToken, _, err := jwt.GenToken("user-1", []byte(authTestSecret), 30, 1440)
	require.NoError(t, err)

	app := authApp(&fakeSessionCache{exists: 1, ttl: time.Hour})
	req := httptest.NewRequest("GET", "/t", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+aToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthorizationSessionGone(t *testing.T) {
	aToken, _, err := jwt.GenToken("user-1", []byte(authTestSecret), 30, 1440)
	require.NoError(t, err)

	app := authApp(&fakeSessionCache{exists: 0})
	req := httptest.NewRequest("GET", "/t", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+aToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthorizationSessionExpiredTTL(t *testing.T) {
	aToken, _, err := jwt.GenToken("user-1", []byte(authTestSecret), 30, 1440)
	require.NoError(t, err)

	app := authApp(&fakeSessionCache{exists: 1, ttl: -1})
	req := httptest.NewRequest("GET", "/t", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+aToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthorizationMissingHeader(t *testing.T) {
	app := authApp(&fakeSessionCache{exists: 1, ttl: time.Hour})

	resp, err := app.Test(httptest.NewRequest("GET", "/t", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
