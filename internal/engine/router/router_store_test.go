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
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Downloads must never go out unattributed: the identity gate sits on
// the route itself, not behind an Authorization-header check.
func TestDownloadRequiresAuth(t *testing.T) {
	app := fiber.New()
	rt := &Router{}

	gateHits := 0
	auth := func(c *fiber.Ctx) error {
		gateHits++
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	rt.storeRouter(app.Group("/api/v1"), auth)

	req := httptest.NewRequest("GET", "/api/v1/store/apps/a1/download", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, gateHits)
}
