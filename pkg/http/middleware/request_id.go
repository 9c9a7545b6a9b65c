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
	"github.com/gofiber/fiber/v2"

	"github.com/devconsole/devconsole/pkg/id"
)

const HeaderRequestId = "X-Request-Id"

// RequestIdMiddleware tags every request with a ULID, honoring an id
// already set by an upstream proxy.
func RequestIdMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderRequestId)
		if rid == "" {
			rid = id.GetULID()
		}
		c.Locals(REQUESTID, rid)
		c.Set(HeaderRequestId, rid)
		return c.Next()
	}
}
