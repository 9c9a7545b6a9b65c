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

	httpx "github.com/devconsole/devconsole/pkg/http"
)

// UnifiedResponseMiddleware wraps handler results in the success
// envelope. Handlers set Locals(DETAIL) for a payload or
// Locals(OPERATION) for a bare ack; failure envelopes are written by
// the handlers themselves and pass through untouched.
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() >= fiber.StatusMultipleChoices {
			return nil
		}

		if detail := c.Locals(DETAIL); detail != nil {
			return httpx.WithRepJSON(c, detail)
		}

		if c.Locals(OPERATION) != nil {
			return httpx.WithRepNotDetail(c)
		}

		return nil
	}
}
