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
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/devconsole/devconsole/pkg/http"
	"github.com/devconsole/devconsole/pkg/http/jwt"
	"github.com/devconsole/devconsole/pkg/log"
)

// RateLimiter records an attempt for (identifier, action) and reports
// whether it fits the window. retryAfter is only meaningful when
// allowed is false.
type RateLimiter interface {
	Allow(ctx context.Context, identifier, action string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimitMiddleware throttles a route per identify(c). A limiter
// error fails open: throttling is protection, not a dependency the
// route should die on.
func RateLimitMiddleware(limiter RateLimiter, action string, identify func(*fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := identify(c)
		allowed, retryAfter, err := limiter.Allow(c.Context(), identifier, action)
		if err != nil {
			log.Errorf("rate limit check failed for action %s: %v", action, err)
			return c.Next()
		}
		if !allowed {
			c.Set(fiber.HeaderRetryAfter, formatSeconds(retryAfter))
			return http.WithRepErrDetail(c, http.TooManyRequests, fiber.Map{
				"retryAfter": int64(retryAfter.Seconds()),
			}, c.Path())
		}
		return c.Next()
	}
}

// IdentifyByIP resolves the caller identity from the real client IP.
// The "ip:" prefix keeps address identifiers from colliding with user
// ids in the attempt log.
func IdentifyByIP(c *fiber.Ctx) string {
	if ip, ok := c.Locals(REALIP).(string); ok && ip != "" {
		return "ip:" + ip
	}
	return "ip:" + c.IP()
}

// IdentifyByUser resolves the caller identity from the auth claims,
// falling back to the client IP for anonymous requests.
func IdentifyByUser(c *fiber.Ctx) string {
	if claims, ok := c.Locals(CLAIMS).(*jwt.AuthClaims); ok && claims != nil {
		return claims.UserId
	}
	return IdentifyByIP(c)
}

// formatSeconds renders a Retry-After value, rounding up to at least 1s.
func formatSeconds(d time.Duration) string {
	secs := int64(d.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}
