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
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devconsole/devconsole/internal/engine/service"
	"github.com/devconsole/devconsole/pkg/http"
	"github.com/devconsole/devconsole/pkg/log"
)

// withServiceErr translates service errors into the failure envelope.
// Unknown errors are logged and come back as a generic 500 so internals
// never leak to clients.
func withServiceErr(c *fiber.Ctx, err error) error {
	var (
		vErr  *service.ValidationError
		rlErr *service.RateLimitedError
	)

	switch {
	case errors.As(err, &vErr):
		return http.WithRepErrMsg(c, http.ValidationFailed, vErr.Error(), c.Path())
	case errors.As(err, &rlErr):
		secs := int64(rlErr.RetryAfter.Seconds())
		if secs < 1 {
			secs = 1
		}
		c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(secs, 10))
		return http.WithRepErrDetail(c, http.TooManyRequests, fiber.Map{"retryAfter": secs}, c.Path())
	case errors.Is(err, service.ErrCaptchaRequired):
		return http.WithRepErr(c, http.CaptchaRequired, c.Path())
	case errors.Is(err, service.ErrCaptchaRejected):
		return http.WithRepErr(c, http.CaptchaRejected, c.Path())
	case errors.Is(err, service.ErrUserExists):
		return http.WithRepErr(c, http.UserAlreadyExist, c.Path())
	case errors.Is(err, service.ErrBadCredentials):
		return http.WithRepErr(c, http.UserIncorrectPassword, c.Path())
	case errors.Is(err, service.ErrAdminExists):
		return http.WithRepErr(c, http.AdminExists, c.Path())
	case errors.Is(err, service.ErrNotOwner):
		return http.WithRepErr(c, http.PermissionDenied, c.Path())
	case errors.Is(err, service.ErrNotPublished):
		// hidden rather than forbidden, existence is not disclosed
		return http.WithRepErr(c, http.AppNotFound, c.Path())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.WithRepErr(c, http.NotFound, c.Path())
	default:
		log.Errorw("request failed", "path", c.Path(), "error", err)
		return http.WithRepErr(c, http.InternalError, c.Path())
	}
}
