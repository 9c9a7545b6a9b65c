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

package http

import "github.com/gofiber/fiber/v2"

var (
	Failed                        = failed(fiber.StatusInternalServerError, 500, "Request failed")
	RequestParameterParsingFailed = failed(fiber.StatusBadRequest, 5001, "Request parameter parsing failed")

	// Unauthenticated 401
	Unauthorized         = failed(fiber.StatusUnauthorized, 4401, "Unauthorized")
	AuthenticationFailed = failed(fiber.StatusUnauthorized, 4402, "Authentication failed")
	AuthorizationEmpty   = failed(fiber.StatusUnauthorized, 4404, "Authorization is empty")
	InvalidToken         = failed(fiber.StatusUnauthorized, 4405, "Invalid token")
	TokenBeEmpty         = failed(fiber.StatusUnauthorized, 4406, "Token cannot be empty")
	TokenExpired         = failed(fiber.StatusUnauthorized, 4407, "Token is expired")

	// ValidationFailed 400
	BadRequest       = failed(fiber.StatusBadRequest, 4000, "Bad request")
	ValidationFailed = failed(fiber.StatusBadRequest, 4001, "Validation failed")
	CaptchaRequired  = failed(fiber.StatusBadRequest, 4002, "Captcha token is required")
	CaptchaRejected  = failed(fiber.StatusBadRequest, 4003, "Captcha verification failed")

	// NotFound 404
	NotFound     = failed(fiber.StatusNotFound, 4004, "Not found")
	UserNotFound = failed(fiber.StatusNotFound, 4041, "User does not exist")
	AppNotFound  = failed(fiber.StatusNotFound, 4042, "Application does not exist")

	// Forbidden 403
	Forbidden        = failed(fiber.StatusForbidden, 4030, "Forbidden")
	PermissionDenied = failed(fiber.StatusForbidden, 4031, "Permission denied")
	AdminRequired    = failed(fiber.StatusForbidden, 4032, "Admin access required")
	AdminExists      = failed(fiber.StatusForbidden, 4033, "Admin already exists")

	// RateLimited 429
	TooManyRequests = failed(fiber.StatusTooManyRequests, 4290, "Too many attempts, please try again later")

	UserAlreadyExist         = failed(fiber.StatusBadRequest, 4005, "User already exists")
	UserIncorrectPassword    = failed(fiber.StatusUnauthorized, 4403, "User incorrect password")
	EmailAndPasswordRequired = failed(fiber.StatusBadRequest, 4006, "Email and password are required")

	// UpstreamFailure 500
	InternalError   = failed(fiber.StatusInternalServerError, 5000, "Internal error, please contact the administrator")
	UpstreamFailure = failed(fiber.StatusInternalServerError, 5002, "Upstream dependency failed")
)

var (
	Success = success(fiber.StatusOK, 200, "Request Success")
)

func failed(status, code int, msg string) *Response {
	return &Response{
		Status: status,
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

func success(status, code int, msg string) *Response {
	return &Response{
		Status: status,
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}
