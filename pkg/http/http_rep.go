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

// Response is the unified success envelope. Status is the HTTP status
// to write; it never appears in the body.
type Response struct {
	Status int    `json:"-"`
	Code   int    `json:"code"`
	Detail any    `json:"detail,omitempty"`
	Msg    string `json:"msg"`
}

// WithRepJSON writes the success envelope carrying detail.
func WithRepJSON(c *fiber.Ctx, detail any) error {
	return c.Status(Success.Status).JSON(Response{
		Code:   Success.Code,
		Detail: detail,
		Msg:    Success.Msg,
	})
}

// WithRepMsg writes the success envelope with a custom message.
func WithRepMsg(c *fiber.Ctx, msg string) error {
	return c.Status(Success.Status).JSON(Response{
		Code: Success.Code,
		Msg:  msg,
	})
}

// WithRepNotDetail writes the success envelope without a detail body.
func WithRepNotDetail(c *fiber.Ctx) error {
	return c.Status(Success.Status).JSON(Response{
		Code: Success.Code,
		Msg:  Success.Msg,
	})
}
