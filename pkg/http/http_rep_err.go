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

// ResponseErr is the unified failure envelope.
type ResponseErr struct {
	ErrCode int    `json:"code"`
	ErrMsg  any    `json:"errMsg"`
	Detail  any    `json:"detail,omitempty"`
	Path    string `json:"path,omitempty"`
}

// WithRepErr writes the failure envelope with the code's mapped HTTP status.
func WithRepErr(c *fiber.Ctx, resp *Response, path string) error {
	return c.Status(resp.Status).JSON(ResponseErr{
		ErrCode: resp.Code,
		ErrMsg:  resp.Msg,
		Path:    path,
	})
}

// WithRepErrMsg overrides the code's default message.
func WithRepErrMsg(c *fiber.Ctx, resp *Response, errMsg, path string) error {
	return c.Status(resp.Status).JSON(ResponseErr{
		ErrCode: resp.Code,
		ErrMsg:  errMsg,
		Path:    path,
	})
}

// WithRepErrDetail attaches extra detail to the failure envelope,
// e.g. a retryAfter hint on a throttled request.
func WithRepErrDetail(c *fiber.Ctx, resp *Response, detail any, path string) error {
	return c.Status(resp.Status).JSON(ResponseErr{
		ErrCode: resp.Code,
		ErrMsg:  resp.Msg,
		Detail:  detail,
		Path:    path,
	})
}
