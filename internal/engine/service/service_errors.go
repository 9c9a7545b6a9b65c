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

package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrCaptchaRequired = errors.New("captcha token is required")
	ErrCaptchaRejected = errors.New("captcha verification failed")
	ErrUserExists      = errors.New("user already exists")
	ErrBadCredentials  = errors.New("incorrect email or password")
	ErrNotOwner        = errors.New("application belongs to another developer")
	ErrNotPublished    = errors.New("application is not published")
	ErrAdminExists     = errors.New("an admin already exists")
)

// ValidationError marks input the caller can fix.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// RateLimitedError carries the time until the window frees up.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}
