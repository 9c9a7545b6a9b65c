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

package consts

import "time"

// redis key prefixes
const (
	UserTokenKey = "devconsole:user:token:"
	UserInfoKey  = "devconsole:user:info:"
)

// roles, stored verbatim in t_user_role.role
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleDeveloper = "developer"
)

// application review states
const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusRejected  = "rejected"
)

// rate limited actions
const (
	ActionLogin     = "login"
	ActionSignup    = "signup"
	ActionRevealPII = "reveal_pii"
)

// Categories an application may be published under.
var Categories = []string{
	"games",
	"productivity",
	"social",
	"entertainment",
	"utilities",
	"education",
	"business",
}

// field limits enforced on submission
const (
	MaxAppNameLen     = 200
	MaxShortDescLen   = 80
	MaxLongDescLen    = 4000
	MaxReviewNotesLen = 5000
	MaxScreenshots    = 5
)

// RetentionPeriod is how long download and rate-limit rows are kept
// before the cleanup sweep removes them.
const RetentionPeriod = 90 * 24 * time.Hour

// PresignedURLExpiry is the lifetime of a generated APK download link.
const PresignedURLExpiry = 3600 * time.Second

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	return status == StatusPending || status == StatusPublished || status == StatusRejected
}
