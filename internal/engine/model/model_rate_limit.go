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

package model

import "time"

// AuthRateLimit is one recorded attempt. The limiter counts rows per
// (identifier, action) inside the window, so state survives restarts
// and is shared across instances.
type AuthRateLimit struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Identifier  string    `gorm:"column:identifier;index:idx_rl_window" json:"identifier"`
	Action      string    `gorm:"column:action;index:idx_rl_window" json:"action"`
	AttemptedAt time.Time `gorm:"column:attempted_at;index:idx_rl_window" json:"attemptedAt"`
}

func (AuthRateLimit) TableName() string {
	return "t_auth_rate_limit"
}

type RateLimitCheckReq struct {
	Identifier string `json:"identifier"`
	Action     string `json:"action"`
}

type RateLimitCheckResp struct {
	Allowed    bool  `json:"allowed"`
	Remaining  int64 `json:"remaining"`
	RetryAfter int64 `json:"retryAfter,omitempty"`
}
