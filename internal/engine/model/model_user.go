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

type User struct {
	BaseModel
	UserId    string `gorm:"column:user_id;uniqueIndex" json:"userId"`
	Username  string `gorm:"column:username" json:"username"`
	Password  string `gorm:"column:password" json:"-"`
	Email     string `gorm:"column:email;uniqueIndex" json:"email"`
	IsEnabled int    `gorm:"column:is_enabled;default:1" json:"isEnabled"` // 0: disabled, 1: enabled

	GdprConsent      bool `gorm:"column:gdpr_consent" json:"gdprConsent"`
	MarketingConsent bool `gorm:"column:marketing_consent" json:"marketingConsent"`
}

func (User) TableName() string {
	return "t_user"
}

type Register struct {
	Email        string `json:"email"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`

	GdprConsent      bool `json:"gdprConsent"`
	MarketingConsent bool `json:"marketingConsent"`
}

type Login struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

type UserInfo struct {
	UserId   string   `json:"userId"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type LoginResp struct {
	UserInfo UserInfo          `json:"userInfo"`
	Token    map[string]string `json:"token"`
	ExpireAt int64             `json:"-"`
	CreateAt int64             `json:"-"`
}

// TokenInfo is the session payload cached in redis while a login is
// valid.
type TokenInfo struct {
	UserId      string `json:"userId"`
	AccessToken string `json:"accessToken"`
	CreateAt    int64  `json:"createAt"`
}
