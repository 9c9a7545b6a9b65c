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

// UserRole grants a user one role. A user may hold several rows; the
// (user_id, role) pair is unique.
type UserRole struct {
	BaseModel
	UserId    string `gorm:"column:user_id;uniqueIndex:uk_user_role" json:"userId"`
	Role      string `gorm:"column:role;uniqueIndex:uk_user_role" json:"role"`
	GrantedBy string `gorm:"column:granted_by" json:"grantedBy"`
}

func (UserRole) TableName() string {
	return "t_user_role"
}
