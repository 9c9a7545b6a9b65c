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

// DeveloperProfile holds the public developer identity plus the
// contact details only admins may reveal.
type DeveloperProfile struct {
	BaseModel
	UserId        string `gorm:"column:user_id;uniqueIndex" json:"userId"`
	DeveloperName string `gorm:"column:developer_name" json:"developerName"`
	Website       string `gorm:"column:website" json:"website,omitempty"`
	Bio           string `gorm:"column:bio;type:text" json:"bio,omitempty"`

	// PII, excluded from public reads
	ContactEmail string `gorm:"column:contact_email" json:"-"`
	ContactPhone string `gorm:"column:contact_phone" json:"-"`
}

func (DeveloperProfile) TableName() string {
	return "t_developer_profile"
}

type UpdateProfileReq struct {
	DeveloperName string `json:"developerName"`
	Website       string `json:"website"`
	Bio           string `json:"bio"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone"`
}

// ProfileContact is the admin-only reveal of a developer's PII.
type ProfileContact struct {
	UserId       string `json:"userId"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}
