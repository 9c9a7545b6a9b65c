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

// SubmissionHistory is an append-only record of state transitions an
// application went through: submitted, published, rejected.
type SubmissionHistory struct {
	BaseModel
	AppId       string `gorm:"column:app_id;index" json:"appId"`
	Action      string `gorm:"column:action" json:"action"`
	ActorId     string `gorm:"column:actor_id" json:"actorId"`
	Notes       string `gorm:"column:notes;type:text" json:"notes,omitempty"`
	VersionName string `gorm:"column:version_name" json:"versionName,omitempty"`
	VersionCode int64  `gorm:"column:version_code" json:"versionCode,omitempty"`
}

func (SubmissionHistory) TableName() string {
	return "t_submission_history"
}
