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

// ApkDownload logs one issued download link. Kept for 90 days, then
// swept by the retention job.
type ApkDownload struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AppId        string    `gorm:"column:app_id;index" json:"appId"`
	UserId       string    `gorm:"column:user_id" json:"userId,omitempty"`
	ClientIP     string    `gorm:"column:client_ip" json:"clientIp,omitempty"`
	UserAgent    string    `gorm:"column:user_agent" json:"userAgent,omitempty"`
	DownloadedAt time.Time `gorm:"column:downloaded_at;index" json:"downloadedAt"`
}

func (ApkDownload) TableName() string {
	return "t_apk_download"
}
