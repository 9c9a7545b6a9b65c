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

import (
	"time"

	"gorm.io/datatypes"
)

type Application struct {
	BaseModel
	AppId       string `gorm:"column:app_id;uniqueIndex" json:"appId"`
	DeveloperId string `gorm:"column:developer_id;index" json:"developerId"`
	AppName     string `gorm:"column:app_name" json:"appName"`
	PackageName string `gorm:"column:package_name;index" json:"packageName"`
	ShortDesc   string `gorm:"column:short_description" json:"shortDescription"`
	LongDesc    string `gorm:"column:long_description;type:text" json:"longDescription"`
	Category    string `gorm:"column:category;index" json:"category"`
	Status      string `gorm:"column:status;index;default:pending" json:"status"`

	VersionName string `gorm:"column:version_name" json:"versionName"`
	VersionCode int64  `gorm:"column:version_code" json:"versionCode"`

	// object names in blob storage
	ApkObject  string `gorm:"column:apk_object" json:"-"`
	ApkSize    int64  `gorm:"column:apk_size" json:"apkSize"`
	IconObject string `gorm:"column:icon_object" json:"-"`
	// list of screenshot object names
	Screenshots datatypes.JSON `gorm:"column:screenshots" json:"-"`

	Downloads int64   `gorm:"column:downloads;default:0" json:"downloads"`
	Rating    float64 `gorm:"column:rating;default:0" json:"rating"`

	ReviewNotes string     `gorm:"column:review_notes;type:text" json:"reviewNotes,omitempty"`
	ReviewedBy  string     `gorm:"column:reviewed_by" json:"-"`
	ReviewedAt  *time.Time `gorm:"column:reviewed_at" json:"reviewedAt,omitempty"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"publishedAt,omitempty"`
	SubmittedAt time.Time  `gorm:"column:submitted_at" json:"submittedAt"`
}

func (Application) TableName() string {
	return "t_application"
}

// SubmitAppReq is the multipart metadata for a new submission or an
// update of an existing app. Files arrive alongside as form files.
type SubmitAppReq struct {
	AppName     string `json:"appName" form:"appName"`
	PackageName string `json:"packageName" form:"packageName"`
	ShortDesc   string `json:"shortDescription" form:"shortDescription"`
	LongDesc    string `json:"longDescription" form:"longDescription"`
	Category    string `json:"category" form:"category"`
	VersionName string `json:"versionName" form:"versionName"`
	VersionCode int64  `json:"versionCode" form:"versionCode"`
}

type ReviewReq struct {
	Decision    string `json:"decision"` // published | rejected
	ReviewNotes string `json:"reviewNotes"`
}

// AppDetail is the read model served to the store and the console,
// with object names swapped for resolvable URLs.
type AppDetail struct {
	Application
	IconURL        string   `json:"iconUrl,omitempty"`
	ScreenshotURLs []string `json:"screenshotUrls,omitempty"`
}

type AppListReq struct {
	Category string `query:"category"`
	Status   string `query:"status"`
	Search   string `query:"search"`
	PageNum  int    `query:"pageNum"`
	PageSize int    `query:"pageSize"`
}

type AppListResp struct {
	List  []AppDetail `json:"list"`
	Total int64       `json:"total"`
}

// DownloadResp carries a time-limited link to the APK object.
type DownloadResp struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expiresIn"`
}
