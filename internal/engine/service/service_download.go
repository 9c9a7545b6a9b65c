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
	"context"
	"time"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/internal/engine/repo"
	"github.com/devconsole/devconsole/pkg/log"
	"github.com/devconsole/devconsole/pkg/storage"
)

type DownloadService struct {
	appRepo repo.IAppRepository
	dlRepo  repo.IDownloadRepository
	storage storage.StorageProvider
}

func NewDownloadService(appRepo repo.IAppRepository, dlRepo repo.IDownloadRepository, storage storage.StorageProvider) *DownloadService {
	return &DownloadService{appRepo: appRepo, dlRepo: dlRepo, storage: storage}
}

// GetDownloadURL issues a time-limited link to a published app's APK.
// Developers may fetch their own apps in any state. The download log
// and the counter bump are best effort.
func (ds *DownloadService) GetDownloadURL(ctx context.Context, appId, userId, clientIP, userAgent string) (*model.DownloadResp, error) {
	app, err := ds.appRepo.GetByAppId(ctx, appId)
	if err != nil {
		return nil, err
	}
	if app.Status != consts.StatusPublished && app.DeveloperId != userId {
		return nil, ErrNotPublished
	}

	url, err := ds.storage.PresignedGetURL(ctx, app.ApkObject, consts.PresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	downloadsIssued.Inc()

	if err := ds.dlRepo.Add(ctx, &model.ApkDownload{
		AppId:        appId,
		UserId:       userId,
		ClientIP:     clientIP,
		UserAgent:    userAgent,
		DownloadedAt: time.Now(),
	}); err != nil {
		log.Errorw("download log write failed", "appId", appId, "error", err)
	}
	if err := ds.appRepo.IncrementDownloads(ctx, appId); err != nil {
		log.Errorw("download counter bump failed", "appId", appId, "error", err)
	}

	return &model.DownloadResp{
		URL:       url,
		ExpiresIn: int64(consts.PresignedURLExpiry.Seconds()),
	}, nil
}
