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
	"fmt"
	"mime/multipart"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/internal/engine/repo"
	"github.com/devconsole/devconsole/internal/pkg/mailer"
	"github.com/devconsole/devconsole/pkg/id"
	"github.com/devconsole/devconsole/pkg/log"
	"github.com/devconsole/devconsole/pkg/storage"
)

// MaxApkSize caps uploads at 100 MiB.
const MaxApkSize = 100 << 20

// swappable in tests
var timeNow = time.Now

type AppService struct {
	appRepo  repo.IAppRepository
	subRepo  repo.ISubmissionRepository
	userRepo repo.IUserRepository
	storage  storage.StorageProvider
	mailer   *mailer.Mailer
}

func NewAppService(
	appRepo repo.IAppRepository,
	subRepo repo.ISubmissionRepository,
	userRepo repo.IUserRepository,
	storage storage.StorageProvider,
	mailer *mailer.Mailer,
) *AppService {
	return &AppService{
		appRepo:  appRepo,
		subRepo:  subRepo,
		userRepo: userRepo,
		storage:  storage,
		mailer:   mailer,
	}
}

// SubmitFiles groups the uploads accompanying a submission.
type SubmitFiles struct {
	Apk         *multipart.FileHeader
	Icon        *multipart.FileHeader
	Screenshots []*multipart.FileHeader
}

// Submit stores a new application in pending state. The confirmation
// email is best effort; a dead mail provider does not lose the
// submission.
func (as *AppService) Submit(ctx context.Context, developerId string, req *model.SubmitAppReq, files *SubmitFiles) (*model.Application, error) {
	if err := validateSubmission(req, files, true); err != nil {
		return nil, err
	}

	appId := id.GetUUIDWithoutDashes()
	app := &model.Application{
		AppId:       appId,
		DeveloperId: developerId,
		AppName:     req.AppName,
		PackageName: req.PackageName,
		ShortDesc:   req.ShortDesc,
		LongDesc:    req.LongDesc,
		Category:    req.Category,
		Status:      consts.StatusPending,
		VersionName: req.VersionName,
		VersionCode: req.VersionCode,
		SubmittedAt: timeNow(),
	}

	if err := as.uploadAssets(ctx, app, files); err != nil {
		return nil, err
	}

	if err := as.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	submissionsTotal.WithLabelValues("new").Inc()

	as.recordHistory(ctx, app, developerId, "submitted", "")
	as.notifySubmission(ctx, developerId, app.AppName)

	return app, nil
}

// Update resubmits an existing app. Any change puts it back in the
// review queue.
func (as *AppService) Update(ctx context.Context, developerId, appId string, req *model.SubmitAppReq, files *SubmitFiles) (*model.Application, error) {
	existing, err := as.appRepo.GetByAppId(ctx, appId)
	if err != nil {
		return nil, err
	}
	if existing.DeveloperId != developerId {
		return nil, ErrNotOwner
	}

	if err := validateSubmission(req, files, false); err != nil {
		return nil, err
	}

	app := &model.Application{
		AppId:       appId,
		DeveloperId: developerId,
		AppName:     req.AppName,
		// package name is fixed at first submission
		PackageName: existing.PackageName,
		ShortDesc:   req.ShortDesc,
		LongDesc:    req.LongDesc,
		Category:    req.Category,
		Status:      consts.StatusPending,
		VersionName: req.VersionName,
		VersionCode: req.VersionCode,
		ApkObject:   existing.ApkObject,
		ApkSize:     existing.ApkSize,
		IconObject:  existing.IconObject,
		Screenshots: existing.Screenshots,
		SubmittedAt: timeNow(),
	}

	if err := as.uploadAssets(ctx, app, files); err != nil {
		return nil, err
	}

	if err := as.appRepo.Update(ctx, appId, app); err != nil {
		return nil, err
	}
	submissionsTotal.WithLabelValues("update").Inc()

	as.recordHistory(ctx, app, developerId, "submitted", "resubmission")
	as.notifySubmission(ctx, developerId, app.AppName)

	return app, nil
}

func (as *AppService) GetDetail(ctx context.Context, appId string) (*model.AppDetail, error) {
	app, err := as.appRepo.GetByAppId(ctx, appId)
	if err != nil {
		return nil, err
	}
	return as.toDetail(ctx, app), nil
}

// ListStore serves the public storefront: published apps only,
// whatever filter the caller asked for.
func (as *AppService) ListStore(ctx context.Context, req *model.AppListReq) (*model.AppListResp, error) {
	filter := repo.AppFilter{
		Status:   consts.StatusPublished,
		Category: req.Category,
		Search:   req.Search,
	}
	return as.list(ctx, req, filter)
}

// ListMine serves a developer their own apps in every state.
func (as *AppService) ListMine(ctx context.Context, developerId string, req *model.AppListReq) (*model.AppListResp, error) {
	filter := repo.AppFilter{
		DeveloperId: developerId,
		Status:      req.Status,
		Category:    req.Category,
		Search:      req.Search,
	}
	return as.list(ctx, req, filter)
}

func (as *AppService) History(ctx context.Context, developerId, appId string, isReviewer bool) ([]model.SubmissionHistory, error) {
	app, err := as.appRepo.GetByAppId(ctx, appId)
	if err != nil {
		return nil, err
	}
	if !isReviewer && app.DeveloperId != developerId {
		return nil, ErrNotOwner
	}
	return as.subRepo.ListByApp(ctx, appId)
}

func (as *AppService) list(ctx context.Context, req *model.AppListReq, filter repo.AppFilter) (*model.AppListResp, error) {
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}
	if req.PageNum < 1 {
		req.PageNum = 1
	}
	filter.Offset = (req.PageNum - 1) * req.PageSize
	filter.Limit = req.PageSize

	apps, total, err := as.appRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := make([]model.AppDetail, 0, len(apps))
	for i := range apps {
		list = append(list, *as.toDetail(ctx, &apps[i]))
	}
	return &model.AppListResp{List: list, Total: total}, nil
}

func (as *AppService) uploadAssets(ctx context.Context, app *model.Application, files *SubmitFiles) error {
	if files.Apk != nil {
		// caller-scoped prefix keeps one developer's objects together
		object := fmt.Sprintf("apk/%s/%s/%d%s", app.DeveloperId, app.AppId, app.VersionCode, path.Ext(files.Apk.Filename))
		if _, err := as.storage.PutObject(ctx, object, files.Apk, "application/vnd.android.package-archive"); err != nil {
			return fmt.Errorf("upload apk: %w", err)
		}
		app.ApkObject = object
		app.ApkSize = files.Apk.Size
	}

	if files.Icon != nil {
		object := fmt.Sprintf("icon/%s/%s%s", app.DeveloperId, app.AppId, path.Ext(files.Icon.Filename))
		if _, err := as.storage.PutObject(ctx, object, files.Icon, files.Icon.Header.Get("Content-Type")); err != nil {
			return fmt.Errorf("upload icon: %w", err)
		}
		app.IconObject = object
	}

	if len(files.Screenshots) > 0 {
		objects := make([]string, 0, len(files.Screenshots))
		for i, shot := range files.Screenshots {
			object := fmt.Sprintf("screenshot/%s/%s/%d%s", app.DeveloperId, app.AppId, i, path.Ext(shot.Filename))
			if _, err := as.storage.PutObject(ctx, object, shot, shot.Header.Get("Content-Type")); err != nil {
				return fmt.Errorf("upload screenshot %d: %w", i, err)
			}
			objects = append(objects, object)
		}
		encoded, err := sonic.Marshal(objects)
		if err != nil {
			return fmt.Errorf("encode screenshots: %w", err)
		}
		app.Screenshots = datatypes.JSON(encoded)
	}

	return nil
}

func (as *AppService) toDetail(ctx context.Context, app *model.Application) *model.AppDetail {
	detail := &model.AppDetail{Application: *app}

	if app.IconObject != "" {
		if url, err := as.storage.PresignedGetURL(ctx, app.IconObject, consts.PresignedURLExpiry); err == nil {
			detail.IconURL = url
		} else {
			log.Warnw("presign icon failed", "appId", app.AppId, "error", err)
		}
	}

	if len(app.Screenshots) > 0 {
		var objects []string
		if err := sonic.Unmarshal(app.Screenshots, &objects); err == nil {
			for _, object := range objects {
				if url, err := as.storage.PresignedGetURL(ctx, object, consts.PresignedURLExpiry); err == nil {
					detail.ScreenshotURLs = append(detail.ScreenshotURLs, url)
				}
			}
		}
	}

	return detail
}

func (as *AppService) recordHistory(ctx context.Context, app *model.Application, actorId, action, notes string) {
	err := as.subRepo.Add(ctx, &model.SubmissionHistory{
		AppId:       app.AppId,
		Action:      action,
		ActorId:     actorId,
		Notes:       notes,
		VersionName: app.VersionName,
		VersionCode: app.VersionCode,
	})
	if err != nil {
		log.Errorw("record submission history failed", "appId", app.AppId, "error", err)
	}
}

func (as *AppService) notifySubmission(ctx context.Context, developerId, appName string) {
	user, err := as.userRepo.GetUserById(ctx, developerId)
	if err != nil {
		log.Warnw("load developer for notification failed", "developerId", developerId, "error", err)
		return
	}
	if err := as.mailer.SendSubmissionReceived(ctx, user.Email, appName); err != nil {
		log.Errorw("submission confirmation email failed", "developerId", developerId, "error", err)
	}
}

// Android package name: dot-separated Java identifiers, two+ segments.
var packageNameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)+$`)

func validateSubmission(req *model.SubmitAppReq, files *SubmitFiles, requireApk bool) error {
	req.AppName = strings.TrimSpace(req.AppName)
	if req.AppName == "" {
		return invalid("appName", "is required")
	}
	if len(req.AppName) > consts.MaxAppNameLen {
		return invalid("appName", fmt.Sprintf("must be at most %d characters", consts.MaxAppNameLen))
	}
	if requireApk {
		if req.PackageName == "" {
			return invalid("packageName", "is required")
		}
		if !packageNameRe.MatchString(req.PackageName) {
			return invalid("packageName", "must be a reverse-DNS name like com.example.app")
		}
	}
	if req.ShortDesc == "" {
		return invalid("shortDescription", "is required")
	}
	if len(req.ShortDesc) > consts.MaxShortDescLen {
		return invalid("shortDescription", fmt.Sprintf("must be at most %d characters", consts.MaxShortDescLen))
	}
	if len(req.LongDesc) > consts.MaxLongDescLen {
		return invalid("longDescription", fmt.Sprintf("must be at most %d characters", consts.MaxLongDescLen))
	}
	if !consts.IsValidCategory(req.Category) {
		return invalid("category", "unknown category")
	}
	if req.VersionName == "" {
		return invalid("versionName", "is required")
	}
	if req.VersionCode <= 0 {
		return invalid("versionCode", "must be positive")
	}

	if files == nil {
		files = &SubmitFiles{}
	}
	if requireApk && files.Apk == nil {
		return invalid("apk", "is required")
	}
	if files.Apk != nil {
		if !strings.EqualFold(path.Ext(files.Apk.Filename), ".apk") {
			return invalid("apk", "must be an .apk file")
		}
		if files.Apk.Size > MaxApkSize {
			return invalid("apk", "exceeds the 100MB limit")
		}
	}
	if len(files.Screenshots) > consts.MaxScreenshots {
		return invalid("screenshots", fmt.Sprintf("at most %d allowed", consts.MaxScreenshots))
	}

	return nil
}
