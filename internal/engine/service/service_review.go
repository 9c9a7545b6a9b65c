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
	"time"

	"github.com/bytedance/sonic"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/internal/engine/repo"
	"github.com/devconsole/devconsole/internal/pkg/mailer"
	"github.com/devconsole/devconsole/pkg/log"
)

type ReviewService struct {
	appRepo   repo.IAppRepository
	subRepo   repo.ISubmissionRepository
	userRepo  repo.IUserRepository
	auditRepo repo.IAuditRepository
	mailer    *mailer.Mailer
}

func NewReviewService(
	appRepo repo.IAppRepository,
	subRepo repo.ISubmissionRepository,
	userRepo repo.IUserRepository,
	auditRepo repo.IAuditRepository,
	mailer *mailer.Mailer,
) *ReviewService {
	return &ReviewService{
		appRepo:   appRepo,
		subRepo:   subRepo,
		userRepo:  userRepo,
		auditRepo: auditRepo,
		mailer:    mailer,
	}
}

func (rs *ReviewService) ListPending(ctx context.Context, req *model.AppListReq) (*model.AppListResp, error) {
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}
	if req.PageNum < 1 {
		req.PageNum = 1
	}
	apps, total, err := rs.appRepo.List(ctx, repo.AppFilter{
		Status:   consts.StatusPending,
		Category: req.Category,
		Search:   req.Search,
		Offset:   (req.PageNum - 1) * req.PageSize,
		Limit:    req.PageSize,
	})
	if err != nil {
		return nil, err
	}
	list := make([]model.AppDetail, 0, len(apps))
	for i := range apps {
		list = append(list, model.AppDetail{Application: apps[i]})
	}
	return &model.AppListResp{List: list, Total: total}, nil
}

// Review persists a decision. History, audit and the developer email
// are all best effort once the status update has landed; the decision
// stands even when every notification path is down.
func (rs *ReviewService) Review(ctx context.Context, reviewerId, appId string, req *model.ReviewReq) error {
	if req.Decision != consts.StatusPublished && req.Decision != consts.StatusRejected {
		return invalid("decision", "must be published or rejected")
	}
	if len(req.ReviewNotes) > consts.MaxReviewNotesLen {
		return invalid("reviewNotes", fmt.Sprintf("must be at most %d characters", consts.MaxReviewNotesLen))
	}
	if req.Decision == consts.StatusRejected && req.ReviewNotes == "" {
		return invalid("reviewNotes", "are required when rejecting")
	}

	app, err := rs.appRepo.GetByAppId(ctx, appId)
	if err != nil {
		return err
	}

	if err := rs.appRepo.SetReview(ctx, appId, req.Decision, req.ReviewNotes, reviewerId); err != nil {
		return err
	}
	reviewsTotal.WithLabelValues(req.Decision).Inc()

	if err := rs.subRepo.Add(ctx, &model.SubmissionHistory{
		AppId:       appId,
		Action:      req.Decision,
		ActorId:     reviewerId,
		Notes:       req.ReviewNotes,
		VersionName: app.VersionName,
		VersionCode: app.VersionCode,
	}); err != nil {
		log.Errorw("record review history failed", "appId", appId, "error", err)
	}

	detail, _ := sonic.Marshal(map[string]string{"decision": req.Decision})
	if err := rs.auditRepo.Add(ctx, &model.AuditLog{
		ActorId:    reviewerId,
		Action:     "app.review",
		TargetType: "application",
		TargetId:   appId,
		Detail:     detail,
		OccurredAt: time.Now(),
	}); err != nil {
		log.Errorw("audit write failed", "appId", appId, "error", err)
	}

	rs.notifyDecision(ctx, app, req)

	return nil
}

func (rs *ReviewService) notifyDecision(ctx context.Context, app *model.Application, req *model.ReviewReq) {
	user, err := rs.userRepo.GetUserById(ctx, app.DeveloperId)
	if err != nil {
		log.Warnw("load developer for review notification failed", "developerId", app.DeveloperId, "error", err)
		return
	}
	if err := rs.mailer.SendReviewResult(ctx, user.Email, app.AppName, req.Decision, req.ReviewNotes); err != nil {
		log.Errorw("review result email failed", "appId", app.AppId, "error", err)
	}
}
