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

	"github.com/bytedance/sonic"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/internal/engine/repo"
	"github.com/devconsole/devconsole/pkg/log"
)

type AdminService struct {
	profileRepo repo.IProfileRepository
	auditRepo   repo.IAuditRepository
	limiter     *RateLimitService
}

func NewAdminService(profileRepo repo.IProfileRepository, auditRepo repo.IAuditRepository, limiter *RateLimitService) *AdminService {
	return &AdminService{
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		limiter:     limiter,
	}
}

// RevealContact hands an admin a developer's contact PII. Reveals are
// throttled per admin and each one leaves an audit row. The audit
// write is best effort; the throttle fails open on store errors.
func (as *AdminService) RevealContact(ctx context.Context, adminId, targetUserId string) (*model.ProfileContact, error) {
	allowed, retryAfter, err := as.limiter.Allow(ctx, adminId, consts.ActionRevealPII)
	if err != nil {
		log.Errorw("pii rate limit check failed, failing open", "adminId", adminId, "error", err)
	} else if !allowed {
		return nil, &RateLimitedError{RetryAfter: retryAfter}
	}

	profile, err := as.profileRepo.GetByUserId(ctx, targetUserId)
	if err != nil {
		return nil, err
	}

	detail, _ := sonic.Marshal(map[string]any{
		"fields": []string{"contactEmail", "contactPhone"},
		"target": targetUserId,
	})
	if err := as.auditRepo.Add(ctx, &model.AuditLog{
		ActorId:    adminId,
		Action:     "profile.reveal_pii",
		TargetType: "user",
		TargetId:   targetUserId,
		Detail:     detail,
		OccurredAt: time.Now(),
	}); err != nil {
		log.Errorw("audit write failed", "action", "profile.reveal_pii", "adminId", adminId, "error", err)
	}

	return &model.ProfileContact{
		UserId:       profile.UserId,
		ContactEmail: profile.ContactEmail,
		ContactPhone: profile.ContactPhone,
	}, nil
}

func (as *AdminService) ListAudit(ctx context.Context, limit int) ([]model.AuditLog, error) {
	return as.auditRepo.ListRecent(ctx, limit)
}

// ListProfiles pages through developer profiles. Contact PII stays out
// of the payload; RevealContact is the only way in.
func (as *AdminService) ListProfiles(ctx context.Context, pageNum, pageSize int) ([]model.DeveloperProfile, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	if pageNum < 1 {
		pageNum = 1
	}
	return as.profileRepo.List(ctx, (pageNum-1)*pageSize, pageSize)
}
