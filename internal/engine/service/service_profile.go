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
	"net/mail"
	"strings"

	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/internal/engine/repo"
)

type ProfileService struct {
	profileRepo repo.IProfileRepository
}

func NewProfileService(profileRepo repo.IProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (ps *ProfileService) Get(ctx context.Context, userId string) (*model.DeveloperProfile, error) {
	return ps.profileRepo.GetByUserId(ctx, userId)
}

func (ps *ProfileService) Update(ctx context.Context, userId string, req *model.UpdateProfileReq) error {
	req.DeveloperName = strings.TrimSpace(req.DeveloperName)
	if req.DeveloperName == "" {
		return invalid("developerName", "is required")
	}
	if len(req.DeveloperName) > 100 {
		return invalid("developerName", "must be at most 100 characters")
	}
	if req.Website != "" && !strings.HasPrefix(req.Website, "http://") && !strings.HasPrefix(req.Website, "https://") {
		return invalid("website", "must be an http(s) URL")
	}
	if req.ContactEmail != "" {
		if _, err := mail.ParseAddress(req.ContactEmail); err != nil {
			return invalid("contactEmail", "invalid email address")
		}
	}

	return ps.profileRepo.Upsert(ctx, &model.DeveloperProfile{
		UserId:        userId,
		DeveloperName: req.DeveloperName,
		Website:       req.Website,
		Bio:           req.Bio,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
	})
}
