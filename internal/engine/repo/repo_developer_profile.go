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

package repo

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/pkg/database"
)

type IProfileRepository interface {
	Upsert(ctx context.Context, profile *model.DeveloperProfile) error
	GetByUserId(ctx context.Context, userId string) (*model.DeveloperProfile, error)
	List(ctx context.Context, offset, limit int) ([]model.DeveloperProfile, error)
}

type ProfileRepo struct {
	db           database.IDatabase
	profileModel *model.DeveloperProfile
}

func NewProfileRepo(db database.IDatabase) IProfileRepository {
	return &ProfileRepo{
		db:           db,
		profileModel: &model.DeveloperProfile{},
	}
}

func (pr *ProfileRepo) Upsert(ctx context.Context, profile *model.DeveloperProfile) error {
	return pr.db.Database().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"developer_name", "website", "bio", "contact_email", "contact_phone", "updated_at",
			}),
		}).
		Create(profile).Error
}

func (pr *ProfileRepo) GetByUserId(ctx context.Context, userId string) (*model.DeveloperProfile, error) {
	var profile = &model.DeveloperProfile{}
	err := pr.db.Database().WithContext(ctx).Table(pr.profileModel.TableName()).
		Where("user_id = ?", userId).First(profile).Error
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (pr *ProfileRepo) List(ctx context.Context, offset, limit int) ([]model.DeveloperProfile, error) {
	var profiles []model.DeveloperProfile
	err := pr.db.Database().WithContext(ctx).Table(pr.profileModel.TableName()).
		Order("developer_name ASC").
		Offset(offset).Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
