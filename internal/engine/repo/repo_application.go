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
	"time"

	"gorm.io/gorm"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/pkg/database"
)

// AppFilter narrows List. Zero values mean no constraint.
type AppFilter struct {
	DeveloperId string
	Status      string
	Category    string
	Search      string
	Offset      int
	Limit       int
}

type IAppRepository interface {
	Create(ctx context.Context, app *model.Application) error
	Update(ctx context.Context, appId string, app *model.Application) error
	GetByAppId(ctx context.Context, appId string) (*model.Application, error)
	List(ctx context.Context, filter AppFilter) ([]model.Application, int64, error)
	SetReview(ctx context.Context, appId, status, notes, reviewerId string) error
	IncrementDownloads(ctx context.Context, appId string) error
}

type AppRepo struct {
	db       database.IDatabase
	appModel *model.Application
}

func NewAppRepo(db database.IDatabase) IAppRepository {
	return &AppRepo{
		db:       db,
		appModel: &model.Application{},
	}
}

func (ar *AppRepo) Create(ctx context.Context, app *model.Application) error {
	return ar.db.Database().WithContext(ctx).Create(app).Error
}

// Update rewrites the mutable submission fields; identity and review
// columns stay untouched.
func (ar *AppRepo) Update(ctx context.Context, appId string, app *model.Application) error {
	return ar.db.Database().WithContext(ctx).Table(ar.appModel.TableName()).
		Where("app_id = ?", appId).
		Omit("app_id", "developer_id", "downloads", "created_at").
		Updates(app).Error
}

func (ar *AppRepo) GetByAppId(ctx context.Context, appId string) (*model.Application, error) {
	var app = &model.Application{}
	err := ar.db.Database().WithContext(ctx).Table(ar.appModel.TableName()).
		Where("app_id = ?", appId).First(app).Error
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (ar *AppRepo) List(ctx context.Context, filter AppFilter) ([]model.Application, int64, error) {
	var (
		apps  []model.Application
		total int64
	)

	scope := func(db *gorm.DB) *gorm.DB {
		q := db.Table(ar.appModel.TableName())
		if filter.DeveloperId != "" {
			q = q.Where("developer_id = ?", filter.DeveloperId)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		if filter.Search != "" {
			q = q.Where("app_name LIKE ?", "%"+filter.Search+"%")
		}
		return q
	}

	if err := ar.db.Database().WithContext(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := ar.db.Database().WithContext(ctx).Scopes(scope).Order("submitted_at DESC")
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := q.Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (ar *AppRepo) SetReview(ctx context.Context, appId, status, notes, reviewerId string) error {
	now := time.Now()
	updates := map[string]any{
		"status":       status,
		"review_notes": notes,
		"reviewed_by":  reviewerId,
		"reviewed_at":  &now,
	}
	if status == consts.StatusPublished {
		updates["published_at"] = &now
	}
	return ar.db.Database().WithContext(ctx).Table(ar.appModel.TableName()).
		Where("app_id = ?", appId).
		Updates(updates).Error
}

func (ar *AppRepo) IncrementDownloads(ctx context.Context, appId string) error {
	return ar.db.Database().WithContext(ctx).Table(ar.appModel.TableName()).
		Where("app_id = ?", appId).
		UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error
}
