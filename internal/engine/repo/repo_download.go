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

	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/pkg/database"
)

type IDownloadRepository interface {
	Add(ctx context.Context, entry *model.ApkDownload) error
	CountByApp(ctx context.Context, appId string) (int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type DownloadRepo struct {
	db      database.IDatabase
	dlModel *model.ApkDownload
}

func NewDownloadRepo(db database.IDatabase) IDownloadRepository {
	return &DownloadRepo{
		db:      db,
		dlModel: &model.ApkDownload{},
	}
}

func (dr *DownloadRepo) Add(ctx context.Context, entry *model.ApkDownload) error {
	return dr.db.Database().WithContext(ctx).Create(entry).Error
}

func (dr *DownloadRepo) CountByApp(ctx context.Context, appId string) (int64, error) {
	var count int64
	err := dr.db.Database().WithContext(ctx).Table(dr.dlModel.TableName()).
		Where("app_id = ?", appId).
		Count(&count).Error
	return count, err
}

func (dr *DownloadRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := dr.db.Database().WithContext(ctx).
		Where("downloaded_at < ?", cutoff).
		Delete(&model.ApkDownload{})
	return res.RowsAffected, res.Error
}
