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

	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/pkg/database"
)

type ISubmissionRepository interface {
	Add(ctx context.Context, entry *model.SubmissionHistory) error
	ListByApp(ctx context.Context, appId string) ([]model.SubmissionHistory, error)
}

type SubmissionRepo struct {
	db database.IDatabase
}

func NewSubmissionRepo(db database.IDatabase) ISubmissionRepository {
	return &SubmissionRepo{db: db}
}

func (sr *SubmissionRepo) Add(ctx context.Context, entry *model.SubmissionHistory) error {
	return sr.db.Database().WithContext(ctx).Create(entry).Error
}

func (sr *SubmissionRepo) ListByApp(ctx context.Context, appId string) ([]model.SubmissionHistory, error) {
	var entries []model.SubmissionHistory
	err := sr.db.Database().WithContext(ctx).
		Where("app_id = ?", appId).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
