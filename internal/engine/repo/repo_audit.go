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

type IAuditRepository interface {
	Add(ctx context.Context, entry *model.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error)
}

type AuditRepo struct {
	db database.IDatabase
}

func NewAuditRepo(db database.IDatabase) IAuditRepository {
	return &AuditRepo{db: db}
}

func (ar *AuditRepo) Add(ctx context.Context, entry *model.AuditLog) error {
	return ar.db.Database().WithContext(ctx).Create(entry).Error
}

func (ar *AuditRepo) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []model.AuditLog
	err := ar.db.Database().WithContext(ctx).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
