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

type IRateLimitRepository interface {
	CountInWindow(ctx context.Context, identifier, action string, since time.Time) (int64, error)
	OldestInWindow(ctx context.Context, identifier, action string, since time.Time) (time.Time, error)
	RecordAttempt(ctx context.Context, identifier, action string, at time.Time) error
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type RateLimitRepo struct {
	db      database.IDatabase
	rlModel *model.AuthRateLimit
}

func NewRateLimitRepo(db database.IDatabase) IRateLimitRepository {
	return &RateLimitRepo{
		db:      db,
		rlModel: &model.AuthRateLimit{},
	}
}

func (rr *RateLimitRepo) CountInWindow(ctx context.Context, identifier, action string, since time.Time) (int64, error) {
	var count int64
	err := rr.db.Database().WithContext(ctx).Table(rr.rlModel.TableName()).
		Where("identifier = ? AND action = ? AND attempted_at >= ?", identifier, action, since).
		Count(&count).Error
	return count, err
}

// OldestInWindow returns the earliest attempt inside the window, used
// to compute when the window frees up again.
func (rr *RateLimitRepo) OldestInWindow(ctx context.Context, identifier, action string, since time.Time) (time.Time, error) {
	var row model.AuthRateLimit
	err := rr.db.Database().WithContext(ctx).Table(rr.rlModel.TableName()).
		Where("identifier = ? AND action = ? AND attempted_at >= ?", identifier, action, since).
		Order("attempted_at ASC").
		First(&row).Error
	if err != nil {
		return time.Time{}, err
	}
	return row.AttemptedAt, nil
}

func (rr *RateLimitRepo) RecordAttempt(ctx context.Context, identifier, action string, at time.Time) error {
	return rr.db.Database().WithContext(ctx).Create(&model.AuthRateLimit{
		Identifier:  identifier,
		Action:      action,
		AttemptedAt: at,
	}).Error
}

func (rr *RateLimitRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := rr.db.Database().WithContext(ctx).
		Where("attempted_at < ?", cutoff).
		Delete(&model.AuthRateLimit{})
	return res.RowsAffected, res.Error
}
