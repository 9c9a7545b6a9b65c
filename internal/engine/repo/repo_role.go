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

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/pkg/database"
)

type IRoleRepository interface {
	GrantRole(ctx context.Context, userId, role, grantedBy string) error
	RevokeRole(ctx context.Context, userId, role string) error
	HasRole(ctx context.Context, userId, role string) (bool, error)
	ListRoles(ctx context.Context, userId string) ([]string, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	BootstrapAdmin(ctx context.Context, userId string) (bool, error)
}

type RoleRepo struct {
	db        database.IDatabase
	roleModel *model.UserRole
}

func NewRoleRepo(db database.IDatabase) IRoleRepository {
	return &RoleRepo{
		db:        db,
		roleModel: &model.UserRole{},
	}
}

// GrantRole is idempotent; granting a role the user already holds is
// a no-op.
func (rr *RoleRepo) GrantRole(ctx context.Context, userId, role, grantedBy string) error {
	return rr.db.Database().WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserRole{UserId: userId, Role: role, GrantedBy: grantedBy}).Error
}

func (rr *RoleRepo) RevokeRole(ctx context.Context, userId, role string) error {
	return rr.db.Database().WithContext(ctx).
		Where("user_id = ? AND role = ?", userId, role).
		Delete(&model.UserRole{}).Error
}

// HasRole hits the role table on every call. Handlers must not cache
// the answer; a revoked role has to bite on the next request.
func (rr *RoleRepo) HasRole(ctx context.Context, userId, role string) (bool, error) {
	var count int64
	err := rr.db.Database().WithContext(ctx).Table(rr.roleModel.TableName()).
		Where("user_id = ? AND role = ?", userId, role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (rr *RoleRepo) ListRoles(ctx context.Context, userId string) ([]string, error) {
	var roles []string
	err := rr.db.Database().WithContext(ctx).Table(rr.roleModel.TableName()).
		Where("user_id = ?", userId).
		Pluck("role", &roles).Error
	return roles, err
}

func (rr *RoleRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := rr.db.Database().WithContext(ctx).Table(rr.roleModel.TableName()).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

// BootstrapAdmin grants the admin role iff no admin exists yet. The
// count and the insert run in one transaction with the role rows
// locked, so exactly one caller can ever claim the seat.
func (rr *RoleRepo) BootstrapAdmin(ctx context.Context, userId string) (bool, error) {
	claimed := false
	err := rr.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table(rr.roleModel.TableName()).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("role = ?", consts.RoleAdmin).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(&model.UserRole{
			UserId:    userId,
			Role:      consts.RoleAdmin,
			GrantedBy: userId,
		}).Error; err != nil {
			return err
		}
		claimed = true
		return nil
	})
	return claimed, err
}
