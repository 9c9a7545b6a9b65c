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
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/pkg/cache"
	"github.com/devconsole/devconsole/pkg/database"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserById(ctx context.Context, userId string) (*model.User, error)
	SetToken(ctx context.Context, userId, aToken string, expire time.Duration) error
	DelToken(ctx context.Context, userId string) error
}

type UserRepo struct {
	db        database.IDatabase
	cache     cache.ICache
	userModel *model.User
}

func NewUserRepo(db database.IDatabase, cache cache.ICache) IUserRepository {
	return &UserRepo{
		db:        db,
		cache:     cache,
		userModel: &model.User{},
	}
}

func (ur *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return ur.db.Database().WithContext(ctx).Create(user).Error
}

func (ur *UserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u = &model.User{}
	err := ur.db.Database().WithContext(ctx).Table(ur.userModel.TableName()).
		Where("email = ?", email).First(u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (ur *UserRepo) GetUserById(ctx context.Context, userId string) (*model.User, error) {
	var u = &model.User{}
	err := ur.db.Database().WithContext(ctx).Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).First(u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

// SetToken stores the session payload under the user's token key. The
// key TTL is what actually bounds the session lifetime.
func (ur *UserRepo) SetToken(ctx context.Context, userId, aToken string, expire time.Duration) error {
	info := &model.TokenInfo{
		UserId:      userId,
		AccessToken: aToken,
		CreateAt:    time.Now().Unix(),
	}
	payload, err := sonic.MarshalString(info)
	if err != nil {
		return fmt.Errorf("marshal token info: %w", err)
	}
	return ur.cache.Set(ctx, consts.UserTokenKey+userId, payload, expire).Err()
}

func (ur *UserRepo) DelToken(ctx context.Context, userId string) error {
	return ur.cache.Del(ctx, consts.UserTokenKey+userId).Err()
}
