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
	"errors"
	"fmt"
	"net/mail"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/internal/engine/repo"
	"github.com/devconsole/devconsole/pkg/http"
	"github.com/devconsole/devconsole/pkg/http/jwt"
	"github.com/devconsole/devconsole/pkg/id"
	"github.com/devconsole/devconsole/pkg/log"
)

type UserService struct {
	userRepo    repo.IUserRepository
	roleRepo    repo.IRoleRepository
	profileRepo repo.IProfileRepository
	captcha     *CaptchaService
	limiter     *RateLimitService
}

func NewUserService(
	userRepo repo.IUserRepository,
	roleRepo repo.IRoleRepository,
	profileRepo repo.IProfileRepository,
	captcha *CaptchaService,
	limiter *RateLimitService,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		profileRepo: profileRepo,
		captcha:     captcha,
		limiter:     limiter,
	}
}

// Register creates a developer account. The gate order matters:
// throttle first so bots cannot burn captcha verifications, captcha
// second so only humans reach the store.
func (us *UserService) Register(ctx context.Context, reg *model.Register, clientIP string) error {
	if err := us.throttle(ctx, clientIP, consts.ActionSignup); err != nil {
		return err
	}
	if err := us.captcha.Verify(ctx, reg.CaptchaToken, clientIP); err != nil {
		return err
	}

	if reg.Email == "" || reg.Password == "" {
		return invalid("", "email and password are required")
	}
	if _, err := mail.ParseAddress(reg.Email); err != nil {
		return invalid("email", "invalid email address")
	}
	if err := validatePassword(reg.Password); err != nil {
		return err
	}
	if !reg.GdprConsent {
		return invalid("gdprConsent", "is required")
	}
	if reg.Username == "" {
		reg.Username = "dev_" + id.ShortId()
	}

	if _, err := us.userRepo.GetUserByEmail(ctx, reg.Email); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		UserId:           id.GetUUIDWithoutDashes(),
		Username:         reg.Username,
		Password:         string(hash),
		Email:            reg.Email,
		IsEnabled:        1,
		GdprConsent:      reg.GdprConsent,
		MarketingConsent: reg.MarketingConsent,
	}
	if err := us.userRepo.CreateUser(ctx, user); err != nil {
		return err
	}

	// every fresh account is a developer
	if err := us.roleRepo.GrantRole(ctx, user.UserId, consts.RoleDeveloper, user.UserId); err != nil {
		log.Errorw("grant developer role failed", "userId", user.UserId, "error", err)
	}
	if err := us.profileRepo.Upsert(ctx, &model.DeveloperProfile{
		UserId:        user.UserId,
		DeveloperName: user.Username,
		ContactEmail:  user.Email,
	}); err != nil {
		log.Errorw("create developer profile failed", "userId", user.UserId, "error", err)
	}

	return nil
}

func (us *UserService) Login(ctx context.Context, login *model.Login, clientIP string, auth http.Auth) (*model.LoginResp, error) {
	if err := us.throttle(ctx, clientIP, consts.ActionLogin); err != nil {
		return nil, err
	}
	if err := us.captcha.Verify(ctx, login.CaptchaToken, clientIP); err != nil {
		return nil, err
	}

	if login.Email == "" || login.Password == "" {
		return nil, invalid("", "email and password are required")
	}

	user, err := us.userRepo.GetUserByEmail(ctx, login.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if user.IsEnabled == 0 {
		return nil, ErrBadCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(login.Password)) != nil {
		log.Warnw("incorrect password", "email", login.Email, "ip", clientIP)
		return nil, ErrBadCredentials
	}

	aToken, rToken, err := jwt.GenToken(user.UserId, []byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	createAt := now.Unix()
	expireAt := now.Add(auth.AccessExpire * time.Minute).Unix()

	roles, err := us.roleRepo.ListRoles(ctx, user.UserId)
	if err != nil {
		log.Warnw("list roles failed", "userId", user.UserId, "error", err)
		roles = []string{}
	}

	if err := us.userRepo.SetToken(ctx, user.UserId, aToken, auth.AccessExpire*time.Minute); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return &model.LoginResp{
		UserInfo: model.UserInfo{
			UserId:   user.UserId,
			Username: user.Username,
			Email:    user.Email,
			Roles:    roles,
		},
		Token: map[string]string{
			"accessToken":  aToken,
			"refreshToken": rToken,
			"expireAt":     fmt.Sprintf("%d", expireAt),
			"createAt":     fmt.Sprintf("%d", createAt),
		},
		ExpireAt: expireAt,
		CreateAt: createAt,
	}, nil
}

func (us *UserService) Logout(ctx context.Context, userId string) error {
	return us.userRepo.DelToken(ctx, userId)
}

func (us *UserService) Refresh(ctx context.Context, userId, refreshToken string, auth *http.Auth) (map[string]string, error) {
	token, err := jwt.RefreshToken(auth, userId, refreshToken)
	if err != nil {
		return nil, err
	}
	if err := us.userRepo.SetToken(ctx, userId, token["accessToken"], auth.AccessExpire*time.Minute); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return token, nil
}

func (us *UserService) GetUserInfo(ctx context.Context, userId string) (*model.UserInfo, error) {
	user, err := us.userRepo.GetUserById(ctx, userId)
	if err != nil {
		return nil, err
	}
	roles, err := us.roleRepo.ListRoles(ctx, userId)
	if err != nil {
		log.Warnw("list roles failed", "userId", userId, "error", err)
		roles = []string{}
	}
	return &model.UserInfo{
		UserId:   user.UserId,
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
	}, nil
}

// throttle denies over-limit callers and fails open when the limiter
// store itself is down.
func (us *UserService) throttle(ctx context.Context, identifier, action string) error {
	allowed, retryAfter, err := us.limiter.Allow(ctx, identifier, action)
	if err != nil {
		log.Errorw("rate limit check failed, failing open", "action", action, "error", err)
		return nil
	}
	if !allowed {
		return &RateLimitedError{RetryAfter: retryAfter}
	}
	return nil
}

// validatePassword enforces at least 8 chars with upper, lower, digit
// and special.
func validatePassword(password string) error {
	if len(password) < 8 {
		return invalid("password", "must be at least 8 characters")
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return invalid("password", "must contain upper, lower, digit and special characters")
	}
	return nil
}
