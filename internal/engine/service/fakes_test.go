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
	"mime/multipart"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/internal/engine/repo"
	"github.com/devconsole/devconsole/pkg/storage"
)

// in-memory rate limit store
type fakeRateLimitRepo struct {
	rows []model.AuthRateLimit
	err  error
}

func (f *fakeRateLimitRepo) CountInWindow(_ context.Context, identifier, action string, since time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, r := range f.rows {
		if r.Identifier == identifier && r.Action == action && !r.AttemptedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRateLimitRepo) OldestInWindow(_ context.Context, identifier, action string, since time.Time) (time.Time, error) {
	if f.err != nil {
		return time.Time{}, f.err
	}
	var inWindow []time.Time
	for _, r := range f.rows {
		if r.Identifier == identifier && r.Action == action && !r.AttemptedAt.Before(since) {
			inWindow = append(inWindow, r.AttemptedAt)
		}
	}
	if len(inWindow) == 0 {
		return time.Time{}, gorm.ErrRecordNotFound
	}
	sort.Slice(inWindow, func(i, j int) bool { return inWindow[i].Before(inWindow[j]) })
	return inWindow[0], nil
}

func (f *fakeRateLimitRepo) RecordAttempt(_ context.Context, identifier, action string, at time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, model.AuthRateLimit{Identifier: identifier, Action: action, AttemptedAt: at})
	return nil
}

func (f *fakeRateLimitRepo) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var kept []model.AuthRateLimit
	var removed int64
	for _, r := range f.rows {
		if r.AttemptedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return removed, nil
}

var _ repo.IRateLimitRepository = (*fakeRateLimitRepo)(nil)

// in-memory application store
type fakeAppRepo struct {
	apps map[string]*model.Application
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: make(map[string]*model.Application)}
}

func (f *fakeAppRepo) Create(_ context.Context, app *model.Application) error {
	cp := *app
	f.apps[app.AppId] = &cp
	return nil
}

func (f *fakeAppRepo) Update(_ context.Context, appId string, app *model.Application) error {
	existing, ok := f.apps[appId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *app
	cp.AppId = existing.AppId
	cp.DeveloperId = existing.DeveloperId
	f.apps[appId] = &cp
	return nil
}

func (f *fakeAppRepo) GetByAppId(_ context.Context, appId string) (*model.Application, error) {
	app, ok := f.apps[appId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *app
	return &cp, nil
}

func (f *fakeAppRepo) List(_ context.Context, filter repo.AppFilter) ([]model.Application, int64, error) {
	var out []model.Application
	for _, app := range f.apps {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		if filter.DeveloperId != "" && app.DeveloperId != filter.DeveloperId {
			continue
		}
		if filter.Category != "" && app.Category != filter.Category {
			continue
		}
		out = append(out, *app)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAppRepo) SetReview(_ context.Context, appId, status, notes, reviewerId string) error {
	app, ok := f.apps[appId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	app.Status = status
	app.ReviewNotes = notes
	app.ReviewedBy = reviewerId
	app.ReviewedAt = &now
	if status == consts.StatusPublished {
		app.PublishedAt = &now
	}
	return nil
}

func (f *fakeAppRepo) IncrementDownloads(_ context.Context, appId string) error {
	app, ok := f.apps[appId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	app.Downloads++
	return nil
}

var _ repo.IAppRepository = (*fakeAppRepo)(nil)

// in-memory user store
type fakeUserRepo struct {
	users  map[string]*model.User // by userId
	tokens map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User), tokens: make(map[string]string)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	cp := *user
	f.users[user.UserId] = &cp
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserById(_ context.Context, userId string) (*model.User, error) {
	u, ok := f.users[userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) SetToken(_ context.Context, userId, aToken string, _ time.Duration) error {
	f.tokens[userId] = aToken
	return nil
}

func (f *fakeUserRepo) DelToken(_ context.Context, userId string) error {
	delete(f.tokens, userId)
	return nil
}

var _ repo.IUserRepository = (*fakeUserRepo)(nil)

// in-memory role store
type fakeRoleRepo struct {
	grants map[string]map[string]bool // userId -> roles
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{grants: make(map[string]map[string]bool)}
}

func (f *fakeRoleRepo) GrantRole(_ context.Context, userId, role, _ string) error {
	if f.grants[userId] == nil {
		f.grants[userId] = make(map[string]bool)
	}
	f.grants[userId][role] = true
	return nil
}

func (f *fakeRoleRepo) RevokeRole(_ context.Context, userId, role string) error {
	delete(f.grants[userId], role)
	return nil
}

func (f *fakeRoleRepo) HasRole(_ context.Context, userId, role string) (bool, error) {
	return f.grants[userId][role], nil
}

func (f *fakeRoleRepo) ListRoles(_ context.Context, userId string) ([]string, error) {
	var roles []string
	for role := range f.grants[userId] {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles, nil
}

func (f *fakeRoleRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, roles := range f.grants {
		if roles[role] {
			n++
		}
	}
	return n, nil
}

func (f *fakeRoleRepo) BootstrapAdmin(ctx context.Context, userId string) (bool, error) {
	if n, _ := f.CountByRole(ctx, "admin"); n > 0 {
		return false, nil
	}
	return true, f.GrantRole(ctx, userId, "admin", userId)
}

var _ repo.IRoleRepository = (*fakeRoleRepo)(nil)

// append-only fakes
type fakeSubmissionRepo struct {
	entries []model.SubmissionHistory
	err     error
}

func (f *fakeSubmissionRepo) Add(_ context.Context, entry *model.SubmissionHistory) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeSubmissionRepo) ListByApp(_ context.Context, appId string) ([]model.SubmissionHistory, error) {
	var out []model.SubmissionHistory
	for _, e := range f.entries {
		if e.AppId == appId {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ repo.ISubmissionRepository = (*fakeSubmissionRepo)(nil)

type fakeAuditRepo struct {
	entries []model.AuditLog
	err     error
}

func (f *fakeAuditRepo) Add(_ context.Context, entry *model.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) ListRecent(_ context.Context, limit int) ([]model.AuditLog, error) {
	if limit <= 0 || limit > len(f.entries) {
		limit = len(f.entries)
	}
	out := make([]model.AuditLog, limit)
	copy(out, f.entries[len(f.entries)-limit:])
	return out, nil
}

var _ repo.IAuditRepository = (*fakeAuditRepo)(nil)

type fakeProfileRepo struct {
	profiles map[string]*model.DeveloperProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*model.DeveloperProfile)}
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *model.DeveloperProfile) error {
	cp := *profile
	f.profiles[profile.UserId] = &cp
	return nil
}

func (f *fakeProfileRepo) GetByUserId(_ context.Context, userId string) (*model.DeveloperProfile, error) {
	p, ok := f.profiles[userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) List(_ context.Context, offset, limit int) ([]model.DeveloperProfile, error) {
	var all []model.DeveloperProfile
	for _, p := range f.profiles {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DeveloperName < all[j].DeveloperName })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

var _ repo.IProfileRepository = (*fakeProfileRepo)(nil)

type fakeDownloadRepo struct {
	entries []model.ApkDownload
	err     error
}

func (f *fakeDownloadRepo) Add(_ context.Context, entry *model.ApkDownload) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeDownloadRepo) CountByApp(_ context.Context, appId string) (int64, error) {
	var n int64
	for _, e := range f.entries {
		if e.AppId == appId {
			n++
		}
	}
	return n, nil
}

func (f *fakeDownloadRepo) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []model.ApkDownload
	var removed int64
	for _, e := range f.entries {
		if e.DownloadedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return removed, nil
}

var _ repo.IDownloadRepository = (*fakeDownloadRepo)(nil)

// fakeStorage hands back deterministic object paths and URLs.
type fakeStorage struct {
	objects map[string]bool
	fail    bool
}

var errStorageDown = errors.New("storage down")

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]bool)}
}

func (f *fakeStorage) PutObject(_ context.Context, objectName string, _ *multipart.FileHeader, _ string) (string, error) {
	if f.fail {
		return "", errStorageDown
	}
	f.objects[objectName] = true
	return objectName, nil
}

func (f *fakeStorage) GetObject(_ context.Context, _ string) ([]byte, error) {
	return nil, errStorageDown
}

func (f *fakeStorage) PresignedGetURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	if f.fail {
		return "", errStorageDown
	}
	return "https://blob.example.com/" + objectName + "?sig=test", nil
}

func (f *fakeStorage) Delete(_ context.Context, objectName string) error {
	delete(f.objects, objectName)
	return nil
}

var _ storage.StorageProvider = (*fakeStorage)(nil)
