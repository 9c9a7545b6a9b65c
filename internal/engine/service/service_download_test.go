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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
)

func seedPublishedApp(apps *fakeAppRepo) *model.Application {
	app := &model.Application{
		AppId:       "app-1",
		DeveloperId: "dev-1",
		AppName:     "Weather Now",
		Status:      consts.StatusPublished,
		ApkObject:   "apk/app-1/1.apk",
		SubmittedAt: time.Now(),
	}
	_ = apps.Create(context.Background(), app)
	return app
}

func TestDownloadPublishedApp(t *testing.T) {
	ctx := context.Background()
	apps := newFakeAppRepo()
	dl := &fakeDownloadRepo{}
	app := seedPublishedApp(apps)

	svc := NewDownloadService(apps, dl, newFakeStorage())
	resp, err := svc.GetDownloadURL(ctx, app.AppId, "user-9", "203.0.113.9", "okhttp/4.9")
	require.NoError(t, err)
	assert.Contains(t, resp.URL, app.ApkObject)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	// log row and counter
	require.Len(t, dl.entries, 1)
	assert.Equal(t, "203.0.113.9", dl.entries[0].ClientIP)
	stored, _ := apps.GetByAppId(ctx, app.AppId)
	assert.Equal(t, int64(1), stored.Downloads)
}

func TestDownloadPendingAppDenied(t *testing.T) {
	ctx := context.Background()
	apps := newFakeAppRepo()
	app := seedPublishedApp(apps)
	require.NoError(t, apps.SetReview(ctx, app.AppId, consts.StatusPending, "", ""))

	svc := NewDownloadService(apps, &fakeDownloadRepo{}, newFakeStorage())
	_, err := svc.GetDownloadURL(ctx, app.AppId, "user-9", "ip", "ua")
	assert.ErrorIs(t, err, ErrNotPublished)

	// the owning developer can still fetch their own build
	_, err = svc.GetDownloadURL(ctx, app.AppId, "dev-1", "ip", "ua")
	assert.NoError(t, err)
}

func TestDownloadSurvivesLogOutage(t *testing.T) {
	ctx := context.Background()
	apps := newFakeAppRepo()
	app := seedPublishedApp(apps)

	svc := NewDownloadService(apps, &fakeDownloadRepo{err: assert.AnError}, newFakeStorage())
	resp, err := svc.GetDownloadURL(ctx, app.AppId, "user-9", "ip", "ua")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.URL)
}

func TestDownloadStorageOutageFails(t *testing.T) {
	ctx := context.Background()
	apps := newFakeAppRepo()
	app := seedPublishedApp(apps)
	store := newFakeStorage()
	store.fail = true

	svc := NewDownloadService(apps, &fakeDownloadRepo{}, store)
	_, err := svc.GetDownloadURL(ctx, app.AppId, "user-9", "ip", "ua")
	assert.Error(t, err)
}
