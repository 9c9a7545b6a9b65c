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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/internal/pkg/mailer"
)

func seedPendingApp(apps *fakeAppRepo, users *fakeUserRepo) *model.Application {
	_ = users.CreateUser(context.Background(), &model.User{
		UserId: "dev-1", Username: "dev", Email: "dev@example.com", IsEnabled: 1,
	})
	app := &model.Application{
		AppId:       "app-1",
		DeveloperId: "dev-1",
		AppName:     "Weather Now",
		Status:      consts.StatusPending,
		VersionName: "1.0.0",
		VersionCode: 1,
		SubmittedAt: time.Now(),
	}
	_ = apps.Create(context.Background(), app)
	return app
}

func TestReviewPublish(t *testing.T) {
	ctx := context.Background()
	apps := newFakeAppRepo()
	users := newFakeUserRepo()
	subs := &fakeSubmissionRepo{}
	audits := &fakeAuditRepo{}
	app := seedPendingApp(apps, users)

	svc := NewReviewService(apps, subs, users, audits, deadMailer())
	err := svc.Review(ctx, "mod-1", app.AppId, &model.ReviewReq{Decision: consts.StatusPublished})
	require.NoError(t, err)

	stored, err := apps.GetByAppId(ctx, app.AppId)
	require.NoError(t, err)
	assert.Equal(t, consts.StatusPublished, stored.Status)
	assert.Equal(t, "mod-1", stored.ReviewedBy)
	require.NotNil(t, stored.ReviewedAt)
	require.NotNil(t, stored.PublishedAt)

	history, _ := subs.ListByApp(ctx, app.AppId)
	require.Len(t, history, 1)
	assert.Equal(t, consts.StatusPublished, history[0].Action)

	require.Len(t, audits.entries, 1)
	assert.Equal(t, "app.review", audits.entries[0].Action)
}

func TestReviewRejectNeedsNotes(t *testing.T) {
	ctx := context.Background()
	apps := newFakeAppRepo()
	users := newFakeUserRepo()
	app := seedPendingApp(apps, users)

	svc := NewReviewService(apps, &fakeSubmissionRepo{}, users, &fakeAuditRepo{}, deadMailer())

	err := svc.Review(ctx, "mod-1", app.AppId, &model.ReviewReq{Decision: consts.StatusRejected})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	err = svc.Review(ctx, "mod-1", app.AppId, &model.ReviewReq{
		Decision:    consts.StatusRejected,
		ReviewNotes: "crashes on launch",
	})
	assert.NoError(t, err)
}

func TestReviewRejectsBadDecision(t *testing.T) {
	ctx := context.Background()
	apps := newFakeAppRepo()
	users := newFakeUserRepo()
	app := seedPendingApp(apps, users)

	svc := NewReviewService(apps, &fakeSubmissionRepo{}, users, &fakeAuditRepo{}, deadMailer())

	var vErr *ValidationError
	err := svc.Review(ctx, "mod-1", app.AppId, &model.ReviewReq{Decision: "maybe"})
	assert.ErrorAs(t, err, &vErr)

	err = svc.Review(ctx, "mod-1", app.AppId, &model.ReviewReq{
		Decision:    consts.StatusRejected,
		ReviewNotes: strings.Repeat("a", consts.MaxReviewNotesLen+1),
	})
	assert.ErrorAs(t, err, &vErr)
}

// The decision must stand even when notifications and bookkeeping are
// all down.
func TestReviewPersistsDespiteSideEffectFailures(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	apps := newFakeAppRepo()
	users := newFakeUserRepo()
	app := seedPendingApp(apps, users)

	svc := NewReviewService(apps,
		&fakeSubmissionRepo{err: errors.New("history down")},
		users,
		&fakeAuditRepo{err: errors.New("audit down")},
		mailer.NewMailer(&mailer.Conf{Enabled: true, Endpoint: srv.URL}))

	err := svc.Review(ctx, "mod-1", app.AppId, &model.ReviewReq{Decision: consts.StatusPublished})
	require.NoError(t, err)

	stored, err := apps.GetByAppId(ctx, app.AppId)
	require.NoError(t, err)
	assert.Equal(t, consts.StatusPublished, stored.Status)
}

func TestListPendingFiltersStatus(t *testing.T) {
	ctx := context.Background()
	apps := newFakeAppRepo()
	users := newFakeUserRepo()
	app := seedPendingApp(apps, users)
	require.NoError(t, apps.Create(ctx, &model.Application{
		AppId: "app-2", DeveloperId: "dev-1", Status: consts.StatusPublished,
	}))

	svc := NewReviewService(apps, &fakeSubmissionRepo{}, users, &fakeAuditRepo{}, deadMailer())
	resp, err := svc.ListPending(ctx, &model.AppListReq{})
	require.NoError(t, err)
	require.Len(t, resp.List, 1)
	assert.Equal(t, app.AppId, resp.List[0].AppId)
}
