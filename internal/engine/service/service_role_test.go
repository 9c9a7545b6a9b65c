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

	"github.com/devconsole/devconsole/internal/engine/conf"
	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
)

func TestBootstrapAdminExactlyOnce(t *testing.T) {
	ctx := context.Background()
	roles := newFakeRoleRepo()
	audits := &fakeAuditRepo{}
	svc := NewRoleService(roles, audits)

	require.NoError(t, svc.BootstrapAdmin(ctx, "user-1"))

	has, err := roles.HasRole(ctx, "user-1", consts.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, has)

	// second caller is refused, first admin keeps the seat
	err = svc.BootstrapAdmin(ctx, "user-2")
	assert.ErrorIs(t, err, ErrAdminExists)
	has, _ = roles.HasRole(ctx, "user-2", consts.RoleAdmin)
	assert.False(t, has)

	// so is the winner calling again
	err = svc.BootstrapAdmin(ctx, "user-1")
	assert.ErrorIs(t, err, ErrAdminExists)

	require.Len(t, audits.entries, 1)
	assert.Equal(t, "admin.bootstrap", audits.entries[0].Action)
}

func TestGrantAndRevokeRole(t *testing.T) {
	ctx := context.Background()
	roles := newFakeRoleRepo()
	audits := &fakeAuditRepo{}
	svc := NewRoleService(roles, audits)

	require.NoError(t, svc.GrantRole(ctx, "admin-1", "user-1", consts.RoleModerator))
	has, err := svc.HasRole(ctx, "user-1", consts.RoleModerator)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, svc.RevokeRole(ctx, "admin-1", "user-1", consts.RoleModerator))
	has, err = svc.HasRole(ctx, "user-1", consts.RoleModerator)
	require.NoError(t, err)
	assert.False(t, has)

	assert.Len(t, audits.entries, 2)
}

func TestGrantUnknownRole(t *testing.T) {
	svc := NewRoleService(newFakeRoleRepo(), &fakeAuditRepo{})
	var vErr *ValidationError
	err := svc.GrantRole(context.Background(), "admin-1", "user-1", "superuser")
	assert.ErrorAs(t, err, &vErr)
}

func TestCleanupSweep(t *testing.T) {
	ctx := context.Background()
	dl := &fakeDownloadRepo{}
	rl := &fakeRateLimitRepo{}

	old := time.Now().Add(-consts.RetentionPeriod - time.Hour)
	recent := time.Now().Add(-time.Hour)
	_ = dl.Add(ctx, &model.ApkDownload{AppId: "app-1", DownloadedAt: old})
	_ = dl.Add(ctx, &model.ApkDownload{AppId: "app-1", DownloadedAt: recent})
	_ = rl.RecordAttempt(ctx, "ip-1", consts.ActionLogin, old)
	_ = rl.RecordAttempt(ctx, "ip-1", consts.ActionLogin, recent)

	svc := NewCleanupService(dl, rl, &conf.Cleanup{Enabled: true})
	result := svc.Sweep(ctx)

	assert.Len(t, dl.entries, 1)
	assert.Len(t, rl.rows, 1)
	assert.EqualValues(t, 1, result.DownloadRows)
	assert.EqualValues(t, 1, result.RateLimitRows)
}
