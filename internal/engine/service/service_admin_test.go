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
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconsole/devconsole/internal/engine/model"
)

func seedProfile(profiles *fakeProfileRepo) {
	_ = profiles.Upsert(context.Background(), &model.DeveloperProfile{
		UserId:        "dev-1",
		DeveloperName: "ACME Apps",
		ContactEmail:  "owner@acme.test",
		ContactPhone:  "+1-555-0101",
	})
}

func TestRevealContactReturnsPIIAndAudits(t *testing.T) {
	ctx := context.Background()
	profiles := newFakeProfileRepo()
	audits := &fakeAuditRepo{}
	seedProfile(profiles)

	svc := NewAdminService(profiles, audits, newLimiter(&fakeRateLimitRepo{}))
	contact, err := svc.RevealContact(ctx, "admin-1", "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "owner@acme.test", contact.ContactEmail)
	assert.Equal(t, "+1-555-0101", contact.ContactPhone)

	require.Len(t, audits.entries, 1)
	assert.Equal(t, "profile.reveal_pii", audits.entries[0].Action)
	assert.Equal(t, "admin-1", audits.entries[0].ActorId)
}

func TestRevealContactAuditDetailIsJSON(t *testing.T) {
	ctx := context.Background()
	profiles := newFakeProfileRepo()
	audits := &fakeAuditRepo{}
	// a hostile user id must not be able to break the detail encoding
	_ = profiles.Upsert(ctx, &model.DeveloperProfile{
		UserId:        `dev-"quoted"`,
		DeveloperName: "Quoted",
	})

	svc := NewAdminService(profiles, audits, newLimiter(&fakeRateLimitRepo{}))
	_, err := svc.RevealContact(ctx, "admin-1", `dev-"quoted"`)
	require.NoError(t, err)

	require.Len(t, audits.entries, 1)
	var detail struct {
		Fields []string `json:"fields"`
		Target string   `json:"target"`
	}
	require.NoError(t, sonic.Unmarshal(audits.entries[0].Detail, &detail))
	assert.Equal(t, `dev-"quoted"`, detail.Target)
	assert.Equal(t, []string{"contactEmail", "contactPhone"}, detail.Fields)
}

func TestRevealContactThrottledPerAdmin(t *testing.T) {
	ctx := context.Background()
	profiles := newFakeProfileRepo()
	seedProfile(profiles)

	svc := NewAdminService(profiles, &fakeAuditRepo{}, newLimiter(&fakeRateLimitRepo{}))
	for i := 0; i < 50; i++ {
		_, err := svc.RevealContact(ctx, "admin-1", "dev-1")
		require.NoError(t, err, "reveal %d", i+1)
	}

	_, err := svc.RevealContact(ctx, "admin-1", "dev-1")
	var rlErr *RateLimitedError
	assert.ErrorAs(t, err, &rlErr)

	// a different admin has their own window
	_, err = svc.RevealContact(ctx, "admin-2", "dev-1")
	assert.NoError(t, err)
}

func TestRevealContactFailsOpenOnLimiterOutage(t *testing.T) {
	ctx := context.Background()
	profiles := newFakeProfileRepo()
	seedProfile(profiles)

	svc := NewAdminService(profiles, &fakeAuditRepo{},
		newLimiter(&fakeRateLimitRepo{err: errors.New("db down")}))
	_, err := svc.RevealContact(ctx, "admin-1", "dev-1")
	assert.NoError(t, err)
}

func TestRevealContactSurvivesAuditOutage(t *testing.T) {
	ctx := context.Background()
	profiles := newFakeProfileRepo()
	seedProfile(profiles)

	svc := NewAdminService(profiles, &fakeAuditRepo{err: errors.New("audit down")},
		newLimiter(&fakeRateLimitRepo{}))
	contact, err := svc.RevealContact(ctx, "admin-1", "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "owner@acme.test", contact.ContactEmail)
}

func TestListProfilesPagesAndSorts(t *testing.T) {
	ctx := context.Background()
	profiles := newFakeProfileRepo()
	for _, name := range []string{"Zenith", "ACME Apps", "Middleware Co"} {
		_ = profiles.Upsert(ctx, &model.DeveloperProfile{
			UserId:        "dev-" + name,
			DeveloperName: name,
		})
	}

	svc := NewAdminService(profiles, &fakeAuditRepo{}, newLimiter(&fakeRateLimitRepo{}))
	page, err := svc.ListProfiles(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "ACME Apps", page[0].DeveloperName)
	assert.Equal(t, "Middleware Co", page[1].DeveloperName)

	page, err = svc.ListProfiles(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Zenith", page[0].DeveloperName)
}

func TestListProfilesClampsPageSize(t *testing.T) {
	ctx := context.Background()
	profiles := newFakeProfileRepo()
	seedProfile(profiles)

	svc := NewAdminService(profiles, &fakeAuditRepo{}, newLimiter(&fakeRateLimitRepo{}))
	page, err := svc.ListProfiles(ctx, 0, -5)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
