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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconsole/devconsole/internal/engine/conf"
	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
)

func newLimiter(store *fakeRateLimitRepo) *RateLimitService {
	c := &conf.RateLimit{}
	c.SetDefaults() // 5 per 15min auth, 50 per 60min pii
	return NewRateLimitService(store, c)
}

func TestAllowUpToMaxThenDeny(t *testing.T) {
	ctx := context.Background()
	store := &fakeRateLimitRepo{}
	limiter := newLimiter(store)

	for i := 0; i < 5; i++ {
		allowed, _, err := limiter.Allow(ctx, "203.0.113.9", consts.ActionLogin)
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d should pass", i+1)
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "203.0.113.9", consts.ActionLogin)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
	// a denied attempt must not be recorded
	assert.Len(t, store.rows, 5)
}

func TestWindowSlides(t *testing.T) {
	ctx := context.Background()
	store := &fakeRateLimitRepo{}
	limiter := newLimiter(store)

	// 5 attempts 16 minutes ago, outside the 15 minute window
	old := time.Now().Add(-16 * time.Minute)
	for i := 0; i < 5; i++ {
		store.rows = append(store.rows, model.AuthRateLimit{
			Identifier: "203.0.113.9", Action: consts.ActionLogin, AttemptedAt: old,
		})
	}

	allowed, _, err := limiter.Allow(ctx, "203.0.113.9", consts.ActionLogin)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestIdentifierAndActionIsolation(t *testing.T) {
	ctx := context.Background()
	store := &fakeRateLimitRepo{}
	limiter := newLimiter(store)

	for i := 0; i < 5; i++ {
		allowed, _, err := limiter.Allow(ctx, "203.0.113.9", consts.ActionLogin)
		require.NoError(t, err)
		require.True(t, allowed)
	}

	// other identifier, same action
	allowed, _, err := limiter.Allow(ctx, "198.51.100.7", consts.ActionLogin)
	require.NoError(t, err)
	assert.True(t, allowed)

	// same identifier, other action
	allowed, _, err = limiter.Allow(ctx, "203.0.113.9", consts.ActionSignup)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestPIIPolicyIsSeparate(t *testing.T) {
	ctx := context.Background()
	store := &fakeRateLimitRepo{}
	limiter := newLimiter(store)

	for i := 0; i < 50; i++ {
		allowed, _, err := limiter.Allow(ctx, "admin-1", consts.ActionRevealPII)
		require.NoError(t, err)
		require.True(t, allowed, "reveal %d should pass", i+1)
	}

	allowed, _, err := limiter.Allow(ctx, "admin-1", consts.ActionRevealPII)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRetryAfterTracksOldestAttempt(t *testing.T) {
	ctx := context.Background()
	store := &fakeRateLimitRepo{}
	limiter := newLimiter(store)

	// oldest attempt 10 minutes ago, window is 15 minutes
	base := time.Now()
	for i := 0; i < 5; i++ {
		store.rows = append(store.rows, model.AuthRateLimit{
			Identifier:  "203.0.113.9",
			Action:      consts.ActionLogin,
			AttemptedAt: base.Add(-10*time.Minute + time.Duration(i)*time.Second),
		})
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "203.0.113.9", consts.ActionLogin)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.InDelta(t, (5 * time.Minute).Seconds(), retryAfter.Seconds(), 5)
}

func TestAllowSurfacesStoreError(t *testing.T) {
	ctx := context.Background()
	limiter := newLimiter(&fakeRateLimitRepo{err: errors.New("db down")})

	_, _, err := limiter.Allow(ctx, "203.0.113.9", consts.ActionLogin)
	assert.Error(t, err)
}

func TestCheckFailsOpen(t *testing.T) {
	ctx := context.Background()
	limiter := newLimiter(&fakeRateLimitRepo{err: errors.New("db down")})

	resp := limiter.Check(ctx, &model.RateLimitCheckReq{Identifier: "203.0.113.9", Action: consts.ActionLogin})
	assert.True(t, resp.Allowed)
}

func TestCheckReportsRemaining(t *testing.T) {
	ctx := context.Background()
	limiter := newLimiter(&fakeRateLimitRepo{})

	resp := limiter.Check(ctx, &model.RateLimitCheckReq{Identifier: "203.0.113.9", Action: consts.ActionLogin})
	assert.True(t, resp.Allowed)
	assert.Equal(t, int64(4), resp.Remaining)
}
