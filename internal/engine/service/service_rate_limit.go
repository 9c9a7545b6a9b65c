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
	"time"

	"github.com/devconsole/devconsole/internal/engine/conf"
	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/internal/engine/repo"
	"github.com/devconsole/devconsole/pkg/log"
)

// RateLimitService enforces fixed windows over persisted attempt rows.
// Counting rows instead of keeping in-memory counters means limits
// survive restarts and hold across instances.
type RateLimitService struct {
	rlRepo repo.IRateLimitRepository
	conf   *conf.RateLimit
}

func NewRateLimitService(rlRepo repo.IRateLimitRepository, conf *conf.RateLimit) *RateLimitService {
	return &RateLimitService{rlRepo: rlRepo, conf: conf}
}

func (rs *RateLimitService) policyFor(action string) (int, time.Duration) {
	if action == consts.ActionRevealPII {
		return rs.conf.PIIMaxAttempts, rs.conf.PIIWindow
	}
	return rs.conf.AuthMaxAttempts, rs.conf.AuthWindow
}

// Allow records an attempt for (identifier, action) unless the window
// is already full. A denied attempt is not recorded; being throttled
// must not extend the throttle.
func (rs *RateLimitService) Allow(ctx context.Context, identifier, action string) (bool, time.Duration, error) {
	allowed, _, retryAfter, err := rs.attempt(ctx, identifier, action)
	return allowed, retryAfter, err
}

// Check is Allow with the store error swallowed: a dead limiter store
// degrades to no throttling, never to a login outage.
func (rs *RateLimitService) Check(ctx context.Context, req *model.RateLimitCheckReq) *model.RateLimitCheckResp {
	allowed, remaining, retryAfter, err := rs.attempt(ctx, req.Identifier, req.Action)
	if err != nil {
		log.Errorw("rate limit store unavailable, failing open",
			"action", req.Action, "error", err)
		max, _ := rs.policyFor(req.Action)
		return &model.RateLimitCheckResp{Allowed: true, Remaining: int64(max)}
	}
	resp := &model.RateLimitCheckResp{Allowed: allowed, Remaining: remaining}
	if !allowed {
		resp.RetryAfter = int64(retryAfter.Seconds())
	}
	return resp
}

func (rs *RateLimitService) attempt(ctx context.Context, identifier, action string) (bool, int64, time.Duration, error) {
	max, window := rs.policyFor(action)
	now := time.Now()
	since := now.Add(-window)

	count, err := rs.rlRepo.CountInWindow(ctx, identifier, action, since)
	if err != nil {
		return false, 0, 0, err
	}

	if count >= int64(max) {
		retryAfter := window
		if oldest, err := rs.rlRepo.OldestInWindow(ctx, identifier, action, since); err == nil {
			retryAfter = oldest.Add(window).Sub(now)
			if retryAfter < 0 {
				retryAfter = 0
			}
		}
		rateLimitDenials.WithLabelValues(action).Inc()
		return false, 0, retryAfter, nil
	}

	if err := rs.rlRepo.RecordAttempt(ctx, identifier, action, now); err != nil {
		return false, 0, 0, err
	}

	remaining := int64(max) - count - 1
	return true, remaining, 0, nil
}
