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
	"github.com/devconsole/devconsole/internal/engine/repo"
	"github.com/devconsole/devconsole/pkg/cron"
	"github.com/devconsole/devconsole/pkg/log"
)

// CleanupService sweeps expired download and rate-limit rows.
type CleanupService struct {
	dlRepo repo.IDownloadRepository
	rlRepo repo.IRateLimitRepository
	conf   *conf.Cleanup
}

func NewCleanupService(dlRepo repo.IDownloadRepository, rlRepo repo.IRateLimitRepository, conf *conf.Cleanup) *CleanupService {
	return &CleanupService{dlRepo: dlRepo, rlRepo: rlRepo, conf: conf}
}

// Register puts the sweep on the shared scheduler.
func (cs *CleanupService) Register() error {
	if !cs.conf.Enabled {
		log.Info("retention cleanup disabled")
		return nil
	}
	return cron.AddFunc(cs.conf.Spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		cs.Sweep(ctx)
	}, "retention-cleanup")
}

// SweepResult reports rows deleted per table.
type SweepResult struct {
	DownloadRows  int64 `json:"downloadRows"`
	RateLimitRows int64 `json:"rateLimitRows"`
}

// Sweep deletes rows older than the retention period. Each table is
// swept independently; one failing does not stop the other.
func (cs *CleanupService) Sweep(ctx context.Context) *SweepResult {
	cutoff := time.Now().Add(-consts.RetentionPeriod)
	result := &SweepResult{}

	if n, err := cs.dlRepo.DeleteBefore(ctx, cutoff); err != nil {
		log.Errorw("download log sweep failed", "error", err)
	} else {
		result.DownloadRows = n
		cleanupRowsSwept.WithLabelValues("t_apk_download").Add(float64(n))
		log.Infow("download log sweep done", "rows", n, "cutoff", cutoff)
	}

	if n, err := cs.rlRepo.DeleteBefore(ctx, cutoff); err != nil {
		log.Errorw("rate limit sweep failed", "error", err)
	} else {
		result.RateLimitRows = n
		cleanupRowsSwept.WithLabelValues("t_auth_rate_limit").Add(float64(n))
		log.Infow("rate limit sweep done", "rows", n, "cutoff", cutoff)
	}

	return result
}
