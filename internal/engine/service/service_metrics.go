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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rateLimitDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "devconsole",
		Name:      "rate_limit_denials_total",
		Help:      "Attempts denied per rate limited action.",
	}, []string{"action"})

	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "devconsole",
		Name:      "submissions_total",
		Help:      "Application submissions, split by new vs update.",
	}, []string{"kind"})

	reviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "devconsole",
		Name:      "reviews_total",
		Help:      "Review decisions by outcome.",
	}, []string{"decision"})

	downloadsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "devconsole",
		Name:      "downloads_issued_total",
		Help:      "Presigned APK download links issued.",
	})

	cleanupRowsSwept = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "devconsole",
		Name:      "cleanup_rows_swept_total",
		Help:      "Rows removed by the retention sweeps, per table.",
	}, []string{"table"})
)
