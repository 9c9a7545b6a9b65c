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

package conf

import (
	"github.com/google/wire"

	"github.com/devconsole/devconsole/internal/pkg/mailer"
	"github.com/devconsole/devconsole/pkg/cache"
	"github.com/devconsole/devconsole/pkg/database"
	"github.com/devconsole/devconsole/pkg/http"
	"github.com/devconsole/devconsole/pkg/log"
	"github.com/devconsole/devconsole/pkg/storage"
)

func ProvideLog(cfg AppConfig) *log.Conf { return &cfg.Log }

func ProvideHttp(cfg AppConfig) *http.Http { return &cfg.Http }

func ProvideDatabase(cfg AppConfig) *database.Database { return &cfg.Database }

func ProvideRedis(cfg AppConfig) *cache.Redis { return &cfg.Redis }

func ProvideStorage(cfg AppConfig) *storage.Storage { return &cfg.Storage }

func ProvideEmail(cfg AppConfig) *mailer.Conf { return &cfg.Email }

func ProvideCaptcha(cfg AppConfig) *Captcha { return &cfg.Captcha }

func ProvideRateLimit(cfg AppConfig) *RateLimit { return &cfg.RateLimit }

func ProvideCleanup(cfg AppConfig) *Cleanup { return &cfg.Cleanup }

var ProviderSet = wire.NewSet(
	ProvideLog,
	ProvideHttp,
	ProvideDatabase,
	ProvideRedis,
	ProvideStorage,
	ProvideEmail,
	ProvideCaptcha,
	ProvideRateLimit,
	ProvideCleanup,
)
