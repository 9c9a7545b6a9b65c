//go:build wireinject
// +build wireinject

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

package main

import (
	"github.com/devconsole/devconsole/internal/bootstrap"
	"github.com/devconsole/devconsole/internal/engine/conf"
	"github.com/devconsole/devconsole/internal/engine/repo"
	"github.com/devconsole/devconsole/internal/engine/router"
	"github.com/devconsole/devconsole/internal/engine/service"
	"github.com/devconsole/devconsole/internal/pkg/mailer"
	"github.com/devconsole/devconsole/pkg/cache"
	"github.com/devconsole/devconsole/pkg/database"
	"github.com/devconsole/devconsole/pkg/storage"
	"github.com/google/wire"
	"go.uber.org/zap"
)

func initApp(appConf conf.AppConfig, logger *zap.Logger, db database.IDatabase, redisCache cache.ICache) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		conf.ProviderSet,
		provideStorage,
		mailer.NewMailer,
		repo.ProviderSet,
		service.ProviderSet,
		router.ProviderSet,
		bootstrap.NewApp,
	))
}

func provideStorage(s *storage.Storage) (storage.StorageProvider, error) {
	return storage.NewStorage(*s)
}
