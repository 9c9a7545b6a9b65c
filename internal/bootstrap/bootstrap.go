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

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devconsole/devconsole/internal/engine/conf"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/internal/engine/router"
	"github.com/devconsole/devconsole/internal/engine/service"
	"github.com/devconsole/devconsole/pkg/cache"
	"github.com/devconsole/devconsole/pkg/cron"
	"github.com/devconsole/devconsole/pkg/database"
	"github.com/devconsole/devconsole/pkg/log"
	"github.com/devconsole/devconsole/pkg/pprof"
	"github.com/devconsole/devconsole/pkg/safe"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type App struct {
	HttpApp *fiber.App
	Logger  *zap.Logger
	Cleanup *service.CleanupService
	AppConf conf.AppConfig
}

// InitAppFunc is the Wire-generated assembly entry point.
type InitAppFunc func(appConf conf.AppConfig, logger *zap.Logger, db database.IDatabase, cache cache.ICache) (*App, func(), error)

func NewApp(
	rt *router.Router,
	logger *zap.Logger,
	cleanupSvc *service.CleanupService,
	appConf conf.AppConfig,
) (*App, func(), error) {
	httpApp := rt.Router()

	cron.Init()
	if err := cleanupSvc.Register(); err != nil {
		return nil, nil, fmt.Errorf("register retention cleanup: %w", err)
	}

	cleanup := func() {
		logger.Info("Stopping cron scheduler...")
		cron.Stop()
	}

	app := &App{
		HttpApp: httpApp,
		Logger:  logger,
		Cleanup: cleanupSvc,
		AppConf: appConf,
	}
	return app, cleanup, nil
}

// Bootstrap loads configuration, opens the shared resources and hands
// them to the Wire-built assembly. It returns the App and a cleanup
// function releasing everything in reverse order.
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), conf.AppConfig, error) {
	appConf := conf.NewConf(configFile)

	logger, err := log.NewLog(&appConf.Log)
	if err != nil {
		return nil, nil, appConf, err
	}

	redisClient, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		return nil, nil, appConf, err
	}
	dbClient, err := database.NewDatabase(appConf.Database)
	if err != nil {
		return nil, nil, appConf, err
	}

	db := database.NewGormDB(dbClient)
	redisCache := cache.NewRedisCache(redisClient)

	if err := migrate(db); err != nil {
		return nil, nil, appConf, err
	}

	app, cleanup, err := initApp(appConf, logger, db, redisCache)
	if err != nil {
		return nil, nil, appConf, err
	}

	wrapped := func() {
		if cleanup != nil {
			cleanup()
		}
		if err := redisClient.Close(); err != nil {
			logger.Sugar().Errorf("redis close error: %v", err)
		}
		if sqlDB, err := dbClient.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Sugar().Errorf("database close error: %v", err)
			}
		}
	}

	return app, wrapped, appConf, nil
}

// migrate keeps the schema in sync with the model definitions.
func migrate(db database.IDatabase) error {
	return db.Database().AutoMigrate(
		&model.User{},
		&model.UserRole{},
		&model.Application{},
		&model.SubmissionHistory{},
		&model.DeveloperProfile{},
		&model.AuthRateLimit{},
		&model.ApkDownload{},
		&model.AuditLog{},
	)
}

// Run starts the HTTP listener and blocks until an exit signal, then
// shuts everything down gracefully.
func Run(app *App, cleanup func()) {
	logger := app.Logger
	appConf := app.AppConf

	cron.Start()

	pprofServer := pprof.NewServer(appConf.Pprof)
	pprofServer.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	safe.Go(func() {
		addr := fmt.Sprintf("%s:%d", appConf.Http.Host, appConf.Http.Port)
		tls := appConf.Http.TLS

		var err error
		if tls.CertFile != "" && tls.KeyFile != "" {
			logger.Sugar().Infow("HTTPS listener started", "address", addr)
			err = app.HttpApp.ListenTLS(addr, tls.CertFile, tls.KeyFile)
		} else {
			logger.Sugar().Infow("HTTP listener started", "address", addr)
			err = app.HttpApp.Listen(addr)
		}
		if err != nil {
			logger.Sugar().Errorw("HTTP listener failed",
				"address", addr,
				"error", err,
			)
		}
	})

	sig := <-quit
	logger.Sugar().Infof("Received signal: %v, shutting down gracefully...", sig)

	shutdownTimeout := time.Duration(appConf.Http.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Sugar().Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	if err := pprofServer.Stop(shutdownCtx); err != nil {
		logger.Sugar().Errorf("pprof server shutdown error: %v", err)
	}

	cleanup()

	logger.Info("Server shutdown complete")
}
