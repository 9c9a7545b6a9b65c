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
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/devconsole/devconsole/internal/pkg/mailer"
	"github.com/devconsole/devconsole/pkg/cache"
	"github.com/devconsole/devconsole/pkg/database"
	"github.com/devconsole/devconsole/pkg/http"
	"github.com/devconsole/devconsole/pkg/log"
	"github.com/devconsole/devconsole/pkg/pprof"
	"github.com/devconsole/devconsole/pkg/storage"
)

type AppConfig struct {
	Log       log.Conf          `mapstructure:"log"`
	Http      http.Http         `mapstructure:"http"`
	Database  database.Database `mapstructure:"database"`
	Redis     cache.Redis       `mapstructure:"redis"`
	Storage   storage.Storage   `mapstructure:"storage"`
	Email     mailer.Conf       `mapstructure:"email"`
	Captcha   Captcha           `mapstructure:"captcha"`
	RateLimit RateLimit         `mapstructure:"rateLimit"`
	Cleanup   Cleanup           `mapstructure:"cleanup"`
	Pprof     pprof.Conf        `mapstructure:"pprof"`
}

// Captcha configures the token verification upstream.
type Captcha struct {
	Enabled   bool   `mapstructure:"enabled"`
	Secret    string `mapstructure:"secret"`
	VerifyURL string `mapstructure:"verifyUrl"`
	// Timeout for the siteverify call, in seconds.
	Timeout int `mapstructure:"timeout"`
}

// RateLimit holds the fixed-window policies.
type RateLimit struct {
	// Auth covers login and signup, keyed by client IP.
	AuthMaxAttempts int           `mapstructure:"authMaxAttempts"`
	AuthWindow      time.Duration `mapstructure:"authWindow"`
	// PII covers contact reveals in the review console, keyed by admin.
	PIIMaxAttempts int           `mapstructure:"piiMaxAttempts"`
	PIIWindow      time.Duration `mapstructure:"piiWindow"`
}

// Cleanup schedules the retention sweeps.
type Cleanup struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"`
}

func (c *Captcha) SetDefaults() {
	if c.VerifyURL == "" {
		c.VerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	}
	if c.Timeout <= 0 {
		c.Timeout = 5
	}
}

func (r *RateLimit) SetDefaults() {
	if r.AuthMaxAttempts <= 0 {
		r.AuthMaxAttempts = 5
	}
	if r.AuthWindow <= 0 {
		r.AuthWindow = 15 * time.Minute
	}
	if r.PIIMaxAttempts <= 0 {
		r.PIIMaxAttempts = 50
	}
	if r.PIIWindow <= 0 {
		r.PIIWindow = 60 * time.Minute
	}
}

func (c *Cleanup) SetDefaults() {
	if c.Spec == "" {
		// daily at 03:30
		c.Spec = "30 3 * * *"
	}
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confFile string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confFile)
		if err != nil {
			panic(fmt.Sprintf("load conf file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile reads the config file and keeps watching it for changes.
func LoadConfigFile(confFile string) (AppConfig, error) {

	config := viper.New()
	config.SetConfigFile(confFile)
	config.AddConfigPath("./conf.d")
	config.SetConfigName("config")
	config.SetConfigType("toml")
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("configuration changed, reloading: %s", e.Name)
		if err := config.Unmarshal(&cfg); err != nil {
			log.Errorf("failed to unmarshal configuration file: %v", err)
			return
		}
		cfg.setDefaults()
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}
	cfg.setDefaults()

	return cfg, nil
}

func (a *AppConfig) setDefaults() {
	a.Log.SetDefaults()
	a.Captcha.SetDefaults()
	a.RateLimit.SetDefaults()
	a.Cleanup.SetDefaults()
	a.Pprof.SetDefaults()
}

func GetString(key string) string {
	return viper.GetString(key)
}
