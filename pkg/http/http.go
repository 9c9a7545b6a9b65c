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

package http

import "time"

// Http holds the HTTP server configuration.
type Http struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ContextPath     string `mapstructure:"contextPath"`
	BodyLimit       int    `mapstructure:"bodyLimit"`
	ExposeMetrics   bool   `mapstructure:"exposeMetrics"`
	AccessLog       bool   `mapstructure:"accessLog"`
	ReadTimeout     int    `mapstructure:"readTimeout"`
	WriteTimeout    int    `mapstructure:"writeTimeout"`
	IdleTimeout     int    `mapstructure:"idleTimeout"`
	ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
	TLS             TLS    `mapstructure:"tls"`
	Auth            Auth   `mapstructure:"auth"`
}

type TLS struct {
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// Auth holds token issuance settings. Expiries are in minutes.
type Auth struct {
	SecretKey     string        `mapstructure:"secretKey"`
	AccessExpire  time.Duration `mapstructure:"accessExpire"`
	RefreshExpire time.Duration `mapstructure:"refreshExpire"`
}
