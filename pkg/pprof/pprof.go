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

// Package pprof serves the runtime profiling endpoints on a dedicated
// listener, kept off the public API port.
package pprof

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/devconsole/devconsole/pkg/log"
)

// Conf holds the profiling server configuration.
type Conf struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}

// SetDefaults fills zero values.
func (c *Conf) SetDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 8083
	}
	if c.Path == "" {
		c.Path = "/debug/pprof"
	}
}

// Server is a standalone HTTP server exposing the pprof handlers.
type Server struct {
	conf   Conf
	server *http.Server
}

func NewServer(conf Conf) *Server {
	conf.SetDefaults()
	return &Server{conf: conf}
}

// Start begins listening in a background goroutine. It is a no-op when
// profiling is disabled.
func (s *Server) Start() {
	if !s.conf.Enabled {
		return
	}

	prefix := s.conf.Path
	mux := http.NewServeMux()
	mux.HandleFunc(prefix+"/", pprof.Index)
	mux.HandleFunc(prefix+"/cmdline", pprof.Cmdline)
	mux.HandleFunc(prefix+"/profile", pprof.Profile)
	mux.HandleFunc(prefix+"/symbol", pprof.Symbol)
	mux.HandleFunc(prefix+"/trace", pprof.Trace)
	mux.Handle(prefix+"/allocs", pprof.Handler("allocs"))
	mux.Handle(prefix+"/block", pprof.Handler("block"))
	mux.Handle(prefix+"/goroutine", pprof.Handler("goroutine"))
	mux.Handle(prefix+"/heap", pprof.Handler("heap"))
	mux.Handle(prefix+"/mutex", pprof.Handler("mutex"))
	mux.Handle(prefix+"/threadcreate", pprof.Handler("threadcreate"))

	addr := fmt.Sprintf("%s:%d", s.conf.Host, s.conf.Port)
	s.server = &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Infow("pprof listener started", "address", addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("pprof listener failed", "address", addr, "error", err)
		}
	}()
}

// Stop shuts the profiling server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
