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

package cron

import (
	"errors"
	"sync"

	"github.com/devconsole/devconsole/pkg/log"
	"github.com/robfig/cron/v3"
)

// ErrNotInitialized is returned when the global scheduler is used before Init.
var ErrNotInitialized = errors.New("global cron scheduler is not initialized")

// Scheduler wraps a cron runner and tracks entries by name.
type Scheduler struct {
	c       *cron.Cron
	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// New creates a scheduler with second-less standard cron expressions
// and panic recovery on every job.
func New() *Scheduler {
	return &Scheduler{
		c: cron.New(cron.WithChain(
			cron.Recover(cronLogger{}),
		)),
		entries: make(map[string]cron.EntryID),
	}
}

// AddFunc registers cmd under the given cron spec. A non-empty name
// allows later removal; registering the same name twice replaces the
// previous entry.
func (s *Scheduler) AddFunc(spec string, cmd func(), name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.entries[name]; ok && name != "" {
		s.c.Remove(prev)
	}

	entryID, err := s.c.AddFunc(spec, cmd)
	if err != nil {
		return err
	}
	if name != "" {
		s.entries[name] = entryID
	}
	return nil
}

// Remove unregisters a named entry.
func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.entries[name]; ok {
		s.c.Remove(entryID)
		delete(s.entries, name)
	}
}

// Start starts the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop stops the scheduler, waiting for running jobs to complete.
func (s *Scheduler) Stop() {
	ctx := s.c.Stop()
	<-ctx.Done()
}

// cronLogger adapts the application logger to cron's logging interface.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Infow(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Errorw(msg, append([]any{"error", err}, keysAndValues...)...)
}

var (
	globalCron *Scheduler
	globalMu   sync.RWMutex
	once       sync.Once
)

// Init initializes the global scheduler instance.
func Init() {
	once.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		globalCron = New()
	})
}

// Get returns the global scheduler, nil if not initialized.
func Get() *Scheduler {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalCron
}

// AddFunc adds a func to the global scheduler.
func AddFunc(spec string, cmd func(), name string) error {
	s := Get()
	if s == nil {
		return ErrNotInitialized
	}
	return s.AddFunc(spec, cmd, name)
}

// Start starts the global scheduler.
func Start() {
	if s := Get(); s != nil {
		s.Start()
	}
}

// Stop stops the global scheduler.
func Stop() {
	if s := Get(); s != nil {
		s.Stop()
	}
}
