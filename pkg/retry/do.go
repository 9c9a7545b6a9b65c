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

// Package retry runs a function until it succeeds, with exponential
// backoff between attempts and context cancellation.
package retry

import (
	"context"
	"errors"
	"time"
)

// Func is a retryable operation. It must respect the provided context.
type Func func(ctx context.Context) error

// RetryIf decides whether an error is worth another attempt.
type RetryIf func(error) bool

// Config defines retry behavior.
type Config struct {
	maxAttempts int
	baseBackoff time.Duration
	maxBackoff  time.Duration
	retryIf     RetryIf
}

func defaultConfig() *Config {
	return &Config{
		maxAttempts: 3,
		baseBackoff: 500 * time.Millisecond,
		maxBackoff:  10 * time.Second,
		retryIf:     IsRetryable,
	}
}

// Option configures retry behavior.
type Option func(*Config)

// WithMaxAttempts sets the total number of attempts, first one included.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the base and maximum backoff durations.
func WithBackoff(base, max time.Duration) Option {
	return func(c *Config) {
		if base > 0 {
			c.baseBackoff = base
		}
		if max > 0 {
			c.maxBackoff = max
		}
	}
}

// WithRetryIf sets the retry condition.
func WithRetryIf(fn RetryIf) Option {
	return func(c *Config) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

// Do executes fn, retrying failed attempts until the attempts or the
// context run out. It returns nil on the first success, the last error
// otherwise.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var lastErr error
	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !cfg.retryIf(err) {
			return err
		}
		if attempt == cfg.maxAttempts-1 {
			break
		}

		wait := cfg.baseBackoff * time.Duration(1<<attempt)
		if wait > cfg.maxBackoff {
			wait = cfg.maxBackoff
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return lastErr
}

// IsRetryable is the default condition: retry everything except
// context cancellation.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
