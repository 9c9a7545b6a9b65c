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

// Package mailer sends transactional email through an HTTP email API.
// Delivery is best effort: callers log failures and move on, a dead
// email provider must never fail the operation that triggered the mail.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/devconsole/devconsole/pkg/log"
	"github.com/devconsole/devconsole/pkg/retry"
)

type Conf struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"apiKey"`
	From     string `mapstructure:"from"`
	// Timeout for the send call, in seconds.
	Timeout int `mapstructure:"timeout"`
}

func (c *Conf) SetDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "https://api.resend.com/emails"
	}
	if c.From == "" {
		c.From = "DevConsole <noreply@devconsole.dev>"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10
	}
}

type Mailer struct {
	conf   *Conf
	client *resty.Client
}

func NewMailer(conf *Conf) *Mailer {
	conf.SetDefaults()
	client := resty.New().
		SetTimeout(time.Duration(conf.Timeout) * time.Second).
		SetAuthToken(conf.APIKey).
		SetHeader("Content-Type", "application/json")
	return &Mailer{conf: conf, client: client}
}

type sendReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html"`
}

// Send posts a single email to the provider. Transient provider
// failures are retried a couple of times before giving up.
func (m *Mailer) Send(ctx context.Context, to, subject, html string) error {
	if !m.conf.Enabled {
		log.Debugw("mailer disabled, skipping send", "to", to, "subject", subject)
		return nil
	}

	return retry.Do(ctx, func(ctx context.Context) error {
		resp, err := m.client.R().
			SetContext(ctx).
			SetBody(sendReq{
				From:    m.conf.From,
				To:      []string{to},
				Subject: subject,
				Html:    html,
			}).
			Post(m.conf.Endpoint)
		if err != nil {
			return fmt.Errorf("send email: %w", err)
		}
		if resp.IsError() {
			err := fmt.Errorf("send email: provider returned %d: %s", resp.StatusCode(), resp.String())
			// client errors will not heal on retry
			if resp.StatusCode() < 500 {
				return &permanentError{err}
			}
			return err
		}
		return nil
	},
		retry.WithMaxAttempts(3),
		retry.WithBackoff(200*time.Millisecond, 2*time.Second),
		retry.WithRetryIf(func(err error) bool {
			var perm *permanentError
			if errors.As(err, &perm) {
				return false
			}
			return retry.IsRetryable(err)
		}),
	)
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// SendSubmissionReceived confirms to a developer that their submission
// entered the review queue.
func (m *Mailer) SendSubmissionReceived(ctx context.Context, to, appName string) error {
	subject := fmt.Sprintf("We received your submission: %s", appName)
	return m.Send(ctx, to, subject, renderSubmissionReceived(appName))
}

// SendReviewResult notifies a developer of a review decision.
func (m *Mailer) SendReviewResult(ctx context.Context, to, appName, status, notes string) error {
	subject := fmt.Sprintf("Review update for %s: %s", appName, status)
	return m.Send(ctx, to, subject, renderReviewResult(appName, status, notes))
}
