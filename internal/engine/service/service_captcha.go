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
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/devconsole/devconsole/internal/engine/conf"
	"github.com/devconsole/devconsole/pkg/log"
)

// CaptchaService verifies challenge tokens against the Turnstile
// siteverify endpoint.
type CaptchaService struct {
	conf   *conf.Captcha
	client *resty.Client
}

func NewCaptchaService(conf *conf.Captcha) *CaptchaService {
	client := resty.New().SetTimeout(time.Duration(conf.Timeout) * time.Second)
	return &CaptchaService{conf: conf, client: client}
}

type siteverifyResp struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify rejects missing and failed tokens. An unreachable verifier
// rejects as well: a bot check that cannot answer must not wave
// everything through.
func (cs *CaptchaService) Verify(ctx context.Context, token, remoteIP string) error {
	if !cs.conf.Enabled {
		return nil
	}
	if token == "" {
		return ErrCaptchaRequired
	}

	var result siteverifyResp
	resp, err := cs.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"secret":   cs.conf.Secret,
			"response": token,
			"remoteip": remoteIP,
		}).
		SetResult(&result).
		Post(cs.conf.VerifyURL)
	if err != nil {
		return fmt.Errorf("captcha verify request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("captcha verify: upstream returned %d", resp.StatusCode())
	}

	if !result.Success {
		log.Warnw("captcha rejected", "errorCodes", result.ErrorCodes)
		return ErrCaptchaRejected
	}
	return nil
}
