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

package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPostsToProvider(t *testing.T) {
	var got sendReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMailer(&Conf{Enabled: true, Endpoint: srv.URL, APIKey: "test-key", From: "DevConsole <noreply@devconsole.dev>"})
	err := m.Send(context.Background(), "dev@example.com", "hello", "<p>hi</p>")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev@example.com"}, got.To)
	assert.Equal(t, "hello", got.Subject)
}

func TestSendProviderError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	m := NewMailer(&Conf{Enabled: true, Endpoint: srv.URL})
	err := m.Send(context.Background(), "dev@example.com", "hello", "<p>hi</p>")
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestSendRetriesTransientFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMailer(&Conf{Enabled: true, Endpoint: srv.URL})
	err := m.Send(context.Background(), "dev@example.com", "hello", "<p>hi</p>")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSendDoesNotRetryClientError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	m := NewMailer(&Conf{Enabled: true, Endpoint: srv.URL})
	err := m.Send(context.Background(), "dev@example.com", "hello", "<p>hi</p>")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestSendDisabledIsNoop(t *testing.T) {
	m := NewMailer(&Conf{Enabled: false, Endpoint: "http://127.0.0.1:1"})
	err := m.Send(context.Background(), "dev@example.com", "hello", "<p>hi</p>")
	assert.NoError(t, err)
}

func TestRenderReviewResult(t *testing.T) {
	html := renderReviewResult("My App", "published", "")
	assert.Contains(t, html, "My App")
	assert.Contains(t, html, "now live")

	html = renderReviewResult("My App", "rejected", "fix the crash on launch")
	assert.Contains(t, html, "fix the crash on launch")
	assert.NotContains(t, html, "now live")
}
