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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconsole/devconsole/internal/engine/model"
)

func TestProfileUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newFakeProfileRepo())

	err := svc.Update(ctx, "dev-1", &model.UpdateProfileReq{
		DeveloperName: "ACME Apps",
		Website:       "https://acme.test",
		ContactEmail:  "owner@acme.test",
	})
	require.NoError(t, err)

	profile, err := svc.Get(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "ACME Apps", profile.DeveloperName)
	assert.Equal(t, "owner@acme.test", profile.ContactEmail)
}

func TestProfileValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newFakeProfileRepo())
	var vErr *ValidationError

	err := svc.Update(ctx, "dev-1", &model.UpdateProfileReq{DeveloperName: ""})
	assert.ErrorAs(t, err, &vErr)

	err = svc.Update(ctx, "dev-1", &model.UpdateProfileReq{DeveloperName: "ACME", Website: "ftp://acme.test"})
	assert.ErrorAs(t, err, &vErr)

	err = svc.Update(ctx, "dev-1", &model.UpdateProfileReq{DeveloperName: "ACME", ContactEmail: "nope"})
	assert.ErrorAs(t, err, &vErr)
}
