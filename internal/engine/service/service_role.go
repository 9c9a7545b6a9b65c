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
	"time"

	"github.com/bytedance/sonic"

	"github.com/devconsole/devconsole/internal/engine/consts"
	"github.com/devconsole/devconsole/internal/engine/model"
	"github.com/devconsole/devconsole/internal/engine/repo"
	"github.com/devconsole/devconsole/pkg/log"
)

type RoleService struct {
	roleRepo  repo.IRoleRepository
	auditRepo repo.IAuditRepository
}

func NewRoleService(roleRepo repo.IRoleRepository, auditRepo repo.IAuditRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo, auditRepo: auditRepo}
}

// HasRole satisfies the route gate. Always a fresh query.
func (rs *RoleService) HasRole(ctx context.Context, userId, role string) (bool, error) {
	return rs.roleRepo.HasRole(ctx, userId, role)
}

func (rs *RoleService) ListRoles(ctx context.Context, userId string) ([]string, error) {
	return rs.roleRepo.ListRoles(ctx, userId)
}

func (rs *RoleService) GrantRole(ctx context.Context, actorId, userId, role string) error {
	if !validRole(role) {
		return invalid("role", "unknown role")
	}
	if err := rs.roleRepo.GrantRole(ctx, userId, role, actorId); err != nil {
		return err
	}
	rs.audit(ctx, actorId, "role.grant", userId, role)
	return nil
}

func (rs *RoleService) RevokeRole(ctx context.Context, actorId, userId, role string) error {
	if !validRole(role) {
		return invalid("role", "unknown role")
	}
	if err := rs.roleRepo.RevokeRole(ctx, userId, role); err != nil {
		return err
	}
	rs.audit(ctx, actorId, "role.revoke", userId, role)
	return nil
}

// BootstrapAdmin hands the admin role to the caller iff no admin
// exists yet. Exactly one caller ever wins; later calls get
// ErrAdminExists.
func (rs *RoleService) BootstrapAdmin(ctx context.Context, userId string) error {
	claimed, err := rs.roleRepo.BootstrapAdmin(ctx, userId)
	if err != nil {
		return err
	}
	if !claimed {
		return ErrAdminExists
	}
	rs.audit(ctx, userId, "admin.bootstrap", userId, consts.RoleAdmin)
	return nil
}

// audit is best effort: a dead audit store does not undo a role change.
func (rs *RoleService) audit(ctx context.Context, actorId, action, targetId, role string) {
	detail, _ := sonic.Marshal(map[string]string{"role": role})
	err := rs.auditRepo.Add(ctx, &model.AuditLog{
		ActorId:    actorId,
		Action:     action,
		TargetType: "user",
		TargetId:   targetId,
		Detail:     detail,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Errorw("audit write failed", "action", action, "actorId", actorId, "error", err)
	}
}

func validRole(role string) bool {
	return role == consts.RoleAdmin || role == consts.RoleModerator || role == consts.RoleDeveloper
}
