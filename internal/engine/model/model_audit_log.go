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

package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records privileged actions: role grants, PII reveals,
// review decisions. Written best effort after the action succeeds.
type AuditLog struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ActorId    string    `gorm:"column:actor_id;index" json:"actorId"`
	Action     string    `gorm:"column:action;index" json:"action"`
	TargetType string    `gorm:"column:target_type" json:"targetType"`
	TargetId   string    `gorm:"column:target_id" json:"targetId"`
	// context of the action
	Detail     datatypes.JSON `gorm:"column:detail" json:"detail,omitempty"`
	OccurredAt time.Time      `gorm:"column:occurred_at;index" json:"occurredAt"`
}

func (AuditLog) TableName() string {
	return "t_audit_log"
}
