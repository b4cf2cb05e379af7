package entities

import (
	"encoding/json"
	"time"

	"backoffice-system/internal/workflow"
	"backoffice-system/pkg/types"
)

// WorkflowEntity is one verifiable record. The payload is opaque to the
// engine; detailed payloads (clients, sub-clients) additionally live in
// their own tables keyed by this row's id.
type WorkflowEntity struct {
	ID           uint64                `json:"id" db:"id"`
	EntityType   string                `json:"entity_type" db:"entity_type"`
	Status       workflow.Status       `json:"status" db:"status"`
	CurrentLevel int                   `json:"current_level" db:"current_level"`
	NextRoleID   *uint64               `json:"next_role_id,omitempty" db:"next_role_id"`
	CreationType workflow.CreationType `json:"creation_type" db:"creation_type"`
	BatchID      *string               `json:"batch_id,omitempty" db:"batch_id"`
	Payload      json.RawMessage       `json:"payload" db:"payload"`
	CreatedBy    uint64                `json:"created_by" db:"created_by"`

	types.BaseEntity
}

// SignatureEntry is one row of the append-only signature and remarks
// timeline. LevelID 0 marks the creator, higher levels mark verifier tiers.
type SignatureEntry struct {
	ID        uint64     `json:"id" db:"id"`
	EntityID  uint64     `json:"entity_id" db:"entity_id"`
	UserName  string     `json:"user_name" db:"user_name"`
	RoleID    uint64     `json:"role_id" db:"role_id"`
	LevelID   int        `json:"level_id" db:"level_id"`
	Remarks   string     `json:"remarks" db:"remarks"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}
