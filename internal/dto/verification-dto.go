package dto

import "encoding/json"

type VerificationActionDTO struct {
	Remarks string `json:"remarks" validate:"required"`
}

type CreateEntityDTO struct {
	Payload json.RawMessage `json:"payload" validate:"required"`
	Remarks string          `json:"remarks"`
}

// QueueItemDTO is one entry of a role's pending-verification queue.
type QueueItemDTO struct {
	ID           uint64          `json:"id"`
	EntityType   string          `json:"entity_type"`
	EntityName   string          `json:"entity_name"`
	Status       string          `json:"status"`
	StatusLabel  string          `json:"status_label"`
	CurrentLevel int             `json:"current_level"`
	CreationType string          `json:"creation_type"`
	BatchID      *string         `json:"batch_id,omitempty"`
	Payload      json.RawMessage `json:"payload"`
	CreatedBy    uint64          `json:"created_by"`
	CreatedAt    string          `json:"created_at"`
}

// SignatureEntryDTO is one row of the signature and remarks timeline with
// the role id resolved to a display name.
type SignatureEntryDTO struct {
	UserName  string `json:"user_name"`
	RoleID    uint64 `json:"role_id"`
	RoleName  string `json:"role_name"`
	LevelID   int    `json:"level_id"`
	Label     string `json:"label"`
	Remarks   string `json:"remarks,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type TransitionResultDTO struct {
	ID       uint64 `json:"id,omitempty"`
	BatchID  string `json:"batch_id,omitempty"`
	Status   string `json:"status"`
	Terminal bool   `json:"terminal"`
	// Affected is the number of records moved; >1 only for batch actions.
	Affected int64 `json:"affected"`
}
