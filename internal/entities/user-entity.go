package entities

import "backoffice-system/pkg/types"

type User struct {
	ID    uint64 `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`

	Password string `json:"-" db:"password"`

	RoleID uint64 `json:"role_id" db:"role_id"`

	types.BaseEntity
	types.SoftDelete
}

type Role struct {
	ID          uint64 `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`

	types.BaseEntity
}
