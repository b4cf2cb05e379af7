package dto

type RoleDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ShortRoleDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
