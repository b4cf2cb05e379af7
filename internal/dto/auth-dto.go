package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponseDTO struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         UserPublicDTO `json:"user"`
}

type UserPublicDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	RoleID   uint64 `json:"role_id"`
	RoleName string `json:"role_name,omitempty"`
}
