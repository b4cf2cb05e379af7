package services

import (
	"context"
	"errors"

	"backoffice-system/internal/dto"
	"backoffice-system/internal/repositories"
	apperrors "backoffice-system/pkg/errors"
	"backoffice-system/pkg/service"
	"backoffice-system/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.AuthResponseDTO, error)
}

type AuthService struct {
	userRepo      repositories.UserRepositoryInterface
	roleDirectory RoleDirectoryServiceInterface
	jwtService    service.JWTService
	logger        *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	roleDirectory RoleDirectoryServiceInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:      userRepo,
		roleDirectory: roleDirectory,
		jwtService:    jwtService,
		logger:        logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same answer for unknown email and wrong password.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", payload.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID, user.Name, user.Email, user.RoleID)
}

// Refresh accepts only a refresh token and re-reads the user so a deleted
// account or a role change takes effect on the next rotation.
func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	return s.issueTokens(ctx, user.ID, user.Name, user.Email, user.RoleID)
}

func (s *AuthService) issueTokens(ctx context.Context, userID uint64, name, email string, roleID uint64) (*dto.AuthResponseDTO, error) {
	accessToken, refreshToken, err := s.jwtService.GenerateTokens(userID, name, roleID)
	if err != nil {
		s.logger.Error("failed to sign tokens", zap.Uint64("user_id", userID), zap.Error(err))
		return nil, err
	}

	roleName := ""
	if names, err := s.roleDirectory.ResolveNames(ctx); err == nil {
		roleName = names[roleID]
	}

	return &dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserPublicDTO{
			ID:       userID,
			Name:     name,
			Email:    email,
			RoleID:   roleID,
			RoleName: roleName,
		},
	}, nil
}
