package services

import (
	"context"
	"encoding/json"
	"time"

	"backoffice-system/internal/dto"
	"backoffice-system/internal/repositories"

	"go.uber.org/zap"
)

const roleDirectoryCacheKey = "directory:roles"

// RoleDirectoryService is the shared role-name lookup: fetched once, cached
// for the session horizon, explicitly invalidated on role mutation.
type RoleDirectoryServiceInterface interface {
	GetRoles(ctx context.Context) ([]dto.RoleDTO, error)
	ResolveNames(ctx context.Context) (map[uint64]string, error)
	Invalidate(ctx context.Context) error
}

type RoleDirectoryService struct {
	roleRepo  repositories.RoleRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cacheTTL  time.Duration
}

func NewRoleDirectoryService(
	roleRepo repositories.RoleRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) RoleDirectoryServiceInterface {
	return &RoleDirectoryService{
		roleRepo:  roleRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

func (s *RoleDirectoryService) GetRoles(ctx context.Context) ([]dto.RoleDTO, error) {
	if cached, err := s.cacheRepo.Get(ctx, roleDirectoryCacheKey); err == nil && cached != "" {
		var roles []dto.RoleDTO
		if err := json.Unmarshal([]byte(cached), &roles); err == nil {
			return roles, nil
		}
		// Corrupt cache entry: fall through to the database and overwrite.
		s.logger.Warn("role directory cache entry is corrupt, refetching")
	}

	records, err := s.roleRepo.GetRoles(ctx)
	if err != nil {
		return nil, err
	}

	roles := make([]dto.RoleDTO, 0, len(records))
	for _, r := range records {
		roles = append(roles, dto.RoleDTO{ID: r.ID, Name: r.Name, Description: r.Description})
	}

	if encoded, err := json.Marshal(roles); err == nil {
		if err := s.cacheRepo.Set(ctx, roleDirectoryCacheKey, string(encoded), s.cacheTTL); err != nil {
			// Cache miss on the next call is acceptable; the read succeeded.
			s.logger.Warn("failed to cache role directory", zap.Error(err))
		}
	}

	return roles, nil
}

func (s *RoleDirectoryService) ResolveNames(ctx context.Context) (map[uint64]string, error) {
	roles, err := s.GetRoles(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uint64]string, len(roles))
	for _, r := range roles {
		names[r.ID] = r.Name
	}
	return names, nil
}

func (s *RoleDirectoryService) Invalidate(ctx context.Context) error {
	return s.cacheRepo.Del(ctx, roleDirectoryCacheKey)
}
