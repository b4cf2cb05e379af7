package repositories

import (
	"context"
	"errors"
	"fmt"

	"backoffice-system/internal/entities"
	apperrors "backoffice-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoleRepositoryInterface interface {
	GetRoles(ctx context.Context) ([]entities.Role, error)
	FindRole(ctx context.Context, id uint64) (*entities.Role, error)
}

type RoleRepository struct {
	storage *pgxpool.Pool
}

func NewRoleRepository(storage *pgxpool.Pool) RoleRepositoryInterface {
	return &RoleRepository{storage: storage}
}

func (r *RoleRepository) GetRoles(ctx context.Context) ([]entities.Role, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, name, description FROM roles ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}
	defer rows.Close()

	roles := make([]entities.Role, 0)
	for rows.Next() {
		var role entities.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) FindRole(ctx context.Context, id uint64) (*entities.Role, error) {
	var role entities.Role
	err := r.storage.QueryRow(ctx, `SELECT id, name, description FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan role: %w", err)
	}
	return &role, nil
}
