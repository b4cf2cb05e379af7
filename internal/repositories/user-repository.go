package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice-system/internal/entities"
	apperrors "backoffice-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepositoryInterface interface {
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

const userColumns = "id, name, email, password, role_id, created_at, updated_at"

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 AND deleted_at IS NULL`, userColumns)
	return r.scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 AND deleted_at IS NULL`, userColumns)
	return r.scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	var createdAt, updatedAt time.Time

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.RoleID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	user.CreatedAt = &createdAt
	user.UpdatedAt = &updatedAt
	return &user, nil
}
