package repositories

import (
	"context"
	"fmt"

	"backoffice-system/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SignatureRepositoryInterface interface {
	AppendInTx(ctx context.Context, tx pgx.Tx, entry *entities.SignatureEntry) error
	FindByEntityID(ctx context.Context, entityID uint64) ([]entities.SignatureEntry, error)
}

type SignatureRepository struct {
	storage *pgxpool.Pool
}

func NewSignatureRepository(storage *pgxpool.Pool) SignatureRepositoryInterface {
	return &SignatureRepository{storage: storage}
}

func (r *SignatureRepository) AppendInTx(ctx context.Context, tx pgx.Tx, entry *entities.SignatureEntry) error {
	query := `
		INSERT INTO workflow_signatures (entity_id, user_name, role_id, level_id, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`

	_, err := tx.Exec(ctx, query, entry.EntityID, entry.UserName, entry.RoleID, entry.LevelID, entry.Remarks)
	if err != nil {
		return fmt.Errorf("failed to append signature entry: %w", err)
	}
	return nil
}

// FindByEntityID returns the timeline in insertion order; insertion order is
// chronological order for this append-only table.
func (r *SignatureRepository) FindByEntityID(ctx context.Context, entityID uint64) ([]entities.SignatureEntry, error) {
	query := `
		SELECT id, entity_id, user_name, role_id, level_id, remarks, created_at
		FROM workflow_signatures
		WHERE entity_id = $1
		ORDER BY id ASC`

	rows, err := r.storage.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signature timeline: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.SignatureEntry, 0)
	for rows.Next() {
		var e entities.SignatureEntry
		if err := rows.Scan(&e.ID, &e.EntityID, &e.UserName, &e.RoleID, &e.LevelID, &e.Remarks, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan signature entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
