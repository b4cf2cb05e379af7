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

type CostCentreRepositoryInterface interface {
	FindCostCentre(ctx context.Context, id uint64) (*entities.CostCentre, error)
	GetCostCentres(ctx context.Context) ([]entities.CostCentre, error)
}

type CostCentreRepository struct {
	storage *pgxpool.Pool
}

func NewCostCentreRepository(storage *pgxpool.Pool) CostCentreRepositoryInterface {
	return &CostCentreRepository{storage: storage}
}

func (r *CostCentreRepository) FindCostCentre(ctx context.Context, id uint64) (*entities.CostCentre, error) {
	var cc entities.CostCentre
	err := r.storage.QueryRow(ctx,
		`SELECT id, cc_no, name, state FROM cost_centres WHERE id = $1`, id,
	).Scan(&cc.ID, &cc.CCNo, &cc.Name, &cc.State)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan cost centre: %w", err)
	}
	return &cc, nil
}

func (r *CostCentreRepository) GetCostCentres(ctx context.Context) ([]entities.CostCentre, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, cc_no, name, state FROM cost_centres ORDER BY cc_no ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cost centres: %w", err)
	}
	defer rows.Close()

	centres := make([]entities.CostCentre, 0)
	for rows.Next() {
		var cc entities.CostCentre
		if err := rows.Scan(&cc.ID, &cc.CCNo, &cc.Name, &cc.State); err != nil {
			return nil, fmt.Errorf("failed to scan cost centre: %w", err)
		}
		centres = append(centres, cc)
	}
	return centres, rows.Err()
}
