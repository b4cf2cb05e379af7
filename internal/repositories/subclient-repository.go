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
)

type SubClientRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, subClient *entities.SubClient) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.SubClient, error)
}

type SubClientRepository struct {
	storage *pgxpool.Pool
}

func NewSubClientRepository(storage *pgxpool.Pool) SubClientRepositoryInterface {
	return &SubClientRepository{storage: storage}
}

func (r *SubClientRepository) CreateInTx(ctx context.Context, tx pgx.Tx, subClient *entities.SubClient) (uint64, error) {
	subClientInsert := `
		INSERT INTO subclients (workflow_entity_id, client_id, name, gstin, address_line, city, state, pincode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id`

	var subClientID uint64
	err := tx.QueryRow(ctx, subClientInsert,
		subClient.WorkflowEntityID, subClient.ClientID, subClient.Name, subClient.GSTIN,
		subClient.AddressLine, subClient.City, subClient.State, subClient.Pincode,
	).Scan(&subClientID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert subclient: %w", err)
	}

	balanceInsert := `
		INSERT INTO subclient_cc_balances (sub_client_id, cost_centre_id, basic_amount, cgst, sgst, igst, total, is_intra_state, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i, balance := range subClient.CostCentreBalances {
		if _, err := tx.Exec(ctx, balanceInsert,
			subClientID, balance.CostCentreID, balance.BasicAmount,
			balance.CGST, balance.SGST, balance.IGST, balance.Total, balance.IsIntraState, i,
		); err != nil {
			return 0, fmt.Errorf("failed to insert cost centre balance: %w", err)
		}
	}

	return subClientID, nil
}

func (r *SubClientRepository) FindByID(ctx context.Context, id uint64) (*entities.SubClient, error) {
	query := `
		SELECT id, workflow_entity_id, client_id, name, gstin, address_line, city, state, pincode, created_at, updated_at
		FROM subclients WHERE id = $1`

	var subClient entities.SubClient
	var createdAt, updatedAt time.Time

	err := r.storage.QueryRow(ctx, query, id).Scan(
		&subClient.ID, &subClient.WorkflowEntityID, &subClient.ClientID, &subClient.Name, &subClient.GSTIN,
		&subClient.AddressLine, &subClient.City, &subClient.State, &subClient.Pincode,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan subclient: %w", err)
	}
	subClient.CreatedAt = &createdAt
	subClient.UpdatedAt = &updatedAt

	balanceRows, err := r.storage.Query(ctx,
		`SELECT id, sub_client_id, cost_centre_id, basic_amount, cgst, sgst, igst, total, is_intra_state, position
		 FROM subclient_cc_balances WHERE sub_client_id = $1 ORDER BY position ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cost centre balances: %w", err)
	}
	defer balanceRows.Close()

	subClient.CostCentreBalances = make([]entities.CostCentreBalance, 0)
	for balanceRows.Next() {
		var b entities.CostCentreBalance
		if err := balanceRows.Scan(&b.ID, &b.SubClientID, &b.CostCentreID, &b.BasicAmount, &b.CGST, &b.SGST, &b.IGST, &b.Total, &b.IsIntraState, &b.Position); err != nil {
			return nil, fmt.Errorf("failed to scan cost centre balance: %w", err)
		}
		subClient.CostCentreBalances = append(subClient.CostCentreBalances, b)
	}
	return &subClient, balanceRows.Err()
}
