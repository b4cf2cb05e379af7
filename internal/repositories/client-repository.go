package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice-system/internal/entities"
	"backoffice-system/internal/workflow"
	apperrors "backoffice-system/pkg/errors"
	"backoffice-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, client *entities.Client) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Client, error)
	GetActive(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error)
	UpdateInTx(ctx context.Context, tx pgx.Tx, clientID uint64, fields map[string]interface{}) (int64, error)
	DeleteContactInTx(ctx context.Context, tx pgx.Tx, clientID uint64, position int) (int64, error)
	DeleteBankAccountInTx(ctx context.Context, tx pgx.Tx, clientID uint64, position int) (int64, error)
}

type ClientRepository struct {
	storage *pgxpool.Pool
}

func NewClientRepository(storage *pgxpool.Pool) ClientRepositoryInterface {
	return &ClientRepository{storage: storage}
}

func (r *ClientRepository) CreateInTx(ctx context.Context, tx pgx.Tx, client *entities.Client) (uint64, error) {
	clientInsert := `
		INSERT INTO clients (workflow_entity_id, name, client_type, accounting_group, pan, gstin, address_line, city, state, pincode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id`

	var clientID uint64
	err := tx.QueryRow(ctx, clientInsert,
		client.WorkflowEntityID, client.Name, client.ClientType, client.AccountingGroup,
		client.PAN, client.GSTIN, client.AddressLine, client.City, client.State, client.Pincode,
	).Scan(&clientID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert client: %w", err)
	}

	contactInsert := `INSERT INTO client_contacts (client_id, name, phone, email, position) VALUES ($1, $2, $3, $4, $5)`
	for i, contact := range client.Contacts {
		if _, err := tx.Exec(ctx, contactInsert, clientID, contact.Name, contact.Phone, contact.Email, i); err != nil {
			return 0, fmt.Errorf("failed to insert client contact: %w", err)
		}
	}

	accountInsert := `INSERT INTO client_bank_accounts (client_id, bank_name, account_number, ifsc, is_default, position) VALUES ($1, $2, $3, $4, $5, $6)`
	for i, account := range client.BankAccounts {
		// The first account is always the default one.
		if _, err := tx.Exec(ctx, accountInsert, clientID, account.BankName, account.AccountNumber, account.IFSC, i == 0, i); err != nil {
			return 0, fmt.Errorf("failed to insert client bank account: %w", err)
		}
	}

	return clientID, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id uint64) (*entities.Client, error) {
	query := `
		SELECT id, workflow_entity_id, name, client_type, accounting_group, pan, gstin, address_line, city, state, pincode, created_at, updated_at
		FROM clients WHERE id = $1`

	client, err := scanClient(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}

	if err := r.loadChildren(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetActive lists verified (active) clients, joined against the workflow
// status so rejected and pending records never leak into the directory.
func (r *ClientRepository) GetActive(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error) {
	baseWhere := sq.Eq{"w.status": string(workflow.StatusVerified)}

	countBuilder := psql.Select("COUNT(*)").
		From("clients c").
		Join("workflow_entities w ON w.id = c.workflow_entity_id").
		Where(baseWhere)

	if filter.Search != "" {
		countBuilder = countBuilder.Where(sq.ILike{"c.name": "%" + filter.Search + "%"})
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build client count query: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count active clients: %w", err)
	}

	builder := psql.Select(
		"c.id", "c.workflow_entity_id", "c.name", "c.client_type", "c.accounting_group",
		"c.pan", "c.gstin", "c.address_line", "c.city", "c.state", "c.pincode",
		"c.created_at", "c.updated_at",
	).
		From("clients c").
		Join("workflow_entities w ON w.id = c.workflow_entity_id").
		Where(baseWhere).
		OrderBy("c.created_at DESC")

	if filter.Search != "" {
		builder = builder.Where(sq.ILike{"c.name": "%" + filter.Search + "%"})
	}
	if filter.WithPagination {
		if filter.Limit > 0 {
			builder = builder.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			builder = builder.Offset(uint64(filter.Offset))
		}
	}

	querySQL, queryArgs, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build client list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch active clients: %w", err)
	}
	defer rows.Close()

	clients := make([]entities.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, *client)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range clients {
		if err := r.loadChildren(ctx, &clients[i]); err != nil {
			return nil, 0, err
		}
	}
	return clients, total, nil
}

// UpdateInTx patches only the columns present in fields.
func (r *ClientRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, clientID uint64, fields map[string]interface{}) (int64, error) {
	builder := psql.Update("clients").Where(sq.Eq{"id": clientID})
	for column, value := range fields {
		builder = builder.Set(column, value)
	}
	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	querySQL, queryArgs, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build client update query: %w", err)
	}

	tag, err := tx.Exec(ctx, querySQL, queryArgs...)
	if err != nil {
		return 0, fmt.Errorf("failed to update client: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ClientRepository) DeleteContactInTx(ctx context.Context, tx pgx.Tx, clientID uint64, position int) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM client_contacts WHERE client_id = $1 AND position = $2`, clientID, position)
	if err != nil {
		return 0, fmt.Errorf("failed to delete client contact: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ClientRepository) DeleteBankAccountInTx(ctx context.Context, tx pgx.Tx, clientID uint64, position int) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM client_bank_accounts WHERE client_id = $1 AND position = $2`, clientID, position)
	if err != nil {
		return 0, fmt.Errorf("failed to delete client bank account: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ClientRepository) loadChildren(ctx context.Context, client *entities.Client) error {
	contactRows, err := r.storage.Query(ctx,
		`SELECT id, client_id, name, phone, email, position FROM client_contacts WHERE client_id = $1 ORDER BY position ASC`,
		client.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch client contacts: %w", err)
	}
	defer contactRows.Close()

	client.Contacts = make([]entities.ClientContact, 0)
	for contactRows.Next() {
		var c entities.ClientContact
		if err := contactRows.Scan(&c.ID, &c.ClientID, &c.Name, &c.Phone, &c.Email, &c.Position); err != nil {
			return fmt.Errorf("failed to scan client contact: %w", err)
		}
		client.Contacts = append(client.Contacts, c)
	}
	if err := contactRows.Err(); err != nil {
		return err
	}

	accountRows, err := r.storage.Query(ctx,
		`SELECT id, client_id, bank_name, account_number, ifsc, is_default, position FROM client_bank_accounts WHERE client_id = $1 ORDER BY position ASC`,
		client.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch client bank accounts: %w", err)
	}
	defer accountRows.Close()

	client.BankAccounts = make([]entities.ClientBankAccount, 0)
	for accountRows.Next() {
		var a entities.ClientBankAccount
		if err := accountRows.Scan(&a.ID, &a.ClientID, &a.BankName, &a.AccountNumber, &a.IFSC, &a.IsDefault, &a.Position); err != nil {
			return fmt.Errorf("failed to scan client bank account: %w", err)
		}
		client.BankAccounts = append(client.BankAccounts, a)
	}
	return accountRows.Err()
}

func scanClient(row pgx.Row) (*entities.Client, error) {
	var client entities.Client
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&client.ID, &client.WorkflowEntityID, &client.Name, &client.ClientType, &client.AccountingGroup,
		&client.PAN, &client.GSTIN, &client.AddressLine, &client.City, &client.State, &client.Pincode,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	client.CreatedAt = &createdAt
	client.UpdatedAt = &updatedAt
	return &client, nil
}
