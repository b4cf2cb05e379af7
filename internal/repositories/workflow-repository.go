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

type WorkflowRepositoryInterface interface {
	GetPendingByRole(ctx context.Context, entityType string, roleID uint64, filter types.Filter) ([]entities.WorkflowEntity, uint64, error)
	FindByID(ctx context.Context, entityType string, id uint64) (*entities.WorkflowEntity, error)
	FindByBatch(ctx context.Context, entityType string, batchID string) ([]entities.WorkflowEntity, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, entity *entities.WorkflowEntity) (uint64, error)
	UpdatePayloadInTx(ctx context.Context, tx pgx.Tx, id uint64, payload []byte) error
	TransitionInTx(ctx context.Context, tx pgx.Tx, id uint64, to workflow.Status, level int, nextRoleID *uint64) (int64, error)
	TransitionBatchInTx(ctx context.Context, tx pgx.Tx, entityType string, batchID string, to workflow.Status, level int, nextRoleID *uint64) (int64, error)
}

type WorkflowRepository struct {
	storage *pgxpool.Pool
}

func NewWorkflowRepository(storage *pgxpool.Pool) WorkflowRepositoryInterface {
	return &WorkflowRepository{storage: storage}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const workflowColumns = "id, entity_type, status, current_level, next_role_id, creation_type, batch_id, payload, created_by, created_at, updated_at"

// GetPendingByRole returns the verification queue: every pending entity of
// the given type whose next required verifier is the given role.
func (r *WorkflowRepository) GetPendingByRole(ctx context.Context, entityType string, roleID uint64, filter types.Filter) ([]entities.WorkflowEntity, uint64, error) {
	countBuilder := psql.Select("COUNT(*)").
		From("workflow_entities").
		Where(sq.Eq{"entity_type": entityType, "status": string(workflow.StatusPending), "next_role_id": roleID})

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build queue count query: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count verification queue: %w", err)
	}

	builder := psql.Select(workflowColumns).
		From("workflow_entities").
		Where(sq.Eq{"entity_type": entityType, "status": string(workflow.StatusPending), "next_role_id": roleID}).
		OrderBy("created_at ASC", "id ASC")

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
		return nil, 0, fmt.Errorf("failed to build queue query: %w", err)
	}

	rows, err := r.storage.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch verification queue: %w", err)
	}
	defer rows.Close()

	items := make([]entities.WorkflowEntity, 0)
	for rows.Next() {
		entity, err := scanWorkflowEntity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan queue row: %w", err)
		}
		items = append(items, *entity)
	}
	return items, total, rows.Err()
}

func (r *WorkflowRepository) FindByID(ctx context.Context, entityType string, id uint64) (*entities.WorkflowEntity, error) {
	query := fmt.Sprintf(`SELECT %s FROM workflow_entities WHERE id = $1 AND entity_type = $2`, workflowColumns)

	row := r.storage.QueryRow(ctx, query, id, entityType)
	entity, err := scanWorkflowEntity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan workflow entity: %w", err)
	}
	return entity, nil
}

func (r *WorkflowRepository) FindByBatch(ctx context.Context, entityType string, batchID string) ([]entities.WorkflowEntity, error) {
	query := fmt.Sprintf(`SELECT %s FROM workflow_entities WHERE entity_type = $1 AND batch_id = $2 ORDER BY id ASC`, workflowColumns)

	rows, err := r.storage.Query(ctx, query, entityType, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch batch: %w", err)
	}
	defer rows.Close()

	var items []entities.WorkflowEntity
	for rows.Next() {
		entity, err := scanWorkflowEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch row: %w", err)
		}
		items = append(items, *entity)
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return items, rows.Err()
}

func (r *WorkflowRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entity *entities.WorkflowEntity) (uint64, error) {
	query := `
		INSERT INTO workflow_entities (entity_type, status, current_level, next_role_id, creation_type, batch_id, payload, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id`

	var id uint64
	err := tx.QueryRow(ctx, query,
		entity.EntityType, string(entity.Status), entity.CurrentLevel, entity.NextRoleID,
		string(entity.CreationType), entity.BatchID, entity.Payload, entity.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert workflow entity: %w", err)
	}
	return id, nil
}

// UpdatePayloadInTx refreshes the queue summary after the underlying record
// was edited.
func (r *WorkflowRepository) UpdatePayloadInTx(ctx context.Context, tx pgx.Tx, id uint64, payload []byte) error {
	query := `UPDATE workflow_entities SET payload = $1, updated_at = NOW() WHERE id = $2`

	if _, err := tx.Exec(ctx, query, payload, id); err != nil {
		return fmt.Errorf("failed to update workflow payload: %w", err)
	}
	return nil
}

// TransitionInTx moves one pending entity to the given state. The status
// guard in the WHERE clause makes the update a compare-and-swap: zero rows
// affected means the record was already processed by another session.
func (r *WorkflowRepository) TransitionInTx(ctx context.Context, tx pgx.Tx, id uint64, to workflow.Status, level int, nextRoleID *uint64) (int64, error) {
	query := `
		UPDATE workflow_entities
		SET status = $1, current_level = $2, next_role_id = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5`

	tag, err := tx.Exec(ctx, query, string(to), level, nextRoleID, id, string(workflow.StatusPending))
	if err != nil {
		return 0, fmt.Errorf("failed to transition workflow entity: %w", err)
	}
	return tag.RowsAffected(), nil
}

// TransitionBatchInTx moves every pending member of a batch at once; the
// batch is atomic by construction because this runs inside one transaction.
func (r *WorkflowRepository) TransitionBatchInTx(ctx context.Context, tx pgx.Tx, entityType string, batchID string, to workflow.Status, level int, nextRoleID *uint64) (int64, error) {
	query := `
		UPDATE workflow_entities
		SET status = $1, current_level = $2, next_role_id = $3, updated_at = NOW()
		WHERE entity_type = $4 AND batch_id = $5 AND status = $6`

	tag, err := tx.Exec(ctx, query, string(to), level, nextRoleID, entityType, batchID, string(workflow.StatusPending))
	if err != nil {
		return 0, fmt.Errorf("failed to transition batch: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanWorkflowEntity(row pgx.Row) (*entities.WorkflowEntity, error) {
	var entity entities.WorkflowEntity
	var status, creationType string
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&entity.ID, &entity.EntityType, &status, &entity.CurrentLevel, &entity.NextRoleID,
		&creationType, &entity.BatchID, &entity.Payload, &entity.CreatedBy,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entity.Status = workflow.Status(status)
	entity.CreationType = workflow.CreationType(creationType)
	entity.CreatedAt = &createdAt
	entity.UpdatedAt = &updatedAt
	return &entity, nil
}
