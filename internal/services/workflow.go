package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"backoffice-system/internal/dto"
	"backoffice-system/internal/entities"
	"backoffice-system/internal/repositories"
	"backoffice-system/internal/workflow"
	apperrors "backoffice-system/pkg/errors"
	"backoffice-system/pkg/types"
	"backoffice-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WorkflowServiceInterface interface {
	GetVerificationQueue(ctx context.Context, slug string, filter types.Filter) ([]dto.QueueItemDTO, uint64, error)
	CreateEntity(ctx context.Context, slug string, payload json.RawMessage, remarks string) (uint64, error)
	Verify(ctx context.Context, slug string, id uint64, remarks string) (*dto.TransitionResultDTO, error)
	Reject(ctx context.Context, slug string, id uint64, remarks string) (*dto.TransitionResultDTO, error)
	VerifyBatch(ctx context.Context, slug string, batchID string, remarks string) (*dto.TransitionResultDTO, error)
	RejectBatch(ctx context.Context, slug string, batchID string, remarks string) (*dto.TransitionResultDTO, error)
	GetSignatureTimeline(ctx context.Context, slug string, id uint64) ([]dto.SignatureEntryDTO, error)
}

type WorkflowService struct {
	registry      *workflow.Registry
	workflowRepo  repositories.WorkflowRepositoryInterface
	signatureRepo repositories.SignatureRepositoryInterface
	txManager     repositories.TxManagerInterface
	roleDirectory RoleDirectoryServiceInterface
	logger        *zap.Logger
}

func NewWorkflowService(
	registry *workflow.Registry,
	workflowRepo repositories.WorkflowRepositoryInterface,
	signatureRepo repositories.SignatureRepositoryInterface,
	txManager repositories.TxManagerInterface,
	roleDirectory RoleDirectoryServiceInterface,
	logger *zap.Logger,
) WorkflowServiceInterface {
	return &WorkflowService{
		registry:      registry,
		workflowRepo:  workflowRepo,
		signatureRepo: signatureRepo,
		txManager:     txManager,
		roleDirectory: roleDirectory,
		logger:        logger,
	}
}

func (s *WorkflowService) descriptor(slug string) (workflow.Descriptor, error) {
	d, ok := s.registry.Get(slug)
	if !ok {
		return workflow.Descriptor{}, apperrors.NewHttpError(http.StatusNotFound, "unknown entity type", nil, map[string]interface{}{"entity": slug})
	}
	return d, nil
}

func (s *WorkflowService) GetVerificationQueue(ctx context.Context, slug string, filter types.Filter) ([]dto.QueueItemDTO, uint64, error) {
	d, err := s.descriptor(slug)
	if err != nil {
		return nil, 0, err
	}

	roleID, err := utils.GetUserRoleIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	records, total, err := s.workflowRepo.GetPendingByRole(ctx, d.Slug, roleID, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.QueueItemDTO, 0, len(records))
	for _, record := range records {
		items = append(items, toQueueItemDTO(d, record))
	}
	return items, total, nil
}

// CreateEntity submits a new record straight into the verification chain:
// pending at level 1 with the creator's level-0 signature attached in the
// same transaction, so a pending entity always carries its initiator entry.
func (s *WorkflowService) CreateEntity(ctx context.Context, slug string, payload json.RawMessage, remarks string) (uint64, error) {
	d, err := s.descriptor(slug)
	if err != nil {
		return 0, err
	}

	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	roleID, err := utils.GetUserRoleIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	userName := utils.GetUserNameFromCtx(ctx)

	submitted, err := workflow.Submit(d)
	if err != nil {
		return 0, err
	}

	entity := &entities.WorkflowEntity{
		EntityType:   d.Slug,
		Status:       submitted.Next,
		CurrentLevel: submitted.NextLevel,
		NextRoleID:   &submitted.NextRoleID,
		CreationType: workflow.CreationSingle,
		Payload:      payload,
		CreatedBy:    userID,
	}

	var newID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.workflowRepo.CreateInTx(ctx, tx, entity)
		if err != nil {
			return err
		}
		newID = id
		return s.signatureRepo.AppendInTx(ctx, tx, &entities.SignatureEntry{
			EntityID: id,
			UserName: userName,
			RoleID:   roleID,
			LevelID:  0,
			Remarks:  strings.TrimSpace(remarks),
		})
	})
	if err != nil {
		s.logger.Error("failed to create workflow entity", zap.String("entity", slug), zap.Error(err))
		return 0, err
	}

	s.logger.Info("workflow entity created",
		zap.String("entity", slug), zap.Uint64("id", newID), zap.Uint64("creator", userID))
	return newID, nil
}

func (s *WorkflowService) Verify(ctx context.Context, slug string, id uint64, remarks string) (*dto.TransitionResultDTO, error) {
	return s.act(ctx, slug, id, workflow.ActionVerify, remarks)
}

func (s *WorkflowService) Reject(ctx context.Context, slug string, id uint64, remarks string) (*dto.TransitionResultDTO, error) {
	return s.act(ctx, slug, id, workflow.ActionReject, remarks)
}

func (s *WorkflowService) act(ctx context.Context, slug string, id uint64, action workflow.Action, remarks string) (*dto.TransitionResultDTO, error) {
	// Remarks gate: checked before any storage access.
	if strings.TrimSpace(remarks) == "" {
		return nil, apperrors.NewInvalidInputError("remarks are required for this action")
	}

	d, err := s.descriptor(slug)
	if err != nil {
		return nil, err
	}

	roleID, err := utils.GetUserRoleIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	userName := utils.GetUserNameFromCtx(ctx)

	entity, err := s.workflowRepo.FindByID(ctx, d.Slug, id)
	if err != nil {
		return nil, err
	}

	if entity.Status != workflow.StatusPending {
		return nil, s.conflictFor(d, entity, action)
	}

	result, err := workflow.Transition(d, entity.Status, entity.CurrentLevel, roleID, action, remarks)
	if err != nil {
		return nil, s.translateTransitionError(d, entity, action, err)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var nextRole *uint64
		if !result.Terminal {
			nextRole = &result.NextRoleID
		}
		affected, err := s.workflowRepo.TransitionInTx(ctx, tx, id, result.Next, result.NextLevel, nextRole)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Lost the race: another session processed the record between
			// our read and this update.
			return s.conflictFor(d, entity, action)
		}
		return s.signatureRepo.AppendInTx(ctx, tx, &entities.SignatureEntry{
			EntityID: id,
			UserName: userName,
			RoleID:   roleID,
			LevelID:  entity.CurrentLevel,
			Remarks:  strings.TrimSpace(remarks),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("workflow transition applied",
		zap.String("entity", slug), zap.Uint64("id", id),
		zap.String("action", string(action)), zap.String("status", string(result.Next)))

	return &dto.TransitionResultDTO{
		ID:       id,
		Status:   string(result.Next),
		Terminal: result.Terminal,
		Affected: 1,
	}, nil
}

func (s *WorkflowService) VerifyBatch(ctx context.Context, slug string, batchID string, remarks string) (*dto.TransitionResultDTO, error) {
	return s.actBatch(ctx, slug, batchID, workflow.ActionVerify, remarks)
}

func (s *WorkflowService) RejectBatch(ctx context.Context, slug string, batchID string, remarks string) (*dto.TransitionResultDTO, error) {
	return s.actBatch(ctx, slug, batchID, workflow.ActionReject, remarks)
}

func (s *WorkflowService) actBatch(ctx context.Context, slug string, batchID string, action workflow.Action, remarks string) (*dto.TransitionResultDTO, error) {
	if strings.TrimSpace(remarks) == "" {
		return nil, apperrors.NewInvalidInputError("remarks are required for this action")
	}

	d, err := s.descriptor(slug)
	if err != nil {
		return nil, err
	}
	if !d.BulkCapable {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "entity type does not support batch actions", nil, map[string]interface{}{"entity": slug})
	}

	roleID, err := utils.GetUserRoleIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	userName := utils.GetUserNameFromCtx(ctx)

	members, err := s.workflowRepo.FindByBatch(ctx, d.Slug, batchID)
	if err != nil {
		return nil, err
	}

	// Batch members move in lockstep, so the first member's state speaks for
	// the group.
	head := members[0]
	if head.Status != workflow.StatusPending {
		return nil, s.conflictFor(d, &head, action)
	}

	result, err := workflow.Transition(d, head.Status, head.CurrentLevel, roleID, action, remarks)
	if err != nil {
		return nil, s.translateTransitionError(d, &head, action, err)
	}

	var affected int64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var nextRole *uint64
		if !result.Terminal {
			nextRole = &result.NextRoleID
		}
		moved, err := s.workflowRepo.TransitionBatchInTx(ctx, tx, d.Slug, batchID, result.Next, result.NextLevel, nextRole)
		if err != nil {
			return err
		}
		if moved == 0 {
			return s.conflictFor(d, &head, action)
		}
		affected = moved
		for _, member := range members {
			if err := s.signatureRepo.AppendInTx(ctx, tx, &entities.SignatureEntry{
				EntityID: member.ID,
				UserName: userName,
				RoleID:   roleID,
				LevelID:  member.CurrentLevel,
				Remarks:  strings.TrimSpace(remarks),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("workflow batch transition applied",
		zap.String("entity", slug), zap.String("batch", batchID),
		zap.String("action", string(action)), zap.Int64("affected", affected))

	return &dto.TransitionResultDTO{
		BatchID:  batchID,
		Status:   string(result.Next),
		Terminal: result.Terminal,
		Affected: affected,
	}, nil
}

func (s *WorkflowService) GetSignatureTimeline(ctx context.Context, slug string, id uint64) ([]dto.SignatureEntryDTO, error) {
	d, err := s.descriptor(slug)
	if err != nil {
		return nil, err
	}

	if _, err := s.workflowRepo.FindByID(ctx, d.Slug, id); err != nil {
		return nil, err
	}

	entries, err := s.signatureRepo.FindByEntityID(ctx, id)
	if err != nil {
		return nil, err
	}

	roleNames, err := s.roleDirectory.ResolveNames(ctx)
	if err != nil {
		s.logger.Warn("role directory unavailable, rendering timeline without role names", zap.Error(err))
		roleNames = map[uint64]string{}
	}

	timeline := make([]dto.SignatureEntryDTO, 0, len(entries))
	for _, e := range entries {
		label := "Verified"
		if e.LevelID == 0 {
			label = "Initiated"
		}
		item := dto.SignatureEntryDTO{
			UserName: e.UserName,
			RoleID:   e.RoleID,
			RoleName: roleNames[e.RoleID],
			LevelID:  e.LevelID,
			Label:    label,
			Remarks:  e.Remarks,
		}
		if e.CreatedAt != nil {
			item.CreatedAt = e.CreatedAt.Local().Format(time.DateTime)
		}
		timeline = append(timeline, item)
	}
	return timeline, nil
}

// conflictFor classifies a stale-queue action. Client PO verifies get the
// distinguished ALREADY_APPROVED class; every other case is a generic
// conflict. Kept entity-specific deliberately.
func (s *WorkflowService) conflictFor(d workflow.Descriptor, entity *entities.WorkflowEntity, action workflow.Action) error {
	if d.RecognizeConflict && action == workflow.ActionVerify {
		return &apperrors.AlreadyProcessedError{
			EntityType: d.Name,
			EntityID:   entity.ID,
			Status:     d.Label(entity.Status),
		}
	}
	return apperrors.NewHttpError(http.StatusConflict, "record is no longer pending verification", nil,
		map[string]interface{}{"entity": d.Slug, "id": entity.ID, "status": string(entity.Status)})
}

func (s *WorkflowService) translateTransitionError(d workflow.Descriptor, entity *entities.WorkflowEntity, action workflow.Action, err error) error {
	switch {
	case errors.Is(err, workflow.ErrRemarksRequired):
		return apperrors.NewInvalidInputError("remarks are required for this action")
	case errors.Is(err, workflow.ErrNotPending):
		return s.conflictFor(d, entity, action)
	case errors.Is(err, workflow.ErrWrongRole):
		return apperrors.NewHttpError(http.StatusForbidden, "your role is not the next required verifier", err, nil)
	default:
		return err
	}
}

func toQueueItemDTO(d workflow.Descriptor, record entities.WorkflowEntity) dto.QueueItemDTO {
	item := dto.QueueItemDTO{
		ID:           record.ID,
		EntityType:   record.EntityType,
		EntityName:   d.Name,
		Status:       string(record.Status),
		StatusLabel:  d.Label(record.Status),
		CurrentLevel: record.CurrentLevel,
		CreationType: string(record.CreationType),
		BatchID:      record.BatchID,
		Payload:      record.Payload,
		CreatedBy:    record.CreatedBy,
	}
	if record.CreatedAt != nil {
		item.CreatedAt = record.CreatedAt.Local().Format(time.DateTime)
	}
	return item
}
