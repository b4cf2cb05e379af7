package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"backoffice-system/internal/dto"
	"backoffice-system/internal/entities"
	"backoffice-system/internal/repositories"
	"backoffice-system/internal/workflow"
	apperrors "backoffice-system/pkg/errors"
	"backoffice-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type BulkImportServiceInterface interface {
	ImportSheet(ctx context.Context, slug string, file io.Reader) (*dto.ImportResultDTO, error)
}

type BulkImportService struct {
	registry      *workflow.Registry
	workflowRepo  repositories.WorkflowRepositoryInterface
	signatureRepo repositories.SignatureRepositoryInterface
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewBulkImportService(
	registry *workflow.Registry,
	workflowRepo repositories.WorkflowRepositoryInterface,
	signatureRepo repositories.SignatureRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) BulkImportServiceInterface {
	return &BulkImportService{
		registry:      registry,
		workflowRepo:  workflowRepo,
		signatureRepo: signatureRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// ImportSheet turns the first sheet of an xlsx workbook into pending workflow
// entities. The header row names the payload fields; every data row becomes
// one record. All records of one upload share a batch id and are later
// verified or rejected as a single group.
//
// Blank rows and rows with an empty first cell are skipped, not failed: field
// staff hand these sheets in with trailing garbage rows.
func (s *BulkImportService) ImportSheet(ctx context.Context, slug string, file io.Reader) (*dto.ImportResultDTO, error) {
	d, ok := s.registry.Get(slug)
	if !ok {
		return nil, apperrors.NewHttpError(http.StatusNotFound, "unknown entity type", nil, map[string]interface{}{"entity": slug})
	}
	if !d.BulkCapable {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "entity type does not support spreadsheet import", nil, map[string]interface{}{"entity": slug})
	}

	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	roleID, err := utils.GetUserRoleIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	userName := utils.GetUserNameFromCtx(ctx)

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("cannot read workbook: %v", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewInvalidInputError("workbook has no sheets")
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewInvalidInputError("cannot read sheet %q: %v", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, apperrors.NewInvalidInputError("sheet %q has a header but no data rows", sheets[0])
	}

	header := make([]string, 0, len(rows[0]))
	for _, cell := range rows[0] {
		header = append(header, strings.ToLower(strings.ReplaceAll(strings.TrimSpace(cell), " ", "_")))
	}

	result := &dto.ImportResultDTO{BatchID: uuid.NewString()}
	payloads := make([]json.RawMessage, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			result.Skipped++
			continue
		}

		record := make(map[string]string, len(header))
		for j, name := range header {
			if name == "" {
				continue
			}
			if j < len(row) {
				record[name] = strings.TrimSpace(row[j])
			} else {
				record[name] = ""
			}
		}

		payload, err := json.Marshal(record)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		payloads = append(payloads, payload)
	}
	if len(payloads) == 0 {
		return nil, apperrors.NewInvalidInputError("sheet %q has no usable rows", sheets[0])
	}

	submitted, err := workflow.Submit(d)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, payload := range payloads {
			id, err := s.workflowRepo.CreateInTx(ctx, tx, &entities.WorkflowEntity{
				EntityType:   d.Slug,
				Status:       submitted.Next,
				CurrentLevel: submitted.NextLevel,
				NextRoleID:   &submitted.NextRoleID,
				CreationType: workflow.CreationBulk,
				BatchID:      &result.BatchID,
				Payload:      payload,
				CreatedBy:    userID,
			})
			if err != nil {
				return err
			}
			if err := s.signatureRepo.AppendInTx(ctx, tx, &entities.SignatureEntry{
				EntityID: id,
				UserName: userName,
				RoleID:   roleID,
				LevelID:  0,
			}); err != nil {
				return err
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("bulk import failed", zap.String("entity", slug), zap.Error(err))
		return nil, err
	}

	s.logger.Info("bulk import committed",
		zap.String("entity", slug), zap.String("batch", result.BatchID),
		zap.Int("created", result.Created), zap.Int("skipped", result.Skipped))
	return result, nil
}
