package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"backoffice-system/internal/dto"
	"backoffice-system/internal/entities"
	"backoffice-system/internal/repositories"
	"backoffice-system/internal/workflow"
	apperrors "backoffice-system/pkg/errors"
	"backoffice-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const subClientSlug = "subclients"

type SubClientServiceInterface interface {
	CreateSubClient(ctx context.Context, payload dto.CreateSubClientDTO) (*dto.SubClientDTO, error)
	FindSubClient(ctx context.Context, id uint64) (*dto.SubClientDTO, error)
	GetCostCentres(ctx context.Context) ([]dto.CostCentreDTO, error)
}

type SubClientService struct {
	registry       *workflow.Registry
	subClientRepo  repositories.SubClientRepositoryInterface
	clientRepo     repositories.ClientRepositoryInterface
	costCentreRepo repositories.CostCentreRepositoryInterface
	workflowRepo   repositories.WorkflowRepositoryInterface
	signatureRepo  repositories.SignatureRepositoryInterface
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
}

func NewSubClientService(
	registry *workflow.Registry,
	subClientRepo repositories.SubClientRepositoryInterface,
	clientRepo repositories.ClientRepositoryInterface,
	costCentreRepo repositories.CostCentreRepositoryInterface,
	workflowRepo repositories.WorkflowRepositoryInterface,
	signatureRepo repositories.SignatureRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) SubClientServiceInterface {
	return &SubClientService{
		registry:       registry,
		subClientRepo:  subClientRepo,
		clientRepo:     clientRepo,
		costCentreRepo: costCentreRepo,
		workflowRepo:   workflowRepo,
		signatureRepo:  signatureRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// CreateSubClient resolves every cost centre, applies the GST split against
// the sub-client's address state and stores the workflow row, the sub-client
// and the creator signature in one transaction.
//
// The split rule: when the cost centre and the sub-client sit in the same
// state the balance is intra-state (CGST+SGST, IGST forced to zero);
// otherwise it is inter-state (IGST only). The total is always derived, never
// taken from the request.
func (s *SubClientService) CreateSubClient(ctx context.Context, payload dto.CreateSubClientDTO) (*dto.SubClientDTO, error) {
	if _, err := s.clientRepo.FindByID(ctx, payload.ClientID); err != nil {
		return nil, apperrors.NewInvalidInputError("parent client %d does not exist", payload.ClientID)
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

	subClient := &entities.SubClient{
		ClientID:    payload.ClientID,
		Name:        payload.Name,
		GSTIN:       strings.ToUpper(strings.TrimSpace(payload.GSTIN)),
		AddressLine: payload.Address.AddressLine,
		City:        payload.Address.City,
		State:       payload.Address.State,
		Pincode:     payload.Address.Pincode,
	}

	for _, balanceDTO := range payload.CostCentreBalances {
		cc, err := s.costCentreRepo.FindCostCentre(ctx, balanceDTO.CostCentreID)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("cost centre %d does not exist", balanceDTO.CostCentreID)
		}

		balance := entities.CostCentreBalance{
			CostCentreID: cc.ID,
			BasicAmount:  balanceDTO.BasicAmount,
			CGST:         balanceDTO.CGST,
			SGST:         balanceDTO.SGST,
			IGST:         balanceDTO.IGST,
		}
		balance.Normalize(entities.IsIntraState(cc.State, payload.Address.State))
		subClient.CostCentreBalances = append(subClient.CostCentreBalances, balance)
	}

	d, ok := s.registry.Get(subClientSlug)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	submitted, err := workflow.Submit(d)
	if err != nil {
		return nil, err
	}

	summary, err := json.Marshal(map[string]interface{}{
		"name":      payload.Name,
		"client_id": payload.ClientID,
		"city":      payload.Address.City,
		"state":     payload.Address.State,
	})
	if err != nil {
		return nil, err
	}

	var subClientID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		workflowID, err := s.workflowRepo.CreateInTx(ctx, tx, &entities.WorkflowEntity{
			EntityType:   d.Slug,
			Status:       submitted.Next,
			CurrentLevel: submitted.NextLevel,
			NextRoleID:   &submitted.NextRoleID,
			CreationType: workflow.CreationSingle,
			Payload:      summary,
			CreatedBy:    userID,
		})
		if err != nil {
			return err
		}
		subClient.WorkflowEntityID = workflowID

		id, err := s.subClientRepo.CreateInTx(ctx, tx, subClient)
		if err != nil {
			return err
		}
		subClientID = id

		return s.signatureRepo.AppendInTx(ctx, tx, &entities.SignatureEntry{
			EntityID: workflowID,
			UserName: userName,
			RoleID:   roleID,
			LevelID:  0,
		})
	})
	if err != nil {
		s.logger.Error("failed to create sub-client", zap.Error(err))
		return nil, err
	}

	s.logger.Info("sub-client created",
		zap.Uint64("id", subClientID), zap.Uint64("client_id", payload.ClientID))
	return s.FindSubClient(ctx, subClientID)
}

func (s *SubClientService) FindSubClient(ctx context.Context, id uint64) (*dto.SubClientDTO, error) {
	subClient, err := s.subClientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entity, err := s.workflowRepo.FindByID(ctx, subClientSlug, subClient.WorkflowEntityID)
	if err != nil {
		return nil, err
	}
	return toSubClientDTO(subClient, string(entity.Status)), nil
}

func (s *SubClientService) GetCostCentres(ctx context.Context) ([]dto.CostCentreDTO, error) {
	centres, err := s.costCentreRepo.GetCostCentres(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CostCentreDTO, 0, len(centres))
	for _, cc := range centres {
		result = append(result, dto.CostCentreDTO{ID: cc.ID, CCNo: cc.CCNo, Name: cc.Name, State: cc.State})
	}
	return result, nil
}

func toSubClientDTO(subClient *entities.SubClient, status string) *dto.SubClientDTO {
	out := &dto.SubClientDTO{
		ID:               subClient.ID,
		WorkflowEntityID: subClient.WorkflowEntityID,
		ClientID:         subClient.ClientID,
		Name:             subClient.Name,
		GSTIN:            subClient.GSTIN,
		AddressLine:      subClient.AddressLine,
		City:             subClient.City,
		State:            subClient.State,
		Pincode:          subClient.Pincode,
		Status:           status,
	}
	for _, balance := range subClient.CostCentreBalances {
		out.CostCentreBalances = append(out.CostCentreBalances, dto.CostCentreBalanceResultDTO{
			CostCentreID: balance.CostCentreID,
			BasicAmount:  balance.BasicAmount,
			CGST:         balance.CGST,
			SGST:         balance.SGST,
			IGST:         balance.IGST,
			Total:        balance.Total,
			IsIntraState: balance.IsIntraState,
		})
	}
	if subClient.CreatedAt != nil {
		out.CreatedAt = subClient.CreatedAt.Local().Format(time.DateTime)
	}
	return out
}
