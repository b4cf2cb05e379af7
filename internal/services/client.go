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
	"backoffice-system/pkg/types"
	"backoffice-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const clientSlug = "clients"

type ClientServiceInterface interface {
	CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*dto.ClientDTO, error)
	UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*dto.ClientDTO, error)
	FindClient(ctx context.Context, id uint64) (*dto.ClientDTO, error)
	GetActiveClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error)
	RemoveContact(ctx context.Context, clientID uint64, position int) error
	RemoveBankAccount(ctx context.Context, clientID uint64, position int) error
}

type ClientService struct {
	registry      *workflow.Registry
	clientRepo    repositories.ClientRepositoryInterface
	workflowRepo  repositories.WorkflowRepositoryInterface
	signatureRepo repositories.SignatureRepositoryInterface
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewClientService(
	registry *workflow.Registry,
	clientRepo repositories.ClientRepositoryInterface,
	workflowRepo repositories.WorkflowRepositoryInterface,
	signatureRepo repositories.SignatureRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) ClientServiceInterface {
	return &ClientService{
		registry:      registry,
		clientRepo:    clientRepo,
		workflowRepo:  workflowRepo,
		signatureRepo: signatureRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// CreateClient validates the business rules the struct tags cannot express,
// then writes the workflow row, the client payload, and the creator's
// level-0 signature in one transaction.
func (s *ClientService) CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*dto.ClientDTO, error) {
	// PAN is mandatory for every client type except Individual.
	if payload.ClientType != "Individual" && strings.TrimSpace(payload.PAN) == "" {
		return nil, apperrors.NewInvalidInputError("PAN is required for client type %s", payload.ClientType)
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

	d, ok := s.registry.Get(clientSlug)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	submitted, err := workflow.Submit(d)
	if err != nil {
		return nil, err
	}

	summary, err := json.Marshal(map[string]interface{}{
		"name":             payload.Name,
		"client_type":      payload.ClientType,
		"accounting_group": payload.AccountingGroup,
		"city":             payload.Address.City,
		"state":            payload.Address.State,
	})
	if err != nil {
		return nil, err
	}

	client := &entities.Client{
		Name:            payload.Name,
		ClientType:      payload.ClientType,
		AccountingGroup: payload.AccountingGroup,
		PAN:             strings.ToUpper(strings.TrimSpace(payload.PAN)),
		GSTIN:           strings.ToUpper(strings.TrimSpace(payload.GSTIN)),
		AddressLine:     payload.Address.AddressLine,
		City:            payload.Address.City,
		State:           payload.Address.State,
		Pincode:         payload.Address.Pincode,
	}
	for _, contact := range payload.ContactPersons {
		client.Contacts = append(client.Contacts, entities.ClientContact{
			Name: contact.Name, Phone: contact.Phone, Email: contact.Email,
		})
	}
	for _, account := range payload.BankAccounts {
		client.BankAccounts = append(client.BankAccounts, entities.ClientBankAccount{
			BankName: account.BankName, AccountNumber: account.AccountNumber, IFSC: account.IFSC,
		})
	}

	var clientID uint64
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
		client.WorkflowEntityID = workflowID

		id, err := s.clientRepo.CreateInTx(ctx, tx, client)
		if err != nil {
			return err
		}
		clientID = id

		return s.signatureRepo.AppendInTx(ctx, tx, &entities.SignatureEntry{
			EntityID: workflowID,
			UserName: userName,
			RoleID:   roleID,
			LevelID:  0,
		})
	})
	if err != nil {
		s.logger.Error("failed to create client", zap.Error(err))
		return nil, err
	}

	s.logger.Info("client created", zap.Uint64("id", clientID), zap.String("name", client.Name))
	return s.FindClient(ctx, clientID)
}

// UpdateClient patches an unverified client. Verified and rejected records
// are locked; corrections happen before the chain signs off.
func (s *ClientService) UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*dto.ClientDTO, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entity, err := s.workflowRepo.FindByID(ctx, clientSlug, client.WorkflowEntityID)
	if err != nil {
		return nil, err
	}
	if entity.Status != workflow.StatusPending {
		return nil, apperrors.NewInvalidInputError("a %s client cannot be edited", strings.ToLower(string(entity.Status)))
	}

	fields := map[string]interface{}{}
	if payload.Name.Valid {
		fields["name"] = payload.Name.String
		client.Name = payload.Name.String
	}
	if payload.AccountingGroup.Valid {
		fields["accounting_group"] = payload.AccountingGroup.String
		client.AccountingGroup = payload.AccountingGroup.String
	}
	if payload.GSTIN.Valid {
		gstin := strings.ToUpper(strings.TrimSpace(payload.GSTIN.String))
		fields["gstin"] = gstin
		client.GSTIN = gstin
	}
	if payload.AddressLine.Valid {
		fields["address_line"] = payload.AddressLine.String
	}
	if payload.City.Valid {
		fields["city"] = payload.City.String
		client.City = payload.City.String
	}
	if payload.State.Valid {
		fields["state"] = payload.State.String
		client.State = payload.State.String
	}
	if payload.Pincode.Valid {
		fields["pincode"] = payload.Pincode.String
	}
	if len(fields) == 0 {
		return nil, apperrors.NewInvalidInputError("no fields to update")
	}

	summary, err := json.Marshal(map[string]interface{}{
		"name":             client.Name,
		"client_type":      client.ClientType,
		"accounting_group": client.AccountingGroup,
		"city":             client.City,
		"state":            client.State,
	})
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		affected, err := s.clientRepo.UpdateInTx(ctx, tx, id, fields)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperrors.ErrNotFound
		}
		// Keep the queue summary consistent with the edited record.
		return s.workflowRepo.UpdatePayloadInTx(ctx, tx, client.WorkflowEntityID, summary)
	})
	if err != nil {
		s.logger.Error("failed to update client", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	return s.FindClient(ctx, id)
}

func (s *ClientService) FindClient(ctx context.Context, id uint64) (*dto.ClientDTO, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entity, err := s.workflowRepo.FindByID(ctx, clientSlug, client.WorkflowEntityID)
	if err != nil {
		return nil, err
	}
	return toClientDTO(client, string(entity.Status)), nil
}

func (s *ClientService) GetActiveClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error) {
	clients, total, err := s.clientRepo.GetActive(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.ClientDTO, 0, len(clients))
	for i := range clients {
		result = append(result, *toClientDTO(&clients[i], string(workflow.StatusVerified)))
	}
	return result, total, nil
}

// RemoveContact refuses to touch position 0: the primary contact is fixed.
func (s *ClientService) RemoveContact(ctx context.Context, clientID uint64, position int) error {
	if position == 0 {
		return apperrors.NewInvalidInputError("the primary contact cannot be removed")
	}

	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		affected, err := s.clientRepo.DeleteContactInTx(ctx, tx, clientID, position)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// RemoveBankAccount mirrors RemoveContact: the default account at position 0
// cannot be removed.
func (s *ClientService) RemoveBankAccount(ctx context.Context, clientID uint64, position int) error {
	if position == 0 {
		return apperrors.NewInvalidInputError("the default bank account cannot be removed")
	}

	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		affected, err := s.clientRepo.DeleteBankAccountInTx(ctx, tx, clientID, position)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func toClientDTO(client *entities.Client, status string) *dto.ClientDTO {
	out := &dto.ClientDTO{
		ID:               client.ID,
		WorkflowEntityID: client.WorkflowEntityID,
		Name:             client.Name,
		ClientType:       client.ClientType,
		AccountingGroup:  client.AccountingGroup,
		PAN:              client.PAN,
		GSTIN:            client.GSTIN,
		AddressLine:      client.AddressLine,
		City:             client.City,
		State:            client.State,
		Pincode:          client.Pincode,
		Status:           status,
	}
	for _, contact := range client.Contacts {
		out.ContactPersons = append(out.ContactPersons, dto.ContactPersonDTO{
			Name: contact.Name, Phone: contact.Phone, Email: contact.Email,
		})
	}
	for _, account := range client.BankAccounts {
		out.BankAccounts = append(out.BankAccounts, dto.BankAccountDTO{
			BankName: account.BankName, AccountNumber: account.AccountNumber, IFSC: account.IFSC,
		})
	}
	if client.CreatedAt != nil {
		out.CreatedAt = client.CreatedAt.Local().Format(time.DateTime)
	}
	return out
}
