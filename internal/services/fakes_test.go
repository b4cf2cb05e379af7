package services

import (
	"context"

	"backoffice-system/internal/dto"
	"backoffice-system/internal/entities"
	"backoffice-system/internal/workflow"
	"backoffice-system/pkg/contextkeys"
	apperrors "backoffice-system/pkg/errors"
	"backoffice-system/pkg/types"

	"github.com/jackc/pgx/v5"
)

func authedCtx(userID uint64, userName string, roleID uint64) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	ctx = context.WithValue(ctx, contextkeys.UserNameKey, userName)
	ctx = context.WithValue(ctx, contextkeys.RoleIDKey, roleID)
	return ctx
}

// fakeTxManager runs the callback directly; repository fakes ignore the tx.
type fakeTxManager struct{}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeWorkflowRepo struct {
	byID   map[uint64]*entities.WorkflowEntity
	nextID uint64

	findCalls       int
	transitionCalls int
	// forceStale makes every transition report zero affected rows, simulating
	// a concurrent session that processed the record first.
	forceStale bool
}

func newFakeWorkflowRepo() *fakeWorkflowRepo {
	return &fakeWorkflowRepo{byID: make(map[uint64]*entities.WorkflowEntity), nextID: 1}
}

func (r *fakeWorkflowRepo) add(entity *entities.WorkflowEntity) *entities.WorkflowEntity {
	entity.ID = r.nextID
	r.nextID++
	r.byID[entity.ID] = entity
	return entity
}

func (r *fakeWorkflowRepo) GetPendingByRole(ctx context.Context, entityType string, roleID uint64, filter types.Filter) ([]entities.WorkflowEntity, uint64, error) {
	var items []entities.WorkflowEntity
	for _, e := range r.byID {
		if e.EntityType == entityType && e.Status == workflow.StatusPending && e.NextRoleID != nil && *e.NextRoleID == roleID {
			items = append(items, *e)
		}
	}
	return items, uint64(len(items)), nil
}

func (r *fakeWorkflowRepo) FindByID(ctx context.Context, entityType string, id uint64) (*entities.WorkflowEntity, error) {
	r.findCalls++
	e, ok := r.byID[id]
	if !ok || e.EntityType != entityType {
		return nil, apperrors.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *fakeWorkflowRepo) FindByBatch(ctx context.Context, entityType string, batchID string) ([]entities.WorkflowEntity, error) {
	var items []entities.WorkflowEntity
	for id := uint64(1); id < r.nextID; id++ {
		e, ok := r.byID[id]
		if ok && e.EntityType == entityType && e.BatchID != nil && *e.BatchID == batchID {
			items = append(items, *e)
		}
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return items, nil
}

func (r *fakeWorkflowRepo) CreateInTx(ctx context.Context, tx pgx.Tx, entity *entities.WorkflowEntity) (uint64, error) {
	clone := *entity
	return r.add(&clone).ID, nil
}

func (r *fakeWorkflowRepo) UpdatePayloadInTx(ctx context.Context, tx pgx.Tx, id uint64, payload []byte) error {
	e, ok := r.byID[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Payload = payload
	return nil
}

func (r *fakeWorkflowRepo) TransitionInTx(ctx context.Context, tx pgx.Tx, id uint64, to workflow.Status, level int, nextRoleID *uint64) (int64, error) {
	r.transitionCalls++
	if r.forceStale {
		return 0, nil
	}
	e, ok := r.byID[id]
	if !ok || e.Status != workflow.StatusPending {
		return 0, nil
	}
	e.Status = to
	e.CurrentLevel = level
	e.NextRoleID = nextRoleID
	return 1, nil
}

func (r *fakeWorkflowRepo) TransitionBatchInTx(ctx context.Context, tx pgx.Tx, entityType string, batchID string, to workflow.Status, level int, nextRoleID *uint64) (int64, error) {
	r.transitionCalls++
	if r.forceStale {
		return 0, nil
	}
	var moved int64
	for _, e := range r.byID {
		if e.EntityType == entityType && e.BatchID != nil && *e.BatchID == batchID && e.Status == workflow.StatusPending {
			e.Status = to
			e.CurrentLevel = level
			e.NextRoleID = nextRoleID
			moved++
		}
	}
	return moved, nil
}

type fakeSignatureRepo struct {
	entries []entities.SignatureEntry
}

func (r *fakeSignatureRepo) AppendInTx(ctx context.Context, tx pgx.Tx, entry *entities.SignatureEntry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeSignatureRepo) FindByEntityID(ctx context.Context, entityID uint64) ([]entities.SignatureEntry, error) {
	var out []entities.SignatureEntry
	for _, e := range r.entries {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeRoleDirectory struct {
	names map[uint64]string
	err   error
}

func (r *fakeRoleDirectory) GetRoles(ctx context.Context) ([]dto.RoleDTO, error) {
	roles := make([]dto.RoleDTO, 0, len(r.names))
	for id, name := range r.names {
		roles = append(roles, dto.RoleDTO{ID: id, Name: name})
	}
	return roles, nil
}

func (r *fakeRoleDirectory) ResolveNames(ctx context.Context) (map[uint64]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.names, nil
}

func (r *fakeRoleDirectory) Invalidate(ctx context.Context) error { return nil }

type fakeClientRepo struct {
	byID   map[uint64]*entities.Client
	nextID uint64

	deletedContacts []int
	deletedAccounts []int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byID: make(map[uint64]*entities.Client), nextID: 1}
}

func (r *fakeClientRepo) CreateInTx(ctx context.Context, tx pgx.Tx, client *entities.Client) (uint64, error) {
	clone := *client
	clone.ID = r.nextID
	for i := range clone.Contacts {
		clone.Contacts[i].Position = i
	}
	for i := range clone.BankAccounts {
		clone.BankAccounts[i].Position = i
		clone.BankAccounts[i].IsDefault = i == 0
	}
	r.nextID++
	r.byID[clone.ID] = &clone
	return clone.ID, nil
}

func (r *fakeClientRepo) FindByID(ctx context.Context, id uint64) (*entities.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeClientRepo) GetActive(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error) {
	var out []entities.Client
	for _, c := range r.byID {
		out = append(out, *c)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeClientRepo) UpdateInTx(ctx context.Context, tx pgx.Tx, clientID uint64, fields map[string]interface{}) (int64, error) {
	c, ok := r.byID[clientID]
	if !ok {
		return 0, nil
	}
	for column, value := range fields {
		s, _ := value.(string)
		switch column {
		case "name":
			c.Name = s
		case "accounting_group":
			c.AccountingGroup = s
		case "gstin":
			c.GSTIN = s
		case "address_line":
			c.AddressLine = s
		case "city":
			c.City = s
		case "state":
			c.State = s
		case "pincode":
			c.Pincode = s
		}
	}
	return 1, nil
}

func (r *fakeClientRepo) DeleteContactInTx(ctx context.Context, tx pgx.Tx, clientID uint64, position int) (int64, error) {
	c, ok := r.byID[clientID]
	if !ok {
		return 0, nil
	}
	for i, contact := range c.Contacts {
		if contact.Position == position {
			c.Contacts = append(c.Contacts[:i], c.Contacts[i+1:]...)
			r.deletedContacts = append(r.deletedContacts, position)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeClientRepo) DeleteBankAccountInTx(ctx context.Context, tx pgx.Tx, clientID uint64, position int) (int64, error) {
	c, ok := r.byID[clientID]
	if !ok {
		return 0, nil
	}
	for i, account := range c.BankAccounts {
		if account.Position == position {
			c.BankAccounts = append(c.BankAccounts[:i], c.BankAccounts[i+1:]...)
			r.deletedAccounts = append(r.deletedAccounts, position)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeSubClientRepo struct {
	byID   map[uint64]*entities.SubClient
	nextID uint64
}

func newFakeSubClientRepo() *fakeSubClientRepo {
	return &fakeSubClientRepo{byID: make(map[uint64]*entities.SubClient), nextID: 1}
}

func (r *fakeSubClientRepo) CreateInTx(ctx context.Context, tx pgx.Tx, subClient *entities.SubClient) (uint64, error) {
	clone := *subClient
	clone.ID = r.nextID
	r.nextID++
	r.byID[clone.ID] = &clone
	return clone.ID, nil
}

func (r *fakeSubClientRepo) FindByID(ctx context.Context, id uint64) (*entities.SubClient, error) {
	sc, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *sc
	return &clone, nil
}

type fakeCostCentreRepo struct {
	byID map[uint64]entities.CostCentre
}

func (r *fakeCostCentreRepo) FindCostCentre(ctx context.Context, id uint64) (*entities.CostCentre, error) {
	cc, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &cc, nil
}

func (r *fakeCostCentreRepo) GetCostCentres(ctx context.Context) ([]entities.CostCentre, error) {
	var out []entities.CostCentre
	for _, cc := range r.byID {
		out = append(out, cc)
	}
	return out, nil
}
