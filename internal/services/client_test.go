package services

import (
	"testing"

	"backoffice-system/internal/dto"
	"backoffice-system/internal/workflow"
	apperrors "backoffice-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type clientFixture struct {
	service       ClientServiceInterface
	clientRepo    *fakeClientRepo
	workflowRepo  *fakeWorkflowRepo
	signatureRepo *fakeSignatureRepo
}

func newClientFixture() *clientFixture {
	clientRepo := newFakeClientRepo()
	workflowRepo := newFakeWorkflowRepo()
	signatureRepo := &fakeSignatureRepo{}

	svc := NewClientService(
		workflow.DefaultRegistry(),
		clientRepo,
		workflowRepo,
		signatureRepo,
		&fakeTxManager{},
		zap.NewNop(),
	)
	return &clientFixture{service: svc, clientRepo: clientRepo, workflowRepo: workflowRepo, signatureRepo: signatureRepo}
}

func validClientPayload() dto.CreateClientDTO {
	return dto.CreateClientDTO{
		Name:            "Shree Constructions",
		ClientType:      "Partnership",
		AccountingGroup: "Sundry Debtors",
		PAN:             "AAAPL1234C",
		GSTIN:           "27AAAPL1234C1Z5",
		Address: dto.AddressDTO{
			AddressLine: "12 MG Road",
			City:        "Pune",
			State:       "Maharashtra",
			Pincode:     "411001",
		},
		ContactPersons: []dto.ContactPersonDTO{
			{Name: "Suresh Patil", Phone: "9876543210", Email: "suresh@shree.in"},
			{Name: "Meena Patil", Phone: "9876543211"},
		},
		BankAccounts: []dto.BankAccountDTO{
			{BankName: "SBI", AccountNumber: "00001234567890", IFSC: "SBIN0001234"},
		},
	}
}

func TestCreateClientRoundTrip(t *testing.T) {
	f := newClientFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleAccountsOfficer)

	created, err := f.service.CreateClient(ctx, validClientPayload())
	require.NoError(t, err)

	assert.Equal(t, "Shree Constructions", created.Name)
	assert.Equal(t, "Partnership", created.ClientType)
	assert.Equal(t, "AAAPL1234C", created.PAN)
	assert.Equal(t, "PENDING_VERIFICATION", created.Status)
	require.Len(t, created.ContactPersons, 2)
	assert.Equal(t, "Suresh Patil", created.ContactPersons[0].Name)
	require.Len(t, created.BankAccounts, 1)

	// one workflow row pending at level 1 with the accounts manager next
	wf := f.workflowRepo.byID[created.WorkflowEntityID]
	require.NotNil(t, wf)
	assert.Equal(t, "clients", wf.EntityType)
	require.NotNil(t, wf.NextRoleID)
	assert.Equal(t, workflow.RoleAccountsManager, *wf.NextRoleID)

	// creator signature at level 0
	require.Len(t, f.signatureRepo.entries, 1)
	assert.Equal(t, 0, f.signatureRepo.entries[0].LevelID)
}

func TestCreateClientNormalizesIdentifiers(t *testing.T) {
	f := newClientFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleAccountsOfficer)

	payload := validClientPayload()
	payload.PAN = " aaapl1234c "
	payload.GSTIN = "27aaapl1234c1z5"

	created, err := f.service.CreateClient(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, "AAAPL1234C", created.PAN)
	assert.Equal(t, "27AAAPL1234C1Z5", created.GSTIN)
}

func TestCreateClientPANRequiredUnlessIndividual(t *testing.T) {
	f := newClientFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleAccountsOfficer)

	payload := validClientPayload()
	payload.PAN = ""

	_, err := f.service.CreateClient(ctx, payload)
	require.Error(t, err)
	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)

	// an individual without PAN is acceptable
	payload.ClientType = "Individual"
	created, err := f.service.CreateClient(ctx, payload)
	require.NoError(t, err)
	assert.Empty(t, created.PAN)
}

func TestUpdateClientPatchesPendingRecord(t *testing.T) {
	f := newClientFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleAccountsOfficer)

	created, err := f.service.CreateClient(ctx, validClientPayload())
	require.NoError(t, err)

	updated, err := f.service.UpdateClient(ctx, created.ID, dto.UpdateClientDTO{
		Name:  null.StringFrom("Shree Constructions LLP"),
		GSTIN: null.StringFrom(" 27aaapl1234c1z5 "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Shree Constructions LLP", updated.Name)
	assert.Equal(t, "27AAAPL1234C1Z5", updated.GSTIN)
	// untouched fields survive the patch
	assert.Equal(t, "Pune", updated.City)

	// the queue summary follows the edit
	wf := f.workflowRepo.byID[created.WorkflowEntityID]
	require.NotNil(t, wf)
	assert.Contains(t, string(wf.Payload), "Shree Constructions LLP")
}

func TestUpdateClientRejectsEmptyPatch(t *testing.T) {
	f := newClientFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleAccountsOfficer)

	created, err := f.service.CreateClient(ctx, validClientPayload())
	require.NoError(t, err)

	_, err = f.service.UpdateClient(ctx, created.ID, dto.UpdateClientDTO{})
	require.Error(t, err)
	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
}

func TestUpdateClientLocksProcessedRecords(t *testing.T) {
	f := newClientFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleAccountsOfficer)

	created, err := f.service.CreateClient(ctx, validClientPayload())
	require.NoError(t, err)

	f.workflowRepo.byID[created.WorkflowEntityID].Status = workflow.StatusVerified

	_, err = f.service.UpdateClient(ctx, created.ID, dto.UpdateClientDTO{
		Name: null.StringFrom("Renamed"),
	})
	require.Error(t, err)
	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
}

func TestRemoveContactGuardsPrimary(t *testing.T) {
	f := newClientFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleAccountsOfficer)

	created, err := f.service.CreateClient(ctx, validClientPayload())
	require.NoError(t, err)

	err = f.service.RemoveContact(ctx, created.ID, 0)
	require.Error(t, err)
	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
	assert.Empty(t, f.clientRepo.deletedContacts)

	require.NoError(t, f.service.RemoveContact(ctx, created.ID, 1))
	assert.Equal(t, []int{1}, f.clientRepo.deletedContacts)
}

func TestRemoveBankAccountGuardsDefault(t *testing.T) {
	f := newClientFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleAccountsOfficer)

	created, err := f.service.CreateClient(ctx, validClientPayload())
	require.NoError(t, err)

	err = f.service.RemoveBankAccount(ctx, created.ID, 0)
	require.Error(t, err)
	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
	assert.Empty(t, f.clientRepo.deletedAccounts)
}

func TestRemoveContactMissingPosition(t *testing.T) {
	f := newClientFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleAccountsOfficer)

	created, err := f.service.CreateClient(ctx, validClientPayload())
	require.NoError(t, err)

	err = f.service.RemoveContact(ctx, created.ID, 5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRemoveContactUnknownClient(t *testing.T) {
	f := newClientFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleAccountsOfficer)

	err := f.service.RemoveContact(ctx, 999, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
