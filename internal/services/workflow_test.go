package services

import (
	"context"
	"encoding/json"
	"testing"

	"backoffice-system/internal/entities"
	"backoffice-system/internal/workflow"
	apperrors "backoffice-system/pkg/errors"
	"backoffice-system/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type workflowFixture struct {
	service       WorkflowServiceInterface
	workflowRepo  *fakeWorkflowRepo
	signatureRepo *fakeSignatureRepo
}

func newWorkflowFixture() *workflowFixture {
	workflowRepo := newFakeWorkflowRepo()
	signatureRepo := &fakeSignatureRepo{}
	directory := &fakeRoleDirectory{names: map[uint64]string{
		workflow.RoleAccountsManager:    "Accounts Manager",
		workflow.RoleProcurementManager: "Procurement Manager",
		workflow.RoleSiteOfficer:        "Site Officer",
	}}

	svc := NewWorkflowService(
		workflow.DefaultRegistry(),
		workflowRepo,
		signatureRepo,
		&fakeTxManager{},
		directory,
		zap.NewNop(),
	)
	return &workflowFixture{service: svc, workflowRepo: workflowRepo, signatureRepo: signatureRepo}
}

func pendingEntity(repo *fakeWorkflowRepo, entityType string, level int, nextRole uint64) *entities.WorkflowEntity {
	role := nextRole
	return repo.add(&entities.WorkflowEntity{
		EntityType:   entityType,
		Status:       workflow.StatusPending,
		CurrentLevel: level,
		NextRoleID:   &role,
		CreationType: workflow.CreationSingle,
		Payload:      json.RawMessage(`{"name":"test"}`),
		CreatedBy:    42,
	})
}

func TestCreateEntityAttachesInitiatorSignature(t *testing.T) {
	f := newWorkflowFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleSiteOfficer)

	id, err := f.service.CreateEntity(ctx, "groups", json.RawMessage(`{"name":"Sundry Debtors"}`), "new accounting group")
	require.NoError(t, err)

	created := f.workflowRepo.byID[id]
	require.NotNil(t, created)
	assert.Equal(t, workflow.StatusPending, created.Status)
	assert.Equal(t, 1, created.CurrentLevel)
	require.NotNil(t, created.NextRoleID)
	assert.Equal(t, workflow.RoleAccountsManager, *created.NextRoleID)

	require.Len(t, f.signatureRepo.entries, 1)
	sig := f.signatureRepo.entries[0]
	assert.Equal(t, id, sig.EntityID)
	assert.Equal(t, 0, sig.LevelID)
	assert.Equal(t, "R. Sharma", sig.UserName)
}

func TestCreateEntityUnknownType(t *testing.T) {
	f := newWorkflowFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleSiteOfficer)

	_, err := f.service.CreateEntity(ctx, "widgets", json.RawMessage(`{}`), "")
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)
}

func TestQueueContainsOnlyOwnRolePendingEntities(t *testing.T) {
	f := newWorkflowFixture()

	mine := pendingEntity(f.workflowRepo, "groups", 1, workflow.RoleAccountsManager)
	pendingEntity(f.workflowRepo, "groups", 1, workflow.RoleProcurementManager)
	verified := pendingEntity(f.workflowRepo, "groups", 1, workflow.RoleAccountsManager)
	verified.Status = workflow.StatusVerified

	ctx := authedCtx(7, "A. Mehta", workflow.RoleAccountsManager)
	items, total, err := f.service.GetVerificationQueue(ctx, "groups", types.Filter{})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, mine.ID, items[0].ID)
	assert.Equal(t, "PENDING_VERIFICATION", items[0].Status)
	assert.Equal(t, "Pending Verification", items[0].StatusLabel)
}

func TestVerifyRequiresRemarksBeforeAnyStorageAccess(t *testing.T) {
	f := newWorkflowFixture()
	entity := pendingEntity(f.workflowRepo, "groups", 1, workflow.RoleAccountsManager)
	ctx := authedCtx(7, "A. Mehta", workflow.RoleAccountsManager)

	for _, remarks := range []string{"", "   "} {
		_, err := f.service.Verify(ctx, "groups", entity.ID, remarks)
		require.Error(t, err)

		var invalidInput *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &invalidInput)
	}
	assert.Zero(t, f.workflowRepo.findCalls)
	assert.Zero(t, f.workflowRepo.transitionCalls)
}

func TestVerifySingleLevelEntity(t *testing.T) {
	f := newWorkflowFixture()
	entity := pendingEntity(f.workflowRepo, "groups", 1, workflow.RoleAccountsManager)
	ctx := authedCtx(7, "A. Mehta", workflow.RoleAccountsManager)

	result, err := f.service.Verify(ctx, "groups", entity.ID, "ledger entries match")
	require.NoError(t, err)

	assert.Equal(t, "VERIFIED", result.Status)
	assert.True(t, result.Terminal)
	assert.Equal(t, int64(1), result.Affected)
	assert.Equal(t, workflow.StatusVerified, f.workflowRepo.byID[entity.ID].Status)

	require.Len(t, f.signatureRepo.entries, 1)
	assert.Equal(t, 1, f.signatureRepo.entries[0].LevelID)
	assert.Equal(t, "ledger entries match", f.signatureRepo.entries[0].Remarks)
}

func TestVerifyIntermediateLevelAdvancesChain(t *testing.T) {
	f := newWorkflowFixture()
	entity := pendingEntity(f.workflowRepo, "ccbudgets", 1, workflow.RoleAccountsManager)
	ctx := authedCtx(7, "A. Mehta", workflow.RoleAccountsManager)

	result, err := f.service.Verify(ctx, "ccbudgets", entity.ID, "budget heads match")
	require.NoError(t, err)

	assert.Equal(t, "PENDING_VERIFICATION", result.Status)
	assert.False(t, result.Terminal)

	stored := f.workflowRepo.byID[entity.ID]
	assert.Equal(t, 2, stored.CurrentLevel)
	require.NotNil(t, stored.NextRoleID)
	assert.Equal(t, workflow.RoleProjectManager, *stored.NextRoleID)
}

func TestRejectIsTerminal(t *testing.T) {
	f := newWorkflowFixture()
	entity := pendingEntity(f.workflowRepo, "ccbudgets", 1, workflow.RoleAccountsManager)
	ctx := authedCtx(7, "A. Mehta", workflow.RoleAccountsManager)

	result, err := f.service.Reject(ctx, "ccbudgets", entity.ID, "rates look stale")
	require.NoError(t, err)

	assert.Equal(t, "REJECTED", result.Status)
	assert.True(t, result.Terminal)
	assert.Equal(t, workflow.StatusRejected, f.workflowRepo.byID[entity.ID].Status)
}

func TestVerifyWithWrongRoleIsForbidden(t *testing.T) {
	f := newWorkflowFixture()
	entity := pendingEntity(f.workflowRepo, "groups", 1, workflow.RoleAccountsManager)
	ctx := authedCtx(9, "S. Iyer", workflow.RoleTenderManager)

	_, err := f.service.Verify(ctx, "groups", entity.ID, "remarks")
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Code)
	assert.Zero(t, f.workflowRepo.transitionCalls)
}

func TestVerifyAlreadyProcessedClientPO(t *testing.T) {
	f := newWorkflowFixture()
	entity := pendingEntity(f.workflowRepo, "clientpos", 1, workflow.RoleProcurementManager)
	entity.Status = workflow.StatusVerified
	ctx := authedCtx(7, "A. Mehta", workflow.RoleProcurementManager)

	_, err := f.service.Verify(ctx, "clientpos", entity.ID, "approving po")
	require.Error(t, err)
	assert.True(t, apperrors.IsAlreadyProcessed(err))

	var ap *apperrors.AlreadyProcessedError
	require.ErrorAs(t, err, &ap)
	assert.Equal(t, "Client Purchase Order", ap.EntityType)
	assert.Equal(t, "Verified", ap.Status)
}

func TestVerifyAlreadyProcessedOtherEntityIsGenericConflict(t *testing.T) {
	f := newWorkflowFixture()
	entity := pendingEntity(f.workflowRepo, "groups", 1, workflow.RoleAccountsManager)
	entity.Status = workflow.StatusVerified
	ctx := authedCtx(7, "A. Mehta", workflow.RoleAccountsManager)

	_, err := f.service.Verify(ctx, "groups", entity.ID, "remarks")
	require.Error(t, err)
	assert.False(t, apperrors.IsAlreadyProcessed(err))

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
}

func TestVerifyLostRaceReportsConflict(t *testing.T) {
	f := newWorkflowFixture()
	entity := pendingEntity(f.workflowRepo, "clientpos", 1, workflow.RoleProcurementManager)
	f.workflowRepo.forceStale = true
	ctx := authedCtx(7, "A. Mehta", workflow.RoleProcurementManager)

	_, err := f.service.Verify(ctx, "clientpos", entity.ID, "approving po")
	require.Error(t, err)
	assert.True(t, apperrors.IsAlreadyProcessed(err))
	// the losing session must not leave a signature behind
	assert.Empty(t, f.signatureRepo.entries)
}

func TestBatchVerifyMovesEveryMember(t *testing.T) {
	f := newWorkflowFixture()
	batchID := "3c6e9a52-8a10-4a7e-9f37-0d5b1a2c4e6f"
	for i := 0; i < 3; i++ {
		e := pendingEntity(f.workflowRepo, "units", 1, workflow.RoleProcurementManager)
		e.CreationType = workflow.CreationBulk
		e.BatchID = &batchID
	}
	ctx := authedCtx(7, "A. Mehta", workflow.RoleProcurementManager)

	result, err := f.service.VerifyBatch(ctx, "units", batchID, "all units valid")
	require.NoError(t, err)

	assert.Equal(t, batchID, result.BatchID)
	assert.Equal(t, "VERIFIED", result.Status)
	assert.Equal(t, int64(3), result.Affected)

	for _, e := range f.workflowRepo.byID {
		assert.Equal(t, workflow.StatusVerified, e.Status)
	}
	// one signature per member
	assert.Len(t, f.signatureRepo.entries, 3)
}

func TestBatchActionRejectedForNonBulkEntity(t *testing.T) {
	f := newWorkflowFixture()
	ctx := authedCtx(7, "A. Mehta", workflow.RoleAccountsManager)

	_, err := f.service.VerifyBatch(ctx, "groups", "some-batch", "remarks")
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestBatchVerifyUnknownBatch(t *testing.T) {
	f := newWorkflowFixture()
	ctx := authedCtx(7, "A. Mehta", workflow.RoleProcurementManager)

	_, err := f.service.VerifyBatch(ctx, "units", "missing-batch", "remarks")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSignatureTimelineLabelsAndRoleNames(t *testing.T) {
	f := newWorkflowFixture()
	entity := pendingEntity(f.workflowRepo, "groups", 1, workflow.RoleAccountsManager)

	f.signatureRepo.entries = []entities.SignatureEntry{
		{EntityID: entity.ID, UserName: "R. Sharma", RoleID: workflow.RoleSiteOfficer, LevelID: 0},
		{EntityID: entity.ID, UserName: "A. Mehta", RoleID: workflow.RoleAccountsManager, LevelID: 1, Remarks: "checked"},
	}

	ctx := authedCtx(7, "A. Mehta", workflow.RoleAccountsManager)
	timeline, err := f.service.GetSignatureTimeline(ctx, "groups", entity.ID)
	require.NoError(t, err)

	require.Len(t, timeline, 2)
	assert.Equal(t, "Initiated", timeline[0].Label)
	assert.Equal(t, "Site Officer", timeline[0].RoleName)
	assert.Equal(t, "Verified", timeline[1].Label)
	assert.Equal(t, "Accounts Manager", timeline[1].RoleName)
	assert.Equal(t, "checked", timeline[1].Remarks)
}

func TestSignatureTimelineSurvivesDirectoryOutage(t *testing.T) {
	workflowRepo := newFakeWorkflowRepo()
	signatureRepo := &fakeSignatureRepo{}
	svc := NewWorkflowService(
		workflow.DefaultRegistry(),
		workflowRepo,
		signatureRepo,
		&fakeTxManager{},
		&fakeRoleDirectory{err: context.DeadlineExceeded},
		zap.NewNop(),
	)

	entity := pendingEntity(workflowRepo, "groups", 1, workflow.RoleAccountsManager)
	signatureRepo.entries = []entities.SignatureEntry{
		{EntityID: entity.ID, UserName: "R. Sharma", RoleID: workflow.RoleSiteOfficer, LevelID: 0},
	}

	ctx := authedCtx(7, "A. Mehta", workflow.RoleAccountsManager)
	timeline, err := svc.GetSignatureTimeline(ctx, "groups", entity.ID)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Empty(t, timeline[0].RoleName)
}

func TestSignatureTimelineUnknownEntity(t *testing.T) {
	f := newWorkflowFixture()
	ctx := authedCtx(7, "A. Mehta", workflow.RoleAccountsManager)

	_, err := f.service.GetSignatureTimeline(ctx, "groups", 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
