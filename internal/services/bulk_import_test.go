package services

import (
	"bytes"
	"encoding/json"
	"testing"

	"backoffice-system/internal/workflow"
	apperrors "backoffice-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func newImportFixture() (BulkImportServiceInterface, *fakeWorkflowRepo, *fakeSignatureRepo) {
	workflowRepo := newFakeWorkflowRepo()
	signatureRepo := &fakeSignatureRepo{}
	svc := NewBulkImportService(
		workflow.DefaultRegistry(),
		workflowRepo,
		signatureRepo,
		&fakeTxManager{},
		zap.NewNop(),
	)
	return svc, workflowRepo, signatureRepo
}

func TestImportSheetCreatesSharedBatch(t *testing.T) {
	svc, workflowRepo, signatureRepo := newImportFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleProcurementOfficer)

	buf := buildWorkbook(t, [][]interface{}{
		{"Unit Code", "Description"},
		{"MTR", "Metre"},
		{"KG", "Kilogram"},
		{"", "orphan row without a code"},
		{"NOS", "Numbers"},
	})

	result, err := svc.ImportSheet(ctx, "units", buf)
	require.NoError(t, err)

	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	assert.Len(t, workflowRepo.byID, 3)
	for _, e := range workflowRepo.byID {
		assert.Equal(t, workflow.CreationBulk, e.CreationType)
		require.NotNil(t, e.BatchID)
		assert.Equal(t, result.BatchID, *e.BatchID)
		assert.Equal(t, workflow.StatusPending, e.Status)
		require.NotNil(t, e.NextRoleID)
		assert.Equal(t, workflow.RoleProcurementManager, *e.NextRoleID)
	}
	// a level-0 signature per created row
	assert.Len(t, signatureRepo.entries, 3)
}

func TestImportSheetHeaderBecomesPayloadFields(t *testing.T) {
	svc, workflowRepo, _ := newImportFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleProcurementOfficer)

	buf := buildWorkbook(t, [][]interface{}{
		{"Base Code", "Material Name"},
		{"ST-01", "TMT Steel 12mm"},
	})

	_, err := svc.ImportSheet(ctx, "basecodes", buf)
	require.NoError(t, err)

	require.Len(t, workflowRepo.byID, 1)
	for _, e := range workflowRepo.byID {
		var payload map[string]string
		require.NoError(t, json.Unmarshal(e.Payload, &payload))
		assert.Equal(t, "ST-01", payload["base_code"])
		assert.Equal(t, "TMT Steel 12mm", payload["material_name"])
	}
}

func TestImportSheetRejectsNonBulkEntity(t *testing.T) {
	svc, _, _ := newImportFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleAccountsOfficer)

	buf := buildWorkbook(t, [][]interface{}{
		{"Name"},
		{"Sundry Debtors"},
	})

	_, err := svc.ImportSheet(ctx, "groups", buf)
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestImportSheetRejectsHeaderOnlyWorkbook(t *testing.T) {
	svc, _, _ := newImportFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleProcurementOfficer)

	buf := buildWorkbook(t, [][]interface{}{{"Unit Code"}})

	_, err := svc.ImportSheet(ctx, "units", buf)
	require.Error(t, err)

	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
}

func TestImportSheetRejectsGarbageFile(t *testing.T) {
	svc, _, _ := newImportFixture()
	ctx := authedCtx(42, "R. Sharma", workflow.RoleProcurementOfficer)

	_, err := svc.ImportSheet(ctx, "units", bytes.NewBufferString("definitely not a workbook"))
	require.Error(t, err)

	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
}

func TestImportedBatchVerifiesAtomically(t *testing.T) {
	workflowRepo := newFakeWorkflowRepo()
	signatureRepo := &fakeSignatureRepo{}
	importSvc := NewBulkImportService(workflow.DefaultRegistry(), workflowRepo, signatureRepo, &fakeTxManager{}, zap.NewNop())
	workflowSvc := NewWorkflowService(workflow.DefaultRegistry(), workflowRepo, signatureRepo, &fakeTxManager{}, &fakeRoleDirectory{names: map[uint64]string{}}, zap.NewNop())

	importCtx := authedCtx(42, "R. Sharma", workflow.RoleProcurementOfficer)
	sheet := buildWorkbook(t, [][]interface{}{
		{"Unit Code"},
		{"MTR"},
		{"KG"},
	})
	result, err := importSvc.ImportSheet(importCtx, "units", sheet)
	require.NoError(t, err)

	verifyCtx := authedCtx(7, "A. Mehta", workflow.RoleProcurementManager)
	outcome, err := workflowSvc.VerifyBatch(verifyCtx, "units", result.BatchID, "all units valid")
	require.NoError(t, err)
	assert.Equal(t, int64(2), outcome.Affected)
	assert.Equal(t, "VERIFIED", outcome.Status)
}
