package controllers

import (
	"context"
	"net/http"
	"strconv"

	"backoffice-system/internal/dto"
	"backoffice-system/internal/services"
	apperrors "backoffice-system/pkg/errors"
	"backoffice-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// VerificationController serves the verify/reject surface shared by every
// entity type. The :entity route parameter selects the workflow descriptor.
type VerificationController struct {
	workflowService services.WorkflowServiceInterface
	logger          *zap.Logger
}

func NewVerificationController(workflowService services.WorkflowServiceInterface, logger *zap.Logger) *VerificationController {
	return &VerificationController{workflowService: workflowService, logger: logger}
}

func (c *VerificationController) GetQueue(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	slug := ctx.Param("entity")

	// Legacy clients still send userRoleId; the queue is always scoped by the
	// authenticated role, so a mismatching hint is rejected instead of obeyed.
	if roleParam := ctx.QueryParam("userRoleId"); roleParam != "" {
		requested, err := strconv.ParseUint(roleParam, 10, 64)
		if err != nil {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusBadRequest, "invalid userRoleId", err,
					map[string]interface{}{"param": roleParam}),
				c.logger,
			)
		}
		actual, err := utils.GetUserRoleIDFromCtx(reqCtx)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		if requested != actual {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusForbidden, "userRoleId does not match the authenticated role", nil,
					map[string]interface{}{"requested": requested, "actual": actual}),
				c.logger,
			)
		}
	}

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	items, total, err := c.workflowService.GetVerificationQueue(reqCtx, slug, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, items, "Verification queue fetched", http.StatusOK, total)
}

func (c *VerificationController) CreateEntity(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	slug := ctx.Param("entity")

	var payload dto.CreateEntityDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	id, err := c.workflowService.CreateEntity(reqCtx, slug, payload.Payload, payload.Remarks)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, map[string]interface{}{"id": id}, "Record submitted for verification", http.StatusCreated)
}

func (c *VerificationController) Verify(ctx echo.Context) error {
	return c.act(ctx, c.workflowService.Verify, "Record verified")
}

func (c *VerificationController) Reject(ctx echo.Context) error {
	return c.act(ctx, c.workflowService.Reject, "Record rejected")
}

func (c *VerificationController) act(
	ctx echo.Context,
	action func(reqCtx context.Context, slug string, id uint64, remarks string) (*dto.TransitionResultDTO, error),
	message string,
) error {
	reqCtx := ctx.Request().Context()
	slug := ctx.Param("entity")

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid id", err,
				map[string]interface{}{"param": ctx.Param("id")}),
			c.logger,
		)
	}

	var payload dto.VerificationActionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := action(reqCtx, slug, id, payload.Remarks)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, result, message, http.StatusOK)
}

func (c *VerificationController) VerifyBatch(ctx echo.Context) error {
	return c.actBatch(ctx, c.workflowService.VerifyBatch, "Batch verified")
}

func (c *VerificationController) RejectBatch(ctx echo.Context) error {
	return c.actBatch(ctx, c.workflowService.RejectBatch, "Batch rejected")
}

func (c *VerificationController) actBatch(
	ctx echo.Context,
	action func(reqCtx context.Context, slug string, batchID string, remarks string) (*dto.TransitionResultDTO, error),
	message string,
) error {
	reqCtx := ctx.Request().Context()
	slug := ctx.Param("entity")
	batchID := ctx.Param("batchId")

	var payload dto.VerificationActionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := action(reqCtx, slug, batchID, payload.Remarks)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, result, message, http.StatusOK)
}

func (c *VerificationController) GetSignatures(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	slug := ctx.Param("entity")

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid id", err,
				map[string]interface{}{"param": ctx.Param("id")}),
			c.logger,
		)
	}

	timeline, err := c.workflowService.GetSignatureTimeline(reqCtx, slug, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, timeline, "Signature timeline fetched", http.StatusOK)
}
