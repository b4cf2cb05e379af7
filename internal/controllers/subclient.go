package controllers

import (
	"net/http"
	"strconv"

	"backoffice-system/internal/dto"
	"backoffice-system/internal/services"
	apperrors "backoffice-system/pkg/errors"
	"backoffice-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SubClientController struct {
	subClientService services.SubClientServiceInterface
	logger           *zap.Logger
}

func NewSubClientController(subClientService services.SubClientServiceInterface, logger *zap.Logger) *SubClientController {
	return &SubClientController{subClientService: subClientService, logger: logger}
}

func (c *SubClientController) CreateSubClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateSubClientDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.subClientService.CreateSubClient(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, created, "Sub-client submitted for verification", http.StatusCreated)
}

func (c *SubClientController) FindSubClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid id", err,
				map[string]interface{}{"param": ctx.Param("id")}),
			c.logger,
		)
	}

	subClient, err := c.subClientService.FindSubClient(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, subClient, "Sub-client fetched", http.StatusOK)
}

func (c *SubClientController) GetCostCentres(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	centres, err := c.subClientService.GetCostCentres(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, centres, "Cost centres fetched", http.StatusOK)
}
