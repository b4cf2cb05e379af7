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

type ClientController struct {
	clientService services.ClientServiceInterface
	logger        *zap.Logger
}

func NewClientController(clientService services.ClientServiceInterface, logger *zap.Logger) *ClientController {
	return &ClientController{clientService: clientService, logger: logger}
}

func (c *ClientController) CreateClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateClientDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.clientService.CreateClient(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, created, "Client submitted for verification", http.StatusCreated)
}

// GetClients lists verified clients only: the master directory never shows
// records still moving through the chain.
func (c *ClientController) GetClients(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	clients, total, err := c.clientService.GetActiveClients(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, clients, "Clients fetched", http.StatusOK, total)
}

func (c *ClientController) FindClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid id", err,
				map[string]interface{}{"param": ctx.Param("id")}),
			c.logger,
		)
	}

	client, err := c.clientService.FindClient(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, client, "Client fetched", http.StatusOK)
}

func (c *ClientController) UpdateClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid id", err,
				map[string]interface{}{"param": ctx.Param("id")}),
			c.logger,
		)
	}

	var payload dto.UpdateClientDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger,
		)
	}

	updated, err := c.clientService.UpdateClient(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, updated, "Client updated", http.StatusOK)
}

func (c *ClientController) DeleteContact(ctx echo.Context) error {
	return c.deleteChild(ctx, c.clientService.RemoveContact, "Contact removed")
}

func (c *ClientController) DeleteBankAccount(ctx echo.Context) error {
	return c.deleteChild(ctx, c.clientService.RemoveBankAccount, "Bank account removed")
}

func (c *ClientController) deleteChild(ctx echo.Context, remove func(reqCtx context.Context, clientID uint64, position int) error, message string) error {
	reqCtx := ctx.Request().Context()

	clientID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid id", err,
				map[string]interface{}{"param": ctx.Param("id")}),
			c.logger,
		)
	}
	position, err := strconv.Atoi(ctx.Param("position"))
	if err != nil || position < 0 {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid position", err,
				map[string]interface{}{"param": ctx.Param("position")}),
			c.logger,
		)
	}

	if err := remove(reqCtx, clientID, position); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, struct{}{}, message, http.StatusOK)
}
