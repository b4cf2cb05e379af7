package controllers

import (
	"net/http"

	"backoffice-system/internal/services"
	"backoffice-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type RoleController struct {
	roleDirectory services.RoleDirectoryServiceInterface
	logger        *zap.Logger
}

func NewRoleController(roleDirectory services.RoleDirectoryServiceInterface, logger *zap.Logger) *RoleController {
	return &RoleController{roleDirectory: roleDirectory, logger: logger}
}

func (c *RoleController) GetRoles(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	roles, err := c.roleDirectory.GetRoles(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, roles, "Roles fetched", http.StatusOK)
}
