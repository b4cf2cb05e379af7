package routes

import (
	"backoffice-system/internal/controllers"
	"backoffice-system/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runRoleRouter(
	secureGroup *echo.Group,
	roleDirectory services.RoleDirectoryServiceInterface,
	logger *zap.Logger,
) {
	roleCtrl := controllers.NewRoleController(roleDirectory, logger)

	secureGroup.GET("/roles", roleCtrl.GetRoles)
}
