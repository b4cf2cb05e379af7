package routes

import (
	"backoffice-system/internal/controllers"
	"backoffice-system/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAuthRouter(
	api *echo.Group,
	authService services.AuthServiceInterface,
	logger *zap.Logger,
) {
	authCtrl := controllers.NewAuthController(authService, logger)

	auth := api.Group("/auth")

	auth.POST("/login", authCtrl.Login)
	auth.POST("/refresh", authCtrl.Refresh)
}
