package routes

import (
	"backoffice-system/internal/controllers"
	"backoffice-system/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runSubClientRouter(
	secureGroup *echo.Group,
	subClientService services.SubClientServiceInterface,
	verificationCtrl *controllers.VerificationController,
	logger *zap.Logger,
) {
	subClientCtrl := controllers.NewSubClientController(subClientService, logger)

	subClients := secureGroup.Group("/subclients")

	subClients.POST("", subClientCtrl.CreateSubClient)
	subClients.GET("/:id", subClientCtrl.FindSubClient)

	subClients.GET("/verification", bindEntity("subclients", verificationCtrl.GetQueue))
	subClients.PUT("/verify/:id", bindEntity("subclients", verificationCtrl.Verify))
	subClients.PUT("/reject/:id", bindEntity("subclients", verificationCtrl.Reject))
	subClients.GET("/:id/signatures", bindEntity("subclients", verificationCtrl.GetSignatures))

	secureGroup.GET("/cost-centres", subClientCtrl.GetCostCentres)
}
