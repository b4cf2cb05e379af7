package routes

import (
	"backoffice-system/internal/controllers"
	"backoffice-system/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runClientRouter(
	secureGroup *echo.Group,
	clientService services.ClientServiceInterface,
	verificationCtrl *controllers.VerificationController,
	logger *zap.Logger,
) {
	clientCtrl := controllers.NewClientController(clientService, logger)

	clients := secureGroup.Group("/clients")

	clients.GET("", clientCtrl.GetClients)
	clients.POST("", clientCtrl.CreateClient)
	clients.GET("/:id", clientCtrl.FindClient)
	clients.PUT("/:id", clientCtrl.UpdateClient)
	clients.DELETE("/:id/contacts/:position", clientCtrl.DeleteContact)
	clients.DELETE("/:id/bank-accounts/:position", clientCtrl.DeleteBankAccount)

	// The static subtree shadows the :entity routes, so the workflow surface
	// is re-registered here with the slug bound.
	clients.GET("/verification", bindEntity("clients", verificationCtrl.GetQueue))
	clients.PUT("/verify/:id", bindEntity("clients", verificationCtrl.Verify))
	clients.PUT("/reject/:id", bindEntity("clients", verificationCtrl.Reject))
	clients.GET("/:id/signatures", bindEntity("clients", verificationCtrl.GetSignatures))
}
