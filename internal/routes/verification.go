package routes

import (
	"backoffice-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

// runVerificationRouter registers the generic workflow surface. The :entity
// segment selects the descriptor, so every registered entity type gets the
// same queue/verify/reject/signature routes from one controller.
//
// Entity types with their own static subtree (clients, subclients) are not
// reachable through :entity because echo prefers the static node and does not
// backtrack; their routers re-register these handlers with the slug bound.
func runVerificationRouter(
	secureGroup *echo.Group,
	verificationCtrl *controllers.VerificationController,
	importCtrl *controllers.ImportController,
) {
	secureGroup.GET("/:entity/verification", verificationCtrl.GetQueue)
	secureGroup.POST("/:entity", verificationCtrl.CreateEntity)
	secureGroup.PUT("/:entity/verify/:id", verificationCtrl.Verify)
	secureGroup.PUT("/:entity/reject/:id", verificationCtrl.Reject)
	secureGroup.PUT("/:entity/verify-batch/:batchId", verificationCtrl.VerifyBatch)
	secureGroup.PUT("/:entity/reject-batch/:batchId", verificationCtrl.RejectBatch)
	secureGroup.GET("/:entity/:id/signatures", verificationCtrl.GetSignatures)
	secureGroup.POST("/:entity/import", importCtrl.ImportSheet)
}

// bindEntity injects a fixed :entity param value for handlers mounted under a
// static subtree.
func bindEntity(slug string, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		names := c.ParamNames()
		values := c.ParamValues()[:len(names)]

		names = append(names, "entity")
		values = append(values, slug)
		c.SetParamNames(names...)
		c.SetParamValues(values...)
		return next(c)
	}
}
