package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice-system/internal/controllers"
	"backoffice-system/internal/repositories"
	"backoffice-system/internal/services"
	"backoffice-system/internal/workflow"
	"backoffice-system/pkg/config"
	"backoffice-system/pkg/middleware"
	"backoffice-system/pkg/service"
)

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	registry := workflow.DefaultRegistry()
	txManager := repositories.NewTxManager(dbConn)

	// repositories
	userRepo := repositories.NewUserRepository(dbConn, logger)
	roleRepo := repositories.NewRoleRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	workflowRepo := repositories.NewWorkflowRepository(dbConn)
	signatureRepo := repositories.NewSignatureRepository(dbConn)
	clientRepo := repositories.NewClientRepository(dbConn)
	subClientRepo := repositories.NewSubClientRepository(dbConn)
	costCentreRepo := repositories.NewCostCentreRepository(dbConn)

	// services
	roleDirectory := services.NewRoleDirectoryService(roleRepo, cacheRepo, logger, cfg.Cache.RoleDirectoryTTL)
	authService := services.NewAuthService(userRepo, roleDirectory, jwtSvc, logger)
	workflowService := services.NewWorkflowService(registry, workflowRepo, signatureRepo, txManager, roleDirectory, logger)
	clientService := services.NewClientService(registry, clientRepo, workflowRepo, signatureRepo, txManager, logger)
	subClientService := services.NewSubClientService(registry, subClientRepo, clientRepo, costCentreRepo, workflowRepo, signatureRepo, txManager, logger)
	importService := services.NewBulkImportService(registry, workflowRepo, signatureRepo, txManager, logger)

	// shared controllers: the verification controller serves both the generic
	// :entity routes and the static client/subclient subtrees
	verificationCtrl := controllers.NewVerificationController(workflowService, logger)
	importCtrl := controllers.NewImportController(importService, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authService, logger)
	runRoleRouter(secureGroup, roleDirectory, logger)
	runClientRouter(secureGroup, clientService, verificationCtrl, logger)
	runSubClientRouter(secureGroup, subClientService, verificationCtrl, logger)
	runVerificationRouter(secureGroup, verificationCtrl, importCtrl)

	logger.Info("routes registered")
}
