package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"spa-system/internal/clients/legacy"
	"spa-system/internal/controllers"
	"spa-system/internal/repositories"
	"spa-system/internal/services"
	"spa-system/pkg/config"
	"spa-system/pkg/filestorage"
	"spa-system/pkg/middleware"
	"spa-system/pkg/service"
)

// InitRouter собирает весь граф зависимостей: репозитории, сервисы,
// контроллеры и маршруты под /api.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	logger *zap.Logger,
	jwtSvc service.JWTService,
	storage filestorage.FileStorageInterface,
	cfg *config.Config,
) {
	// Репозитории.
	apptRepo := repositories.NewAppointmentRepository(dbConn, logger)
	customerRepo := repositories.NewCustomerRepository(dbConn, logger)
	caseRepo := repositories.NewCaseRepository(dbConn, logger)
	photoRepo := repositories.NewPhotoRepository(dbConn, logger)
	financialRepo := repositories.NewFinancialRepository(dbConn, logger)
	activityRepo := repositories.NewActivityRepository(dbConn, logger)
	serviceRepo := repositories.NewServiceRepository(dbConn, logger)
	leadRepo := repositories.NewLeadRepository(dbConn, logger)
	userRepo := repositories.NewUserRepository(dbConn, logger)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)
	cacheRepo := repositories.NewCacheRepository(redisClient)

	// Сервисы.
	apptService := services.NewAppointmentService(apptRepo, leadRepo, customerRepo, serviceRepo, activityRepo, logger)
	customerService := services.NewCustomerService(customerRepo, caseRepo, apptRepo, financialRepo, logger)
	caseService := services.NewCaseService(caseRepo, customerRepo, financialRepo, activityRepo, logger)
	photoService := services.NewPhotoService(photoRepo, caseRepo, storage, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, apptRepo, activityRepo, serviceRepo, userRepo, logger)
	reportService := services.NewReportService(dashboardService, logger)
	leadService := services.NewLeadService(leadRepo, cacheRepo, cfg.Handoff.TTL, logger)
	authService := services.NewAuthService(userRepo, jwtSvc, logger)
	catalogService := services.NewCatalogService(serviceRepo, userRepo, logger)

	legacyClient := legacy.NewClient(cfg.Legacy.BaseURL, cfg.Legacy.Timeout)
	syncService := services.NewSyncService(legacyClient, apptRepo, logger)

	// Контроллеры.
	apptController := controllers.NewAppointmentController(apptService, logger)
	customerController := controllers.NewCustomerController(customerService, caseService, logger)
	photoController := controllers.NewPhotoController(photoService, logger)
	dashboardController := controllers.NewDashboardController(dashboardService, reportService, logger)
	leadController := controllers.NewLeadController(leadService, logger)
	authController := controllers.NewAuthController(authService, logger)
	catalogController := controllers.NewCatalogController(catalogService, logger)
	syncController := controllers.NewSyncController(syncService, logger)

	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	api := e.Group("/api")

	registerAuthRoutes(api, authController, authMW)

	secure := api.Group("", authMW.Auth)
	registerAppointmentRoutes(secure, apptController, authMW)
	registerCustomerRoutes(secure, customerController, photoController)
	registerLeadRoutes(secure, leadController)
	registerDashboardRoutes(secure, dashboardController, authMW)
	registerCatalogRoutes(secure, catalogController)
	registerSyncRoutes(secure, syncController, authMW)
}
