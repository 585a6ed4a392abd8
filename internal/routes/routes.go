package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"restaurant-system/internal/controllers"
	"restaurant-system/internal/repositories"
	"restaurant-system/internal/services"
	"restaurant-system/pkg/config"
	"restaurant-system/pkg/filestorage"
	"restaurant-system/pkg/jobqueue"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, queue *jobqueue.Queue, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Import.TempDir)
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}

	// --- 1. РЕПОЗИТОРИИ ---
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	restaurantRepo := repositories.NewRestaurantRepository(dbConn)
	menuRepo := repositories.NewMenuRepository(dbConn)
	menuItemRepo := repositories.NewMenuItemRepository(dbConn)
	placementRepo := repositories.NewPlacementRepository(dbConn)
	statsRepo := repositories.NewStatsRepository(dbConn, logger)

	// --- 2. СЕРВИСЫ ---
	restaurantService := services.NewRestaurantService(restaurantRepo, logger)
	menuService := services.NewMenuService(menuRepo, logger)
	menuItemService := services.NewMenuItemService(menuItemRepo, logger)
	statsService := services.NewStatsService(statsRepo, cacheRepo, logger, cfg.Import.StatsCacheTTL)

	resolver := services.NewImportInputResolver(cfg.Import.MaxPayloadSize, logger)
	cleanupService := services.NewImportCleanupService(fileStorage, cfg.Import.TempDir, logger)
	importService := services.NewRestaurantImportService(
		dbConn, restaurantRepo, menuRepo, menuItemRepo, placementRepo, logger, cfg.Import.BatchSize,
	)
	jobService := services.NewImportJobService(
		importService, resolver, cleanupService, cacheRepo, logger, cfg.Import.ResultTTL,
	)
	statusService := services.NewImportStatusService(queue, cacheRepo, logger)

	queue.RegisterHandler(services.ImportJobType, jobService.Handle)

	// --- 3. КОНТРОЛЛЕРЫ ---
	importController := controllers.NewImportController(
		queue, resolver, statusService, fileStorage, logger, cfg.Import.MaxPayloadSize,
	)
	restaurantController := controllers.NewRestaurantController(restaurantService, logger)
	menuController := controllers.NewMenuController(menuService, logger)
	menuItemController := controllers.NewMenuItemController(menuItemService, logger)
	statsController := controllers.NewStatsController(statsService, logger)
	healthController := controllers.NewHealthController(dbConn, redisClient, logger)

	// --- 4. РОУТЕРЫ ---
	runImportRouter(api, importController)
	runRestaurantRouter(api, restaurantController)
	runMenuRouter(api, menuController)
	runMenuItemRouter(api, menuItemController)
	runStatsRouter(api, statsController)
	api.GET("/health", healthController.Check)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
