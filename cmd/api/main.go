package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-floor-inventory/internal/cache"
	"go-floor-inventory/internal/config"
	"go-floor-inventory/internal/handler"
	"go-floor-inventory/internal/middleware"
	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/repository"
	"go-floor-inventory/internal/service"
	"go-floor-inventory/internal/ws"
	"go-floor-inventory/pkg/database"
	"go-floor-inventory/pkg/jwt"
	"go-floor-inventory/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	loc := cfg.App.Location()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.Database, loc.String())
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.Product{}, &model.StockRequest{}, &model.OverflowEvent{}, &model.User{}, &model.QRCode{}); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// 3. Catalog cache (disabled without REDIS_ADDR)
	catalogCache := cache.NewNoopCatalogCache()
	if rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); rdb != nil {
		defer rdb.Close()
		catalogCache = cache.NewRedisCatalogCache(rdb, cfg.Redis.TTL, zapLogger)
		zapLogger.Info("Catalog cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(zapLogger)
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	requestRepo := repository.NewStockRequestRepo(db)
	overflowRepo := repository.NewOverflowRepo(db)
	qrRepo := repository.NewQRCodeRepo(db)
	userRepo := repository.NewUserRepo(db)

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.ExpireHours)*time.Hour)
	actors := service.NewSessionActorResolver()

	catalogService := service.NewCatalogService(productRepo, catalogCache)
	requestService := service.NewStockRequestService(requestRepo, catalogService, wsHub, time.Now, zapLogger)
	overflowService := service.NewOverflowService(overflowRepo, catalogService, wsHub, time.Now, zapLogger)
	statsService := service.NewOverflowStatsService(overflowRepo, loc)
	qrService := service.NewQRCodeService(qrRepo)
	authService := service.NewAuthService(userRepo, tokens, zapLogger)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	requestHandler := handler.NewStockRequestHandler(requestService, actors)
	overflowHandler := handler.NewOverflowHandler(overflowService, statsService, actors, loc)
	qrHandler := handler.NewQRCodeHandler(qrService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.Server.AppName,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(zapLogger))
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(authService))

	// Catalog
	protected.Get("/products", productHandler.Search)
	protected.Get("/products/:productNumber", productHandler.Lookup)

	// Stock requests
	protected.Get("/stock-requests", requestHandler.ListActive)
	protected.Post("/stock-requests", middleware.RequirePrivilege(model.PrivStockRequestCreate), requestHandler.Create)
	protected.Put("/stock-requests/:id/answer", middleware.RequirePrivilege(model.PrivStockRequestAnswer), requestHandler.Answer)
	protected.Delete("/stock-requests/:id", middleware.RequirePrivilege(model.PrivStockRequestDelete), requestHandler.Delete)

	// Overflows
	protected.Get("/overflows", overflowHandler.ListActive)
	protected.Post("/overflows", middleware.RequirePrivilege(model.PrivOverflowCreate), overflowHandler.Record)
	protected.Delete("/overflows", middleware.RequirePrivilege(model.PrivOverflowDelete), overflowHandler.Delete)
	protected.Get("/overflows/stats", middleware.RequirePrivilege(model.PrivOverflowStats), overflowHandler.Stats)
	protected.Get("/overflows/:productNumber/history", middleware.RequirePrivilege(model.PrivOverflowStats), overflowHandler.History)

	// QR scan log
	protected.Get("/qr-codes", qrHandler.List)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zapLogger.Panic("Server stopped", zap.Error(err))
		}
	}()
	zapLogger.Info("Server started", zap.String("port", cfg.Server.Port), zap.String("timezone", loc.String()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}
