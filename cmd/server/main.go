package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	analysisapp "github.com/salesdesk/backend/internal/application/analysis"
	catalogapp "github.com/salesdesk/backend/internal/application/catalog"
	chatapp "github.com/salesdesk/backend/internal/application/chat"
	identityapp "github.com/salesdesk/backend/internal/application/identity"
	tradeapp "github.com/salesdesk/backend/internal/application/trade"
	"github.com/salesdesk/backend/internal/domain/identity"
	"github.com/salesdesk/backend/internal/infrastructure/auth"
	"github.com/salesdesk/backend/internal/infrastructure/config"
	"github.com/salesdesk/backend/internal/infrastructure/logger"
	"github.com/salesdesk/backend/internal/infrastructure/oracle"
	"github.com/salesdesk/backend/internal/infrastructure/persistence"
	"github.com/salesdesk/backend/internal/interfaces/http/handler"
	"github.com/salesdesk/backend/internal/interfaces/http/middleware"
	"github.com/salesdesk/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting salesdesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database ready", zap.String("path", cfg.Database.Path))

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockRepo := persistence.NewGormStockItemRepository(db.DB)
	orderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Transaction scopes
	catalogScope := persistence.NewGormCatalogTransactionScope(db.DB)
	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)

	// Analysis oracle. Runs disabled when no API key is configured.
	geminiClient := oracle.NewGeminiClient(cfg.Oracle, log)
	if geminiClient.Enabled() {
		log.Info("Analysis oracle enabled", zap.String("model", cfg.Oracle.Model))
	} else {
		log.Info("Analysis oracle disabled, reports will carry metrics only")
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo, stockRepo, catalogScope)
	orderService := tradeapp.NewOrderService(orderRepo, tradeScope)
	reportService := analysisapp.NewReportService(productRepo, stockRepo, orderRepo, geminiClient)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	dispatcher := chatapp.NewDispatcher(chatapp.NewClassifier(), productService, orderService, reportService)
	sessionStore := chatapp.NewSessionStore()

	if err := seedAdminUser(context.Background(), userRepo, log); err != nil {
		log.Fatal("Failed to seed admin user", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinRecovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(cfg.HTTP))

	r := router.NewRouter(engine, "v1")
	r.Register(handler.NewChatHandler(dispatcher, sessionStore)).
		Register(handler.NewInventoryHandler(productService)).
		Register(handler.NewSalesOrderHandler(orderService)).
		Register(handler.NewAnalyticsHandler(reportService)).
		Register(handler.NewAuthHandler(authService, jwtService)).
		Register(handler.NewSystemHandler(db))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// seedAdminUser creates the default operator account on first boot so a
// fresh install can log in. The password must be changed after first use.
func seedAdminUser(ctx context.Context, userRepo identity.UserRepository, log *zap.Logger) error {
	count, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin, err := identity.NewUser("admin", "admin@localhost", "Administrator", "admin123!")
	if err != nil {
		return err
	}
	if err := userRepo.Save(ctx, admin); err != nil {
		return err
	}
	log.Warn("Seeded default admin account, change its password",
		zap.String("username", "admin"),
	)
	return nil
}
