package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tienda-admin/app/controller"
	"tienda-admin/app/router"
	"tienda-admin/config"
	"tienda-admin/db"
	"tienda-admin/pricing"
	"tienda-admin/repository"
	"tienda-admin/service"
)

// App holds the HTTP handler and the connections it owns
type App struct {
	Handler http.Handler
	redis   *redis.Client
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database connection
	if err := db.InitDB(ctx, cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.EnsureSchema(ctx, db.DB); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	a := &App{}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.DB)
	variantRepo := repository.NewVariantRepository(db.DB)
	orderRepo := repository.NewOrderRepository(db.DB)
	reportRepo := repository.NewReportRepository(db.DB)

	var draftRepo repository.DraftRepositoryInterface
	if cfg.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		redisDrafts, err := repository.NewRedisDraftRepository(ctx, a.redis, cfg.DraftTTL)
		if err != nil {
			a.redis.Close()
			return nil, err
		}
		draftRepo = redisDrafts
		zap.L().Info("✓ Draft store: redis", zap.String("addr", cfg.RedisAddr))
	} else {
		draftRepo = repository.NewMemoryDraftRepository(cfg.DraftTTL)
		zap.L().Warn("⚠️ REDIS_ADDR not set, drafts are kept in memory")
	}

	// Discount rules are optional; auto-discount answers 503 without them
	var discounts service.DiscountEvaluator
	engine, err := pricing.NewEngine(cfg.PricingConfigPath)
	if err != nil {
		zap.L().Warn("⚠️ Pricing rules not loaded", zap.String("path", cfg.PricingConfigPath), zap.Error(err))
	} else {
		discounts = engine
		zap.L().Info("✓ Pricing rules loaded", zap.Int("rules", len(engine.Rules())))
	}

	// Google Drive is only needed for product images
	var drive service.DriveServiceInterface
	if cfg.HasDriveCredentials() {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath, cfg.GoogleCredentialsJSON)
		if err != nil {
			zap.L().Warn("⚠️ Drive service unavailable", zap.Error(err))
		} else {
			drive = driveService
		}
	} else {
		zap.L().Warn("⚠️ Google credentials not set, product images disabled")
	}

	// Initialize services
	variantService := service.NewVariantService(productRepo, variantRepo)
	draftService := service.NewOrderDraftService(draftRepo, productRepo, orderRepo, discounts)
	imageService := service.NewProductImageService(productRepo, drive, service.NewImageCache(cfg.ImageCacheDir))
	receiptService := service.NewReceiptService(orderRepo, cfg.BaseURL, cfg.ChromePath)

	// Create controllers
	controllers := &router.Controllers{
		Product:    controller.NewProductController(productRepo, imageService),
		Variant:    controller.NewVariantController(variantService),
		OrderDraft: controller.NewOrderDraftController(draftService),
		Order:      controller.NewOrderController(orderRepo, receiptService),
		Report:     controller.NewReportController(reportRepo),
	}

	a.Handler = router.SetupRoutes(controllers)
	return a, nil
}

// Close releases the redis client and the database connection
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			zap.L().Warn("⚠️ Failed to close redis client", zap.Error(err))
		}
	}
	if err := db.CloseDB(); err != nil {
		zap.L().Warn("⚠️ Failed to close database", zap.Error(err))
	}
}
