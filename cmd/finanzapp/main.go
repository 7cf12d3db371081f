package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/sgaviria/finanzapp/internal/adapters/sheets"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/core/services"
	"github.com/sgaviria/finanzapp/internal/handlers"
	"github.com/sgaviria/finanzapp/internal/middleware"
	"github.com/sgaviria/finanzapp/internal/platform/config"
)

// @title FinanzApp API
// @version 1.0
// @description Personal finance tracker: debts, expenses, categories and credit statement accrual.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Tenant registry lives in the master spreadsheet; per-tenant data in each
	// user's own spreadsheet, reached through the factory with their tokens.
	userRepo, err := sheets.NewUserRepositoryFromConfig(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to open tenant registry", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Tenant registry ready", slog.String("spreadsheet_id", cfg.MasterSpreadsheetID))
	tenantFactory := sheets.NewFactory(cfg)

	serviceContainer := services.NewServiceContainer(cfg, userRepo, tenantFactory)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimitSpec)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT_SPEC", slog.String("spec", cfg.RateLimitSpec), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	scheduler, err := startBatchScheduler(cfg, serviceContainer, logger)
	if err != nil {
		logger.Error("Failed to start batch scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// startBatchScheduler wires the nightly accrual run. Returns nil when the
// batch is disabled by configuration.
func startBatchScheduler(cfg *config.Config, container *portssvc.ServiceContainer, logger *slog.Logger) (*cron.Cron, error) {
	if !cfg.BatchEnabled {
		logger.Info("Batch accrual disabled by configuration")
		return nil, nil
	}

	loc, err := time.LoadLocation(cfg.BatchTimezone)
	if err != nil {
		return nil, err
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.BatchCronSpec, func() {
		ctx := middleware.ContextWithLogger(context.Background(), logger)
		now := time.Now().In(loc)
		summary := container.Batch.RunDailyAccrual(ctx, now)
		logger.Info("Nightly accrual run finished",
			slog.Int("users_total", summary.UsersTotal),
			slog.Int("users_skipped", summary.UsersSkipped),
			slog.Int("processed", summary.Processed),
			slog.Int("skipped", summary.Skipped),
			slog.Int("errored", summary.Errored),
		)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	logger.Info("Batch scheduler started",
		slog.String("cron", cfg.BatchCronSpec), slog.String("timezone", cfg.BatchTimezone))
	return c, nil
}
