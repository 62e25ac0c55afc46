package app

import (
	"database/sql"
	"path/filepath"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/employeerate"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/generation"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/ledger"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/location"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/messaging/kafka"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/middleware"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/occurrence"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/payrollrun"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/rbac"
	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Global middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	// --- Repositories ---
	locationRepo := location.NewRepository(gormDB)
	occurrenceRepo := occurrence.NewRepository(gormDB)
	rateRepo := employeerate.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	locationService := location.NewService(db, locationRepo)
	occurrenceService := occurrence.NewService(db, occurrenceRepo)
	rateService := employeerate.NewService(db, rateRepo)
	ledgerService := ledger.NewService(db, ledgerRepo)
	payrollRunService := payrollrun.NewService(db, occurrenceRepo, rateRepo, ledgerRepo, outboxRepo)
	generationService := generation.NewService(db, locationRepo, occurrenceRepo, outboxRepo)

	// --- Handlers ---
	locationHandler := location.NewHandler(locationService)
	occurrenceHandler := occurrence.NewHandler(occurrenceService)
	rateHandler := employeerate.NewHandler(rateService)
	ledgerHandler := ledger.NewHandlerWithRedis(ledgerService, rdb)
	payrollRunHandler := payrollrun.NewHandlerWithRedis(payrollRunService, rdb)
	generationHandler := generation.NewHandler(generationService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		location.RegisterRoutes(api, locationHandler, rbacService)
		occurrence.RegisterRoutes(api, occurrenceHandler, rbacService)
		employeerate.RegisterRoutes(api, rateHandler, rbacService)
		ledger.RegisterRoutes(api, ledgerHandler, rbacService, rdb)
		payrollrun.RegisterRoutes(api, payrollRunHandler, rbacService, rdb)
		generation.RegisterRoutes(api, generationHandler, rbacService)
	}

	return nil
}
