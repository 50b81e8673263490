// Package api assembles the HTTP surface: routes, middleware, and the
// central error handler.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/supplyline/scm-console/internal/api/handler"
	"github.com/supplyline/scm-console/internal/api/middleware"
	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
	"github.com/supplyline/scm-console/internal/core/service"
	"github.com/supplyline/scm-console/internal/infrastructure/config"
	mongodb "github.com/supplyline/scm-console/internal/infrastructure/db/mongo"
	redisdb "github.com/supplyline/scm-console/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("scm_console"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	inventoryRepo := mongodb.NewInventoryRepository(db)
	supplierRepo := mongodb.NewSupplierRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	// New accounts start at the bottom of the hierarchy; promotion happens
	// through an explicit role in the register payload, not the policy.
	registerPolicy := ports.RolePolicyFunc(func(string) domain.Role { return domain.RoleUser })

	authService := service.NewAuthService(userRepo, registerPolicy, cfg.JWTSecret, cfg.TokenTTL)
	inventoryService := service.NewInventoryService(inventoryRepo, log)
	supplierService := service.NewSupplierService(supplierRepo, log)
	orderService := service.NewOrderService(orderRepo, supplierRepo, log)
	activityService := service.NewActivityService(activityRepo, log)

	revoker := redisdb.NewTokenRevoker(rdb, cfg.TokenTTL)

	authHandler := handler.NewAuthHandler(authService, revoker)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	orderHandler := handler.NewOrderHandler(orderService)
	activityHandler := handler.NewActivityHandler(activityService)
	exportHandler := handler.NewExportHandler(inventoryService, supplierService, orderService)

	authMW := middleware.Auth(cfg.JWTSecret, revoker)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMW)
	e.POST("/auth/logout", authHandler.Logout, authMW)

	// --- Record routes (authenticated) ---
	inv := e.Group("/inventory", authMW)
	inv.GET("", inventoryHandler.List)
	inv.GET("/:id", inventoryHandler.Get)
	inv.POST("", inventoryHandler.Create)
	inv.PUT("/:id", inventoryHandler.Update)
	inv.DELETE("/:id", inventoryHandler.Delete, middleware.MinRole(domain.RoleManager))

	sup := e.Group("/suppliers", authMW)
	sup.GET("", supplierHandler.List)
	sup.GET("/:id", supplierHandler.Get)
	sup.POST("", supplierHandler.Create, middleware.MinRole(domain.RoleManager))
	sup.PUT("/:id", supplierHandler.Update, middleware.MinRole(domain.RoleManager))
	sup.DELETE("/:id", supplierHandler.Delete, middleware.MinRole(domain.RoleManager))

	ord := e.Group("/orders", authMW)
	ord.GET("", orderHandler.List)
	ord.GET("/:id", orderHandler.Get)
	ord.POST("", orderHandler.Create)
	ord.PUT("/:id", orderHandler.Update)
	ord.DELETE("/:id", orderHandler.Delete, middleware.MinRole(domain.RoleManager))

	// --- Audit trail ---
	logs := e.Group("/logs", authMW)
	logs.POST("/activity", activityHandler.Append)
	logs.GET("/activity", activityHandler.Recent, middleware.MinRole(domain.RoleAdmin))

	// --- CSV export ---
	e.GET("/io/export/:entity", exportHandler.Export, authMW)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
