package app

import (
	"database/sql"

	"github.com/ImanMustopaKamal/deptech-be/internal/admin"
	"github.com/ImanMustopaKamal/deptech-be/internal/auth"
	"github.com/ImanMustopaKamal/deptech-be/internal/employee"
	"github.com/ImanMustopaKamal/deptech-be/internal/leave"
	"github.com/ImanMustopaKamal/deptech-be/internal/messaging/kafka"
	"github.com/ImanMustopaKamal/deptech-be/internal/middleware"
	"github.com/ImanMustopaKamal/deptech-be/internal/shared/clock"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	adminRepo := admin.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	adminService := admin.NewService(adminRepo)
	authService := auth.NewService(adminRepo)
	employeeService := employee.NewService(employeeRepo, rdb)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, employeeRepo, outboxRepo, clock.System())

	// --- Handlers ---
	adminHandler := admin.NewHandler(adminService)
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequestID(),
		middleware.RateLimitByIP(10, 30),
	)
	{
		auth.RegisterRoutes(api, authHandler)
		admin.RegisterRoutes(api, adminHandler)
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
	}

	return nil
}
