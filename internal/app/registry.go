package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/attendance"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/auth"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/employee"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/leave"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/messaging/kafka"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/notification"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/payroll"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/rbac"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/rbac/infra"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/realtime"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/recruitment"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	recruitmentRepo := recruitment.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Realtime ---
	hub := realtime.NewHub()
	notifier := notification.NewChannelNotifier(hub)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, rbacService)
	authService := auth.NewService(authRepo, employeeRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo, rbacService, notifier)
	payrollService := payroll.NewService(payrollRepo, rbacService, rdb)
	recruitmentService := recruitment.NewService(recruitmentRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	payrollHandler := payroll.NewHandler(payrollService)
	recruitmentHandler := recruitment.NewHandler(recruitmentService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rdb)
		payroll.RegisterRoutes(api, payrollHandler, rbacService)
		recruitment.RegisterRoutes(api, recruitmentHandler, rbacService)
	}

	realtime.RegisterRoutes(router, hub)

	return nil
}
