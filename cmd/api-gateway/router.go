// Package main 是应用程序入口
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/common/config"
	"github.com/dumeirei/hotel-ops-backend/internal/common/jwt"
	"github.com/dumeirei/hotel-ops-backend/internal/common/metrics"
	authHandler "github.com/dumeirei/hotel-ops-backend/internal/handler/auth"
	billingHandler "github.com/dumeirei/hotel-ops-backend/internal/handler/billing"
	housekeepingHandler "github.com/dumeirei/hotel-ops-backend/internal/handler/housekeeping"
	inventoryHandler "github.com/dumeirei/hotel-ops-backend/internal/handler/inventory"
	reservationHandler "github.com/dumeirei/hotel-ops-backend/internal/handler/reservation"
	roomHandler "github.com/dumeirei/hotel-ops-backend/internal/handler/room"
	staffHandler "github.com/dumeirei/hotel-ops-backend/internal/handler/staff"
	"github.com/dumeirei/hotel-ops-backend/internal/middleware"
	"github.com/dumeirei/hotel-ops-backend/internal/repository"
	authService "github.com/dumeirei/hotel-ops-backend/internal/service/auth"
	billingService "github.com/dumeirei/hotel-ops-backend/internal/service/billing"
	housekeepingService "github.com/dumeirei/hotel-ops-backend/internal/service/housekeeping"
	inventoryService "github.com/dumeirei/hotel-ops-backend/internal/service/inventory"
	"github.com/dumeirei/hotel-ops-backend/internal/service/notify"
	pricingService "github.com/dumeirei/hotel-ops-backend/internal/service/pricing"
	reservationService "github.com/dumeirei/hotel-ops-backend/internal/service/reservation"
	roomService "github.com/dumeirei/hotel-ops-backend/internal/service/room"
)

// setupRouter 设置路由
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	hub *notify.Hub,
) {
	// 创建 JWT 管理器
	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:            cfg.JWT.Secret,
		AccessExpireTime:  cfg.JWT.AccessTokenDuration(),
		RefreshExpireTime: cfg.JWT.RefreshTokenDuration(),
		Issuer:            cfg.JWT.Issuer,
	})

	// 初始化仓储
	staffRepo := repository.NewStaffRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	billRepo := repository.NewBillRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	housekeepingRepo := repository.NewHousekeepingRepository(db)

	// 初始化服务
	authSvc := authService.NewAuthService(db, staffRepo, jwtManager, redisClient,
		cfg.Crypto.BcryptCost, cfg.JWT.AccessTokenDuration())
	pricingSvc := pricingService.NewPricingService(cfg.Business.Billing)
	roomSvc := roomService.NewRoomService(db, roomRepo)
	reservationSvc := reservationService.NewReservationService(db, reservationRepo, roomRepo)
	billingSvc := billingService.NewBillingService(db, billRepo, reservationRepo, pricingSvc,
		cfg.Business.Billing.TaxRate, cfg.Business.Billing.LateCheckoutFee)
	inventorySvc := inventoryService.NewInventoryService(db, inventoryRepo, hub, cfg.Business.Inventory.DefaultThreshold)
	housekeepingSvc := housekeepingService.NewHousekeepingService(db, housekeepingRepo, roomRepo)

	// 初始化处理器
	authH := authHandler.NewAuthHandler(authSvc)
	staffH := staffHandler.NewStaffHandler(authSvc)
	roomH := roomHandler.NewRoomHandler(roomSvc)
	reservationH := reservationHandler.NewReservationHandler(reservationSvc)
	billingH := billingHandler.NewBillingHandler(billingSvc)
	inventoryH := inventoryHandler.NewInventoryHandler(inventorySvc)
	housekeepingH := housekeepingHandler.NewHousekeepingHandler(housekeepingSvc)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.CORS(nil))
	r.Use(middleware.AccessLog(logger))
	if cfg.Metrics.Enabled {
		r.Use(metrics.GetMetrics().Middleware())
	}
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(&middleware.TracingConfig{
			ServiceName: cfg.Tracing.ServiceName,
			SkipPaths:   []string{"/health", "/ping", "/ready", cfg.Metrics.Path},
		}))
	}

	// 健康检查（不需要认证）
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	// Prometheus 指标
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 公开接口（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.LoginRateLimit(redisClient), authH.Login)
			auth.POST("/refresh", authH.RefreshToken)
		}

		// 需要员工认证
		protected := v1.Group("")
		protected.Use(middleware.StaffAuth(jwtManager))
		protected.Use(middleware.OperationLog(db))
		if cfg.RateLimit.Enabled {
			protected.Use(middleware.StaffRateLimit(redisClient,
				cfg.RateLimit.RequestsPerSecond, time.Second))
		}
		{
			// 认证保护路由
			protected.POST("/auth/logout", authH.Logout)
			protected.PUT("/auth/password", authH.ChangePassword)
			protected.GET("/auth/profile", authH.GetProfile)

			// 员工管理（仅管理员）
			staff := protected.Group("/staff")
			staff.Use(middleware.RequireAdmin())
			{
				staff.POST("", staffH.CreateStaff)
				staff.GET("", staffH.ListStaff)
				staff.GET("/:id", staffH.GetStaff)
				staff.PUT("/:id/status", staffH.UpdateStaffStatus)
			}

			// 客房管理
			checker := middleware.NewRoleChecker()
			rooms := protected.Group("/rooms")
			{
				rooms.GET("", middleware.RequirePermission(checker, middleware.PermissionRoomList), roomH.ListRooms)
				rooms.GET("/available", middleware.RequirePermission(checker, middleware.PermissionRoomList), roomH.FirstAvailable)
				rooms.GET("/:id", middleware.RequirePermission(checker, middleware.PermissionRoomList), roomH.GetRoom)
				rooms.POST("", middleware.RequirePermission(checker, middleware.PermissionRoomCreate), roomH.CreateRoom)
				rooms.PUT("/:id/status", middleware.RequirePermission(checker, middleware.PermissionRoomUpdate), roomH.UpdateStatus)
				rooms.DELETE("/:id", middleware.RequirePermission(checker, middleware.PermissionRoomDelete), roomH.DeleteRoom)
			}

			// 预订管理
			reservations := protected.Group("/reservations")
			{
				reservations.GET("", middleware.RequirePermission(checker, middleware.PermissionReservationList), reservationH.ListReservations)
				reservations.GET("/guests", middleware.RequirePermission(checker, middleware.PermissionReservationList), reservationH.ListGuestNames)
				reservations.GET("/groups", middleware.RequirePermission(checker, middleware.PermissionReservationList), reservationH.ListGroupNames)
				reservations.GET("/guest/:guest_name", middleware.RequirePermission(checker, middleware.PermissionReservationList), reservationH.GetByGuest)
				reservations.GET("/group/:group_name", middleware.RequirePermission(checker, middleware.PermissionReservationList), reservationH.ListGroupMembers)
				reservations.GET("/:id", middleware.RequirePermission(checker, middleware.PermissionReservationList), reservationH.GetReservation)
				reservations.POST("", middleware.RequirePermission(checker, middleware.PermissionReservationCreate), reservationH.CreateReservation)
				reservations.PUT("/:id", middleware.RequirePermission(checker, middleware.PermissionReservationCreate), reservationH.UpdateReservation)
				reservations.DELETE("/:id", middleware.RequirePermission(checker, middleware.PermissionReservationCancel), reservationH.DeleteReservation)
				reservations.POST("/:id/check-in", middleware.RequirePermission(checker, middleware.PermissionReservationCheckIn), reservationH.CheckIn)
				reservations.POST("/:id/check-out", middleware.RequirePermission(checker, middleware.PermissionReservationCheckOut), reservationH.CheckOut)
				reservations.POST("/:id/cancel", middleware.RequirePermission(checker, middleware.PermissionReservationCancel), reservationH.Cancel)
			}

			// 账单管理
			bills := protected.Group("/bills")
			{
				bills.GET("", middleware.RequirePermission(checker, middleware.PermissionBillingList), billingH.ListBills)
				bills.GET("/services", middleware.RequirePermission(checker, middleware.PermissionBillingList), billingH.ListServiceCatalog)
				bills.GET("/:id", middleware.RequirePermission(checker, middleware.PermissionBillingList), billingH.GetBill)
				bills.GET("/group/:group_name/split", middleware.RequirePermission(checker, middleware.PermissionBillingList), billingH.SplitGroup)
				bills.GET("/guest/:guest_name/services", middleware.RequirePermission(checker, middleware.PermissionBillingList), billingH.GuestServiceHistory)
				bills.POST("/preview", middleware.RequirePermission(checker, middleware.PermissionBillingCreate), billingH.PreviewBill)
				bills.POST("", middleware.RequirePermission(checker, middleware.PermissionBillingCreate), billingH.GenerateBill)
			}

			// 库存管理
			inventory := protected.Group("/inventory")
			{
				inventory.GET("", middleware.RequirePermission(checker, middleware.PermissionInventoryList), inventoryH.ListItems)
				inventory.GET("/low-stock", middleware.RequirePermission(checker, middleware.PermissionInventoryList), inventoryH.ListLowStock)
				inventory.GET("/usage-report", middleware.RequirePermission(checker, middleware.PermissionInventoryList), inventoryH.UsageReport)
				inventory.GET("/:id", middleware.RequirePermission(checker, middleware.PermissionInventoryList), inventoryH.GetItem)
				inventory.POST("", middleware.RequirePermission(checker, middleware.PermissionInventoryCreate), inventoryH.AddItem)
				inventory.PUT("/:id/quantity", middleware.RequirePermission(checker, middleware.PermissionInventoryCreate), inventoryH.UpdateQuantity)
				inventory.POST("/:id/consume", middleware.RequirePermission(checker, middleware.PermissionInventoryConsume), inventoryH.Consume)
				inventory.POST("/:id/restock", middleware.RequirePermission(checker, middleware.PermissionInventoryRestock), inventoryH.Restock)
			}

			// 清洁管理
			housekeeping := protected.Group("/housekeeping")
			{
				housekeeping.GET("/tasks", middleware.RequirePermission(checker, middleware.PermissionHousekeepingList), housekeepingH.ListTasks)
				housekeeping.GET("/tasks/:id", middleware.RequirePermission(checker, middleware.PermissionHousekeepingList), housekeepingH.GetTask)
				housekeeping.GET("/assignee/:assignee", middleware.RequirePermission(checker, middleware.PermissionHousekeepingList), housekeepingH.ListByAssignee)
				housekeeping.POST("/tasks", middleware.RequirePermission(checker, middleware.PermissionHousekeepingCreate), housekeepingH.CreateTask)
				housekeeping.PUT("/tasks/:id/status", middleware.RequirePermission(checker, middleware.PermissionHousekeepingUpdate), housekeepingH.UpdateStatus)
			}
		}
	}

	// 404 处理
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    404,
			"message": "接口不存在",
		})
	})
}
