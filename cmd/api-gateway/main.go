// Package main 是应用程序入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dumeirei/hotel-ops-backend/internal/common/cache"
	"github.com/dumeirei/hotel-ops-backend/internal/common/config"
	"github.com/dumeirei/hotel-ops-backend/internal/common/database"
	"github.com/dumeirei/hotel-ops-backend/internal/common/logger"
	"github.com/dumeirei/hotel-ops-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-ops-backend/internal/common/tracing"
	"github.com/dumeirei/hotel-ops-backend/internal/models"
	"github.com/dumeirei/hotel-ops-backend/internal/repository"
	"github.com/dumeirei/hotel-ops-backend/internal/scheduler"
	"github.com/dumeirei/hotel-ops-backend/internal/service/notify"
)

func main() {
	// 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.GetLogger()

	log.Info("Starting Hotel Ops Backend",
		zap.String("version", "1.0.0"),
		zap.String("env", cfg.Server.Mode),
	)

	// 初始化数据库连接
	db, err := database.Init(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// 同步表结构
	if err := models.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	// 初始化 Redis 连接
	redisClient, err := cache.Init(&cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("Redis connected successfully")

	// 初始化指标
	if cfg.Metrics.Enabled {
		metrics.Init("hotel_ops")
	}

	// 初始化链路追踪
	if cfg.Tracing.Enabled {
		tracer, err := tracing.Init(&tracing.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Environment: cfg.Server.Mode,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRate:  cfg.Tracing.SampleRate,
			Enabled:     true,
		})
		if err != nil {
			log.Warn("Failed to init tracing", zap.Error(err))
		} else {
			defer tracer.Shutdown(context.Background())
		}
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.Server.Mode == "test" {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 事件总线，低库存告警落日志
	hub := notify.NewHub()
	hub.SubscribeFunc(notify.TopicLowStock, func(event notify.Event) {
		items, ok := event.Payload.([]notify.LowStockItem)
		if !ok {
			return
		}
		for _, item := range items {
			log.Warn("low stock alert",
				zap.String("item", item.Name),
				zap.Int("quantity", item.Quantity),
				zap.Int("threshold", item.Threshold),
			)
		}
	})

	// 创建 Gin 引擎
	engine := gin.New()

	// 设置路由
	setupRouter(engine, cfg, log, db, redisClient, hub)

	// 启动定时任务
	sched := scheduler.NewScheduler()
	scheduler.SetupTasks(sched, scheduler.NewTaskHandler(
		repository.NewRoomRepository(db),
		repository.NewInventoryRepository(db),
		repository.NewOperationLogRepository(db),
		hub,
	))
	sched.Start()

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// 在 goroutine 中启动服务器
	go func() {
		log.Info("HTTP server starting",
			zap.String("addr", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// 停止定时任务
	sched.Stop()

	// 创建超时上下文用于优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// 关闭数据库连接
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}

	log.Info("Server exited")
}
