// Package scheduler 提供定时任务
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dumeirei/hotel-ops-backend/internal/common/logger"
	"github.com/dumeirei/hotel-ops-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-ops-backend/internal/models"
	"github.com/dumeirei/hotel-ops-backend/internal/repository"
	"github.com/dumeirei/hotel-ops-backend/internal/service/notify"
)

// 操作日志保留时长
const operationLogRetention = 90 * 24 * time.Hour

// TaskHandler 任务处理器
type TaskHandler struct {
	roomRepo         *repository.RoomRepository
	inventoryRepo    *repository.InventoryRepository
	operationLogRepo *repository.OperationLogRepository
	hub              *notify.Hub
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(
	roomRepo *repository.RoomRepository,
	inventoryRepo *repository.InventoryRepository,
	operationLogRepo *repository.OperationLogRepository,
	hub *notify.Hub,
) *TaskHandler {
	return &TaskHandler{
		roomRepo:         roomRepo,
		inventoryRepo:    inventoryRepo,
		operationLogRepo: operationLogRepo,
		hub:              hub,
	}
}

// RefreshOccupiedRooms 刷新在住房间数指标
func (h *TaskHandler) RefreshOccupiedRooms(ctx context.Context) error {
	count, err := h.roomRepo.CountByStatus(ctx, models.RoomStatusOccupied)
	if err != nil {
		return err
	}
	metrics.GetMetrics().SetOccupiedRooms(float64(count))
	return nil
}

// ScanLowStock 扫描低库存物品并广播告警
func (h *TaskHandler) ScanLowStock(ctx context.Context) error {
	items, err := h.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		return err
	}

	metrics.GetMetrics().SetLowStockItems(float64(len(items)))
	if len(items) == 0 {
		return nil
	}

	batch := make([]notify.LowStockItem, 0, len(items))
	for _, item := range items {
		batch = append(batch, notify.LowStockItem{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Threshold: item.Threshold,
		})
	}
	h.hub.Publish(notify.TopicLowStock, batch)
	return nil
}

// PurgeOperationLogs 清理过期操作日志
func (h *TaskHandler) PurgeOperationLogs(ctx context.Context) error {
	deleted, err := h.operationLogRepo.DeleteBefore(ctx, time.Now().Add(-operationLogRetention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		logger.Info("operation logs purged", zap.Int64("count", deleted))
	}
	return nil
}

// SetupTasks 设置所有任务
func SetupTasks(scheduler *Scheduler, handler *TaskHandler) {
	// 每分钟刷新在住房间数
	scheduler.AddTask("RefreshOccupiedRooms", 1*time.Minute, handler.RefreshOccupiedRooms)

	// 每五分钟扫描低库存
	scheduler.AddTask("ScanLowStock", 5*time.Minute, handler.ScanLowStock)

	// 每天清理过期操作日志
	scheduler.AddTask("PurgeOperationLogs", 24*time.Hour, handler.PurgeOperationLogs)
}
