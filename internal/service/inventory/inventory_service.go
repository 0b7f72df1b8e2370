// Package inventory 提供库存管理服务
package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/common/errors"
	"github.com/dumeirei/hotel-ops-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-ops-backend/internal/common/utils"
	"github.com/dumeirei/hotel-ops-backend/internal/models"
	"github.com/dumeirei/hotel-ops-backend/internal/repository"
	"github.com/dumeirei/hotel-ops-backend/internal/service/notify"
)

// InventoryService 库存服务
type InventoryService struct {
	db               *gorm.DB
	inventoryRepo    *repository.InventoryRepository
	hub              *notify.Hub
	defaultThreshold int
}

// NewInventoryService 创建库存服务
func NewInventoryService(
	db *gorm.DB,
	inventoryRepo *repository.InventoryRepository,
	hub *notify.Hub,
	defaultThreshold int,
) *InventoryService {
	return &InventoryService{
		db:               db,
		inventoryRepo:    inventoryRepo,
		hub:              hub,
		defaultThreshold: defaultThreshold,
	}
}

// AddItemRequest 新增物品请求
type AddItemRequest struct {
	Name      string `json:"name" binding:"required,max=50"`
	Quantity  int    `json:"quantity" binding:"min=0"`
	Threshold *int   `json:"threshold,omitempty"`
}

// AddItem 新增库存物品，名称大小写不敏感唯一
func (s *InventoryService) AddItem(ctx context.Context, req *AddItemRequest) (*models.InventoryItem, error) {
	if req.Name == "" {
		return nil, errors.ErrInvalidParams.WithMessage("物品名称不能为空")
	}
	if req.Quantity < 0 {
		return nil, errors.ErrQuantityInvalid
	}

	nameKey := utils.NormalizeName(req.Name)
	exists, err := s.inventoryRepo.ExistsByNameKey(ctx, nameKey)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrItemExists
	}

	threshold := s.defaultThreshold
	if req.Threshold != nil {
		if *req.Threshold < 0 {
			return nil, errors.ErrThresholdInvalid
		}
		threshold = *req.Threshold
	}

	item := &models.InventoryItem{
		Name:      req.Name,
		NameKey:   nameKey,
		Quantity:  req.Quantity,
		Threshold: threshold,
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return item, nil
}

// GetItem 根据 ID 获取物品
func (s *InventoryService) GetItem(ctx context.Context, id int64) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrItemNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return item, nil
}

// GetItemByName 根据名称获取物品，大小写不敏感
func (s *InventoryService) GetItemByName(ctx context.Context, name string) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByNameKey(ctx, utils.NormalizeName(name))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrItemNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return item, nil
}

// IsStockSufficient 判断指定物品的库存是否满足需求量
func (s *InventoryService) IsStockSufficient(ctx context.Context, name string, required int) (bool, error) {
	if required < 0 {
		return false, errors.ErrQuantityInvalid
	}
	item, err := s.GetItemByName(ctx, name)
	if err != nil {
		return false, err
	}
	return item.Quantity >= required, nil
}

// ListItems 获取物品列表，并发布一次低库存批量通知
func (s *InventoryService) ListItems(ctx context.Context, offset, limit int) ([]*models.InventoryItem, int64, error) {
	items, total, err := s.inventoryRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	s.publishLowStock(ctx)

	return items, total, nil
}

// UpdateQuantity 直接设置物品数量，负数拒绝
func (s *InventoryService) UpdateQuantity(ctx context.Context, id int64, quantity int) (*models.InventoryItem, error) {
	if quantity < 0 {
		return nil, errors.ErrQuantityInvalid
	}

	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.UpdateQuantity(ctx, id, quantity); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	item.Quantity = quantity
	return item, nil
}

// LogUsage 记录消耗并原子扣减库存
func (s *InventoryService) LogUsage(ctx context.Context, id int64, quantity int, usedBy *string) (*models.InventoryItem, error) {
	if quantity <= 0 {
		return nil, errors.ErrQuantityInvalid
	}

	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewInventoryRepository(tx)
		ok, err := repo.ConsumeConditional(ctx, id, quantity)
		if err != nil {
			return err
		}
		if !ok {
			return errors.ErrStockInsufficient
		}
		return repo.CreateUsageLog(ctx, &models.UsageLog{
			ItemID:   item.ID,
			ItemName: item.Name,
			Quantity: quantity,
			UsedBy:   usedBy,
		})
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	item.Quantity -= quantity
	return item, nil
}

// Restock 补货
func (s *InventoryService) Restock(ctx context.Context, id int64, quantity int) (*models.InventoryItem, error) {
	if quantity <= 0 {
		return nil, errors.ErrQuantityInvalid
	}

	if _, err := s.GetItem(ctx, id); err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.Restock(ctx, id, quantity); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.GetItem(ctx, id)
}

// UsageReport 按物品名称汇总消耗总量
func (s *InventoryService) UsageReport(ctx context.Context) (map[string]int, error) {
	report, err := s.inventoryRepo.UsageReport(ctx, nil)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return report, nil
}

// ListLowStock 获取低库存物品
func (s *InventoryService) ListLowStock(ctx context.Context) ([]*models.InventoryItem, error) {
	items, err := s.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return items, nil
}

// publishLowStock 将当前低库存物品作为一个批次发布到通知中心
func (s *InventoryService) publishLowStock(ctx context.Context) {
	if s.hub == nil {
		return
	}
	lowStock, err := s.inventoryRepo.ListLowStock(ctx)
	if err != nil || len(lowStock) == 0 {
		metrics.GetMetrics().SetLowStockItems(0)
		return
	}

	batch := make([]notify.LowStockItem, 0, len(lowStock))
	for _, item := range lowStock {
		batch = append(batch, notify.LowStockItem{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Threshold: item.Threshold,
		})
	}
	s.hub.Publish(notify.TopicLowStock, batch)
	metrics.GetMetrics().SetLowStockItems(float64(len(batch)))
}
