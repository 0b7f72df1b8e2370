// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/models"
)

// InventoryRepository 库存仓储
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓储
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Create 创建库存物品
func (r *InventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID 根据 ID 获取物品
func (r *InventoryRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByNameKey 根据归一化名称获取物品
func (r *InventoryRepository) GetByNameKey(ctx context.Context, nameKey string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).Where("name_key = ?", nameKey).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ExistsByNameKey 检查物品名称是否已存在（大小写不敏感）
func (r *InventoryRepository) ExistsByNameKey(ctx context.Context, nameKey string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("name_key = ?", nameKey).
		Count(&count).Error
	return count > 0, err
}

// List 获取物品列表
func (r *InventoryRepository) List(ctx context.Context, offset, limit int) ([]*models.InventoryItem, int64, error) {
	var items []*models.InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&models.InventoryItem{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name_key ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListLowStock 获取低于阈值的物品列表
func (r *InventoryRepository) ListLowStock(ctx context.Context) ([]*models.InventoryItem, error) {
	var items []*models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("quantity < threshold").
		Order("name_key ASC").
		Find(&items).Error
	return items, err
}

// UpdateQuantity 直接设置物品数量
func (r *InventoryRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

// ConsumeConditional 条件扣减库存，数量不足时不更新任何行
func (r *InventoryRepository) ConsumeConditional(ctx context.Context, id int64, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Where("quantity >= ?", quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Restock 增加库存数量
func (r *InventoryRepository) Restock(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error
}

// Delete 删除物品
func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.InventoryItem{}, id).Error
}

// CreateUsageLog 创建消耗记录
func (r *InventoryRepository) CreateUsageLog(ctx context.Context, log *models.UsageLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// UsageReport 按物品名称汇总消耗总量
func (r *InventoryRepository) UsageReport(ctx context.Context, since *time.Time) (map[string]int, error) {
	var results []struct {
		ItemName string
		Total    int
	}

	query := r.db.WithContext(ctx).Model(&models.UsageLog{}).
		Select("item_name, SUM(quantity) as total")
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	err := query.Group("item_name").Scan(&results).Error
	if err != nil {
		return nil, err
	}

	report := make(map[string]int)
	for _, r := range results {
		report[r.ItemName] = r.Total
	}
	return report, nil
}

// ListUsageLogsByItem 获取物品的消耗记录
func (r *InventoryRepository) ListUsageLogsByItem(ctx context.Context, itemID int64, offset, limit int) ([]*models.UsageLog, int64, error) {
	var logs []*models.UsageLog
	var total int64

	query := r.db.WithContext(ctx).Model(&models.UsageLog{}).Where("item_id = ?", itemID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
