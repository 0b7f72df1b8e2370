// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/models"
)

// HousekeepingRepository 清洁任务仓储
type HousekeepingRepository struct {
	db *gorm.DB
}

// NewHousekeepingRepository 创建清洁任务仓储
func NewHousekeepingRepository(db *gorm.DB) *HousekeepingRepository {
	return &HousekeepingRepository{db: db}
}

// Create 创建清洁任务
func (r *HousekeepingRepository) Create(ctx context.Context, task *models.HousekeepingTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID 根据 ID 获取清洁任务
func (r *HousekeepingRepository) GetByID(ctx context.Context, id int64) (*models.HousekeepingTask, error) {
	var task models.HousekeepingTask
	err := r.db.WithContext(ctx).Preload("Room").First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update 更新清洁任务
func (r *HousekeepingRepository) Update(ctx context.Context, task *models.HousekeepingTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// UpdateStatus 更新任务状态
func (r *HousekeepingRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&models.HousekeepingTask{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// List 获取清洁任务列表
func (r *HousekeepingRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.HousekeepingTask, int64, error) {
	var tasks []*models.HousekeepingTask
	var total int64

	query := r.db.WithContext(ctx).Model(&models.HousekeepingTask{})

	// 应用过滤条件
	if roomID, ok := filters["room_id"].(int64); ok && roomID > 0 {
		query = query.Where("room_id = ?", roomID)
	}
	if assignee, ok := filters["assignee"].(string); ok && assignee != "" {
		query = query.Where("assignee = ?", assignee)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.Preload("Room").Order("id DESC").Offset(offset).Limit(limit).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListByAssignee 获取指定清洁员的任务
func (r *HousekeepingRepository) ListByAssignee(ctx context.Context, assignee string) ([]*models.HousekeepingTask, error) {
	var tasks []*models.HousekeepingTask
	err := r.db.WithContext(ctx).
		Where("assignee = ?", assignee).
		Preload("Room").
		Order("id DESC").
		Find(&tasks).Error
	return tasks, err
}

// ExistsDuplicate 检查同房间、同清洁员、同状态的任务是否已存在
func (r *HousekeepingRepository) ExistsDuplicate(ctx context.Context, roomID int64, assignee, status string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.HousekeepingTask{}).
		Where("room_id = ?", roomID).
		Where("assignee = ?", assignee).
		Where("status = ?", status).
		Count(&count).Error
	return count > 0, err
}

// CountByStatus 按状态统计任务数量
func (r *HousekeepingRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.HousekeepingTask{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// Delete 删除清洁任务
func (r *HousekeepingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.HousekeepingTask{}, id).Error
}
