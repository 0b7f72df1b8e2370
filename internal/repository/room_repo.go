// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/models"
)

// RoomRepository 房间仓储
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房间仓储
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create 创建房间
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByID 根据 ID 获取房间
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByNumber 根据房间号获取房间
func (r *RoomRepository) GetByNumber(ctx context.Context, roomNumber string) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).Where("room_number = ?", roomNumber).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Update 更新房间
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// UpdateStatus 更新房间状态
func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("status", status).Error
}

// List 获取房间列表
func (r *RoomRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Room, int64, error) {
	var rooms []*models.Room
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Room{})

	// 应用过滤条件
	if roomType, ok := filters["type"].(string); ok && roomType != "" {
		query = query.Where("type = ?", roomType)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if floor, ok := filters["floor"].(int); ok && floor > 0 {
		query = query.Where("floor = ?", floor)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.Order("room_number ASC").Offset(offset).Limit(limit).Find(&rooms).Error; err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

// ListByStatus 根据状态获取房间列表
func (r *RoomRepository) ListByStatus(ctx context.Context, status string) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

// FirstAvailable 获取第一间可用房间，roomType 为空时不限房型
func (r *RoomRepository) FirstAvailable(ctx context.Context, roomType string) (*models.Room, error) {
	var room models.Room
	query := r.db.WithContext(ctx).Where("status = ?", models.RoomStatusAvailable)
	if roomType != "" {
		query = query.Where("type = ?", roomType)
	}
	err := query.Order("room_number ASC").First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ExistsByNumber 检查房间号是否存在
func (r *RoomRepository) ExistsByNumber(ctx context.Context, roomNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("room_number = ?", roomNumber).
		Count(&count).Error
	return count > 0, err
}

// Delete 删除房间
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Room{}, id).Error
}

// CountByStatus 按状态统计房间数量
func (r *RoomRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
