// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/models"
)

// ReservationRepository 预订仓储
type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository 创建预订仓储
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create 创建预订
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// Update 更新预订
func (r *ReservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

// UpdateFields 更新指定字段
func (r *ReservationRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Reservation{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 根据 ID 删除预订
func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Reservation{}, id).Error
}

// GetByID 根据 ID 获取预订
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).Preload("Room").First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetByGuest 获取客人最近一条预订
func (r *ReservationRepository) GetByGuest(ctx context.Context, guestName string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Where("guest_name = ?", guestName).
		Order("id DESC").
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListByGuest 获取客人的全部预订
func (r *ReservationRepository) ListByGuest(ctx context.Context, guestName string) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Where("guest_name = ?", guestName).
		Order("check_in ASC").
		Find(&reservations).Error
	return reservations, err
}

// ListByGroup 获取团体下的全部预订
func (r *ReservationRepository) ListByGroup(ctx context.Context, groupName string) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Where("group_name = ?", groupName).
		Order("guest_name ASC").
		Find(&reservations).Error
	return reservations, err
}

// List 获取预订列表
func (r *ReservationRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Reservation, int64, error) {
	var reservations []*models.Reservation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Reservation{})

	// 应用过滤条件
	if guestName, ok := filters["guest_name"].(string); ok && guestName != "" {
		query = query.Where("guest_name = ?", guestName)
	}
	if groupName, ok := filters["group_name"].(string); ok && groupName != "" {
		query = query.Where("group_name = ?", groupName)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if roomType, ok := filters["room_type"].(string); ok && roomType != "" {
		query = query.Where("room_type = ?", roomType)
	}
	if checkInFrom, ok := filters["check_in_from"].(time.Time); ok {
		query = query.Where("check_in >= ?", checkInFrom)
	}
	if checkInTo, ok := filters["check_in_to"].(time.Time); ok {
		query = query.Where("check_in <= ?", checkInTo)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.Preload("Room").Order("id DESC").Offset(offset).Limit(limit).Find(&reservations).Error; err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

// ListGuestNames 获取全部客人名单（去重）
func (r *ReservationRepository) ListGuestNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Distinct("guest_name").
		Order("guest_name ASC").
		Pluck("guest_name", &names).Error
	return names, err
}

// ListIndividualGuestNames 获取散客名单（去重，排除任何团体的成员）
func (r *ReservationRepository) ListIndividualGuestNames(ctx context.Context) ([]string, error) {
	var names []string
	groupMembers := r.db.Model(&models.Reservation{}).
		Select("guest_name").
		Where("group_name IS NOT NULL AND group_name <> ''")
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Distinct("guest_name").
		Where("guest_name NOT IN (?)", groupMembers).
		Order("guest_name ASC").
		Pluck("guest_name", &names).Error
	return names, err
}

// ListGroupNames 获取团体名单（去重）
func (r *ReservationRepository) ListGroupNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Distinct("group_name").
		Where("group_name IS NOT NULL AND group_name <> ''").
		Order("group_name ASC").
		Pluck("group_name", &names).Error
	return names, err
}

// ExistsDuplicate 检查相同客人与入住区间的预订是否已存在
func (r *ReservationRepository) ExistsDuplicate(ctx context.Context, guestName string, checkIn, checkOut time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("guest_name = ?", guestName).
		Where("check_in = ?", checkIn).
		Where("check_out = ?", checkOut).
		Count(&count).Error
	return count > 0, err
}

// CountByStatus 按状态统计预订数量
func (r *ReservationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
