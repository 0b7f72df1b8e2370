// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/models"
)

// StaffRepository 员工仓储
type StaffRepository struct {
	db *gorm.DB
}

// NewStaffRepository 创建员工仓储
func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// Create 创建员工
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

// GetByID 根据 ID 获取员工
func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.WithContext(ctx).First(&staff, id).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// GetByUsername 根据用户名获取员工
func (r *StaffRepository) GetByUsername(ctx context.Context, username string) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// ExistsByUsername 检查用户名是否存在
func (r *StaffRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Staff{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// Update 更新员工
func (r *StaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

// UpdateFields 更新指定字段
func (r *StaffRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Staff{}).Where("id = ?", id).Updates(fields).Error
}

// UpdatePassword 更新密码
func (r *StaffRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&models.Staff{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// UpdateLastLogin 更新最近登录信息
func (r *StaffRepository) UpdateLastLogin(ctx context.Context, id int64, ip string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Staff{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at": at,
			"last_login_ip": ip,
		}).Error
}

// List 获取员工列表
func (r *StaffRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Staff, int64, error) {
	var staffs []*models.Staff
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Staff{})

	// 应用过滤条件
	if role, ok := filters["role"].(string); ok && role != "" {
		query = query.Where("role = ?", role)
	}
	if status, ok := filters["status"].(int8); ok {
		query = query.Where("status = ?", status)
	}
	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("username LIKE ? OR name LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&staffs).Error; err != nil {
		return nil, 0, err
	}

	return staffs, total, nil
}

// Delete 删除员工
func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Staff{}, id).Error
}
