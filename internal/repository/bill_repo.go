// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/models"
)

// BillRepository 账单仓储
type BillRepository struct {
	db *gorm.DB
}

// NewBillRepository 创建账单仓储
func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{db: db}
}

// Create 创建账单（连同服务明细）
func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

// GetByID 根据 ID 获取账单
func (r *BillRepository) GetByID(ctx context.Context, id int64) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).Preload("Lines").First(&bill, id).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// GetByBillNo 根据账单号获取账单
func (r *BillRepository) GetByBillNo(ctx context.Context, billNo string) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).Preload("Lines").Where("bill_no = ?", billNo).First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// GetBySubject 根据结算主体获取账单
func (r *BillRepository) GetBySubject(ctx context.Context, subjectType, subjectName string) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).Preload("Lines").
		Where("subject_type = ?", subjectType).
		Where("subject_name = ?", subjectName).
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// ExistsBySubject 检查结算主体是否已出账
func (r *BillRepository) ExistsBySubject(ctx context.Context, subjectType, subjectName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Bill{}).
		Where("subject_type = ?", subjectType).
		Where("subject_name = ?", subjectName).
		Count(&count).Error
	return count > 0, err
}

// List 获取账单列表
func (r *BillRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Bill, int64, error) {
	var bills []*models.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Bill{})

	// 应用过滤条件
	if subjectType, ok := filters["subject_type"].(string); ok && subjectType != "" {
		query = query.Where("subject_type = ?", subjectType)
	}
	if subjectName, ok := filters["subject_name"].(string); ok && subjectName != "" {
		query = query.Where("subject_name = ?", subjectName)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.Preload("Lines").Order("id DESC").Offset(offset).Limit(limit).Find(&bills).Error; err != nil {
		return nil, 0, err
	}

	return bills, total, nil
}

// ListLinesByGuest 获取散客账单的服务明细
func (r *BillRepository) ListLinesByGuest(ctx context.Context, guestName string) ([]*models.BillLine, error) {
	var lines []*models.BillLine
	err := r.db.WithContext(ctx).Model(&models.BillLine{}).
		Joins("JOIN bills ON bills.id = bill_lines.bill_id").
		Where("bills.subject_type = ?", models.BillSubjectGuest).
		Where("bills.subject_name = ?", guestName).
		Order("bill_lines.id ASC").
		Find(&lines).Error
	return lines, err
}

// SumTotal 统计账单总金额
func (r *BillRepository) SumTotal(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Bill{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}
