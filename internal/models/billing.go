package models

import "time"

// Bill 账单模型，生成后不可修改
type Bill struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BillNo        string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"bill_no"`
	SubjectType   string    `gorm:"type:varchar(10);not null;uniqueIndex:uk_bill_subject" json:"subject_type"`
	SubjectName   string    `gorm:"type:varchar(100);not null;uniqueIndex:uk_bill_subject" json:"subject_name"`
	BaseCharge    float64   `gorm:"type:decimal(12,2);not null" json:"base_charge"`
	ServiceCharge float64   `gorm:"type:decimal(12,2);not null" json:"service_charge"`
	Tax           float64   `gorm:"type:decimal(12,2);not null" json:"tax"`
	DiscountPct   float64   `gorm:"type:decimal(5,2);not null;default:0" json:"discount_pct"`
	Discount      float64   `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	Total         float64   `gorm:"type:decimal(12,2);not null" json:"total"`
	MemberCount   int       `gorm:"not null;default:1" json:"member_count"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Lines []BillLine `gorm:"foreignKey:BillID" json:"lines,omitempty"`
}

// TableName 表名
func (Bill) TableName() string {
	return "bills"
}

// BillLine 账单服务明细
type BillLine struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BillID      int64     `gorm:"index;not null" json:"bill_id"`
	ServiceName string    `gorm:"type:varchar(50);not null" json:"service_name"`
	Price       float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 表名
func (BillLine) TableName() string {
	return "bill_lines"
}

// BillSubjectType 账单主体类型
const (
	BillSubjectGuest = "guest" // 散客
	BillSubjectGroup = "group" // 团体
)
