package models

import "time"

// InventoryItem 库存物品，NameKey 为小写归一化名称用于唯一约束
type InventoryItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	NameKey   string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"-"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	Threshold int       `gorm:"not null;default:10" json:"threshold"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// IsLowStock 是否低于库存阈值
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity < i.Threshold
}

// UsageLog 物品消耗记录
type UsageLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemID    int64     `gorm:"index;not null" json:"item_id"`
	ItemName  string    `gorm:"type:varchar(50);index;not null" json:"item_name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UsedBy    *string   `gorm:"type:varchar(50)" json:"used_by,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 表名
func (UsageLog) TableName() string {
	return "usage_logs"
}
