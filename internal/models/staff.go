// Package models 定义数据模型
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Staff 员工模型
type Staff struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Name         string     `gorm:"type:varchar(50);not null" json:"name"`
	Phone        *string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email        *string    `gorm:"type:varchar(100)" json:"email,omitempty"`
	Role         string     `gorm:"type:varchar(20);not null" json:"role"`
	Status       int8       `gorm:"type:smallint;not null;default:1" json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	LastLoginIP  *string    `gorm:"type:varchar(45)" json:"last_login_ip,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (Staff) TableName() string {
	return "staff"
}

// StaffStatus 员工状态
const (
	StaffStatusDisabled = 0 // 禁用
	StaffStatusActive   = 1 // 正常
)

// StaffRole 员工角色
const (
	StaffRoleAdmin        = "admin"        // 管理员
	StaffRoleReceptionist = "receptionist" // 前台
	StaffRoleHousekeeping = "housekeeping" // 客房清洁
)

// OperationLog 操作日志
type OperationLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffID    int64     `gorm:"index;not null" json:"staff_id"`
	Module     string    `gorm:"type:varchar(50);not null" json:"module"`
	Action     string    `gorm:"type:varchar(50);not null" json:"action"`
	TargetType *string   `gorm:"type:varchar(50)" json:"target_type,omitempty"`
	TargetID   *int64    `json:"target_id,omitempty"`
	BeforeData JSON      `gorm:"type:jsonb" json:"before_data,omitempty"`
	AfterData  JSON      `gorm:"type:jsonb" json:"after_data,omitempty"`
	IP         string    `gorm:"type:varchar(45);not null" json:"ip"`
	UserAgent  *string   `gorm:"type:varchar(255)" json:"user_agent,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// 关联
	Staff *Staff `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// TableName 表名
func (OperationLog) TableName() string {
	return "operation_logs"
}

// JSON 自定义 JSON 类型
type JSON map[string]interface{}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Unmarshal 将 JSON 值反序列化到目标结构（便于业务层使用）
func (j JSON) Unmarshal(target interface{}) error {
	if j == nil {
		return nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, target)
}
