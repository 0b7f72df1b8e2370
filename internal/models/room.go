package models

import "time"

// Room 客房模型
type Room struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomNumber string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"room_number"`
	Type       string    `gorm:"type:varchar(20);not null" json:"type"`
	Status     string    `gorm:"type:varchar(20);not null;default:'Available'" json:"status"`
	Floor      *int      `json:"floor,omitempty"`
	Notes      *string   `gorm:"type:varchar(255)" json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (Room) TableName() string {
	return "rooms"
}

// RoomType 房型
const (
	RoomTypeStandard  = "Standard"  // 标准间
	RoomTypeDeluxe    = "Deluxe"    // 豪华间
	RoomTypeSuite     = "Suite"     // 套房
	RoomTypeExecutive = "Executive" // 行政间
)

// RoomStatus 房间状态
const (
	RoomStatusAvailable   = "Available"   // 可用
	RoomStatusOccupied    = "Occupied"    // 入住中
	RoomStatusMaintenance = "Maintenance" // 维修中
	RoomStatusCleaning    = "Cleaning"    // 清洁中
	RoomStatusReady       = "Ready"       // 已就绪
)

// IsValidRoomType 校验房型是否合法
func IsValidRoomType(t string) bool {
	switch t {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypeExecutive:
		return true
	}
	return false
}

// IsValidRoomStatus 校验房间状态是否合法
func IsValidRoomStatus(s string) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance, RoomStatusCleaning, RoomStatusReady:
		return true
	}
	return false
}
