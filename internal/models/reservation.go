package models

import "time"

// Reservation 预订模型
type Reservation struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GuestName       string    `gorm:"type:varchar(100);not null;index;uniqueIndex:uk_guest_stay" json:"guest_name"`
	RoomType        string    `gorm:"type:varchar(20);not null" json:"room_type"`
	RoomID          *int64    `gorm:"index" json:"room_id,omitempty"`
	GroupName       *string   `gorm:"type:varchar(100);index" json:"group_name,omitempty"`
	CheckIn         time.Time `gorm:"not null;uniqueIndex:uk_guest_stay" json:"check_in"`
	CheckOut        time.Time `gorm:"not null;uniqueIndex:uk_guest_stay" json:"check_out"`
	LateCheckout    bool      `gorm:"not null;default:false" json:"late_checkout"`
	SpecialRequests *string   `gorm:"type:varchar(255)" json:"special_requests,omitempty"`
	Status          string    `gorm:"type:varchar(20);not null;default:'Booked'" json:"status"`
	PaymentStatus   string    `gorm:"type:varchar(20);not null;default:'Unpaid'" json:"payment_status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// TableName 表名
func (Reservation) TableName() string {
	return "reservations"
}

// ReservationStatus 预订状态
const (
	ReservationStatusBooked     = "Booked"     // 已预订
	ReservationStatusCheckedIn  = "CheckedIn"  // 已入住
	ReservationStatusCheckedOut = "CheckedOut" // 已退房
	ReservationStatusCancelled  = "Cancelled"  // 已取消
)

// PaymentStatus 支付状态，出账后置为 Billed
const (
	PaymentStatusUnpaid = "Unpaid" // 未结算
	PaymentStatusBilled = "Billed" // 已出账
)

// Nights 计算入住晚数，入退时间在创建时已截断到日期
func (r *Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn) / (24 * time.Hour))
}
