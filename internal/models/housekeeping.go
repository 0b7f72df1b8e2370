package models

import "time"

// HousekeepingTask 清洁任务
type HousekeepingTask struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID    int64     `gorm:"index;not null;uniqueIndex:uk_task_dedupe" json:"room_id"`
	Assignee  string    `gorm:"type:varchar(50);not null;uniqueIndex:uk_task_dedupe" json:"assignee"`
	Status    string    `gorm:"type:varchar(20);not null;default:'Pending';uniqueIndex:uk_task_dedupe" json:"status"`
	Notes     *string   `gorm:"type:varchar(255)" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// TableName 表名
func (HousekeepingTask) TableName() string {
	return "housekeeping_tasks"
}

// TaskStatus 任务状态，Completed 为终态
const (
	TaskStatusPending    = "Pending"    // 待处理
	TaskStatusInProgress = "InProgress" // 进行中
	TaskStatusCompleted  = "Completed"  // 已完成
)

// IsValidTaskStatus 校验任务状态是否合法
func IsValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}
