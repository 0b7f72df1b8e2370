package models

import "gorm.io/gorm"

// AutoMigrate 同步全部数据表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Staff{},
		&OperationLog{},
		&Room{},
		&Reservation{},
		&Bill{},
		&BillLine{},
		&InventoryItem{},
		&UsageLog{},
		&HousekeepingTask{},
	)
}
