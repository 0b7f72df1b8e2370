// Package repository 账单仓储单元测试
package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-ops-backend/internal/models"
)

func setupBillTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Bill{}, &models.BillLine{})
	require.NoError(t, err)

	return db
}

func TestBillRepository_CreateWithLines(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	bill := &models.Bill{
		BillNo:        "B20260310000001",
		SubjectType:   models.BillSubjectGuest,
		SubjectName:   "张三",
		BaseCharge:    240,
		ServiceCharge: 80,
		Tax:           38.4,
		Total:         358.4,
		MemberCount:   1,
		Lines: []models.BillLine{
			{ServiceName: "Spa", Price: 50},
			{ServiceName: "Dining", Price: 30},
		},
	}

	err := repo.Create(ctx, bill)
	require.NoError(t, err)
	assert.NotZero(t, bill.ID)

	found, err := repo.GetByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, found.Lines, 2)
	assert.Equal(t, bill.ID, found.Lines[0].BillID)
}

func TestBillRepository_SubjectUnique(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &models.Bill{
		BillNo: "B1", SubjectType: models.BillSubjectGuest, SubjectName: "张三",
		BaseCharge: 160, Total: 179.2, MemberCount: 1,
	})
	require.NoError(t, err)

	// 同一结算主体重复出账被唯一索引拒绝
	err = repo.Create(ctx, &models.Bill{
		BillNo: "B2", SubjectType: models.BillSubjectGuest, SubjectName: "张三",
		BaseCharge: 160, Total: 179.2, MemberCount: 1,
	})
	assert.Error(t, err)

	// 同名团体账单互不冲突
	err = repo.Create(ctx, &models.Bill{
		BillNo: "B3", SubjectType: models.BillSubjectGroup, SubjectName: "张三",
		BaseCharge: 160, Total: 179.2, MemberCount: 2,
	})
	assert.NoError(t, err)
}

func TestBillRepository_ExistsBySubject(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	db.Create(&models.Bill{
		BillNo: "B1", SubjectType: models.BillSubjectGroup, SubjectName: "年会团",
		BaseCharge: 480, Total: 537.6, MemberCount: 3,
	})

	exists, err := repo.ExistsBySubject(ctx, models.BillSubjectGroup, "年会团")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySubject(ctx, models.BillSubjectGuest, "年会团")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBillRepository_GetBySubject(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	db.Create(&models.Bill{
		BillNo: "B1", SubjectType: models.BillSubjectGuest, SubjectName: "李四",
		BaseCharge: 360, Total: 403.2, MemberCount: 1,
		Lines: []models.BillLine{{ServiceName: "Laundry", Price: 15}},
	})

	found, err := repo.GetBySubject(ctx, models.BillSubjectGuest, "李四")
	require.NoError(t, err)
	assert.Equal(t, "B1", found.BillNo)
	assert.Len(t, found.Lines, 1)
}

func TestBillRepository_ListLinesByGuest(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	db.Create(&models.Bill{
		BillNo: "B1", SubjectType: models.BillSubjectGuest, SubjectName: "张三",
		BaseCharge: 240, Total: 358.4, MemberCount: 1,
		Lines: []models.BillLine{
			{ServiceName: "Spa", Price: 50},
			{ServiceName: "Gym Access", Price: 10},
		},
	})
	db.Create(&models.Bill{
		BillNo: "B2", SubjectType: models.BillSubjectGuest, SubjectName: "李四",
		BaseCharge: 80, Total: 89.6, MemberCount: 1,
		Lines: []models.BillLine{{ServiceName: "Dining", Price: 30}},
	})

	lines, err := repo.ListLinesByGuest(ctx, "张三")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Spa", lines[0].ServiceName)
	assert.Equal(t, "Gym Access", lines[1].ServiceName)
}

func TestBillRepository_SumTotal(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	total, err := repo.SumTotal(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	db.Create(&models.Bill{BillNo: "B1", SubjectType: models.BillSubjectGuest, SubjectName: "a", Total: 100, MemberCount: 1})
	db.Create(&models.Bill{BillNo: "B2", SubjectType: models.BillSubjectGuest, SubjectName: "b", Total: 50.5, MemberCount: 1})

	total, err = repo.SumTotal(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 150.5, total, 0.001)
}
