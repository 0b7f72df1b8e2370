// Package repository 预订仓储单元测试
package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-ops-backend/internal/models"
)

func setupReservationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Room{}, &models.Reservation{})
	require.NoError(t, err)

	return db
}

func strPtr(s string) *string {
	return &s
}

func TestReservationRepository_Create(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	checkIn := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	reservation := &models.Reservation{
		GuestName: "张三",
		RoomType:  models.RoomTypeStandard,
		CheckIn:   checkIn,
		CheckOut:  checkIn.AddDate(0, 0, 3),
		Status:    models.ReservationStatusBooked,
	}

	err := repo.Create(ctx, reservation)
	require.NoError(t, err)
	assert.NotZero(t, reservation.ID)
	assert.Equal(t, 3, reservation.Nights())
}

func TestReservationRepository_Create_Duplicate(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	checkIn := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 2)

	err := repo.Create(ctx, &models.Reservation{
		GuestName: "张三", RoomType: models.RoomTypeStandard,
		CheckIn: checkIn, CheckOut: checkOut, Status: models.ReservationStatusBooked,
	})
	require.NoError(t, err)

	// 同一客人同一区间唯一索引冲突
	err = repo.Create(ctx, &models.Reservation{
		GuestName: "张三", RoomType: models.RoomTypeDeluxe,
		CheckIn: checkIn, CheckOut: checkOut, Status: models.ReservationStatusBooked,
	})
	assert.Error(t, err)
}

func TestReservationRepository_ExistsDuplicate(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	checkIn := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 2)

	db.Create(&models.Reservation{
		GuestName: "张三", RoomType: models.RoomTypeStandard,
		CheckIn: checkIn, CheckOut: checkOut, Status: models.ReservationStatusBooked,
	})

	exists, err := repo.ExistsDuplicate(ctx, "张三", checkIn, checkOut)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsDuplicate(ctx, "张三", checkIn, checkOut.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReservationRepository_GetByGuest_MostRecent(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)
	db.Create(&models.Reservation{
		GuestName: "李四", RoomType: models.RoomTypeStandard,
		CheckIn: base, CheckOut: base.AddDate(0, 0, 2), Status: models.ReservationStatusCheckedOut,
	})
	db.Create(&models.Reservation{
		GuestName: "李四", RoomType: models.RoomTypeSuite,
		CheckIn: base.AddDate(0, 2, 0), CheckOut: base.AddDate(0, 2, 3), Status: models.ReservationStatusBooked,
	})

	found, err := repo.GetByGuest(ctx, "李四")
	require.NoError(t, err)
	assert.Equal(t, models.RoomTypeSuite, found.RoomType)

	_, err = repo.GetByGuest(ctx, "不存在")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReservationRepository_ListByGroup(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)
	db.Create(&models.Reservation{
		GuestName: "王五", RoomType: models.RoomTypeStandard, GroupName: strPtr("年会团"),
		CheckIn: base, CheckOut: base.AddDate(0, 0, 2), Status: models.ReservationStatusBooked,
	})
	db.Create(&models.Reservation{
		GuestName: "赵六", RoomType: models.RoomTypeStandard, GroupName: strPtr("年会团"),
		CheckIn: base, CheckOut: base.AddDate(0, 0, 2), Status: models.ReservationStatusBooked,
	})
	db.Create(&models.Reservation{
		GuestName: "孙七", RoomType: models.RoomTypeDeluxe,
		CheckIn: base, CheckOut: base.AddDate(0, 0, 1), Status: models.ReservationStatusBooked,
	})

	members, err := repo.ListByGroup(ctx, "年会团")
	require.NoError(t, err)
	assert.Len(t, members, 2)

	empty, err := repo.ListByGroup(ctx, "不存在的团")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReservationRepository_NameListings(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)
	db.Create(&models.Reservation{
		GuestName: "王五", RoomType: models.RoomTypeStandard, GroupName: strPtr("年会团"),
		CheckIn: base, CheckOut: base.AddDate(0, 0, 2), Status: models.ReservationStatusBooked,
	})
	db.Create(&models.Reservation{
		GuestName: "孙七", RoomType: models.RoomTypeDeluxe,
		CheckIn: base, CheckOut: base.AddDate(0, 0, 1), Status: models.ReservationStatusBooked,
	})
	// 同一散客的第二次入住，名单去重
	db.Create(&models.Reservation{
		GuestName: "孙七", RoomType: models.RoomTypeDeluxe,
		CheckIn: base.AddDate(0, 1, 0), CheckOut: base.AddDate(0, 1, 2), Status: models.ReservationStatusBooked,
	})

	all, err := repo.ListGuestNames(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"王五", "孙七"}, all)

	individuals, err := repo.ListIndividualGuestNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"孙七"}, individuals)

	groups, err := repo.ListGroupNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"年会团"}, groups)
}

func TestReservationRepository_UpdateAndDelete(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)
	reservation := &models.Reservation{
		GuestName: "张三", RoomType: models.RoomTypeStandard,
		CheckIn: base, CheckOut: base.AddDate(0, 0, 2), Status: models.ReservationStatusBooked,
	}
	db.Create(reservation)

	err := repo.UpdateFields(ctx, reservation.ID, map[string]interface{}{
		"status": models.ReservationStatusCheckedIn,
	})
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCheckedIn, found.Status)

	err = repo.Delete(ctx, reservation.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, reservation.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
