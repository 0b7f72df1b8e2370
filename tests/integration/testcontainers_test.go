//go:build integration

// Package integration testcontainers-go 使用示例测试
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dumeirei/hotel-ops-backend/internal/models"
	"github.com/dumeirei/hotel-ops-backend/internal/repository"
)

// TestTestContainers_HotelSchema 在真实 Postgres 上迁移并读写酒店数据
func TestTestContainers_HotelSchema(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	tc := NewTestContainers(ctx)

	err := tc.StartAll()
	require.NoError(t, err, "failed to start containers")

	t.Cleanup(func() {
		_ = tc.Cleanup()
	})

	t.Run("Postgres", func(t *testing.T) {
		db, err := tc.GetPostgresDB()
		require.NoError(t, err)
		require.NoError(t, models.AutoMigrate(db))

		roomRepo := repository.NewRoomRepository(db)
		require.NoError(t, roomRepo.Create(ctx, &models.Room{
			RoomNumber: "701",
			Type:       models.RoomTypeStandard,
			Status:     models.RoomStatusAvailable,
		}))

		room, err := roomRepo.GetByNumber(ctx, "701")
		require.NoError(t, err)
		assert.Equal(t, models.RoomTypeStandard, room.Type)
	})

	t.Run("Redis", func(t *testing.T) {
		client, err := tc.GetRedisClient()
		require.NoError(t, err)

		err = client.Set(ctx, "session:1", `{"staff_id":1}`, time.Minute).Err()
		assert.NoError(t, err)

		val, err := client.Get(ctx, "session:1").Result()
		assert.NoError(t, err)
		assert.Contains(t, val, "staff_id")

		assert.NoError(t, client.Del(ctx, "session:1").Err())
	})
}

// TestTestContainers_PostgresOnly 仅启动 Postgres
func TestTestContainers_PostgresOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	tc := NewTestContainers(ctx)

	err := tc.StartPostgres(DefaultPostgresConfig())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = tc.Cleanup()
	})

	db, err := tc.GetPostgresDB()
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

// TestTestContainers_RedisOnly 仅启动 Redis
func TestTestContainers_RedisOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	tc := NewTestContainers(ctx)

	err := tc.StartRedis(DefaultRedisConfig())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = tc.Cleanup()
	})

	client, err := tc.GetRedisClient()
	require.NoError(t, err)

	pong, err := client.Ping(ctx).Result()
	assert.NoError(t, err)
	assert.Equal(t, "PONG", pong)
}

// TestTestContainers_GetDBBeforeStart 在启动前获取连接应该失败
func TestTestContainers_GetDBBeforeStart(t *testing.T) {
	ctx := context.Background()
	tc := NewTestContainers(ctx)

	_, err := tc.GetPostgresDB()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "postgres container not started")

	_, err = tc.GetRedisClient()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis container not started")
}

// TestTestContainers_CleanupWithoutStart 清理未启动的容器应该成功
func TestTestContainers_CleanupWithoutStart(t *testing.T) {
	ctx := context.Background()
	tc := NewTestContainers(ctx)

	assert.NoError(t, tc.Cleanup())
}
