// Package room 提供客房管理服务
package room

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/common/errors"
	"github.com/dumeirei/hotel-ops-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-ops-backend/internal/models"
	"github.com/dumeirei/hotel-ops-backend/internal/repository"
)

// RoomService 客房服务
type RoomService struct {
	db       *gorm.DB
	roomRepo *repository.RoomRepository
}

// NewRoomService 创建客房服务
func NewRoomService(db *gorm.DB, roomRepo *repository.RoomRepository) *RoomService {
	return &RoomService{
		db:       db,
		roomRepo: roomRepo,
	}
}

// CreateRoomRequest 创建房间请求
type CreateRoomRequest struct {
	RoomNumber string  `json:"room_number" binding:"required,max=10"`
	Type       string  `json:"type" binding:"required"`
	Floor      *int    `json:"floor,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// CreateRoom 创建房间
func (s *RoomService) CreateRoom(ctx context.Context, req *CreateRoomRequest) (*models.Room, error) {
	if !models.IsValidRoomType(req.Type) {
		return nil, errors.ErrInvalidParams.WithMessage("无效的房型")
	}

	exists, err := s.roomRepo.ExistsByNumber(ctx, req.RoomNumber)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrRoomExists
	}

	room := &models.Room{
		RoomNumber: req.RoomNumber,
		Type:       req.Type,
		Status:     models.RoomStatusAvailable,
		Floor:      req.Floor,
		Notes:      req.Notes,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return room, nil
}

// GetRoom 根据 ID 获取房间
func (s *RoomService) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return room, nil
}

// GetRoomByNumber 根据房间号获取房间
func (s *RoomService) GetRoomByNumber(ctx context.Context, roomNumber string) (*models.Room, error) {
	room, err := s.roomRepo.GetByNumber(ctx, roomNumber)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return room, nil
}

// ListRooms 获取房间列表
func (s *RoomService) ListRooms(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Room, int64, error) {
	rooms, total, err := s.roomRepo.List(ctx, offset, limit, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return rooms, total, nil
}

// FirstAvailable 获取第一间可用房间，roomType 为空时不限房型
func (s *RoomService) FirstAvailable(ctx context.Context, roomType string) (*models.Room, error) {
	if roomType != "" && !models.IsValidRoomType(roomType) {
		return nil, errors.ErrInvalidParams.WithMessage("无效的房型")
	}

	room, err := s.roomRepo.FirstAvailable(ctx, roomType)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotAvailable
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return room, nil
}

// UpdateStatus 更新房间状态
func (s *RoomService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Room, error) {
	if !models.IsValidRoomStatus(status) {
		return nil, errors.ErrRoomStatusInvalid
	}

	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.roomRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	room.Status = status

	s.refreshOccupiedGauge(ctx)

	return room, nil
}

// DeleteRoom 删除房间，入住中的房间不可删除
func (s *RoomService) DeleteRoom(ctx context.Context, id int64) error {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return err
	}
	if room.Status == models.RoomStatusOccupied {
		return errors.ErrRoomOccupied
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// refreshOccupiedGauge 刷新在住房间数指标
func (s *RoomService) refreshOccupiedGauge(ctx context.Context) {
	count, err := s.roomRepo.CountByStatus(ctx, models.RoomStatusOccupied)
	if err != nil {
		return
	}
	metrics.GetMetrics().SetOccupiedRooms(float64(count))
}
