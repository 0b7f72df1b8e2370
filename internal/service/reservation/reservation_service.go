// Package reservation 提供预订台账服务
package reservation

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/common/errors"
	"github.com/dumeirei/hotel-ops-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-ops-backend/internal/common/qrcode"
	"github.com/dumeirei/hotel-ops-backend/internal/models"
	"github.com/dumeirei/hotel-ops-backend/internal/repository"
)

// ReservationService 预订服务
type ReservationService struct {
	db              *gorm.DB
	reservationRepo *repository.ReservationRepository
	roomRepo        *repository.RoomRepository
	qrGenerator     *qrcode.Generator
}

// NewReservationService 创建预订服务
func NewReservationService(
	db *gorm.DB,
	reservationRepo *repository.ReservationRepository,
	roomRepo *repository.RoomRepository,
) *ReservationService {
	return &ReservationService{
		db:              db,
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		qrGenerator:     qrcode.NewGenerator(qrcode.WithSize(256)),
	}
}

// CreateReservationRequest 创建预订请求
type CreateReservationRequest struct {
	GuestName       string    `json:"guest_name" binding:"required,max=100"`
	RoomType        string    `json:"room_type" binding:"required,max=20"`
	GroupName       *string   `json:"group_name,omitempty"`
	CheckIn         time.Time `json:"check_in" binding:"required"`
	CheckOut        time.Time `json:"check_out" binding:"required"`
	LateCheckout    bool      `json:"late_checkout"`
	SpecialRequests *string   `json:"special_requests,omitempty"`
}

// UpdateReservationRequest 更新预订请求
type UpdateReservationRequest struct {
	RoomType        *string    `json:"room_type,omitempty"`
	GroupName       *string    `json:"group_name,omitempty"`
	CheckIn         *time.Time `json:"check_in,omitempty"`
	CheckOut        *time.Time `json:"check_out,omitempty"`
	LateCheckout    *bool      `json:"late_checkout,omitempty"`
	SpecialRequests *string    `json:"special_requests,omitempty"`
}

// CheckInResult 入住结果
type CheckInResult struct {
	Reservation *models.Reservation `json:"reservation"`
	Room        *models.Room        `json:"room"`
	QRCode      string              `json:"qr_code,omitempty"`
}

// dateOnly 截断到当天零点，入退日期只保留日期部分
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Create 创建预订
func (s *ReservationService) Create(ctx context.Context, req *CreateReservationRequest) (*models.Reservation, error) {
	if req.GuestName == "" {
		return nil, errors.ErrGuestNameEmpty
	}

	checkIn := dateOnly(req.CheckIn)
	checkOut := dateOnly(req.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, errors.ErrCheckInAfterOut
	}

	exists, err := s.reservationRepo.ExistsDuplicate(ctx, req.GuestName, checkIn, checkOut)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrDuplicateReservation
	}

	reservation := &models.Reservation{
		GuestName:       req.GuestName,
		RoomType:        req.RoomType,
		GroupName:       req.GroupName,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		LateCheckout:    req.LateCheckout,
		SpecialRequests: req.SpecialRequests,
		Status:          models.ReservationStatusBooked,
		PaymentStatus:   models.PaymentStatusUnpaid,
	}
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().RecordReservation(reservation.Status)

	return reservation, nil
}

// Update 更新预订
func (s *ReservationService) Update(ctx context.Context, id int64, req *UpdateReservationRequest) (*models.Reservation, error) {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomType != nil {
		reservation.RoomType = *req.RoomType
	}
	if req.GroupName != nil {
		reservation.GroupName = req.GroupName
	}
	if req.CheckIn != nil {
		reservation.CheckIn = dateOnly(*req.CheckIn)
	}
	if req.CheckOut != nil {
		reservation.CheckOut = dateOnly(*req.CheckOut)
	}
	if req.LateCheckout != nil {
		reservation.LateCheckout = *req.LateCheckout
	}
	if req.SpecialRequests != nil {
		reservation.SpecialRequests = req.SpecialRequests
	}

	if !reservation.CheckOut.After(reservation.CheckIn) {
		return nil, errors.ErrCheckInAfterOut
	}

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return reservation, nil
}

// Delete 根据 ID 删除预订
func (s *ReservationService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// GetByID 根据 ID 获取预订
func (s *ReservationService) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return reservation, nil
}

// GetByGuest 获取客人最近一条预订
func (s *ReservationService) GetByGuest(ctx context.Context, guestName string) (*models.Reservation, error) {
	if guestName == "" {
		return nil, errors.ErrGuestNameEmpty
	}
	reservation, err := s.reservationRepo.GetByGuest(ctx, guestName)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return reservation, nil
}

// List 获取预订列表
func (s *ReservationService) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Reservation, int64, error) {
	reservations, total, err := s.reservationRepo.List(ctx, offset, limit, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return reservations, total, nil
}

// ListByGroup 获取团体成员预订
func (s *ReservationService) ListByGroup(ctx context.Context, groupName string) ([]*models.Reservation, error) {
	reservations, err := s.reservationRepo.ListByGroup(ctx, groupName)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return reservations, nil
}

// ListGuestNames 获取全部客人名单
func (s *ReservationService) ListGuestNames(ctx context.Context) ([]string, error) {
	names, err := s.reservationRepo.ListGuestNames(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return names, nil
}

// ListIndividualGuestNames 获取散客名单，排除团体成员
func (s *ReservationService) ListIndividualGuestNames(ctx context.Context) ([]string, error) {
	names, err := s.reservationRepo.ListIndividualGuestNames(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return names, nil
}

// ListGroupNames 获取团体名单
func (s *ReservationService) ListGroupNames(ctx context.Context) ([]string, error) {
	names, err := s.reservationRepo.ListGroupNames(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return names, nil
}

// CheckIn 办理入住，分配房间并置为入住中
// roomID 为 0 时按预订房型自动分配第一间可用房
func (s *ReservationService) CheckIn(ctx context.Context, reservationID, roomID int64) (*CheckInResult, error) {
	reservation, err := s.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != models.ReservationStatusBooked {
		return nil, errors.ErrOperationFailed.WithMessage("预订当前状态不可办理入住")
	}

	var room *models.Room
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roomRepo := repository.NewRoomRepository(tx)
		reservationRepo := repository.NewReservationRepository(tx)

		if roomID > 0 {
			room, err = roomRepo.GetByID(ctx, roomID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return errors.ErrRoomNotFound
				}
				return err
			}
			if room.Status != models.RoomStatusAvailable && room.Status != models.RoomStatusReady {
				return errors.ErrRoomNotAvailable
			}
		} else {
			room, err = roomRepo.FirstAvailable(ctx, reservation.RoomType)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return errors.ErrRoomNotAvailable
				}
				return err
			}
		}

		if err := roomRepo.UpdateStatus(ctx, room.ID, models.RoomStatusOccupied); err != nil {
			return err
		}
		return reservationRepo.UpdateFields(ctx, reservation.ID, map[string]interface{}{
			"room_id": room.ID,
			"status":  models.ReservationStatusCheckedIn,
		})
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	reservation.RoomID = &room.ID
	reservation.Status = models.ReservationStatusCheckedIn
	room.Status = models.RoomStatusOccupied

	metrics.GetMetrics().RecordReservation(reservation.Status)

	// 入住凭证二维码，生成失败不影响入住
	qr, qrErr := s.qrGenerator.VoucherDataURL(qrcode.Voucher{
		ReservationID: reservation.ID,
		RoomNumber:    room.RoomNumber,
		GuestName:     reservation.GuestName,
	})
	if qrErr != nil {
		qr = ""
	}

	return &CheckInResult{
		Reservation: reservation,
		Room:        room,
		QRCode:      qr,
	}, nil
}

// CheckOut 办理退房，释放房间
func (s *ReservationService) CheckOut(ctx context.Context, reservationID int64) (*models.Reservation, error) {
	reservation, err := s.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != models.ReservationStatusCheckedIn {
		return nil, errors.ErrOperationFailed.WithMessage("预订当前状态不可办理退房")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roomRepo := repository.NewRoomRepository(tx)
		reservationRepo := repository.NewReservationRepository(tx)

		if reservation.RoomID != nil {
			if err := roomRepo.UpdateStatus(ctx, *reservation.RoomID, models.RoomStatusAvailable); err != nil {
				return err
			}
		}
		return reservationRepo.UpdateFields(ctx, reservation.ID, map[string]interface{}{
			"status": models.ReservationStatusCheckedOut,
		})
	})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	reservation.Status = models.ReservationStatusCheckedOut
	metrics.GetMetrics().RecordReservation(reservation.Status)

	return reservation, nil
}

// Cancel 取消预订
func (s *ReservationService) Cancel(ctx context.Context, reservationID int64) (*models.Reservation, error) {
	reservation, err := s.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != models.ReservationStatusBooked {
		return nil, errors.ErrOperationFailed.WithMessage("预订当前状态不可取消")
	}

	if err := s.reservationRepo.UpdateFields(ctx, reservation.ID, map[string]interface{}{
		"status": models.ReservationStatusCancelled,
	}); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	reservation.Status = models.ReservationStatusCancelled
	metrics.GetMetrics().RecordReservation(reservation.Status)

	return reservation, nil
}
