// Package housekeeping 提供清洁任务服务
package housekeeping

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/common/errors"
	"github.com/dumeirei/hotel-ops-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-ops-backend/internal/models"
	"github.com/dumeirei/hotel-ops-backend/internal/repository"
)

// HousekeepingService 清洁任务服务
type HousekeepingService struct {
	db               *gorm.DB
	housekeepingRepo *repository.HousekeepingRepository
	roomRepo         *repository.RoomRepository
}

// NewHousekeepingService 创建清洁任务服务
func NewHousekeepingService(
	db *gorm.DB,
	housekeepingRepo *repository.HousekeepingRepository,
	roomRepo *repository.RoomRepository,
) *HousekeepingService {
	return &HousekeepingService{
		db:               db,
		housekeepingRepo: housekeepingRepo,
		roomRepo:         roomRepo,
	}
}

// CreateTaskRequest 创建清洁任务请求
type CreateTaskRequest struct {
	RoomID   int64   `json:"room_id" binding:"required"`
	Assignee string  `json:"assignee" binding:"required,max=50"`
	Notes    *string `json:"notes,omitempty"`
}

// eligibleForCleaning 房间当前状态是否可安排清洁
func eligibleForCleaning(status string) bool {
	switch status {
	case models.RoomStatusAvailable, models.RoomStatusMaintenance, models.RoomStatusCleaning:
		return true
	}
	return false
}

// CreateTask 创建清洁任务
func (s *HousekeepingService) CreateTask(ctx context.Context, req *CreateTaskRequest) (*models.HousekeepingTask, error) {
	if req.Assignee == "" {
		return nil, errors.ErrAssigneeEmpty
	}

	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if !eligibleForCleaning(room.Status) {
		return nil, errors.ErrRoomNotEligible
	}

	exists, err := s.housekeepingRepo.ExistsDuplicate(ctx, req.RoomID, req.Assignee, models.TaskStatusPending)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrDuplicateTask
	}

	task := &models.HousekeepingTask{
		RoomID:   req.RoomID,
		Assignee: req.Assignee,
		Status:   models.TaskStatusPending,
		Notes:    req.Notes,
	}
	if err := s.housekeepingRepo.Create(ctx, task); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	task.Room = room

	metrics.GetMetrics().RecordHousekeepingTask(task.Status)

	return task, nil
}

// GetTask 根据 ID 获取清洁任务
func (s *HousekeepingService) GetTask(ctx context.Context, id int64) (*models.HousekeepingTask, error) {
	task, err := s.housekeepingRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return task, nil
}

// ListTasks 获取清洁任务列表
func (s *HousekeepingService) ListTasks(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.HousekeepingTask, int64, error) {
	tasks, total, err := s.housekeepingRepo.List(ctx, offset, limit, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return tasks, total, nil
}

// UpdateStatus 更新任务状态
// Completed 为终态不可再变更；任务完成时房间在同一事务内置为已就绪
func (s *HousekeepingService) UpdateStatus(ctx context.Context, id int64, status string) (*models.HousekeepingTask, error) {
	if !models.IsValidTaskStatus(status) {
		return nil, errors.ErrTaskStatusInvalid
	}

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == models.TaskStatusCompleted {
		return nil, errors.ErrOperationFailed.WithMessage("任务已完成，状态不可变更")
	}
	if task.Status == status {
		return task, nil
	}

	if status == models.TaskStatusCompleted {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := repository.NewHousekeepingRepository(tx).UpdateStatus(ctx, id, status); err != nil {
				return err
			}
			return repository.NewRoomRepository(tx).UpdateStatus(ctx, task.RoomID, models.RoomStatusReady)
		})
	} else {
		err = s.housekeepingRepo.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	task.Status = status
	if task.Room != nil && status == models.TaskStatusCompleted {
		task.Room.Status = models.RoomStatusReady
	}

	metrics.GetMetrics().RecordHousekeepingTask(status)

	return task, nil
}

// ListByAssignee 获取清洁员的任务列表
func (s *HousekeepingService) ListByAssignee(ctx context.Context, assignee string) ([]*models.HousekeepingTask, error) {
	if assignee == "" {
		return nil, errors.ErrAssigneeEmpty
	}
	tasks, err := s.housekeepingRepo.ListByAssignee(ctx, assignee)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return tasks, nil
}
