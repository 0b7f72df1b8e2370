// Package auth 提供员工认证服务
package auth

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-ops-backend/internal/common/cache"
	"github.com/dumeirei/hotel-ops-backend/internal/common/crypto"
	"github.com/dumeirei/hotel-ops-backend/internal/common/errors"
	"github.com/dumeirei/hotel-ops-backend/internal/common/jwt"
	"github.com/dumeirei/hotel-ops-backend/internal/common/logger"
	"github.com/dumeirei/hotel-ops-backend/internal/middleware"
	"github.com/dumeirei/hotel-ops-backend/internal/models"
	"github.com/dumeirei/hotel-ops-backend/internal/repository"
)

// AuthService 员工认证服务
type AuthService struct {
	db         *gorm.DB
	staffRepo  *repository.StaffRepository
	jwtManager *jwt.Manager
	redis      *redis.Client
	bcryptCost int
	sessionTTL time.Duration
}

// NewAuthService 创建认证服务
func NewAuthService(db *gorm.DB, staffRepo *repository.StaffRepository, jwtManager *jwt.Manager, redisClient *redis.Client, bcryptCost int, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		db:         db,
		staffRepo:  staffRepo,
		jwtManager: jwtManager,
		redis:      redisClient,
		bcryptCost: bcryptCost,
		sessionTTL: sessionTTL,
	}
}

// CreateStaffRequest 创建员工请求
type CreateStaffRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Password string  `json:"password" binding:"required,min=6,max=64"`
	Name     string  `json:"name" binding:"required,max=50"`
	Role     string  `json:"role" binding:"required"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StaffInfo 员工信息
type StaffInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Staff       *StaffInfo     `json:"staff"`
	Token       *jwt.TokenPair `json:"token"`
	Permissions []string       `json:"permissions"`
}

// sessionData 会话缓存内容
type sessionData struct {
	StaffID  int64  `json:"staff_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	LoginIP  string `json:"login_ip"`
	LoginAt  int64  `json:"login_at"`
}

// isValidRole 校验员工角色
func isValidRole(role string) bool {
	switch role {
	case jwt.RoleAdmin, jwt.RoleReceptionist, jwt.RoleHousekeeping:
		return true
	}
	return false
}

// CreateStaff 创建员工账号
func (s *AuthService) CreateStaff(ctx context.Context, req *CreateStaffRequest) (*models.Staff, error) {
	if !isValidRole(req.Role) {
		return nil, errors.ErrRoleInvalid
	}

	exists, err := s.staffRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrStaffExists
	}

	hash, err := crypto.HashPasswordWithCost(req.Password, s.bcryptCost)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	staff := &models.Staff{
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		Phone:        req.Phone,
		Email:        req.Email,
		Status:       models.StaffStatusActive,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("员工账号创建成功",
		logger.StaffID(staff.ID),
		logger.Module("auth"),
		logger.Action("create_staff"),
	)
	return staff, nil
}

// Login 员工登录
func (s *AuthService) Login(ctx context.Context, req *LoginRequest, ip string) (*LoginResponse, error) {
	staff, err := s.staffRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPasswordError
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if !crypto.VerifyPassword(req.Password, staff.PasswordHash) {
		return nil, errors.ErrPasswordError
	}
	if staff.Status != models.StaffStatusActive {
		return nil, errors.ErrAccountDisabled
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(staff.ID, staff.Username, staff.Role)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	now := time.Now()
	if err := s.staffRepo.UpdateLastLogin(ctx, staff.ID, ip, now); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	s.cacheSession(ctx, staff, ip, now)

	logger.Info("员工登录成功",
		logger.StaffID(staff.ID),
		logger.Module("auth"),
		logger.Action("login"),
	)

	return &LoginResponse{
		Staff: &StaffInfo{
			ID:       staff.ID,
			Username: staff.Username,
			Name:     staff.Name,
			Role:     staff.Role,
		},
		Token:       tokenPair,
		Permissions: middleware.PermissionsForRole(staff.Role),
	}, nil
}

// Logout 员工登出
func (s *AuthService) Logout(ctx context.Context, staffID int64) error {
	if s.redis == nil {
		return nil
	}
	key := cache.BuildKey(cache.KeyPrefixSession, strconv.FormatInt(staffID, 10))
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		logger.Warn("会话清理失败", logger.StaffID(staffID))
	}
	return nil
}

// RefreshToken 刷新令牌
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := s.jwtManager.ParseToken(refreshToken)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrTokenInvalid
	}

	staff, err := s.staffRepo.GetByID(ctx, claims.StaffID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrStaffNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if staff.Status != models.StaffStatusActive {
		return nil, errors.ErrAccountDisabled
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(staff.ID, staff.Username, staff.Role)
	if err != nil {
		return nil, errors.ErrTokenRefreshFail.WithError(err)
	}
	return tokenPair, nil
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=64"`
}

// ChangePassword 修改密码
func (s *AuthService) ChangePassword(ctx context.Context, staffID int64, req *ChangePasswordRequest) error {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrStaffNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if !crypto.VerifyPassword(req.OldPassword, staff.PasswordHash) {
		return errors.ErrPasswordError
	}

	hash, err := crypto.HashPasswordWithCost(req.NewPassword, s.bcryptCost)
	if err != nil {
		return errors.ErrInternalError.WithError(err)
	}
	if err := s.staffRepo.UpdatePassword(ctx, staffID, hash); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("员工密码已修改",
		logger.StaffID(staffID),
		logger.Module("auth"),
		logger.Action("change_password"),
	)
	return nil
}

// GetStaffByID 根据 ID 获取员工
func (s *AuthService) GetStaffByID(ctx context.Context, id int64) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrStaffNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return staff, nil
}

// ListStaff 获取员工列表
func (s *AuthService) ListStaff(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Staff, int64, error) {
	staffList, total, err := s.staffRepo.List(ctx, offset, limit, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return staffList, total, nil
}

// UpdateStaffStatus 启用或禁用员工账号
func (s *AuthService) UpdateStaffStatus(ctx context.Context, id int64, status int8) error {
	if status != models.StaffStatusActive && status != models.StaffStatusDisabled {
		return errors.ErrInvalidParams.WithMessage("无效的账号状态")
	}

	if _, err := s.GetStaffByID(ctx, id); err != nil {
		return err
	}
	if err := s.staffRepo.UpdateFields(ctx, id, map[string]interface{}{"status": status}); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	// 禁用时同步清理会话
	if status == models.StaffStatusDisabled {
		_ = s.Logout(ctx, id)
	}
	return nil
}

// cacheSession 写入登录会话缓存，失败时降级继续
func (s *AuthService) cacheSession(ctx context.Context, staff *models.Staff, ip string, at time.Time) {
	if s.redis == nil {
		return
	}
	key := cache.BuildKey(cache.KeyPrefixSession, strconv.FormatInt(staff.ID, 10))
	data := &sessionData{
		StaffID:  staff.ID,
		Username: staff.Username,
		Role:     staff.Role,
		LoginIP:  ip,
		LoginAt:  at.Unix(),
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, payload, s.sessionTTL).Err(); err != nil {
		logger.Warn("会话缓存写入失败", logger.StaffID(staff.ID))
	}
}
