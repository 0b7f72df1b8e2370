// Package errors 定义业务错误码和错误处理
package errors

import (
	"fmt"
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown         = New(1000, "未知错误")
	ErrInvalidParams   = New(1001, "参数错误")
	ErrNotFound        = New(1002, "资源不存在")
	ErrAlreadyExists   = New(1003, "资源已存在")
	ErrDatabaseError   = New(1004, "数据库错误")
	ErrCacheError      = New(1005, "缓存错误")
	ErrInternalError   = New(1006, "内部错误")
	ErrRateLimitExceed = New(1007, "请求过于频繁")
	ErrOperationFailed = New(1008, "操作失败")
)

// 认证错误码 (2000-2999)
var (
	ErrUnauthorized     = New(2000, "未登录")
	ErrTokenExpired     = New(2001, "登录已过期")
	ErrTokenInvalid     = New(2002, "无效的令牌")
	ErrTokenRefreshFail = New(2003, "刷新令牌失败")
	ErrPermissionDenied = New(2004, "权限不足")
	ErrAccountDisabled  = New(2005, "账号已禁用")
	ErrPasswordError    = New(2006, "密码错误")
	ErrStaffNotFound    = New(2007, "员工不存在")
	ErrStaffExists      = New(2008, "员工账号已存在")
	ErrRoleInvalid      = New(2009, "无效的角色")
)

// 房间错误码 (3000-3999)
var (
	ErrRoomNotFound      = New(3000, "房间不存在")
	ErrRoomExists        = New(3001, "房间号已存在")
	ErrRoomNotAvailable  = New(3002, "房间不可用")
	ErrRoomStatusInvalid = New(3003, "无效的房间状态")
	ErrRoomOccupied      = New(3004, "房间已入住")
)

// 预订错误码 (4000-4999)
var (
	ErrReservationNotFound = New(4000, "预订不存在")
	ErrDuplicateReservation = New(4001, "该客人在此时段已有预订")
	ErrCheckInAfterOut     = New(4002, "退房时间早于入住时间")
	ErrGroupEmpty          = New(4003, "团体成员不能为空")
	ErrGuestNameEmpty      = New(4004, "客人姓名不能为空")
)

// 账单错误码 (5000-5999)
var (
	ErrBillNotFound     = New(5000, "账单不存在")
	ErrDuplicateBill    = New(5001, "该客人已生成账单")
	ErrDiscountInvalid  = New(5002, "无效的折扣比例")
	ErrSplitGroupEmpty  = New(5003, "分摊成员不能为空")
	ErrBillSubjectEmpty = New(5004, "账单对象不能为空")
)

// 库存错误码 (6000-6999)
var (
	ErrItemNotFound      = New(6000, "物品不存在")
	ErrItemExists        = New(6001, "物品名称已存在")
	ErrStockInsufficient = New(6002, "库存不足")
	ErrQuantityInvalid   = New(6003, "无效的数量")
	ErrThresholdInvalid  = New(6004, "无效的库存阈值")
)

// 清洁任务错误码 (7000-7999)
var (
	ErrTaskNotFound     = New(7000, "清洁任务不存在")
	ErrDuplicateTask    = New(7001, "该任务已存在")
	ErrRoomNotEligible  = New(7002, "房间当前状态不可安排清洁")
	ErrTaskStatusInvalid = New(7003, "无效的任务状态")
	ErrAssigneeEmpty    = New(7004, "执行人不能为空")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}
