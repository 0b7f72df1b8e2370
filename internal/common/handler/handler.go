// Package handler 提供 API Handler 的通用辅助函数
// 用于减少 Handler 层的代码重复，统一错误处理、认证检查、参数解析等操作
package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-ops-backend/internal/common/errors"
	"github.com/dumeirei/hotel-ops-backend/internal/common/response"
	"github.com/dumeirei/hotel-ops-backend/internal/common/utils"
	"github.com/dumeirei/hotel-ops-backend/internal/middleware"
)

// ============================================================================
// 统一错误处理
// ============================================================================

// HandleError 处理错误并发送适当的响应
// 如果 err 为 nil，返回 false（表示无错误需要处理）
// 如果 err 不为 nil，发送错误响应并返回 true（表示已处理错误，调用方应该 return）
//
// 使用示例:
//
//	result, err := service.DoSomething()
//	if HandleError(c, err) {
//	    return
//	}
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*errors.AppError); ok {
		response.Error(c, appErr.Code, appErr.Message)
		return true
	}
	response.InternalError(c, err.Error())
	return true
}

// HandleErrorWithMessage 处理错误，对非 AppError 使用自定义消息
// 适用于需要隐藏内部错误详情的场景
func HandleErrorWithMessage(c *gin.Context, err error, message string) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*errors.AppError); ok {
		response.Error(c, appErr.Code, appErr.Message)
		return true
	}
	response.InternalError(c, message)
	return true
}

// MustSucceed 便捷封装：如果有错误则返回错误响应，否则返回成功响应
// 适用于简单的「调用服务 -> 返回结果」场景
//
// 使用示例:
//
//	result, err := service.GetData()
//	MustSucceed(c, err, result)
//	return  // 注意：调用 MustSucceed 后必须 return
func MustSucceed(c *gin.Context, err error, data interface{}) {
	if HandleError(c, err) {
		return
	}
	response.Success(c, data)
}

// MustSucceedWithMessage 便捷封装：带自定义成功消息
func MustSucceedWithMessage(c *gin.Context, err error, message string, data interface{}) {
	if HandleError(c, err) {
		return
	}
	response.SuccessWithMessage(c, message, data)
}

// MustSucceedPage 便捷封装：分页响应版本
//
// 使用示例:
//
//	list, total, err := service.GetList(offset, limit)
//	MustSucceedPage(c, err, list, total, page, pageSize)
//	return
func MustSucceedPage(c *gin.Context, err error, list interface{}, total int64, page, pageSize int) {
	if HandleError(c, err) {
		return
	}
	response.SuccessPage(c, list, total, page, pageSize)
}

// ============================================================================
// 员工认证检查
// ============================================================================

// RequireStaffID 获取当前员工ID，如果未登录则返回401响应
// 返回 (staffID, true) 表示已登录
// 返回 (0, false) 表示未登录（已发送响应，调用方应该 return）
//
// 使用示例:
//
//	staffID, ok := handler.RequireStaffID(c)
//	if !ok {
//	    return
//	}
func RequireStaffID(c *gin.Context) (int64, bool) {
	staffID := middleware.GetStaffID(c)
	if staffID == 0 {
		response.Unauthorized(c, "请先登录")
		return 0, false
	}
	return staffID, true
}

// ============================================================================
// ID 参数解析
// ============================================================================

// ParseID 解析路径参数 "id" 为 int64
// 返回 (id, true) 表示解析成功
// 返回 (0, false) 表示解析失败（已发送400响应，调用方应该 return）
//
// 使用示例:
//
//	id, ok := handler.ParseID(c, "房间")
//	if !ok {
//	    return
//	}
func ParseID(c *gin.Context, resourceName string) (int64, bool) {
	return ParseParamID(c, "id", resourceName)
}

// ParseParamID 解析指定路径参数为 int64
// paramName: 路径参数名称（如 "id", "room_id"）
// resourceName: 资源名称，用于错误消息（如 "房间", "账单"）
func ParseParamID(c *gin.Context, paramName, resourceName string) (int64, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的"+resourceName+"ID")
		return 0, false
	}
	return id, true
}

// ParseQueryID 解析查询参数中的可选 ID
// 如果参数为空返回 (nil, true)
// 如果解析失败返回 (nil, false)（已发送400响应）
// 如果解析成功返回 (*id, true)
func ParseQueryID(c *gin.Context, paramName, resourceName string) (*int64, bool) {
	idStr := c.Query(paramName)
	if idStr == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的"+resourceName+"ID")
		return nil, false
	}
	return &id, true
}

// ============================================================================
// 时间解析辅助
// ============================================================================

// 时间格式常量
const (
	DateFormat         = "2006-01-02"
	DateTimeFormat     = "2006-01-02 15:04:05"
	DateTimeFormatISO  = "2006-01-02T15:04:05Z07:00"
	DateTimeFormatISO2 = "2006-01-02T15:04:05"
	DateTimeFormatMin  = "2006-01-02 15:04"
)

// 支持的日期时间格式列表
var dateTimeFormats = []string{
	DateTimeFormatISO,
	DateTimeFormat,
	DateTimeFormatISO2,
	DateTimeFormatMin,
}

// ParseDate 解析日期字符串 (YYYY-MM-DD)
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// ParseDateTime 解析日期时间字符串，支持多种格式
func ParseDateTime(s string) (time.Time, error) {
	for _, format := range dateTimeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.ErrInvalidParams.WithMessage("时间格式错误")
}

// ParseQueryDate 从查询参数解析日期
// 返回 (nil, true) 如果参数为空
// 返回 (nil, false) 如果解析失败（已发送400响应）
// 返回 (*time, true) 如果解析成功
func ParseQueryDate(c *gin.Context, paramName, errorMsg string) (*time.Time, bool) {
	dateStr := c.Query(paramName)
	if dateStr == "" {
		return nil, true
	}
	t, err := ParseDate(dateStr)
	if err != nil {
		response.BadRequest(c, errorMsg)
		return nil, false
	}
	return &t, true
}

// ParseQueryDateRange 从查询参数解析日期范围（start_date, end_date）
// 结束日期会自动调整为当天结束时间（23:59:59）
// 返回 (nil, nil, true) 如果两个参数都为空
// 返回 (nil, nil, false) 如果解析失败（已发送400响应）
func ParseQueryDateRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	var start, end *time.Time

	startStr := c.Query("start_date")
	if startStr != "" {
		t, err := ParseDate(startStr)
		if err != nil {
			response.BadRequest(c, "无效的开始日期格式")
			return nil, nil, false
		}
		start = &t
	}

	endStr := c.Query("end_date")
	if endStr != "" {
		t, err := ParseDate(endStr)
		if err != nil {
			response.BadRequest(c, "无效的结束日期格式")
			return nil, nil, false
		}
		// 设置为当天结束时间
		endOfDay := t.Add(24*time.Hour - time.Second)
		end = &endOfDay
	}

	return start, end, true
}

// ============================================================================
// 分页处理
// ============================================================================

// BindPagination 从查询参数绑定并规范化分页参数
// 默认 page=1, pageSize=10, 最大 pageSize=100
//
// 使用示例:
//
//	p := handler.BindPagination(c)
//	list, total, err := service.GetList(p.GetOffset(), p.GetLimit())
//	MustSucceedPage(c, err, list, total, p.Page, p.PageSize)
func BindPagination(c *gin.Context) utils.Pagination {
	var p utils.Pagination
	p.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	p.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	p.Normalize()
	return p
}

// ============================================================================
// 组合辅助函数
// ============================================================================

// RequireStaffAndParseID 组合：检查员工登录 + 解析ID参数
// 适用于大多数需要登录且操作特定资源的接口
//
// 使用示例:
//
//	staffID, resourceID, ok := handler.RequireStaffAndParseID(c, "账单")
//	if !ok {
//	    return
//	}
func RequireStaffAndParseID(c *gin.Context, resourceName string) (staffID, resourceID int64, ok bool) {
	staffID, ok = RequireStaffID(c)
	if !ok {
		return 0, 0, false
	}
	resourceID, ok = ParseID(c, resourceName)
	if !ok {
		return 0, 0, false
	}
	return staffID, resourceID, true
}
