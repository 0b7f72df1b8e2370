// Package staff 提供员工管理相关的 HTTP Handler
package staff

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-ops-backend/internal/common/handler"
	"github.com/dumeirei/hotel-ops-backend/internal/common/response"
	authService "github.com/dumeirei/hotel-ops-backend/internal/service/auth"
)

// StaffHandler 员工管理处理器
type StaffHandler struct {
	authService *authService.AuthService
}

// NewStaffHandler 创建员工管理处理器
func NewStaffHandler(authSvc *authService.AuthService) *StaffHandler {
	return &StaffHandler{
		authService: authSvc,
	}
}

// CreateStaff 创建员工账号
// @Summary 创建员工账号
// @Tags 员工管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body authService.CreateStaffRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Staff}
// @Router /api/v1/staff [post]
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req authService.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	staff, err := h.authService.CreateStaff(c.Request.Context(), &req)
	handler.MustSucceed(c, err, staff)
}

// GetStaff 获取员工详情
// @Summary 获取员工详情
// @Tags 员工管理
// @Produce json
// @Security Bearer
// @Param id path int true "员工ID"
// @Success 200 {object} response.Response{data=models.Staff}
// @Router /api/v1/staff/{id} [get]
func (h *StaffHandler) GetStaff(c *gin.Context) {
	id, ok := handler.ParseID(c, "员工")
	if !ok {
		return
	}

	staff, err := h.authService.GetStaffByID(c.Request.Context(), id)
	handler.MustSucceed(c, err, staff)
}

// ListStaff 获取员工列表
// @Summary 获取员工列表
// @Tags 员工管理
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param role query string false "角色"
// @Param status query int false "状态"
// @Param keyword query string false "关键字"
// @Success 200 {object} response.Response{data=[]models.Staff}
// @Router /api/v1/staff [get]
func (h *StaffHandler) ListStaff(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := make(map[string]interface{})
	if role := c.Query("role"); role != "" {
		filters["role"] = role
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, err := strconv.Atoi(statusStr)
		if err != nil {
			response.BadRequest(c, "无效的状态")
			return
		}
		filters["status"] = int8(status)
	}
	if keyword := c.Query("keyword"); keyword != "" {
		filters["keyword"] = keyword
	}

	list, total, err := h.authService.ListStaff(c.Request.Context(), p.GetOffset(), p.GetLimit(), filters)
	handler.MustSucceedPage(c, err, list, total, p.Page, p.PageSize)
}

// UpdateStatusRequest 更新员工状态请求
type UpdateStatusRequest struct {
	Status int8 `json:"status"`
}

// UpdateStaffStatus 启用或禁用员工账号
// @Summary 启用或禁用员工账号
// @Tags 员工管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "员工ID"
// @Param request body UpdateStatusRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/staff/{id}/status [put]
func (h *StaffHandler) UpdateStaffStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "员工")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	handler.MustSucceed(c, h.authService.UpdateStaffStatus(c.Request.Context(), id, req.Status), nil)
}
