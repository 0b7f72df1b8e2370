// Package housekeeping 提供清洁任务相关的 HTTP Handler
package housekeeping

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-ops-backend/internal/common/handler"
	"github.com/dumeirei/hotel-ops-backend/internal/common/response"
	housekeepingService "github.com/dumeirei/hotel-ops-backend/internal/service/housekeeping"
)

// HousekeepingHandler 清洁任务处理器
type HousekeepingHandler struct {
	housekeepingService *housekeepingService.HousekeepingService
}

// NewHousekeepingHandler 创建清洁任务处理器
func NewHousekeepingHandler(housekeepingSvc *housekeepingService.HousekeepingService) *HousekeepingHandler {
	return &HousekeepingHandler{
		housekeepingService: housekeepingSvc,
	}
}

// CreateTask 创建清洁任务
// @Summary 创建清洁任务
// @Tags 清洁
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body housekeepingService.CreateTaskRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.HousekeepingTask}
// @Router /api/v1/housekeeping/tasks [post]
func (h *HousekeepingHandler) CreateTask(c *gin.Context) {
	var req housekeepingService.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	task, err := h.housekeepingService.CreateTask(c.Request.Context(), &req)
	handler.MustSucceed(c, err, task)
}

// GetTask 获取任务详情
// @Summary 获取任务详情
// @Tags 清洁
// @Produce json
// @Security Bearer
// @Param id path int true "任务ID"
// @Success 200 {object} response.Response{data=models.HousekeepingTask}
// @Router /api/v1/housekeeping/tasks/{id} [get]
func (h *HousekeepingHandler) GetTask(c *gin.Context) {
	id, ok := handler.ParseID(c, "任务")
	if !ok {
		return
	}

	task, err := h.housekeepingService.GetTask(c.Request.Context(), id)
	handler.MustSucceed(c, err, task)
}

// ListTasks 获取任务列表
// @Summary 获取任务列表
// @Tags 清洁
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param room_id query int false "房间ID"
// @Param assignee query string false "负责人"
// @Param status query string false "状态"
// @Success 200 {object} response.Response{data=[]models.HousekeepingTask}
// @Router /api/v1/housekeeping/tasks [get]
func (h *HousekeepingHandler) ListTasks(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := make(map[string]interface{})
	roomID, ok := handler.ParseQueryID(c, "room_id", "房间")
	if !ok {
		return
	}
	if roomID != nil {
		filters["room_id"] = *roomID
	}
	if assignee := c.Query("assignee"); assignee != "" {
		filters["assignee"] = assignee
	}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}

	tasks, total, err := h.housekeepingService.ListTasks(c.Request.Context(), p.GetOffset(), p.GetLimit(), filters)
	handler.MustSucceedPage(c, err, tasks, total, p.Page, p.PageSize)
}

// ListByAssignee 获取负责人的任务
// @Summary 获取负责人的任务
// @Tags 清洁
// @Produce json
// @Security Bearer
// @Param assignee path string true "负责人"
// @Success 200 {object} response.Response{data=[]models.HousekeepingTask}
// @Router /api/v1/housekeeping/assignee/{assignee} [get]
func (h *HousekeepingHandler) ListByAssignee(c *gin.Context) {
	assignee := c.Param("assignee")
	if assignee == "" {
		response.BadRequest(c, "负责人不能为空")
		return
	}

	tasks, err := h.housekeepingService.ListByAssignee(c.Request.Context(), assignee)
	handler.MustSucceed(c, err, tasks)
}

// UpdateStatusRequest 更新任务状态请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus 更新任务状态
// @Summary 更新任务状态
// @Tags 清洁
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "任务ID"
// @Param request body UpdateStatusRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.HousekeepingTask}
// @Router /api/v1/housekeeping/tasks/{id}/status [put]
func (h *HousekeepingHandler) UpdateStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "任务")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	task, err := h.housekeepingService.UpdateStatus(c.Request.Context(), id, req.Status)
	handler.MustSucceed(c, err, task)
}
