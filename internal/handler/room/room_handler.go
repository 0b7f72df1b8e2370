// Package room 提供客房管理相关的 HTTP Handler
package room

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-ops-backend/internal/common/handler"
	"github.com/dumeirei/hotel-ops-backend/internal/common/response"
	roomService "github.com/dumeirei/hotel-ops-backend/internal/service/room"
)

// RoomHandler 客房处理器
type RoomHandler struct {
	roomService *roomService.RoomService
}

// NewRoomHandler 创建客房处理器
func NewRoomHandler(roomSvc *roomService.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomSvc,
	}
}

// CreateRoom 创建房间
// @Summary 创建房间
// @Tags 客房
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body roomService.CreateRoomRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Room}
// @Router /api/v1/rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req roomService.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), &req)
	handler.MustSucceed(c, err, room)
}

// GetRoom 获取房间详情
// @Summary 获取房间详情
// @Tags 客房
// @Produce json
// @Security Bearer
// @Param id path int true "房间ID"
// @Success 200 {object} response.Response{data=models.Room}
// @Router /api/v1/rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(c.Request.Context(), id)
	handler.MustSucceed(c, err, room)
}

// ListRooms 获取房间列表
// @Summary 获取房间列表
// @Tags 客房
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param type query string false "房型"
// @Param status query string false "状态"
// @Param floor query int false "楼层"
// @Success 200 {object} response.Response{data=[]models.Room}
// @Router /api/v1/rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := make(map[string]interface{})
	if roomType := c.Query("type"); roomType != "" {
		filters["type"] = roomType
	}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if floorStr := c.Query("floor"); floorStr != "" {
		floor, err := strconv.Atoi(floorStr)
		if err != nil {
			response.BadRequest(c, "无效的楼层")
			return
		}
		filters["floor"] = floor
	}

	rooms, total, err := h.roomService.ListRooms(c.Request.Context(), p.GetOffset(), p.GetLimit(), filters)
	handler.MustSucceedPage(c, err, rooms, total, p.Page, p.PageSize)
}

// FirstAvailable 查询第一间可用房间
// @Summary 查询第一间可用房间
// @Tags 客房
// @Produce json
// @Security Bearer
// @Param type query string false "房型，为空时不限"
// @Success 200 {object} response.Response{data=models.Room}
// @Router /api/v1/rooms/available [get]
func (h *RoomHandler) FirstAvailable(c *gin.Context) {
	room, err := h.roomService.FirstAvailable(c.Request.Context(), c.Query("type"))
	handler.MustSucceed(c, err, room)
}

// UpdateStatusRequest 更新房间状态请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus 更新房间状态
// @Summary 更新房间状态
// @Tags 客房
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "房间ID"
// @Param request body UpdateStatusRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Room}
// @Router /api/v1/rooms/{id}/status [put]
func (h *RoomHandler) UpdateStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	room, err := h.roomService.UpdateStatus(c.Request.Context(), id, req.Status)
	handler.MustSucceed(c, err, room)
}

// DeleteRoom 删除房间
// @Summary 删除房间
// @Tags 客房
// @Produce json
// @Security Bearer
// @Param id path int true "房间ID"
// @Success 200 {object} response.Response
// @Router /api/v1/rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}

	handler.MustSucceed(c, h.roomService.DeleteRoom(c.Request.Context(), id), nil)
}
